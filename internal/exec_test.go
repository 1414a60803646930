package internal

import (
	"fmt"
	"io"
	"testing"
)

type testPrinter struct {
	printed string
}

func (t *testPrinter) Println(a ...interface{}) (n int, err error) {
	for i, e := range a {
		if i != 0 {
			t.printed += " "
		}
		t.printed += fmt.Sprintf("%v", e)
	}
	t.printed += "\n"
	return 0, nil
}

func (t *testPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return t.Println(fmt.Sprintf(format, a...))
}

func (t *testPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return t.Println(a...)
}

func (t *testPrinter) Equals(p string) bool {
	if t.printed == p+"\n" {
		t.Reset()
		return true
	}
	return false
}

func (t *testPrinter) Reset() {
	t.printed = ""
}

func checkExpression(t *testing.T, exp string, result string) {
	source := "print " + exp + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	if !tp.Equals(result) {
		t.Errorf(
			"Error on: \n%s\n\tResult should be equal to %s instead of %s",
			exp,
			result,
			tp.printed,
		)
	}
}

func checkErrorMsg(t *testing.T, source string, errorMsg string, line int) {
	result := fmt.Sprintf("%s\n[Line %d]", errorMsg, line)

	tp := &testPrinter{}
	status := RunSourceWithPrinter(source, tp)
	if !tp.Equals(result) || status != StatusRuntimeError {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s\n----\nFound (%s):\n----\n%s----",
			source,
			result,
			status,
			tp.printed,
		)
	}
}

func checkStatements(t *testing.T, code string, resultVar string, result string) {
	source := code + "\nprint " + resultVar + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	if !tp.Equals(result) {
		t.Errorf(
			"Error on: \n%s\n\t%s should be equal to %s instead of %s",
			code,
			resultVar,
			result,
			tp.printed,
		)
	}
}

func checkOutput(t *testing.T, source string, output string) {
	tp := &testPrinter{}
	status := RunSourceWithPrinter(source, tp)
	if !tp.Equals(output) || status != StatusOK {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s\n----\nFound (%s):\n----\n%s----",
			source,
			output,
			status,
			tp.printed,
		)
	}
}

func TestExpressions(t *testing.T) {

	// Arithmethic
	{
		// Number
		checkExpression(t, "1", "1")

		// Negative
		checkExpression(t, "-1", "-1")

		// Add numbers
		checkExpression(t, "1 + 2 + 3", "6")

		// Subtract numbers
		checkExpression(t, "8 - 2", "6")

		// Multiply numbers
		checkExpression(t, "1 * 2 * 3", "6")

		// Divide numbers
		checkExpression(t, "12 / 2", "6")
		checkExpression(t, "7 / 2", "3.5")

		// Precedence
		checkExpression(t, "1 + 2 * 3 - 4 / 2", "5")
		checkExpression(t, "(1 + 2) * 3", "9")
		checkExpression(t, "10 - 4 - 3", "3")

		// Integral floats print without fraction
		checkExpression(t, "6.0", "6")
		checkExpression(t, "2.50", "2.5")

		// Division by zero follows IEEE 754
		checkExpression(t, "1 / 0", "Infinity")
		checkExpression(t, "-1 / 0", "-Infinity")
		checkExpression(t, "0 / 0", "NaN")
	}

	// Logical
	{
		// 'true' literal
		checkExpression(t, "true", "true")

		// 'false' literal
		checkExpression(t, "false", "false")

		// 'nil' literal
		checkExpression(t, "nil", "nil")

		// not
		checkExpression(t, "!false", "true")
		checkExpression(t, "!true", "false")
		checkExpression(t, "!nil", "true")
		checkExpression(t, `!""`, "false")
		checkExpression(t, `!0`, "false")
		checkExpression(t, `!!1`, "true")

		// and
		checkExpression(t, "true and true", "true")
		checkExpression(t, "false and true", "false")
		checkExpression(t, "true and false", "false")
		checkExpression(t, "false and false", "false")
		checkExpression(t, "1 and 2", "2")
		checkExpression(t, "nil and 2", "nil")

		// or
		checkExpression(t, "false or false", "false")
		checkExpression(t, "false or true", "true")
		checkExpression(t, "true or true", "true")
		checkExpression(t, "true or false", "true")
		checkExpression(t, `nil or "yes"`, "yes")
		checkExpression(t, `0 or "no"`, "0")
	}

	// Strings
	{
		// String literal
		checkExpression(t, `"test"`, `test`)

		// String concat
		checkExpression(t, `"te" + "st"`, `test`)

		// Empty string
		checkExpression(t, `""`, ``)
	}

	// Comparisons
	{
		// String Equality
		checkExpression(t, `"test" == "test"`, "true")
		checkExpression(t, `"test" != "test"`, "false")

		// Number Equality
		checkExpression(t, `2*2 == 8-4`, "true")
		checkExpression(t, `2*2 != 8-4`, "false")

		// Mixed kinds are never equal
		checkExpression(t, `1 == "1"`, "false")
		checkExpression(t, `nil == false`, "false")
		checkExpression(t, `nil == nil`, "true")
		checkExpression(t, `true == true`, "true")

		// NaN is not equal to itself
		checkExpression(t, `(0/0) == (0/0)`, "false")
		checkExpression(t, `(0/0) != (0/0)`, "true")

		// Number gt
		checkExpression(t, `10 > 5`, "true")

		// Number lt
		checkExpression(t, `10 < 5`, "false")

		// Number gte
		checkExpression(t, `5 >= 5`, "true")
		checkExpression(t, `4 >= 5`, "false")

		// Number lte
		checkExpression(t, `5 <= 5`, "true")
		checkExpression(t, `10 <= 5`, "false")

		// Grouping
		checkExpression(t, `(5 <= 5) and (!true or ((1*(1+4)) == 5))`, "true")
	}
}

func TestRuntimeErrors(t *testing.T) {
	// Expression errors
	{
		// Binary expression on strings
		checkErrorMsg(t, `"A" - "B";`, errOperandsNumbers.Error(), 1)

		// Comparison of strings
		checkErrorMsg(t, `"a" < "b";`, errOperandsNumbers.Error(), 1)

		// Unary minus on string
		checkErrorMsg(t, `-"B";`, errOperandNumber.Error(), 1)

		// Mixed addition
		checkErrorMsg(t, `"a" + 1;`, errOperandsAdd.Error(), 1)
		checkErrorMsg(t, `1 + nil;`, errOperandsAdd.Error(), 1)

		// Call not callable
		checkErrorMsg(t, `"B"();`, errOnlyCallable.Error(), 1)

		// Wrong number of arguments
		checkErrorMsg(t, `fun f(a, b) { return a + b; } print f(1);`, "Expected 2 arguments but got 1.", 1)

		// Get expr on non-instance
		checkErrorMsg(t, `"abc".length;`, errOnlyInstanceProps.Error(), 1)

		// Set expr on non-instance
		checkErrorMsg(t, `var a = 1; a.length = 1;`, errOnlyInstanceFields.Error(), 1)
	}

	// Statement errors
	{
		// Undefined variable
		checkErrorMsg(t, `var a = b;`, "Undefined variable 'b'.", 1)

		// Undefined variable assignment
		checkErrorMsg(t, `a = 1;`, "Undefined variable 'a'.", 1)

		// Error on a later line
		checkErrorMsg(t, `
		var a = true;
		a + 1;
		`, errOperandsAdd.Error(), 3)

		// Break at top level
		checkErrorMsg(t, `break;`, "'break' not properly in loop.", 1)
		checkErrorMsg(t, `{ continue; }`, "'continue' not properly in loop.", 1)

		// Break does not cross a function boundary
		checkErrorMsg(t, `
		while (true) {
			fun f() { break; }
			f();
		}
		`, "'break' not properly in loop.", 3)

		// Inheritance from non-class
		checkErrorMsg(t, `
		var C = "C";
		class A < C {}
		`, errSuperclassNotClass.Error(), 3)

		// Missing superclass method
		checkErrorMsg(t, `
		class C {}
		class A < C {
			get(a) {
				return super.get(a);
			}
		}
		A().get(1);
		`, "Undefined property 'get'.", 5)

		// Undefined property
		checkErrorMsg(t, `
		class A {}
		A().prop;
		`, "Undefined property 'prop'.", 3)

		// Properties on classes
		checkErrorMsg(t, `
		class A {}
		A.prop;
		`, errOnlyInstanceProps.Error(), 3)

		// Error on constructor
		checkErrorMsg(t, `
		class A {
			init() {}
		}
		A(1);
		`, "Expected 0 arguments but got 1.", 5)

		// Class without init takes no arguments
		checkErrorMsg(t, `
		class A {}
		A(1, 2);
		`, "Expected 0 arguments but got 2.", 3)
	}

	// The first runtime error stops the run
	{
		tp := &testPrinter{}
		status := RunSourceWithPrinter(`print 1; nil(); print 2;`, tp)
		if status != StatusRuntimeError || !tp.Equals("1\n"+errOnlyCallable.Error()+"\n[Line 1]") {
			t.Errorf("unexpected result %s: %q", status, tp.printed)
		}
	}
}

func TestGlobals(t *testing.T) {
	// Print globals
	{
		checkExpression(t, `clock`, "<native fn>")
		checkExpression(t, `clock() > 0`, "true")
	}
}

func TestStatements(t *testing.T) {
	// Comment
	{
		checkStatements(t, `
		// This is a "comment"
		var i = 0;
		/* and this
		   is a block comment */
		`, "i", "0")
	}

	// Declarations
	{
		checkStatements(t, `var i;`, "i", "nil")
		checkStatements(t, `var i = 1; var i = 2;`, "i", "2")
	}

	// Blocks and shadowing
	{
		checkOutput(t, `
		var a = "global";
		{
			var a = "outer";
			{
				var a = "inner";
				print a;
			}
			print a;
		}
		print a;
		`, "inner\nouter\nglobal")

		checkStatements(t, `
		var a = 1;
		{
			a = 2;
		}
		`, "a", "2")
	}

	// If-else
	{
		checkStatements(t, `
		var i = 0;
		if (i == 100) {
			i = 10;
		} else if (i < 10) {
			i = 20;
		} else {
			i = 100;
		}
		`, "i", "20")

		checkStatements(t, `
		var i = 20;
		if (i == 100) {
			i = 10;
		} else if (i < 10) {
			i = 20;
		} else {
			i = 100;
		}`, "i", "100")

		checkStatements(t, `
		var i = 100;
		if (i == 100) i = 10; else i = 100;
		`, "i", "10")

		// Dangling else binds to the nearest if
		checkStatements(t, `
		var i = 0;
		if (true) if (false) i = 1; else i = 2;
		`, "i", "2")
	}

	// While loop
	{
		checkStatements(t, `
		var i = 0;
		while (i*2 < 10) {
			i = i + 1;
		}
		`, "i", "5")

		checkStatements(t, `
		var i = 0;
		while (true) {
			i = i + 1;
			if (i == 3) break;
		}
		`, "i", "3")

		checkStatements(t, `
		var i = 0;
		var n = 0;
		while (i < 10) {
			i = i + 1;
			if (i == 5) continue;
			n = n + 1;
		}
		`, "n", "9")
	}

	// For loop
	{
		checkStatements(t, `
		var x = 1;
		for (var i = 1; i <= 8; i = i + 1) {
			x = x * i;
		}`, "x", "40320")

		checkStatements(t, `
		var x = 40320;
		var u = 0;
		for (; u < 10; u = u + 1) {
			x = x - u;
		}
		`, "x", "40275")

		// Continue still runs the increment
		checkOutput(t, `
		for (var i = 0; i < 5; i = i + 1) {
			if (i == 1 or i == 3) continue;
			print i;
		}
		`, "0\n2\n4")

		// Break leaves the innermost loop only
		checkOutput(t, `
		for (var i = 0; i < 3; i = i + 1) {
			for (var j = 0; j < 3; j = j + 1) {
				if (j == 1) break;
				print i * 10 + j;
			}
		}
		`, "0\n10\n20")

		// Loop variable is not visible after the loop
		checkErrorMsg(t, `
		for (var i = 0; i < 1; i = i + 1) {}
		print i;
		`, "Undefined variable 'i'.", 3)

		// Body shadowing the loop variable does not change the increment
		checkOutput(t, `
		for (var i = 0; i < 3; i = i + 1) {
			var i = "shadow";
			print i;
			continue;
		}
		`, "shadow\nshadow\nshadow")

		// Closures capture the single loop variable
		checkOutput(t, `
		var first;
		for (var i = 0; i < 3; i = i + 1) {
			fun show() { print i; }
			if (first == nil) first = show;
		}
		first();
		`, "3")
	}

	// Functions
	{
		checkStatements(t, `
		fun nilCheck() {
			return;
		}
		var i = nilCheck();
		`, "i", "nil")

		checkStatements(t, `
		fun noReturn() {}
		var i = noReturn();
		`, "i", "nil")

		checkStatements(t, `
		fun check() {
			return 1;
		}
		var i = check();
		`, "i", "1")

		checkStatements(t, `
		fun check(i) {
			return i;
		}
		var i = check(10);
		`, "i", "10")

		checkStatements(t, `
		fun fib(i) {
			if (i == 0) {
				return 0;
			} else if (i == 1) {
				return 1;
			} else {
				return fib(i-1)+fib(i-2);
			}
		}
		var f = fib(10);
		`, "f", "55")

		checkStatements(t, `
		fun count(i) {
			while (true) {
				i = i - 1;
				if (i < 0) {
					return i;
				}
			}
			return i;
		}
		var f = count(10);
		`, "f", "-1")

		checkStatements(t, `
		fun count(i) {
			for (var n = 0; n < 1; n = n + 1) {
				return n;
			}
			return i;
		}
		var f = count(10);
		`, "f", "0")

		// Print function
		checkStatements(t, `
		fun ff() {}
		`, "ff", "<fn ff>")

		// Functions are values
		checkStatements(t, `
		fun twice(f, x) { return f(f(x)); }
		fun inc(x) { return x + 1; }
		var r = twice(inc, 1);
		`, "r", "3")
	}

	// Closures
	{
		checkOutput(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var c = makeCounter();
		c();
		c();
		`, "1\n2")

		// Counters do not share state
		checkOutput(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				return i;
			}
			return count;
		}
		var a = makeCounter();
		var b = makeCounter();
		a();
		a();
		print a();
		print b();
		`, "3\n1")

		// Two closures over the same variable share it
		checkOutput(t, `
		var get;
		var set;
		fun pair() {
			var v = "before";
			fun g() { return v; }
			fun s(x) { v = x; }
			get = g;
			set = s;
		}
		pair();
		set("after");
		print get();
		`, "after")

		// Static scoping: the resolved binding does not move
		checkOutput(t, `
		var a = "global";
		{
			fun showA() {
				print a;
			}
			showA();
			var a = "block";
			showA();
		}
		`, "global\nglobal")
	}

	// Classes
	{
		// Check simple object
		checkStatements(t, `
		class Pan {
			init() {
				this.pan = 1;
			}
		}`, "Pan().pan", "1")

		// Check parent constructor
		checkStatements(t, `
		class Food {
			init() {
				this.msg = "good";
			}
		}
		class Pan < Food {
			init() {
				super.init();
			}
		}`, "Pan().msg", `good`)

		// Check method inheritance
		checkStatements(t, `
		class Food {
			eat() {
				this.msg = "eating";
			}
		}
		class Pan < Food {}
		var bread = Pan();
		bread.eat();
		`, "bread.msg", `eating`)

		// Super resolves statically
		checkOutput(t, `
		class A {
			method() { print "A method"; }
		}
		class B < A {
			method() { print "B method"; }
			test() { super.method(); }
		}
		class C < B {}
		C().test();
		`, "A method")

		// Bound methods remember their instance
		checkOutput(t, `
		class Box {
			init(v) { this.v = v; }
			get() { return this.v; }
		}
		var m = Box(7).get;
		print m();
		`, "7")

		// Fields shadow methods
		checkOutput(t, `
		class A {
			m() { return "method"; }
		}
		var a = A();
		a.m = "field";
		print a.m;
		`, "field")

		// init returns this even when called directly
		checkOutput(t, `
		class A {
			init() { this.n = 1; return; }
		}
		var a = A();
		print a.init() == a;
		`, "true")

		// Print object
		checkStatements(t, `
		class Operate {
			init(val) {
				this.val = val;
			}
		}
		var a = Operate(1);
		`, "a", "<Operate instance>")

		// Print class
		checkStatements(t, `
		class B {}
		class A < B {}
		`, "A", "<A class>")

		// Instances compare by identity
		checkOutput(t, `
		class A {}
		var a = A();
		var b = A();
		print a == a;
		print a == b;
		`, "true\nfalse")
	}
}
