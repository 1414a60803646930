package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveSource runs the front end and returns the distance recorded for
// every variable reference, keyed by name.
func resolveSource(t *testing.T, source string) (map[string]int, *interpreterState) {
	t.Helper()
	state := newInterpreterState(source)
	newLexer(state).scan()
	newParser(state).parse()
	require.True(t, state.Valid(), "unexpected syntax errors in %q", source)

	locals := make(map[expr]int)
	newResolver(state, locals).resolve(state.stmts)

	distances := make(map[string]int)
	for e, d := range locals {
		switch e := e.(type) {
		case *variableExpr:
			distances[e.name.lexeme] = d
		case *assignExpr:
			distances[e.name.lexeme+"="] = d
		case *thisExpr:
			distances["this"] = d
		case *superExpr:
			distances["super"] = d
		}
	}
	return distances, state
}

func TestResolveDistances(t *testing.T) {
	distances, state := resolveSource(t, `
	var g = 1;
	{
		var a = 1;
		{
			var b = a;
			fun f(p) {
				print p;
				print b;
				a = g;
			}
		}
	}
	`)
	require.True(t, state.Valid())

	assert.Equal(t, 1, distances["a"], "a read from the nested block")
	assert.Equal(t, 0, distances["p"], "parameters live in the function frame")
	assert.Equal(t, 1, distances["b"], "b is one frame out of f")
	assert.Equal(t, 2, distances["a="], "a assigned two frames out of f")
	_, global := distances["g"]
	assert.False(t, global, "globals are left for dynamic lookup")
}

func TestResolveMethods(t *testing.T) {
	distances, state := resolveSource(t, `
	class A {
		m() {}
	}
	class B < A {
		m() {
			print this;
			super.m();
		}
	}
	`)
	require.True(t, state.Valid())

	assert.Equal(t, 1, distances["this"])
	assert.Equal(t, 2, distances["super"])
}

func TestResolveForIncrement(t *testing.T) {
	distances, state := resolveSource(t, `
	for (var i = 0; i < 3; i = i + 1) {
		var i = "shadow";
	}
	`)
	require.True(t, state.Valid())

	// The increment runs in its own block nested in the initializer scope.
	assert.Equal(t, 1, distances["i="])
}

func checkResolveError(t *testing.T, source string, message string) {
	t.Helper()
	tp := &testPrinter{}
	status := RunSourceWithPrinter(source, tp)
	assert.Equal(t, StatusCompileError, status, source)
	assert.Equal(t, message+"\n", tp.printed, source)
}

func TestResolveErrors(t *testing.T) {
	checkResolveError(t, `var a = "x"; { var a = a; }`,
		"[line 1] Error at 'a': Cannot read local variable in its own initializer.")
	checkResolveError(t, `var a = a;`,
		"[line 1] Error at 'a': Cannot read local variable in its own initializer.")
	checkResolveError(t, `{ var a = 1; var a = 2; }`,
		"[line 1] Error at 'a': Variable with this name already declared in this scope.")
	checkResolveError(t, `fun f(a, a) {}`,
		"[line 1] Error at 'a': Variable with this name already declared in this scope.")
	checkResolveError(t, `return 1;`,
		"[line 1] Error at 'return': Cannot return from top-level code.")
	checkResolveError(t, `class A { init() { return 1; } }`,
		"[line 1] Error at 'return': Cannot return a value from an initializer.")
	checkResolveError(t, `print this;`,
		"[line 1] Error at 'this': Cannot use 'this' outside of a class.")
	checkResolveError(t, `fun f() { return this; }`,
		"[line 1] Error at 'this': Cannot use 'this' outside of a class.")
	checkResolveError(t, `super.m();`,
		"[line 1] Error at 'super': Cannot use 'super' outside of a class.")
	checkResolveError(t, `class A { m() { super.m(); } }`,
		"[line 1] Error at 'super': Cannot use 'super' in a class with no superclass.")
	checkResolveError(t, `class A < A {}`,
		"[line 1] Error at 'A': A class cannot inherit from itself.")
}

func TestResolveAllowed(t *testing.T) {
	tp := &testPrinter{}

	// An empty return in an initializer is fine.
	assert.Equal(t, StatusOK, RunSourceWithPrinter(`class A { init() { return; } }`, tp))

	// Globals may be redeclared.
	assert.Equal(t, StatusOK, RunSourceWithPrinter(`var a = 1; var a = 2;`, tp))

	// Global initializers may read other globals through functions.
	assert.Equal(t, StatusOK, RunSourceWithPrinter(`var a = 1; fun get() { return a; } var b = get();`, tp))

	assert.Empty(t, tp.printed)
}

func TestResolveNothingExecutes(t *testing.T) {
	tp := &testPrinter{}
	status := RunSourceWithPrinter(`print "side effect"; return;`, tp)
	assert.Equal(t, StatusCompileError, status)
	assert.NotContains(t, tp.printed, "side effect")
}
