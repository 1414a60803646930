package internal

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
	completionBreak
	completionContinue
)

// completion is how a statement finished. Return carries a value,
// break and continue carry their keyword for error reporting.
type completion struct {
	kind    completionKind
	value   ternValue
	keyword *token
}

var normal = completion{kind: completionNormal}

type exec struct {
	printer IPrinter
	logger  logrus.FieldLogger

	globals *env
	env     *env
	locals  map[expr]int
}

func newExec(printer IPrinter, logger logrus.FieldLogger) *exec {
	globals := newEnv(nil)
	e := &exec{
		printer: printer,
		logger:  logger,
		globals: globals,
		env:     globals,
		locals:  make(map[expr]int),
	}
	defineGlobals(e.globals)
	return e
}

// interpret runs the statements in order and stops at the first runtime
// error, which is stored on the state.
func (e *exec) interpret(state *interpreterState) bool {
	for _, s := range state.stmts {
		result, err := e.execute(s)
		if err == nil && (result.kind == completionBreak || result.kind == completionContinue) {
			err = newRuntimeError(result.keyword, errNotInLoop(result.keyword.lexeme))
		}
		if err != nil {
			runErr, ok := err.(*runtimeError)
			if !ok {
				panic(err)
			}
			e.logger.WithFields(logrus.Fields{
				"line":  runErr.token.line,
				"error": runErr.message,
			}).Debug("runtime error")
			state.runtimeError = runErr
			// A failing block may leave e.env pointing at a nested frame.
			e.env = e.globals
			return false
		}
	}
	return true
}

func (e *exec) execute(s stmt) (completion, error) {
	switch s := s.(type) {
	case *exprStmt:
		_, err := e.evaluate(s.expression)
		return normal, err
	case *printStmt:
		value, err := e.evaluate(s.expression)
		if err != nil {
			return normal, err
		}
		e.printer.Println(stringify(value))
		return normal, nil
	case *varStmt:
		var value ternValue
		if s.initializer != nil {
			var err error
			if value, err = e.evaluate(s.initializer); err != nil {
				return normal, err
			}
		}
		e.env.define(s.name.lexeme, value)
		return normal, nil
	case *blockStmt:
		return e.executeBlock(s.stmts, newEnv(e.env))
	case *ifStmt:
		cond, err := e.evaluate(s.condition)
		if err != nil {
			return normal, err
		}
		if truthy(cond) {
			return e.execute(s.thenBranch)
		}
		if s.elseBranch != nil {
			return e.execute(s.elseBranch)
		}
		return normal, nil
	case *whileStmt:
		return e.executeWhile(s)
	case *fnStmt:
		e.env.define(s.name.lexeme, &ternFunction{
			declaration: s,
			closure:     e.env,
		})
		return normal, nil
	case *returnStmt:
		var value ternValue
		if s.value != nil {
			var err error
			if value, err = e.evaluate(s.value); err != nil {
				return normal, err
			}
		}
		return completion{kind: completionReturn, value: value, keyword: s.keyword}, nil
	case *breakStmt:
		return completion{kind: completionBreak, keyword: s.keyword}, nil
	case *continueStmt:
		return completion{kind: completionContinue, keyword: s.keyword}, nil
	case *classStmt:
		return normal, e.executeClass(s)
	default:
		panic(fmt.Sprintf("exec: unhandled statement %T", s))
	}
}

// executeBlock runs stmts in environment and restores the previous frame
// whatever the outcome.
func (e *exec) executeBlock(stmts []stmt, environment *env) (completion, error) {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = environment
	for _, s := range stmts {
		result, err := e.execute(s)
		if err != nil || result.kind != completionNormal {
			return result, err
		}
	}
	return normal, nil
}

// executeWhile consumes break and continue. The increment of a desugared
// for loop runs after a normal or continue completion of the body.
func (e *exec) executeWhile(s *whileStmt) (completion, error) {
	for {
		cond, err := e.evaluate(s.condition)
		if err != nil {
			return normal, err
		}
		if !truthy(cond) {
			return normal, nil
		}

		result, err := e.execute(s.body)
		if err != nil {
			return normal, err
		}
		switch result.kind {
		case completionBreak:
			return normal, nil
		case completionReturn:
			return result, nil
		}

		if s.increment != nil {
			if _, err := e.execute(s.increment); err != nil {
				return normal, err
			}
		}
	}
}

func (e *exec) executeClass(s *classStmt) error {
	var superclass *ternClass
	if s.superclass != nil {
		value, err := e.evaluate(s.superclass)
		if err != nil {
			return err
		}
		class, ok := value.(*ternClass)
		if !ok {
			return newRuntimeError(s.superclass.name, errSuperclassNotClass)
		}
		superclass = class
	}

	e.env.define(s.name.lexeme, nil)

	environment := e.env
	if superclass != nil {
		environment = newEnv(e.env)
		environment.define("super", superclass)
	}

	methods := make(map[string]*ternFunction, len(s.methods))
	for _, method := range s.methods {
		methods[method.name.lexeme] = &ternFunction{
			declaration:   method,
			closure:       environment,
			isInitializer: method.name.lexeme == "init",
		}
	}

	return e.env.assign(s.name, &ternClass{
		name:       s.name.lexeme,
		superclass: superclass,
		methods:    methods,
	})
}

func (e *exec) evaluate(ex expr) (ternValue, error) {
	switch ex := ex.(type) {
	case *literalExpr:
		return ex.value, nil
	case *groupingExpr:
		return e.evaluate(ex.expression)
	case *unaryExpr:
		return e.evaluateUnary(ex)
	case *binaryExpr:
		left, err := e.evaluate(ex.left)
		if err != nil {
			return nil, err
		}
		right, err := e.evaluate(ex.right)
		if err != nil {
			return nil, err
		}
		apply, ok := binaryOperations[ex.operator.token]
		if !ok {
			panic(fmt.Sprintf("exec: unknown binary operator %s", ex.operator.token))
		}
		return apply(ex.operator, left, right)
	case *logicalExpr:
		left, err := e.evaluate(ex.left)
		if err != nil {
			return nil, err
		}
		if ex.operator.token == tkOr {
			if truthy(left) {
				return left, nil
			}
		} else if !truthy(left) {
			return left, nil
		}
		return e.evaluate(ex.right)
	case *variableExpr:
		return e.lookUpVariable(ex.name, ex)
	case *assignExpr:
		value, err := e.evaluate(ex.value)
		if err != nil {
			return nil, err
		}
		if distance, ok := e.locals[ex]; ok {
			e.env.assignAt(distance, ex.name, value)
			return value, nil
		}
		if err := e.globals.assign(ex.name, value); err != nil {
			return nil, err
		}
		return value, nil
	case *callExpr:
		return e.evaluateCall(ex)
	case *getExpr:
		object, err := e.evaluate(ex.object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*ternInstance)
		if !ok {
			return nil, newRuntimeError(ex.name, errOnlyInstanceProps)
		}
		return instance.get(ex.name)
	case *setExpr:
		object, err := e.evaluate(ex.object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*ternInstance)
		if !ok {
			return nil, newRuntimeError(ex.name, errOnlyInstanceFields)
		}
		value, err := e.evaluate(ex.value)
		if err != nil {
			return nil, err
		}
		instance.set(ex.name, value)
		return value, nil
	case *thisExpr:
		return e.lookUpVariable(ex.keyword, ex)
	case *superExpr:
		return e.evaluateSuper(ex)
	default:
		panic(fmt.Sprintf("exec: unhandled expression %T", ex))
	}
}

func (e *exec) evaluateUnary(ex *unaryExpr) (ternValue, error) {
	value, err := e.evaluate(ex.right)
	if err != nil {
		return nil, err
	}
	switch ex.operator.token {
	case tkBang:
		return ternBool(!truthy(value)), nil
	case tkMinus:
		n, err := numberOperand(ex.operator, value)
		if err != nil {
			return nil, err
		}
		return -n, nil
	default:
		panic(fmt.Sprintf("exec: unknown unary operator %s", ex.operator.token))
	}
}

func (e *exec) evaluateCall(ex *callExpr) (ternValue, error) {
	callee, err := e.evaluate(ex.callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]ternValue, len(ex.arguments))
	for i := range ex.arguments {
		if arguments[i], err = e.evaluate(ex.arguments[i]); err != nil {
			return nil, err
		}
	}

	fn, isFn := callee.(callable)
	if !isFn {
		return nil, newRuntimeError(ex.paren, errOnlyCallable)
	}

	if len(arguments) != fn.arity() {
		return nil, newRuntimeError(ex.paren, errArity(fn.arity(), len(arguments)))
	}

	return fn.call(e, arguments)
}

// evaluateSuper finds the method on the superclass captured when the
// class was declared, so up-calls do not depend on the dynamic class of
// this. "this" always lives one frame inside "super".
func (e *exec) evaluateSuper(ex *superExpr) (ternValue, error) {
	distance, ok := e.locals[ex]
	if !ok {
		panic("exec: unresolved super expression")
	}
	superclass := e.env.getAt(distance, "super").(*ternClass)
	object := e.env.getAt(distance-1, "this").(*ternInstance)

	method := superclass.findMethod(ex.method.lexeme)
	if method == nil {
		return nil, newRuntimeError(ex.method, errUndefinedProp(ex.method.lexeme))
	}
	return method.bind(object), nil
}

func (e *exec) lookUpVariable(name *token, ex expr) (ternValue, error) {
	if distance, ok := e.locals[ex]; ok {
		return e.env.getAt(distance, name.lexeme), nil
	}
	return e.globals.get(name)
}
