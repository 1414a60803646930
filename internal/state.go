package internal

import (
	"errors"
	"fmt"
	"os"
)

// parseError is a compile-time diagnostic produced by the lexer, the
// parser or the resolver.
type parseError struct {
	err   error
	line  int
	where string
}

func (e parseError) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.line, e.where, e.err)
}

// runtimeError aborts the current run. token locates the failing operation.
type runtimeError struct {
	token   *token
	message string
}

func (e *runtimeError) Error() string {
	return e.message
}

func (e *runtimeError) String() string {
	return fmt.Sprintf("%s\n[Line %d]", e.message, e.token.line)
}

func newRuntimeError(tk *token, err error) *runtimeError {
	return &runtimeError{token: tk, message: err.Error()}
}

// parseBailout unwinds the parser up to the nearest statement boundary.
type parseBailout struct{}

// interpreterState stores the state of one pipeline run
type interpreterState struct {
	source string
	tokens []token
	stmts  []stmt

	errors       []parseError
	runtimeError *runtimeError
}

func newInterpreterState(source string) *interpreterState {
	return &interpreterState{
		source: source,
		errors: make([]parseError, 0),
	}
}

func (s *interpreterState) lineError(err error, line int) {
	s.errors = append(s.errors, parseError{
		err:  err,
		line: line,
	})
}

func (s *interpreterState) setError(err error, tk *token) {
	where := " at '" + tk.lexeme + "'"
	if tk.token == tkEOF {
		where = " at end"
	}
	s.errors = append(s.errors, parseError{
		err:   err,
		line:  tk.line,
		where: where,
	})
}

func (s *interpreterState) fatalError(err error, tk *token) {
	s.setError(err, tk)
	panic(parseBailout{})
}

// Valid returns true if no compile error was reported
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

// PrintErrors prints every diagnostic of the run and reports whether
// there was any.
func (s *interpreterState) PrintErrors(p IPrinter, paint func(string) string) bool {
	for _, e := range s.errors {
		p.Fprintln(os.Stderr, paint(e.String()))
	}
	if s.runtimeError != nil {
		p.Fprintln(os.Stderr, paint(s.runtimeError.String()))
	}
	return len(s.errors) != 0 || s.runtimeError != nil
}

// Lexer errors
var errUnexpectedChar = errors.New("Unexpected character.")
var errUnterminatedString = errors.New("Unterminated string.")
var errUnclosedComment = errors.New("Unclosed comment.")

// Parser errors
var errExpectedExpr = errors.New("Expect expression.")
var errInvalidAssignment = errors.New("Invalid assignment target.")
var errUnclosedParen = errors.New("Expect ')' after expression.")
var errExpectedSemicolonValue = errors.New("Expect ';' after value.")
var errExpectedSemicolonExpr = errors.New("Expect ';' after expression.")
var errExpectedSemicolonVar = errors.New("Expect ';' after variable declaration.")
var errExpectedSemicolonReturn = errors.New("Expect ';' after return value.")
var errExpectedSemicolonBreak = errors.New("Expect ';' after 'break'.")
var errExpectedSemicolonContinue = errors.New("Expect ';' after 'continue'.")
var errExpectedSemicolonLoopCond = errors.New("Expect ';' after loop condition.")
var errExpectedVariableName = errors.New("Expect variable name.")
var errExpectedClosingBrace = errors.New("Expect '}' after block.")
var errExpectedParenIf = errors.New("Expect '(' after 'if'.")
var errExpectedParenIfCond = errors.New("Expect ')' after if condition.")
var errExpectedParenWhile = errors.New("Expect '(' after 'while'.")
var errExpectedParenCond = errors.New("Expect ')' after condition.")
var errExpectedParenFor = errors.New("Expect '(' after 'for'.")
var errExpectedParenForClauses = errors.New("Expect ')' after for clauses.")
var errExpectedParamName = errors.New("Expect parameter name.")
var errExpectedParenParams = errors.New("Expect ')' after parameters.")
var errExpectedParenArgs = errors.New("Expect ')' after arguments.")
var errMaxParameters = errors.New("Can't have more than 255 parameters.")
var errMaxArguments = errors.New("Can't have more than 255 arguments.")
var errExpectedProp = errors.New("Expect property name after '.'.")
var errExpectedClassName = errors.New("Expect class name.")
var errExpectedSuperclassName = errors.New("Expect superclass name.")
var errExpectedClassBody = errors.New("Expect '{' before class body.")
var errUnclosedClassBody = errors.New("Expect '}' after class body.")
var errExpectedDotSuper = errors.New("Expect '.' after 'super'.")
var errExpectedSuperMethod = errors.New("Expect superclass method name.")

// Resolver errors
var errSelfInitializer = errors.New("Cannot read local variable in its own initializer.")
var errAlreadyDeclared = errors.New("Variable with this name already declared in this scope.")
var errTopLevelReturn = errors.New("Cannot return from top-level code.")
var errInitializerReturn = errors.New("Cannot return a value from an initializer.")
var errThisOutsideClass = errors.New("Cannot use 'this' outside of a class.")
var errSuperOutsideClass = errors.New("Cannot use 'super' outside of a class.")
var errSuperWithoutSuperclass = errors.New("Cannot use 'super' in a class with no superclass.")
var errInheritFromSelf = errors.New("A class cannot inherit from itself.")

// Runtime errors
var errOperandNumber = errors.New("Operand must be a number.")
var errOperandsNumbers = errors.New("Operands must be numbers.")
var errOperandsAdd = errors.New("Operands must be two numbers or two strings.")
var errOnlyCallable = errors.New("Can only call functions and classes.")
var errOnlyInstanceProps = errors.New("Only instances have properties.")
var errOnlyInstanceFields = errors.New("Only instances have fields.")
var errSuperclassNotClass = errors.New("Superclass must be a class.")

func errUndefinedVar(name string) error {
	return fmt.Errorf("Undefined variable '%s'.", name)
}

func errUndefinedProp(name string) error {
	return fmt.Errorf("Undefined property '%s'.", name)
}

func errArity(expected, got int) error {
	return fmt.Errorf("Expected %d arguments but got %d.", expected, got)
}

func errNotInLoop(keyword string) error {
	return fmt.Errorf("'%s' not properly in loop.", keyword)
}

// Function kind used in parser messages ("Expect function name.", ...)
func errExpectedName(kind string) error {
	return fmt.Errorf("Expect %s name.", kind)
}

func errExpectedParenName(kind string) error {
	return fmt.Errorf("Expect '(' after %s name.", kind)
}

func errExpectedBodyBrace(kind string) error {
	return fmt.Errorf("Expect '{' before %s body.", kind)
}
