package internal

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/labstack/gommon/color"
	"github.com/sirupsen/logrus"
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

// Status is the outcome of a pipeline run
type Status int

const (
	StatusOK Status = iota
	StatusCompileError
	StatusRuntimeError
	StatusUsage
	StatusNoInput
)

// ExitCode maps a status to the process exit code
func (s Status) ExitCode() int {
	switch s {
	case StatusCompileError:
		return 65
	case StatusRuntimeError:
		return 70
	case StatusUsage:
		return 64
	case StatusNoInput:
		return 66
	default:
		return 0
	}
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCompileError:
		return "compile error"
	case StatusRuntimeError:
		return "runtime error"
	case StatusUsage:
		return "usage"
	case StatusNoInput:
		return "no input"
	default:
		return "unknown"
	}
}

// Interpreter runs sources against one global environment. Definitions
// made by a Run are visible to the following ones.
type Interpreter struct {
	printer IPrinter
	logger  logrus.FieldLogger
	color   *color.Color
	exec    *exec
}

// Option configures an Interpreter
type Option func(*Interpreter)

// WithLogger sets the logger receiving per-stage debug entries
func WithLogger(logger logrus.FieldLogger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithColor paints diagnostics red
func WithColor(enabled bool) Option {
	return func(in *Interpreter) {
		if enabled {
			in.color.Enable()
		} else {
			in.color.Disable()
		}
	}
}

// NewInterpreter creates an interpreter printing through p
func NewInterpreter(p IPrinter, opts ...Option) *Interpreter {
	in := &Interpreter{
		printer: p,
		color:   color.New(),
	}
	in.color.SetOutput(os.Stderr)
	in.color.Disable()
	for _, opt := range opts {
		opt(in)
	}
	if in.logger == nil {
		discard := logrus.New()
		discard.SetOutput(ioutil.Discard)
		in.logger = discard
	}
	in.exec = newExec(p, in.logger)
	return in
}

// Run lexes, parses, resolves and evaluates source
func (in *Interpreter) Run(source string) Status {
	state := newInterpreterState(source)
	paint := func(msg string) string {
		return in.color.Red(msg)
	}

	newLexer(state).scan()
	in.logger.WithField("tokens", len(state.tokens)).Debug("scanned")

	newParser(state).parse()
	in.logger.WithField("statements", len(state.stmts)).Debug("parsed")
	if state.PrintErrors(in.printer, paint) {
		return StatusCompileError
	}

	newResolver(state, in.exec.locals).resolve(state.stmts)
	in.logger.WithField("locals", len(in.exec.locals)).Debug("resolved")
	if state.PrintErrors(in.printer, paint) {
		return StatusCompileError
	}

	if !in.exec.interpret(state) {
		state.PrintErrors(in.printer, paint)
		return StatusRuntimeError
	}
	return StatusOK
}

// RunSourceWithPrinter runs source code on a fresh interpreter instance
func RunSourceWithPrinter(source string, p IPrinter) Status {
	return NewInterpreter(p).Run(source)
}

// PrintTree parses source and prints every statement in prefix form
func PrintTree(source string, p IPrinter) Status {
	state := newInterpreterState(source)
	newLexer(state).scan()
	newParser(state).parse()
	if state.PrintErrors(p, noPaint) {
		return StatusCompileError
	}
	for _, s := range state.stmts {
		p.Println(formatStmt(s))
	}
	return StatusOK
}

// DumpTokens prints the token stream of source, one token per line
func DumpTokens(source string, p IPrinter) Status {
	state := newInterpreterState(source)
	newLexer(state).scan()
	for i := range state.tokens {
		p.Println(state.tokens[i].String())
	}
	if state.PrintErrors(p, noPaint) {
		return StatusCompileError
	}
	return StatusOK
}

func noPaint(msg string) string {
	return msg
}
