// Package repl implements the interactive tern loop.
package repl

import (
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"tern/internal"
)

// LineReader reads one line of input after printing a prompt.
// *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// REPL feeds every line to the same interpreter, so definitions survive
// from one line to the next while errors only abort their own line.
type REPL struct {
	interp *internal.Interpreter
	reader LineReader
	prompt string
}

func New(interp *internal.Interpreter, reader LineReader, prompt string) *REPL {
	return &REPL{
		interp: interp,
		reader: reader,
		prompt: prompt,
	}
}

// Run reads until end of input or Ctrl-C.
func (r *REPL) Run() error {
	for {
		line, err := r.reader.Prompt(r.prompt)
		if err == io.EOF || err == liner.ErrPromptAborted {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.reader.AppendHistory(line)
		r.interp.Run(line)
	}
}

// OpenLiner creates a terminal line editor. History is read from
// historyFile when it exists and written back by the returned close func.
func OpenLiner(historyFile string) (*liner.State, func() error) {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}

	return state, func() error {
		if historyFile != "" {
			if f, err := os.Create(historyFile); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}
		return state.Close()
	}
}
