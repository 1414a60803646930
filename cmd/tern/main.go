package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"tern/internal"
	"tern/internal/repl"
)

const usage = "Usage: tern [script]"

var (
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "Pipeline log level (panic, fatal, error, warn, info, debug)",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured diagnostics",
	}
)

// stdPrinter sends program output to stdout and diagnostics to stderr.
type stdPrinter struct {
	stdout io.Writer
	stderr io.Writer
}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Fprintln(s.stdout, a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(s.target(w), format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return fmt.Fprintln(s.target(w), a...)
}

func (s stdPrinter) target(w io.Writer) io.Writer {
	if w == os.Stderr {
		return s.stderr
	}
	if w == os.Stdout {
		return s.stdout
	}
	return w
}

func newApp(printer stdPrinter) *cli.App {
	app := cli.NewApp()
	app.Name = "tern"
	app.Usage = "tree-walking interpreter for the tern scripting language"
	app.ArgsUsage = "[script]"
	app.HideVersion = true
	app.Writer = printer.stdout
	app.ErrWriter = printer.stderr
	app.Flags = []cli.Flag{
		configFileFlag,
		logLevelFlag,
		noColorFlag,
	}
	app.Action = func(ctx *cli.Context) error {
		return runMain(ctx, printer)
	}
	app.Commands = []cli.Command{
		testCommand(printer),
		astCommand(printer),
		tokensCommand(printer),
		dumpConfigCommand(printer),
	}
	return app
}

func runMain(ctx *cli.Context, printer stdPrinter) error {
	if ctx.NArg() > 1 {
		return cli.NewExitError(usage, internal.StatusUsage.ExitCode())
	}

	cfg, err := makeConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), internal.StatusUsage.ExitCode())
	}
	logger, err := cfg.NewLogger(printer.stderr)
	if err != nil {
		return cli.NewExitError(err.Error(), internal.StatusUsage.ExitCode())
	}

	interp := internal.NewInterpreter(printer,
		internal.WithLogger(logger),
		internal.WithColor(useColor(ctx, cfg.Color, os.Stderr)),
	)

	if ctx.NArg() == 0 {
		line, closeLine := repl.OpenLiner(cfg.REPL.HistoryFile)
		defer closeLine()
		return repl.New(interp, line, cfg.REPL.Prompt).Run()
	}

	source, err := readSource(ctx.Args().First())
	if err != nil {
		return err
	}
	return exitStatus(interp.Run(source))
}

// useColor enables colour only when the config allows it, the flag does
// not forbid it and f is a terminal.
func useColor(ctx *cli.Context, enabled bool, f *os.File) bool {
	if !enabled || ctx.GlobalBool(noColorFlag.Name) {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func readSource(path string) (string, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return "", cli.NewExitError(err.Error(), internal.StatusNoInput.ExitCode())
	}
	return string(b), nil
}

func exitStatus(status internal.Status) error {
	if status == internal.StatusOK {
		return nil
	}
	return cli.NewExitError("", status.ExitCode())
}

func main() {
	app := newApp(stdPrinter{stdout: os.Stdout, stderr: os.Stderr})
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
