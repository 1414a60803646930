package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"tern/internal"
	"tern/internal/conformance"
)

func testCommand(printer stdPrinter) cli.Command {
	return cli.Command{
		Action: func(ctx *cli.Context) error {
			return runSuites(ctx, printer)
		},
		Name:      "test",
		Usage:     "Run YAML conformance suites",
		ArgsUsage: "<dir|file>...",
		Description: `The test command runs every case of the given suite files, or of every
*.yaml file in the given directories, and reports each result.`,
	}
}

func astCommand(printer stdPrinter) cli.Command {
	return cli.Command{
		Action: func(ctx *cli.Context) error {
			return withSource(ctx, func(source string) internal.Status {
				return internal.PrintTree(source, printer)
			})
		},
		Name:      "ast",
		Usage:     "Print the syntax tree of a script",
		ArgsUsage: "<script>",
	}
}

func tokensCommand(printer stdPrinter) cli.Command {
	return cli.Command{
		Action: func(ctx *cli.Context) error {
			return withSource(ctx, func(source string) internal.Status {
				return internal.DumpTokens(source, printer)
			})
		},
		Name:      "tokens",
		Usage:     "Print the token stream of a script",
		ArgsUsage: "<script>",
	}
}

func withSource(ctx *cli.Context, run func(source string) internal.Status) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError(fmt.Sprintf("Usage: tern %s <script>", ctx.Command.Name), internal.StatusUsage.ExitCode())
	}
	source, err := readSource(ctx.Args().First())
	if err != nil {
		return err
	}
	return exitStatus(run(source))
}

func runSuites(ctx *cli.Context, printer stdPrinter) error {
	if ctx.NArg() == 0 {
		return cli.NewExitError("Usage: tern test <dir|file>...", internal.StatusUsage.ExitCode())
	}

	cfg, err := makeConfig(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), internal.StatusUsage.ExitCode())
	}
	logger, err := cfg.NewLogger(printer.stderr)
	if err != nil {
		return cli.NewExitError(err.Error(), internal.StatusUsage.ExitCode())
	}

	var suites []*conformance.Suite
	for _, path := range ctx.Args() {
		info, err := os.Stat(path)
		if err != nil {
			return cli.NewExitError(err.Error(), internal.StatusNoInput.ExitCode())
		}
		if info.IsDir() {
			found, err := conformance.LoadDir(path)
			if err != nil {
				return cli.NewExitError(err.Error(), internal.StatusNoInput.ExitCode())
			}
			suites = append(suites, found...)
			continue
		}
		suite, err := conformance.Load(path)
		if err != nil {
			return cli.NewExitError(err.Error(), internal.StatusNoInput.ExitCode())
		}
		suites = append(suites, suite)
	}

	var results []conformance.Result
	for _, suite := range suites {
		results = append(results, suite.Run(conformance.Options{Logger: logger})...)
	}

	_, failed := conformance.Report(printer.stdout, results, useColor(ctx, cfg.Color, os.Stdout))
	if failed > 0 {
		return cli.NewExitError("", 1)
	}
	return nil
}
