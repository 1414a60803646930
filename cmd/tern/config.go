package main

import (
	"os"

	"gopkg.in/urfave/cli.v1"

	"tern/internal/config"
)

var configFileFlag = cli.StringFlag{
	Name:  "config",
	Usage: "TOML configuration file",
}

func dumpConfigCommand(printer stdPrinter) cli.Command {
	return cli.Command{
		Action: func(ctx *cli.Context) error {
			return dumpConfig(ctx, printer)
		},
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[file]",
		Description: `The dumpconfig command shows configuration values, or writes them to file.`,
	}
}

// makeConfig loads defaults, then the config file, then flags.
func makeConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Defaults

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := config.Load(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if level := ctx.GlobalString(logLevelFlag.Name); level != "" {
		cfg.LogLevel = level
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Color = false
	}
	return cfg, nil
}

func dumpConfig(ctx *cli.Context, printer stdPrinter) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return config.Dump(printer.stdout, &cfg)
	}

	dump, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer dump.Close()
	return config.Dump(dump, &cfg)
}
