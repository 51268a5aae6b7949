// Package main is the entry point of fuel, a terminal front-end for the
// Fossil SCM.
package main

import (
	"context"
	"fmt"
	"os"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/fuel-scm/fuel/internal/buildinfo"
	"github.com/fuel-scm/fuel/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = log.Close()
		os.Exit(1)
	}
	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
}

func newApp() *urfavecli.Command {
	urfavecli.VersionPrinter = func(cmd *urfavecli.Command) {
		fmt.Fprintln(cmd.Root().Writer, buildinfo.Summary())
	}
	return &urfavecli.Command{
		Name:                  "fuel",
		Usage:                 "A terminal front-end for the Fossil SCM",
		ArgsUsage:             "[workspace]",
		Version:               buildinfo.Version(),
		EnableShellCompletion: true,
		Flags:                 globalFlags(),
		Commands: []*urfavecli.Command{
			statusCommand(),
			lsCommand(),
			stashCommand(),
			uiCommand(),
		},
		Action: runTUI,
	}
}
