package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/fuel-scm/fuel/internal/app"
	"github.com/fuel-scm/fuel/internal/fossil"
)

var errNoTerminal = errors.New("the interface needs a terminal; use status, ls or stash for scripting")

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runTUI is the default action that launches the TUI when no subcommand is given.
func runTUI(_ context.Context, cmd *urfavecli.Command) error {
	if !isTerminal() {
		return errNoTerminal
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir, err := workspaceArg(cmd)
	if err != nil {
		return err
	}
	// Without an argument, fall back to the last workspace when the
	// current directory is not a checkout.
	if cmd.Args().Len() == 0 && !fossil.IsWorkspace(dir) && fossil.IsWorkspace(cfg.LastWorkspace) {
		dir = cfg.LastWorkspace
	}

	model := app.NewModel(cfg, nil, dir)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	model.Close()
	if err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}
