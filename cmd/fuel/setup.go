package main

import (
	"fmt"
	"os"
	"path/filepath"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/fuel-scm/fuel/internal/config"
	"github.com/fuel-scm/fuel/internal/fossil"
	"github.com/fuel-scm/fuel/internal/log"
)

// loadConfig loads the configuration and applies the command line on top
// of it: debug log, theme, fossil path and --config overrides, in that
// order of precedence from lowest to highest. Command line values hold for
// this run and are not written back to the config file.
func loadConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		// The defaults are still usable.
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}

	setupDebugLog(cmd.String("debug-log"), cfg)

	var overrides []string
	if name := cmd.String("theme"); name != "" {
		normalized := config.NormalizeThemeName(name)
		if normalized == "" {
			return nil, fmt.Errorf("unknown theme %q", name)
		}
		overrides = append(overrides, config.OverridePrefix+"theme="+normalized)
	}
	if p := cmd.String("fossil"); p != "" {
		overrides = append(overrides, config.OverridePrefix+"fossil_path="+p)
	}
	overrides = append(overrides, cmd.StringSlice("config")...)
	if err := cfg.ApplyCLIOverrides(overrides); err != nil {
		return nil, fmt.Errorf("error applying config overrides: %w", err)
	}
	return cfg, nil
}

// setupDebugLog points the debug logger at the flag value, else at the
// configured file. Without either, buffered output is dropped. cfg is not
// changed.
func setupDebugLog(flagPath string, cfg *config.AppConfig) {
	path := flagPath
	if path == "" {
		path = cfg.DebugLog
	}
	if path == "" {
		_ = log.SetFile("")
		return
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

// workspaceArg resolves the optional workspace argument, the current
// directory by default.
func workspaceArg(cmd *urfavecli.Command) (string, error) {
	dir := cmd.Args().First()
	if dir == "" {
		return os.Getwd()
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !st.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// newCLIBridge returns a bridge for headless commands. Prompts are answered
// with no, since nobody is there to answer them.
func newCLIBridge(cfg *config.AppConfig, dir string) *fossil.Bridge {
	return fossil.New(fossil.Options{
		FossilPath: cfg.FossilPath,
		Workspace:  dir,
		UI:         fossil.LogUI{AutoAnswer: fossil.AnswerNo},
	})
}
