package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/fuel-scm/fuel/internal/app/state"
	"github.com/fuel-scm/fuel/internal/config"
	"github.com/fuel-scm/fuel/internal/fossil"
	"github.com/fuel-scm/fuel/internal/workspace"
)

// openCLIWorkspace loads the configuration and checks the workspace
// argument is an open checkout.
func openCLIWorkspace(ctx context.Context, cmd *urfavecli.Command) (*config.AppConfig, *fossil.Bridge, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dir, err := workspaceArg(cmd)
	if err != nil {
		return nil, nil, err
	}
	bridge := newCLIBridge(cfg, dir)
	status, err := bridge.RepoStatus(ctx)
	if err != nil {
		return nil, nil, err
	}
	switch status {
	case fossil.RepoOK:
		return cfg, bridge, nil
	case fossil.RepoOldSchema:
		return nil, nil, fmt.Errorf("%s: repository schema is outdated, run `fossil rebuild`", dir)
	default:
		return nil, nil, fmt.Errorf("%s: %w", dir, fossil.ErrNotWorkspace)
	}
}

// scanWorkspace runs a scan with the configured view toggles.
func scanWorkspace(ctx context.Context, cfg *config.AppConfig, bridge *fossil.Bridge, filters state.Filters) (*workspace.Workspace, error) {
	var ignoreGlob string
	if settings, err := bridge.Settings(ctx); err == nil {
		ignoreGlob = settings["ignore-glob"].Value
	}
	opts := filters.ScanOptions(ignoreGlob, cfg.IgnoreGlob)
	opts.RepositoryFile = bridge.RepositoryFile()

	ws := workspace.New(bridge.Workspace())
	if err := ws.Scan(ctx, bridge, opts); err != nil {
		return nil, err
	}
	return ws, nil
}

func statusCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "status",
		Usage:     "Show the checkout and a count of files per state",
		ArgsUsage: "[workspace]",
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			cfg, bridge, err := openCLIWorkspace(ctx, cmd)
			if err != nil {
				return err
			}
			info, err := bridge.Info(ctx)
			if err != nil {
				return err
			}
			ws, err := scanWorkspace(ctx, cfg, bridge, state.FiltersFromConfig(cfg))
			if err != nil {
				return err
			}
			return printStatus(cmd.Root().Writer, bridge.Workspace(), info, ws)
		},
	}
}

func printStatus(out io.Writer, dir string, info fossil.Info, ws *workspace.Workspace) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "project:\t%s\n", info.ProjectName)
	fmt.Fprintf(w, "repository:\t%s\n", info.RepositoryFile)
	fmt.Fprintf(w, "workspace:\t%s\n", dir)
	if info.Checkout != "" {
		fmt.Fprintf(w, "checkout:\t%s\n", info.Checkout)
	}
	if info.Tags != "" {
		fmt.Fprintf(w, "tags:\t%s\n", info.Tags)
	}
	counts := ws.Counts()
	for _, typ := range workspace.PrimitiveTypes {
		if n := counts[typ]; n > 0 {
			fmt.Fprintf(w, "%s:\t%d\n", typ, n)
		}
	}
	fmt.Fprintf(w, "stashes:\t%d\n", len(ws.Stashes()))
	return w.Flush()
}

func lsCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "ls",
		Usage:     "List workspace files with their state",
		ArgsUsage: "[workspace]",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "modified",
				Aliases: []string{"m"},
				Usage:   "Only list modified files",
			},
			&urfavecli.BoolFlag{
				Name:  "ignored",
				Usage: "Include files matched by the ignore globs",
			},
			&urfavecli.BoolFlag{
				Name:  "no-unknown",
				Usage: "Leave out files fossil does not track",
			},
			&urfavecli.StringSliceFlag{
				Name:  "type",
				Usage: "Only list these states (repeatable): " + strings.Join(validTypeNames(), ", "),
			},
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			mask, err := parseTypeMask(cmd.StringSlice("type"))
			if err != nil {
				return err
			}
			cfg, bridge, err := openCLIWorkspace(ctx, cmd)
			if err != nil {
				return err
			}
			filters := state.Filters{
				Unknown:   !cmd.Bool("no-unknown"),
				Modified:  true,
				Unchanged: !cmd.Bool("modified"),
				Ignored:   cmd.Bool("ignored"),
			}
			if cmd.Bool("modified") {
				filters.Unknown = false
			}
			ws, err := scanWorkspace(ctx, cfg, bridge, filters)
			if err != nil {
				return err
			}
			return printFiles(cmd.Root().Writer, ws.Files(mask))
		},
	}
}

// parseTypeMask turns --type values into an entry mask, every type when
// none is given.
func parseTypeMask(names []string) (workspace.EntryType, error) {
	if len(names) == 0 {
		return workspace.TypeAll, nil
	}
	var mask workspace.EntryType
	for _, value := range names {
		for _, name := range strings.Split(value, ",") {
			typ, err := workspace.ParseEntryType(strings.TrimSpace(name))
			if err != nil {
				return 0, err
			}
			mask |= typ
		}
	}
	return mask, nil
}

func printFiles(out io.Writer, files []*workspace.RepoFile) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\n", f.Type(), f.FilePath())
	}
	return w.Flush()
}

func stashCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "stash",
		Usage:     "List the stashes of the workspace",
		ArgsUsage: "[workspace]",
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			_, bridge, err := openCLIWorkspace(ctx, cmd)
			if err != nil {
				return err
			}
			stashes, err := bridge.StashList(ctx)
			if err != nil {
				return err
			}
			return printStashes(cmd.Root().Writer, stashes)
		},
	}
}

func printStashes(out io.Writer, stashes map[string]string) error {
	names := make([]string, 0, len(stashes))
	for name := range stashes {
		names = append(names, name)
	}
	// Newest last, as fossil numbers them.
	sort.Slice(names, func(i, j int) bool {
		a, _ := strconv.Atoi(stashes[names[i]])
		b, _ := strconv.Atoi(stashes[names[j]])
		return a < b
	})
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", stashes[name], name)
	}
	return w.Flush()
}

func uiCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "ui",
		Usage:     "Serve the fossil web interface until interrupted",
		ArgsUsage: "[workspace]",
		Flags: []urfavecli.Flag{
			&urfavecli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (default: http_port from the config)",
			},
			&urfavecli.StringFlag{
				Name:  "page",
				Value: "timeline",
				Usage: "Page to print the address of",
			},
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			cfg, bridge, err := openCLIWorkspace(ctx, cmd)
			if err != nil {
				return err
			}
			port := cfg.HTTPPort
			if p := cmd.Int("port"); p > 0 {
				port = p
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := bridge.StartUI(ctx, port); err != nil {
				return err
			}
			defer func() { _ = bridge.StopUI() }()

			fmt.Fprintln(cmd.Root().Writer, bridge.UIURL(cmd.String("page")))
			<-ctx.Done()
			return nil
		},
	}
}

// validTypeNames lists the names accepted by --type.
func validTypeNames() []string {
	names := make([]string, 0, len(workspace.PrimitiveTypes))
	for _, t := range workspace.PrimitiveTypes {
		names = append(names, t.String())
	}
	return append(names, "modified", "repo")
}
