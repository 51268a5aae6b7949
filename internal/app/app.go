// Package app implements the fuel main window as a Bubble Tea model.
package app

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fuel-scm/fuel/internal/app/commands"
	appscreen "github.com/fuel-scm/fuel/internal/app/screen"
	"github.com/fuel-scm/fuel/internal/app/services"
	"github.com/fuel-scm/fuel/internal/app/state"
	"github.com/fuel-scm/fuel/internal/config"
	"github.com/fuel-scm/fuel/internal/fossil"
	"github.com/fuel-scm/fuel/internal/theme"
	"github.com/fuel-scm/fuel/internal/workspace"
)

const (
	minLeftPaneWidth  = 24
	minRightPaneWidth = 40

	// paletteMRULimit is the number of recently used commands shown first.
	paletteMRULimit = 5
)

type uiState struct {
	spinner     spinner.Model
	filterInput textinput.Model
}

type modelState struct {
	view state.ViewState
	ui   struct {
		screenManager *appscreen.Manager
	}
}

type modelData struct {
	ws      *workspace.Workspace
	tree    *workspace.TreeView
	visible []services.FileMatch
	marked  map[string]bool

	fileCursor  int
	fileOffset  int
	dirOffset   int
	stashCursor int
	stashOffset int
	stashes     []workspace.Stash

	logLines  []string
	logOffset int // lines scrolled up from the bottom

	filters     state.Filters
	filterQuery string
	ignoreGlob  string
	repoStatus  fossil.RepoStatus
	statusKnown bool
	scanned     bool
}

type modelServices struct {
	watch  *workspace.Watcher
	bridge *fossil.Bridge
	ui     *tuiBridge
}

// Model is the fuel main window.
type Model struct {
	config   *config.AppConfig
	theme    *theme.Theme
	registry *commands.Registry

	state    modelState
	ui       uiState
	data     modelData
	services modelServices

	ctx    context.Context
	cancel context.CancelFunc

	busy       bool
	busyLabel  string
	cancelOp   context.CancelFunc
	rescanDue  bool
	history    []string // palette action ids, most recent first
	statusLine string

	loading  bool
	quitting bool

	// Injection points for tests.
	commandRunner func(ctx context.Context, name string, args ...string) *exec.Cmd
	execProcess   func(cmd *exec.Cmd, fn tea.ExecCallback) tea.Cmd
	startCommand  func(cmd *exec.Cmd) error
	saveConfig    func(cfg *config.AppConfig) error
	copyText      func(text string) error
}

// NewModel creates the main window for dir. bridge runs every fossil
// command; its UI is replaced by the model's.
func NewModel(cfg *config.AppConfig, bridge *fossil.Bridge, dir string) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	thm := theme.GetTheme(cfg.Theme)
	sp.Style = lipgloss.NewStyle().Foreground(thm.Accent)

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter files..."
	filterInput.Width = 50
	filterInput.Prompt = ""

	tui := newTUIBridge()
	if bridge == nil {
		bridge = fossil.New(fossil.Options{FossilPath: cfg.FossilPath})
	}
	bridge.SetUI(tui)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	bridge.SetWorkspace(dir)

	m := &Model{
		config:   cfg,
		theme:    thm,
		registry: commands.NewRegistry(),
		ui: uiState{
			spinner:     sp,
			filterInput: filterInput,
		},
		data: modelData{
			ws:      workspace.New(dir),
			tree:    workspace.NewTreeView(),
			marked:  make(map[string]bool),
			filters: state.FiltersFromConfig(cfg),
		},
		services: modelServices{
			bridge: bridge,
			ui:     tui,
		},
		ctx:           ctx,
		cancel:        cancel,
		commandRunner: exec.CommandContext,
		execProcess:   tea.ExecProcess,
		startCommand:  func(cmd *exec.Cmd) error { return cmd.Start() },
		saveConfig:    config.SaveConfig,
		copyText:      writeClipboard,
	}
	m.state.view = state.NewViewState()
	m.state.ui.screenManager = appscreen.NewManager()
	m.data.tree.SetPaths(nil)
	m.registerCommands()
	return m
}

// Init starts the log and prompt listeners and checks the workspace.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.services.ui.waitForLog(),
		m.services.ui.waitForQuery(),
		m.checkWorkspace(),
	)
}

// Close releases the watcher, the web UI and the log subscription.
func (m *Model) Close() {
	m.stopWatcher()
	if m.services.bridge.UIRunning() {
		if err := m.services.bridge.StopUI(); err != nil {
			m.debugf("stop ui: %v", err)
		}
	}
	m.services.ui.close()
	if m.cancelOp != nil {
		m.cancelOp()
	}
	m.cancel()
}

// Workspace returns the directory shown.
func (m *Model) Workspace() string {
	return m.services.bridge.Workspace()
}
