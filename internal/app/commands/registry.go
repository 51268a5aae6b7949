// Package commands keeps the main window actions in one registry so the
// key handler, the command palette and the help screen agree.
package commands

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	sectionFiles      = "File Actions"
	sectionRepository = "Repository"
	sectionStash      = "Stash"
	sectionView       = "View"
	sectionNavigation = "Navigation"
	sectionSettings   = "Settings"
)

// CommandAction describes a command palette action.
type CommandAction struct {
	ID          string
	Label       string
	Description string
	Section     string
	Shortcut    string // Keyboard shortcut display (e.g., "d")
	Icon        string // Category icon (Nerd Font)
	Handler     func() tea.Cmd
	Available   func() bool
}

// Registry stores command palette actions.
type Registry struct {
	actions []CommandAction
	byID    map[string]CommandAction
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]CommandAction)}
}

// Register adds actions to the registry.
func (r *Registry) Register(actions ...CommandAction) {
	for _, action := range actions {
		r.actions = append(r.actions, action)
		if action.ID != "" {
			r.byID[action.ID] = action
		}
	}
}

// Actions returns the registered actions in order.
func (r *Registry) Actions() []CommandAction {
	return r.actions
}

// Lookup returns the action registered under id.
func (r *Registry) Lookup(id string) (CommandAction, bool) {
	action, ok := r.byID[id]
	return action, ok
}

// Execute runs the handler for an action ID.
func (r *Registry) Execute(id string) tea.Cmd {
	action, ok := r.byID[id]
	if !ok {
		return nil
	}
	if action.Available != nil && !action.Available() {
		return nil
	}
	if action.Handler == nil {
		return nil
	}
	return action.Handler()
}

// HelpText renders the registered shortcuts grouped by section, in the
// format understood by the help screen.
func (r *Registry) HelpText() string {
	var b strings.Builder
	current := ""
	for _, action := range r.actions {
		if action.Shortcut == "" {
			continue
		}
		if action.Section != current {
			if current != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "**%s**\n", action.Section)
			current = action.Section
		}
		fmt.Fprintf(&b, "- %s: %s\n", action.Shortcut, action.Label)
	}
	return b.String()
}

// Section icons for command palette display.
const (
	IconFiles      = "" // Nerd Font: file-diff
	IconRepository = "" // Nerd Font: database
	IconStash      = "" // Nerd Font: archive
	IconView       = "" // Nerd Font: eye
	IconNavigation = "" // Nerd Font: compass
	IconSettings   = "" // Nerd Font: cog
	IconRecent     = "" // Nerd Font: clock
)

// FileHandlers holds callbacks for actions on the selected files.
type FileHandlers struct {
	Diff          func() tea.Cmd
	GraphicalDiff func() tea.Cmd
	Add           func() tea.Cmd
	Remove        func() tea.Cmd
	Revert        func() tea.Cmd
	Rename        func() tea.Cmd
	Commit        func() tea.Cmd
	Edit          func() tea.Cmd
	CopyPath      func() tea.Cmd
	History       func() tea.Cmd
	Mark          func() tea.Cmd
}

// RegisterFileActions registers file actions.
func RegisterFileActions(r *Registry, h FileHandlers) {
	r.Register(
		CommandAction{ID: "diff", Label: "Show diff", Description: "fossil diff of the selected file", Section: sectionFiles, Shortcut: "d", Icon: IconFiles, Handler: h.Diff},
		CommandAction{ID: "gdiff", Label: "Graphical diff", Description: "fossil gdiff in the configured diff tool", Section: sectionFiles, Icon: IconFiles, Handler: h.GraphicalDiff},
		CommandAction{ID: "add", Label: "Add files", Description: "Add unknown files to the repository", Section: sectionFiles, Shortcut: "a", Icon: IconFiles, Handler: h.Add},
		CommandAction{ID: "remove", Label: "Remove files", Description: "Stop tracking files, optionally deleting them", Section: sectionFiles, Shortcut: "D", Icon: IconFiles, Handler: h.Remove},
		CommandAction{ID: "revert", Label: "Revert files", Description: "Discard local changes", Section: sectionFiles, Shortcut: "R", Icon: IconFiles, Handler: h.Revert},
		CommandAction{ID: "rename", Label: "Rename file", Description: "fossil mv, optionally moving the local file", Section: sectionFiles, Shortcut: "m", Icon: IconFiles, Handler: h.Rename},
		CommandAction{ID: "commit", Label: "Commit", Description: "Commit the selected changes", Section: sectionFiles, Shortcut: "c", Icon: IconFiles, Handler: h.Commit},
		CommandAction{ID: "edit", Label: "Edit file", Description: "Open the file in the editor", Section: sectionFiles, Shortcut: "e", Icon: IconFiles, Handler: h.Edit},
		CommandAction{ID: "copy-path", Label: "Copy path", Description: "Copy the absolute path to the clipboard", Section: sectionFiles, Shortcut: "y", Icon: IconFiles, Handler: h.CopyPath},
		CommandAction{ID: "history", Label: "File history", Description: "Open the file history in the browser", Section: sectionFiles, Shortcut: "h", Icon: IconFiles, Handler: h.History},
		CommandAction{ID: "mark", Label: "Mark file", Description: "Toggle the file in the selection", Section: sectionFiles, Shortcut: "space", Icon: IconFiles, Handler: h.Mark},
	)
}

// RepositoryHandlers holds callbacks for workspace wide operations.
type RepositoryHandlers struct {
	Refresh     func() tea.Cmd
	Update      func() tea.Cmd
	Undo        func() tea.Cmd
	Push        func() tea.Cmd
	Pull        func() tea.Cmd
	Timeline    func() tea.Cmd
	WebUI       func() tea.Cmd
	Recent      func() tea.Cmd
	OpenDir     func() tea.Cmd
	NewRepo     func() tea.Cmd
	OpenRepo    func() tea.Cmd
	CloneRepo   func() tea.Cmd
	CloseRepo   func() tea.Cmd
	WorkspaceOK func() bool
}

// RegisterRepositoryActions registers repository operations.
func RegisterRepositoryActions(r *Registry, h RepositoryHandlers) {
	r.Register(
		CommandAction{ID: "refresh", Label: "Refresh", Description: "Rescan the workspace", Section: sectionRepository, Shortcut: "r", Icon: IconRepository, Handler: h.Refresh},
		CommandAction{ID: "update", Label: "Update", Description: "fossil update, previewed first", Section: sectionRepository, Shortcut: "U", Icon: IconRepository, Handler: h.Update, Available: h.WorkspaceOK},
		CommandAction{ID: "undo", Label: "Undo", Description: "fossil undo, previewed first", Section: sectionRepository, Shortcut: "u", Icon: IconRepository, Handler: h.Undo, Available: h.WorkspaceOK},
		CommandAction{ID: "push", Label: "Push", Description: "fossil push", Section: sectionRepository, Shortcut: "P", Icon: IconRepository, Handler: h.Push, Available: h.WorkspaceOK},
		CommandAction{ID: "pull", Label: "Pull", Description: "fossil pull", Section: sectionRepository, Shortcut: "p", Icon: IconRepository, Handler: h.Pull, Available: h.WorkspaceOK},
		CommandAction{ID: "timeline", Label: "Timeline", Description: "Open the timeline in the browser", Section: sectionRepository, Shortcut: "t", Icon: IconRepository, Handler: h.Timeline, Available: h.WorkspaceOK},
		CommandAction{ID: "web-ui", Label: "Start/stop web UI", Description: "fossil ui on the configured port", Section: sectionRepository, Shortcut: "w", Icon: IconRepository, Handler: h.WebUI, Available: h.WorkspaceOK},
		CommandAction{ID: "recent", Label: "Recent workspaces", Description: "Switch to a recently opened workspace", Section: sectionRepository, Shortcut: "o", Icon: IconRecent, Handler: h.Recent},
		CommandAction{ID: "open-dir", Label: "Open workspace", Description: "Switch to another directory", Section: sectionRepository, Shortcut: "O", Icon: IconRepository, Handler: h.OpenDir},
		CommandAction{ID: "new-repo", Label: "New repository", Description: "Create a repository and open it here", Section: sectionRepository, Icon: IconRepository, Handler: h.NewRepo},
		CommandAction{ID: "open-repo", Label: "Open repository", Description: "Open a repository file in this workspace", Section: sectionRepository, Icon: IconRepository, Handler: h.OpenRepo},
		CommandAction{ID: "clone-repo", Label: "Clone repository", Description: "Clone a remote repository and open it here", Section: sectionRepository, Icon: IconRepository, Handler: h.CloneRepo},
		CommandAction{ID: "close-repo", Label: "Close workspace", Description: "fossil close", Section: sectionRepository, Icon: IconRepository, Handler: h.CloseRepo, Available: h.WorkspaceOK},
	)
}

// StashHandlers holds callbacks for the stash pane.
type StashHandlers struct {
	New   func() tea.Cmd
	Apply func() tea.Cmd
	Drop  func() tea.Cmd
	Diff  func() tea.Cmd
}

// RegisterStashActions registers stash actions.
func RegisterStashActions(r *Registry, h StashHandlers) {
	r.Register(
		CommandAction{ID: "stash-new", Label: "Stash changes", Description: "Save the selected changes to a new stash", Section: sectionStash, Shortcut: "s", Icon: IconStash, Handler: h.New},
		CommandAction{ID: "stash-apply", Label: "Apply stash", Description: "Apply the selected stash (stash pane)", Section: sectionStash, Shortcut: "enter", Icon: IconStash, Handler: h.Apply},
		CommandAction{ID: "stash-drop", Label: "Drop stash", Description: "Delete the selected stash (stash pane)", Section: sectionStash, Shortcut: "x", Icon: IconStash, Handler: h.Drop},
		CommandAction{ID: "stash-diff", Label: "Stash diff", Description: "Show the selected stash (stash pane)", Section: sectionStash, Shortcut: "d", Icon: IconStash, Handler: h.Diff},
	)
}

// ViewHandlers holds callbacks for the file list toggles.
type ViewHandlers struct {
	ToggleUnknown   func() tea.Cmd
	ToggleModified  func() tea.Cmd
	ToggleUnchanged func() tea.Cmd
	ToggleIgnored   func() tea.Cmd
	ToggleList      func() tea.Cmd
	ClearLog        func() tea.Cmd
}

// RegisterViewActions registers view toggles.
func RegisterViewActions(r *Registry, h ViewHandlers) {
	r.Register(
		CommandAction{ID: "view-unknown", Label: "Toggle unknown files", Section: sectionView, Shortcut: "n", Icon: IconView, Handler: h.ToggleUnknown},
		CommandAction{ID: "view-modified", Label: "Toggle modified files", Section: sectionView, Shortcut: "M", Icon: IconView, Handler: h.ToggleModified},
		CommandAction{ID: "view-unchanged", Label: "Toggle unchanged files", Section: sectionView, Shortcut: "C", Icon: IconView, Handler: h.ToggleUnchanged},
		CommandAction{ID: "view-ignored", Label: "Toggle ignored files", Section: sectionView, Shortcut: "i", Icon: IconView, Handler: h.ToggleIgnored},
		CommandAction{ID: "view-list", Label: "Toggle list/tree view", Section: sectionView, Shortcut: "v", Icon: IconView, Handler: h.ToggleList},
		CommandAction{ID: "clear-log", Label: "Clear log", Section: sectionView, Shortcut: "L", Icon: IconView, Handler: h.ClearLog},
	)
}

// NavigationHandlers holds callbacks for navigation actions.
type NavigationHandlers struct {
	Filter    func() tea.Cmd
	Zoom      func() tea.Cmd
	FocusDirs func() tea.Cmd
	FocusFile func() tea.Cmd
	FocusStsh func() tea.Cmd
	FocusLog  func() tea.Cmd
}

// RegisterNavigationActions registers navigation actions.
func RegisterNavigationActions(r *Registry, h NavigationHandlers) {
	r.Register(
		CommandAction{ID: "filter", Label: "Filter files", Description: "Fuzzy filter the file list", Section: sectionNavigation, Shortcut: "/", Icon: IconNavigation, Handler: h.Filter},
		CommandAction{ID: "zoom", Label: "Toggle zoom", Description: "Toggle zoom on the focused pane", Section: sectionNavigation, Shortcut: "=", Icon: IconNavigation, Handler: h.Zoom},
		CommandAction{ID: "focus-dirs", Label: "Focus directories", Section: sectionNavigation, Shortcut: "1", Icon: IconNavigation, Handler: h.FocusDirs},
		CommandAction{ID: "focus-files", Label: "Focus files", Section: sectionNavigation, Shortcut: "2", Icon: IconNavigation, Handler: h.FocusFile},
		CommandAction{ID: "focus-stash", Label: "Focus stashes", Section: sectionNavigation, Shortcut: "3", Icon: IconNavigation, Handler: h.FocusStsh},
		CommandAction{ID: "focus-log", Label: "Focus log", Section: sectionNavigation, Shortcut: "4", Icon: IconNavigation, Handler: h.FocusLog},
	)
}

// SettingsHandlers holds callbacks for settings actions.
type SettingsHandlers struct {
	Theme func() tea.Cmd
	Help  func() tea.Cmd
}

// RegisterSettingsActions registers settings actions.
func RegisterSettingsActions(r *Registry, h SettingsHandlers) {
	r.Register(
		CommandAction{ID: "theme", Label: "Select theme", Description: "Change the application theme", Section: sectionSettings, Icon: IconSettings, Handler: h.Theme},
		CommandAction{ID: "help", Label: "Help", Description: "Show help", Section: sectionSettings, Shortcut: "?", Icon: IconSettings, Handler: h.Help},
	)
}
