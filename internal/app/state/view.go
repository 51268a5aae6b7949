package state

// Pane identifies one of the main window panes.
type Pane int

// Panes in focus order.
const (
	PaneDirs Pane = iota
	PaneFiles
	PaneStash
	PaneLog
	PaneCount
)

// NoZoom is the ZoomedPane value when no pane is zoomed.
const NoZoom Pane = -1

// String returns the pane title.
func (p Pane) String() string {
	switch p {
	case PaneDirs:
		return "Directories"
	case PaneFiles:
		return "Files"
	case PaneStash:
		return "Stashes"
	case PaneLog:
		return "Log"
	default:
		return "Unknown"
	}
}

// Next returns the pane after p, wrapping around.
func (p Pane) Next() Pane {
	return (p + 1) % PaneCount
}

// Prev returns the pane before p, wrapping around.
func (p Pane) Prev() Pane {
	return (p - 1 + PaneCount) % PaneCount
}

// ViewState holds UI-related state for the model.
type ViewState struct {
	ShowingFilter bool
	FocusedPane   Pane
	ZoomedPane    Pane
	WindowWidth   int
	WindowHeight  int
}

// NewViewState returns the initial view state.
func NewViewState() ViewState {
	return ViewState{FocusedPane: PaneFiles, ZoomedPane: NoZoom}
}
