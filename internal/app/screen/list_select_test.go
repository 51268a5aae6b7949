package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fuel-scm/fuel/internal/theme"
)

func workspaceItems() []SelectionItem {
	return []SelectionItem{
		{ID: "/src/fossil", Label: "fossil", Description: "/src/fossil"},
		{ID: "/src/fuel", Label: "fuel", Description: "/src/fuel"},
		{ID: "/home/me/notes", Label: "notes", Description: "/home/me/notes"},
	}
}

func TestListSelectionScreenJKNavigation(t *testing.T) {
	scr := NewListSelectionScreen(workspaceItems(), "Recent", "", "", 80, 30, "", theme.Dracula())
	if scr.Cursor != 0 {
		t.Fatalf("expected cursor to start at 0, got %d", scr.Cursor)
	}

	scr.Update(runeKey('j'))
	scr.Update(runeKey('j'))
	scr.Update(runeKey('j'))
	if scr.Cursor != 2 {
		t.Fatalf("expected cursor clamped at 2, got %d", scr.Cursor)
	}
	scr.Update(runeKey('k'))
	if scr.Cursor != 1 {
		t.Fatalf("expected cursor 1 after k, got %d", scr.Cursor)
	}
}

func TestListSelectionScreenInitialID(t *testing.T) {
	scr := NewListSelectionScreen(workspaceItems(), "Recent", "", "", 80, 30, "/home/me/notes", theme.Dracula())
	if scr.Cursor != 2 {
		t.Fatalf("expected cursor on initial item, got %d", scr.Cursor)
	}
}

func TestListSelectionScreenFuzzyFilter(t *testing.T) {
	scr := NewListSelectionScreen(workspaceItems(), "Recent", "", "", 80, 30, "", theme.Dracula())

	next, _ := scr.Update(runeKey('f'))
	if next != scr || !scr.FilterActive {
		t.Fatal("expected f to enable filtering")
	}
	for _, r := range "nts" {
		scr.Update(runeKey(r))
	}
	if len(scr.Filtered) != 1 || scr.Filtered[0].Label != "notes" {
		t.Fatalf("expected only notes to match, got %+v", scr.Filtered)
	}

	// j is typed into the filter while it is active.
	scr.Update(runeKey('j'))
	if len(scr.Filtered) != 0 || scr.Cursor != -1 {
		t.Fatalf("expected no matches, got %+v cursor=%d", scr.Filtered, scr.Cursor)
	}

	scr.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if scr.FilterActive {
		t.Fatal("expected esc to leave filter mode")
	}
}

func TestListSelectionScreenSelect(t *testing.T) {
	scr := NewListSelectionScreen(workspaceItems(), "Recent", "", "", 80, 30, "", theme.Dracula())
	var picked SelectionItem
	scr.OnSelect = func(item SelectionItem) tea.Cmd {
		picked = item
		return nil
	}
	scr.Update(runeKey('j'))
	next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil {
		t.Fatal("expected enter to close the list")
	}
	if picked.ID != "/src/fuel" {
		t.Fatalf("expected /src/fuel, got %q", picked.ID)
	}
}

func TestListSelectionScreenDelete(t *testing.T) {
	scr := NewListSelectionScreen(workspaceItems(), "Recent", "", "", 80, 30, "", theme.Dracula())
	var forgotten []string
	scr.OnDelete = func(item SelectionItem) tea.Cmd {
		forgotten = append(forgotten, item.ID)
		return nil
	}

	next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if next != scr {
		t.Fatal("expected list to stay open after delete")
	}
	if len(forgotten) != 1 || forgotten[0] != "/src/fossil" {
		t.Fatalf("unexpected deletes %v", forgotten)
	}
	if len(scr.Items) != 2 || scr.Items[0].Label != "fuel" {
		t.Fatalf("expected item to be dropped, got %+v", scr.Items)
	}
}

func TestListSelectionScreenEmpty(t *testing.T) {
	scr := NewListSelectionScreen(nil, "Recent", "", "Nothing yet", 80, 30, "", theme.Dracula())
	if _, ok := scr.Selected(); ok {
		t.Fatal("expected no selection on an empty list")
	}
	if next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyEsc}); next != nil {
		t.Fatal("expected esc to close")
	}
}
