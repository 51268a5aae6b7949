package screen

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fuel-scm/fuel/internal/theme"
)

func TestConfirmScreenButtons(t *testing.T) {
	s := NewConfirmScreenWithDefault("Revert files?", 1, theme.Dracula())
	if s.SelectedButton != 1 {
		t.Fatalf("expected cancel focused, got %d", s.SelectedButton)
	}

	cancelled := false
	s.OnCancel = func() tea.Cmd {
		cancelled = true
		return nil
	}
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil || !cancelled {
		t.Fatal("expected enter on cancel button to close and cancel")
	}

	s = NewConfirmScreen("Revert files?", theme.Dracula())
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	if next != s || s.SelectedButton != 1 {
		t.Fatalf("expected tab to move focus, got %d", s.SelectedButton)
	}
	if !strings.Contains(s.View(), "Revert files?") {
		t.Error("expected message in view")
	}
}

func TestChoiceScreenFirstLetter(t *testing.T) {
	s := NewChoiceScreen("fossil", "overwrite file?", []string{"Yes", "No", "All", "Cancel"}, theme.Nord())
	got := -1
	s.OnChoose = func(i int) tea.Cmd {
		got = i
		return nil
	}

	next, _ := s.Update(runeKey('a'))
	if next != nil {
		t.Fatal("expected screen to close after choosing")
	}
	if got != 2 {
		t.Fatalf("expected All (2), got %d", got)
	}
}

func TestChoiceScreenEscapeUsesCancel(t *testing.T) {
	s := NewChoiceScreen("fossil", "overwrite file?", []string{"Yes", "No", "Cancel"}, theme.Nord())
	got := -1
	s.OnChoose = func(i int) tea.Cmd {
		got = i
		return nil
	}

	s.Update(tea.KeyMsg{Type: tea.KeyRight})
	if s.Selected != 1 {
		t.Fatalf("expected selection 1, got %d", s.Selected)
	}
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next != nil || got != 2 {
		t.Fatalf("expected esc to choose cancel, got %d", got)
	}

	s.Cancel = -1
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next != s {
		t.Fatal("expected esc to be ignored without a cancel choice")
	}
}

func TestInfoScreen(t *testing.T) {
	s := NewErrorScreen(errors.New("boom"), theme.Dracula())
	if !s.IsError || !strings.Contains(s.View(), "boom") {
		t.Fatal("expected error message in view")
	}
	if next, _ := s.Update(runeKey('x')); next != s {
		t.Fatal("expected unrelated key to keep the screen")
	}
	if next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter}); next != nil {
		t.Fatal("expected enter to close")
	}
}

func TestInputScreenValidation(t *testing.T) {
	s := NewInputScreen("Rename to", "path", "", theme.Dracula())
	s.Validate = func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "Path cannot be empty"
		}
		return ""
	}
	submitted := ""
	s.OnSubmit = func(v string, _ bool) tea.Cmd {
		submitted = v
		return nil
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != s || s.ErrorMsg != "Path cannot be empty" {
		t.Fatalf("expected validation error, got %q", s.ErrorMsg)
	}

	s.Input.SetValue("src/new.go")
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next != nil || submitted != "src/new.go" {
		t.Fatalf("expected submit, got %q", submitted)
	}
}

func TestInputScreenCheckbox(t *testing.T) {
	s := NewInputScreen("Rename to", "path", "a.txt", theme.Dracula())
	s.SetCheckbox("Also move the local file", true)
	var checked bool
	s.OnSubmit = func(_ string, c bool) tea.Cmd {
		checked = c
		return nil
	}

	s.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !s.CheckboxFocused {
		t.Fatal("expected checkbox focus after tab")
	}
	s.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if s.CheckboxChecked {
		t.Fatal("expected space to toggle the checkbox off")
	}
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if checked {
		t.Fatal("expected unchecked value to be submitted")
	}
}

func TestCommitScreenValidation(t *testing.T) {
	s := NewCommitScreen([]string{"a.txt"}, 120, 40, theme.Dracula())
	var got CommitRequest
	called := false
	s.OnSubmit = func(req CommitRequest) tea.Cmd {
		called = true
		got = req
		return nil
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if next != s || called {
		t.Fatal("expected empty message to be rejected")
	}

	s.Message.SetValue("  fix the parser  ")
	s.Private = true
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if next != s || s.ErrorMsg == "" {
		t.Fatal("expected private commit without a branch to be rejected")
	}

	s.Branch.SetValue("experiment")
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if next != nil || !called {
		t.Fatal("expected commit to be submitted")
	}
	want := CommitRequest{Message: "fix the parser", Branch: "experiment", Private: true}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCommitScreenFocusCycle(t *testing.T) {
	s := NewCommitScreen(nil, 120, 40, theme.Dracula())
	if !strings.Contains(s.View(), "Commit all changes") {
		t.Error("expected title for a full commit")
	}
	s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !s.Private {
		t.Fatal("expected space on the checkbox to toggle private")
	}
	s.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if !s.Branch.Focused() {
		t.Fatal("expected shift+tab to focus the branch field")
	}
}

func TestOutputScreenConfirm(t *testing.T) {
	lines := []string{"UPDATE a.txt", "ADD b.txt"}
	s := NewOutputScreen("Update preview", lines, 100, 30, theme.Dracula())
	confirmed := false
	s.OnConfirm = func() tea.Cmd {
		confirmed = true
		return nil
	}
	if !strings.Contains(s.View(), "y/enter: apply") {
		t.Error("expected confirm footer")
	}
	next, _ := s.Update(runeKey('y'))
	if next != nil || !confirmed {
		t.Fatal("expected y to confirm and close")
	}

	s = NewOutputScreen("Diff", nil, 100, 30, theme.Dracula())
	if next, _ := s.Update(runeKey('y')); next != s {
		t.Fatal("expected y to be ignored without OnConfirm")
	}
	if next, _ := s.Update(runeKey('q')); next != nil {
		t.Fatal("expected q to close")
	}
}

func TestHelpScreenSearch(t *testing.T) {
	text := "**Files**\n- a: add selected files\n- c: commit\n**Stash**\n- S: stash changes"
	s := NewHelpScreen(text, 120, 40, theme.Dracula())

	s.Update(runeKey('/'))
	if !s.Searching {
		t.Fatal("expected search mode")
	}
	for _, r := range "stash" {
		s.Update(runeKey(r))
	}
	if s.SearchQuery != "stash" {
		t.Fatalf("expected query stash, got %q", s.SearchQuery)
	}
	content := s.renderContent()
	if strings.Contains(content, "commit") {
		t.Error("expected non-matching lines to be filtered")
	}

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.SearchQuery != "" || s.Searching {
		t.Fatal("expected esc to clear the search")
	}
	if next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEsc}); next != nil {
		t.Fatal("expected second esc to close")
	}
}

func TestHighlightMatches(t *testing.T) {
	plain := lipgloss.NewStyle()
	if got := highlightMatches("Stash stash", "stash stash", "stash", plain); got != "Stash stash" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := highlightMatches("abc", "abc", "", plain); got != "abc" {
		t.Fatalf("empty query should keep the line, got %q", got)
	}
}
