package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fuel-scm/fuel/internal/theme"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m.IsActive() {
		t.Error("expected new manager to have no active screen")
	}
	if m.Type() != TypeNone {
		t.Errorf("expected TypeNone, got %v", m.Type())
	}
	if m.Update(tea.KeyMsg{Type: tea.KeyEnter}) != nil {
		t.Error("expected nil command without a screen")
	}
}

func TestManagerPushPop(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	confirm := NewConfirmScreen("test", thm)
	m.Push(confirm)
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm, got %v", m.Type())
	}

	info := NewInfoScreen("info", thm)
	m.Push(info)
	if m.Current() != info {
		t.Error("expected info on top")
	}
	if m.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", m.Depth())
	}

	if popped := m.Pop(); popped != info {
		t.Error("expected to pop the info screen")
	}
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm after pop, got %v", m.Type())
	}

	m.Push(nil)
	if m.Depth() != 1 {
		t.Errorf("nil push should be ignored, depth %d", m.Depth())
	}

	m.Clear()
	if m.IsActive() || m.Pop() != nil {
		t.Error("expected empty manager after Clear")
	}
}

func TestManagerUpdateClosesScreen(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()
	base := NewInfoScreen("base", thm)
	m.Push(base)

	confirmed := false
	confirm := NewConfirmScreen("delete?", thm)
	confirm.OnConfirm = func() tea.Cmd {
		confirmed = true
		return nil
	}
	m.Push(confirm)

	m.Update(runeKey('y'))
	if !confirmed {
		t.Fatal("expected OnConfirm to run")
	}
	if m.Current() != base {
		t.Fatalf("expected base screen after confirm, got %v", m.Type())
	}
}

func TestManagerUpdateKeepsFollowUpScreen(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()
	followUp := NewInfoScreen("done", thm)

	confirm := NewConfirmScreen("go?", thm)
	confirm.OnConfirm = func() tea.Cmd {
		m.Push(followUp)
		return nil
	}
	m.Push(confirm)

	m.Update(runeKey('y'))
	if m.Depth() != 1 || m.Current() != followUp {
		t.Fatalf("expected only the follow-up screen, depth=%d type=%v", m.Depth(), m.Type())
	}
}

func TestTypeString(t *testing.T) {
	cases := map[Type]string{
		TypeNone:       "none",
		TypeConfirm:    "confirm",
		TypeChoice:     "choice",
		TypeInfo:       "info",
		TypeInput:      "input",
		TypeCommit:     "commit",
		TypeOutput:     "output",
		TypeHelp:       "help",
		TypeListSelect: "list-select",
		Type(99):       "unknown",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", int(typ), got, want)
		}
	}
}
