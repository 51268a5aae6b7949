package commands

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doneMsg struct{ id string }

func handler(id string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return doneMsg{id: id} }
	}
}

func TestRegistryExecute(t *testing.T) {
	r := NewRegistry()
	open := false
	RegisterRepositoryActions(r, RepositoryHandlers{
		Refresh:     handler("refresh"),
		Push:        handler("push"),
		WorkspaceOK: func() bool { return open },
	})

	cmd := r.Execute("refresh")
	require.NotNil(t, cmd)
	assert.Equal(t, doneMsg{id: "refresh"}, cmd())

	assert.Nil(t, r.Execute("push"), "push needs an open workspace")
	open = true
	require.NotNil(t, r.Execute("push"))

	assert.Nil(t, r.Execute("pull"), "no handler wired")
	assert.Nil(t, r.Execute("missing"))

	action, ok := r.Lookup("timeline")
	require.True(t, ok)
	assert.Equal(t, "t", action.Shortcut)
}

func TestRegistryHelpText(t *testing.T) {
	r := NewRegistry()
	RegisterFileActions(r, FileHandlers{Diff: handler("diff")})
	RegisterStashActions(r, StashHandlers{})

	text := r.HelpText()
	assert.True(t, strings.HasPrefix(text, "**File Actions**\n- d: Show diff\n"))
	assert.Contains(t, text, "\n**Stash**\n- s: Stash changes\n")
	assert.NotContains(t, text, "Graphical diff", "actions without a shortcut stay out of help")
}

func TestBuildPaletteItems(t *testing.T) {
	r := NewRegistry()
	RegisterFileActions(r, FileHandlers{Diff: handler("diff"), Add: handler("add"), Commit: handler("commit")})
	RegisterSettingsActions(r, SettingsHandlers{Help: handler("help")})

	items := BuildPaletteItems(PaletteOptions{
		MRULimit: 1,
		History:  []string{"commit", "diff", "revert"},
		Actions:  r.Actions(),
	})
	require.Len(t, items, 4)

	assert.Equal(t, "commit", items[0].ID)
	assert.True(t, items[0].IsMRU)
	assert.Equal(t, "Recently Used", items[0].Section)

	ids := make([]string, 0, len(items))
	for _, item := range items[1:] {
		ids = append(ids, item.ID)
		assert.False(t, item.IsMRU)
	}
	assert.Equal(t, []string{"diff", "add", "help"}, ids)
	assert.Equal(t, IconSettings, items[3].Icon)
}
