package app

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/fuel-scm/fuel/internal/config"
	"github.com/fuel-scm/fuel/internal/fossil"
)

const fakeFossil = `#!/bin/sh
echo "$@" >> "$FAKE_LOG"
case "$1" in
info)
	printf 'project-name: Demo\nrepository:   /repos/demo.fossil\nlocal-root:   %s/\n' "$(pwd)"
	;;
ls)
	printf 'EDITED     src/a.c\nUNCHANGED  b.txt\n'
	;;
settings)
	printf 'ignore-glob          (local)      *.o\n'
	;;
stash)
	case "$2" in
	ls) printf '   1: [abc] on 2024-01-01\n      first\n' ;;
	diff) printf -- '--- src/a.c\n+++ src/a.c\n' ;;
	esac
	;;
diff)
	printf -- '--- %s\n+++ %s\n@@ -1 +1 @@\n' "$2" "$2"
	;;
update)
	if [ "$2" = "--dry-run" ]; then
		printf 'UPDATE src/a.c\n'
	fi
	;;
undo)
	if [ "$2" = "--dry-run" ]; then
		printf 'No undo or redo is available\n'
	fi
	;;
push)
	echo "Round-trips: 1   Artifacts sent: 0  received: 0"
	;;
esac
`

// testWorkspace is a checkout driven by the fake fossil script.
type testWorkspace struct {
	dir     string
	logPath string
}

// calls returns the fossil command lines run so far.
func (w testWorkspace) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(w.logPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func (w testWorkspace) called(t *testing.T, line string) bool {
	t.Helper()
	for _, c := range w.calls(t) {
		if c == line {
			return true
		}
	}
	return false
}

// newTestModel builds a model over a workspace holding src/a.c, b.txt and
// the untracked new.txt. With checkout false the workspace has no checkout.
func newTestModel(t *testing.T, checkout bool) (*Model, testWorkspace) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake fossil is a shell script")
	}

	binDir := t.TempDir()
	script := filepath.Join(binDir, "fossil")
	require.NoError(t, os.WriteFile(script, []byte(fakeFossil), 0o700))
	logPath := filepath.Join(binDir, "calls.log")
	t.Setenv("FAKE_LOG", logPath)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	for _, name := range []string{"src/a.c", "b.txt", "new.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name+"\n"), 0o600))
	}
	if checkout {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".fslckout"), nil, 0o600))
	}

	cfg := config.DefaultConfig()
	cfg.AutoRefresh = false
	cfg.ShowIcons = false
	cfg.FossilPath = script
	cfg.Path = filepath.Join(binDir, "config.yaml")

	m := NewModel(cfg, fossil.New(fossil.Options{FossilPath: script}), dir)
	m.saveConfig = func(*config.AppConfig) error { return nil }
	m.setWindowSize(120, 40)
	t.Cleanup(m.Close)
	return m, testWorkspace{dir: m.Workspace(), logPath: logPath}
}

// drive runs cmd and feeds every resulting message back into the model
// until no work is left. Listeners that block on the log or prompt
// channels and spinner ticks are not followed.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("too many messages")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case logLinesMsg, queryMsg:
			m.Update(msg)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

// openTestModel returns a model whose workspace has been checked and
// scanned.
func openTestModel(t *testing.T) (*Model, testWorkspace) {
	t.Helper()
	m, ws := newTestModel(t, true)
	drive(t, m, m.checkWorkspace())
	require.True(t, m.data.scanned, "workspace should be scanned")
	return m, ws
}

func sendKey(t *testing.T, m *Model, key string) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	drive(t, m, cmd)
}

func visiblePaths(m *Model) []string {
	out := make([]string, 0, len(m.data.visible))
	for _, match := range m.data.visible {
		out = append(out, match.File.FilePath())
	}
	return out
}
