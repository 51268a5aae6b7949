package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuel-scm/fuel/internal/fossil"
)

const fakeFossil = `#!/bin/sh
case "$1" in
info)
	printf 'project-name: Demo\nrepository:   /repos/demo.fossil\nlocal-root:   %s/\ncheckout:     abc123 2024-01-01\ntags:         trunk\n' "$(pwd)"
	;;
ls)
	printf 'EDITED     src/a.c\nUNCHANGED  b.txt\n'
	;;
settings)
	printf 'ignore-glob          (local)      *.o\n'
	;;
stash)
	printf '   2: [def] on 2024-01-02\n      second\n   1: [abc] on 2024-01-01\n      first\n'
	;;
esac
`

type cliEnv struct {
	fossil     string
	configFile string
	dir        string
}

// newCLIEnv prepares a fake fossil, a config file with a fixed theme so no
// terminal detection runs, and a checkout.
func newCLIEnv(t *testing.T, checkout bool) cliEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake fossil is a shell script")
	}
	binDir := t.TempDir()
	script := filepath.Join(binDir, "fossil")
	require.NoError(t, os.WriteFile(script, []byte(fakeFossil), 0o700))
	configFile := filepath.Join(binDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("theme: dracula\n"), 0o600))

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	for _, name := range []string{"src/a.c", "b.txt", "new.txt", "main.o"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name+"\n"), 0o600))
	}
	if checkout {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".fslckout"), nil, 0o600))
	}
	return cliEnv{fossil: script, configFile: configFile, dir: dir}
}

// run executes fuel with the global flags of env placed before args.
func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newApp()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	full := append([]string{"fuel", "--config-file", e.configFile, "--fossil", e.fossil}, args...)
	err := cmd.Run(context.Background(), full)
	return out.String(), err
}

// fields splits tabwriter output into the words of each line.
func fields(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestStatusCommand(t *testing.T) {
	env := newCLIEnv(t, true)
	out, err := env.run(t, "status", env.dir)
	require.NoError(t, err)

	assert.Contains(t, out, "project:")
	assert.Contains(t, out, "Demo")
	assert.Contains(t, out, "/repos/demo.fossil")
	assert.Contains(t, out, "abc123 2024-01-01")
	rows := fields(out)
	assert.Contains(t, rows, []string{"unknown:", "1"})
	assert.Contains(t, rows, []string{"edited:", "1"})
	assert.Contains(t, rows, []string{"unchanged:", "1"})
	assert.Contains(t, rows, []string{"stashes:", "2"})
}

func TestLsCommand(t *testing.T) {
	env := newCLIEnv(t, true)

	out, err := env.run(t, "ls", env.dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"unchanged", "b.txt"},
		{"unknown", "new.txt"},
		{"edited", "src/a.c"},
	}, fields(out))

	out, err = env.run(t, "ls", "--ignored", env.dir)
	require.NoError(t, err)
	assert.Contains(t, fields(out), []string{"unknown", "main.o"})

	out, err = env.run(t, "ls", "--modified", env.dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"edited", "src/a.c"}}, fields(out))

	out, err = env.run(t, "ls", "--type", "unknown,unchanged", env.dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"unchanged", "b.txt"},
		{"unknown", "new.txt"},
	}, fields(out))
}

func TestLsRejectsUnknownType(t *testing.T) {
	env := newCLIEnv(t, true)
	_, err := env.run(t, "ls", "--type", "bogus", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestStashCommand(t *testing.T) {
	env := newCLIEnv(t, true)
	out, err := env.run(t, "stash", env.dir)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "first"}, {"2", "second"}}, fields(out))
}

func TestCommandsNeedWorkspace(t *testing.T) {
	env := newCLIEnv(t, false)
	for _, name := range []string{"status", "ls", "stash", "ui"} {
		t.Run(name, func(t *testing.T) {
			_, err := env.run(t, name, env.dir)
			require.ErrorIs(t, err, fossil.ErrNotWorkspace)
		})
	}
}

func TestUnknownThemeFails(t *testing.T) {
	env := newCLIEnv(t, true)
	_, err := env.run(t, "--theme", "nope", "status", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "nope"`)
}

func TestInvalidConfigOverrideFails(t *testing.T) {
	env := newCLIEnv(t, true)
	_, err := env.run(t, "--config", "not-an-override", "status", env.dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config overrides")
}

func TestWorkspaceArgMustBeDirectory(t *testing.T) {
	env := newCLIEnv(t, true)
	file := filepath.Join(env.dir, "b.txt")
	_, err := env.run(t, "status", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")

	_, err = env.run(t, "status", filepath.Join(env.dir, "missing"))
	require.Error(t, err)
}

func TestTUINeedsTerminal(t *testing.T) {
	saved := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = saved })

	env := newCLIEnv(t, true)
	_, err := env.run(t, env.dir)
	require.ErrorIs(t, err, errNoTerminal)
}

func TestVersionFlag(t *testing.T) {
	env := newCLIEnv(t, false)
	out, err := env.run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "fuel version")
}

func TestParseTypeMask(t *testing.T) {
	mask, err := parseTypeMask(nil)
	require.NoError(t, err)
	assert.NotZero(t, mask)

	edited, err := parseTypeMask([]string{"edited"})
	require.NoError(t, err)
	both, err := parseTypeMask([]string{"edited", "added"})
	require.NoError(t, err)
	assert.NotEqual(t, edited, both)
	assert.Equal(t, edited, both&edited)
}
