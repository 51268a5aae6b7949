package log

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDebugLogger(t *testing.T) func() {
	t.Helper()

	globalDebugLogger.mu.Lock()
	prevFile := globalDebugLogger.file
	prevBuffer := append([]byte(nil), globalDebugLogger.buffer...)
	prevDiscard := globalDebugLogger.discard
	prevSubs := globalDebugLogger.subscribers
	globalDebugLogger.file = nil
	globalDebugLogger.buffer = nil
	globalDebugLogger.discard = false
	globalDebugLogger.subscribers = nil
	globalDebugLogger.mu.Unlock()

	return func() {
		globalDebugLogger.mu.Lock()
		if globalDebugLogger.file != nil {
			_ = globalDebugLogger.file.Close()
		}
		globalDebugLogger.file = prevFile
		globalDebugLogger.buffer = prevBuffer
		globalDebugLogger.discard = prevDiscard
		globalDebugLogger.subscribers = prevSubs
		globalDebugLogger.mu.Unlock()
	}
}

func TestBufferedLogsFlushToFile(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	Printf("early %d", 1)

	logPath := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetFile(logPath))
	Println("late")
	require.NoError(t, Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "early 1")
	assert.Contains(t, string(data), "late")
}

func TestSetFileFailureDiscardsLogs(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))

	unwritableDir := t.TempDir()
	require.NoError(t, os.Chmod(unwritableDir, 0o500)) //nolint:gosec
	t.Cleanup(func() {
		_ = os.Chmod(unwritableDir, 0o700) //nolint:gosec
	})
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	logPath := filepath.Join(unwritableDir, "debug.log")
	require.Error(t, SetFile(logPath))

	Printf("should be discarded")

	globalDebugLogger.mu.Lock()
	discard := globalDebugLogger.discard
	bufferLen := len(globalDebugLogger.buffer)
	globalDebugLogger.mu.Unlock()

	assert.True(t, discard)
	assert.Zero(t, bufferLen)
}

func TestSubscribeReceivesLines(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))
	require.NoError(t, SetFile(""))

	var mu sync.Mutex
	var got []string
	unsubscribe := Subscribe(func(line string) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, line)
	})

	Printf("> fossil %s", "ls -l")
	unsubscribe()
	Printf("not delivered")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0], "> fossil ls -l"))
	assert.NotContains(t, got[0], "\n")
}

func TestSubscribeNilIsNoop(t *testing.T) {
	t.Cleanup(resetDebugLogger(t))
	unsubscribe := Subscribe(nil)
	assert.NotPanics(t, unsubscribe)
}
