// Package log provides the debug logger shared by fuel packages.
package log

import (
	"log"
	"os"
	"strings"
	"sync"
)

// DebugLogger writes debug output to a file once one is configured.
// Until then output is buffered so early messages are not lost.
// Subscribers receive every line regardless of the file state.
type DebugLogger struct {
	mu          sync.Mutex
	file        *os.File
	buffer      []byte
	discard     bool
	subscribers map[int]func(string)
	nextID      int
}

var (
	globalDebugLogger = &DebugLogger{}
	stdLogger         = log.New(globalDebugLogger, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (l *DebugLogger) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	subs := make([]func(string), 0, len(l.subscribers))
	for _, fn := range l.subscribers {
		subs = append(subs, fn)
	}

	switch {
	case l.discard:
		n = len(p)
	case l.file != nil:
		n, err = l.file.Write(p)
		_ = l.file.Sync()
	default:
		b := make([]byte, len(p))
		copy(b, p)
		l.buffer = append(l.buffer, b...)
		n = len(p)
	}
	l.mu.Unlock()

	// Called outside the lock: a subscriber may log itself.
	if len(subs) > 0 {
		line := strings.TrimRight(string(p), "\n")
		for _, fn := range subs {
			fn(line)
		}
	}
	return n, err
}

// SetFile sets the debug log file path. Creates the file if it doesn't exist.
// If path is empty, discards all buffered logs and future file output.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return err
	}

	globalDebugLogger.file = f
	globalDebugLogger.discard = false

	if len(globalDebugLogger.buffer) > 0 {
		_, _ = f.Write(globalDebugLogger.buffer)
		_ = f.Sync()
		globalDebugLogger.buffer = nil
	}

	return nil
}

// Subscribe registers fn to receive every formatted log line.
// The returned function removes the subscription.
func Subscribe(fn func(string)) func() {
	if fn == nil {
		return func() {}
	}
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.subscribers == nil {
		globalDebugLogger.subscribers = make(map[int]func(string))
	}
	id := globalDebugLogger.nextID
	globalDebugLogger.nextID++
	globalDebugLogger.subscribers[id] = fn

	return func() {
		globalDebugLogger.mu.Lock()
		defer globalDebugLogger.mu.Unlock()
		delete(globalDebugLogger.subscribers, id)
	}
}

// Printf writes a formatted debug message via the standard logger.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message via the standard logger.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file == nil {
		return nil
	}

	err := globalDebugLogger.file.Close()
	globalDebugLogger.file = nil
	return err
}
