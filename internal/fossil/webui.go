package fossil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultUIPort is the port `fossil ui` listens on unless configured.
const DefaultUIPort = 8080

// ErrUIAlreadyRunning is returned by StartUI while a server is up.
var ErrUIAlreadyRunning = errors.New("fossil ui is already running")

var (
	uiStartTimeout = 5 * time.Second
	uiPollInterval = 100 * time.Millisecond
	uiStopTimeout  = 5 * time.Second

	// dialUI checks whether the server port accepts connections. Tests replace it.
	dialUI = func(ctx context.Context, addr string) error {
		d := net.Dialer{Timeout: uiPollInterval}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		return conn.Close()
	}
)

type uiProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (p *uiProcess) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// StartUI launches `fossil ui` on port and waits until it accepts
// connections.
func (b *Bridge) StartUI(ctx context.Context, port int) error {
	if port <= 0 {
		port = DefaultUIPort
	}

	b.uiMu.Lock()
	defer b.uiMu.Unlock()
	if b.uiProc != nil && !b.uiProc.exited() {
		return ErrUIAlreadyRunning
	}
	b.uiProc = nil

	fossil, err := b.Executable()
	if err != nil {
		return err
	}
	args := []string{"ui", "--nobrowser", "--localhost", "--port", strconv.Itoa(port)}
	b.getUI().LogText("> fossil "+strings.Join(args, " "), false)
	b.debugf("run: fossil %s (cwd=%s)", strings.Join(args, " "), b.Workspace())

	// #nosec G204 -- see prepareCommand
	cmd := exec.Command(fossil, args...)
	cmd.Dir = b.Workspace()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start fossil ui: %w", err)
	}
	proc := &uiProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		proc.err = cmd.Wait()
		close(proc.done)
	}()

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	deadline := time.NewTimer(uiStartTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(uiPollInterval)
	defer tick.Stop()
	for {
		if dialUI(ctx, addr) == nil {
			b.uiProc = proc
			b.uiPort = port
			b.debugf("fossil ui listening on %s", addr)
			return nil
		}
		select {
		case <-proc.done:
			if proc.err != nil {
				return fmt.Errorf("fossil ui exited: %w", proc.err)
			}
			return errors.New("fossil ui exited before accepting connections")
		case <-ctx.Done():
			killUI(proc)
			return ctx.Err()
		case <-deadline.C:
			killUI(proc)
			return fmt.Errorf("fossil ui did not listen on %s within %s", addr, uiStartTimeout)
		case <-tick.C:
		}
	}
}

// UIRunning reports whether the server started by StartUI is still alive.
func (b *Bridge) UIRunning() bool {
	b.uiMu.Lock()
	defer b.uiMu.Unlock()
	return b.uiProc != nil && !b.uiProc.exited()
}

// StopUI terminates the server started by StartUI. It is a no-op when none
// is running.
func (b *Bridge) StopUI() error {
	b.uiMu.Lock()
	proc := b.uiProc
	b.uiProc = nil
	b.uiMu.Unlock()

	if proc == nil || proc.exited() {
		return nil
	}
	if !killUI(proc) {
		return errors.New("fossil ui did not stop")
	}
	b.debugf("fossil ui stopped")
	return nil
}

func killUI(proc *uiProcess) bool {
	if proc.cmd.Process != nil {
		_ = proc.cmd.Process.Kill()
	}
	select {
	case <-proc.done:
		return true
	case <-time.After(uiStopTimeout):
		return false
	}
}

// UIURL returns the address of page on the running server.
func (b *Bridge) UIURL(page string) string {
	b.uiMu.Lock()
	port := b.uiPort
	b.uiMu.Unlock()
	if port == 0 {
		port = DefaultUIPort
	}
	return fmt.Sprintf("http://127.0.0.1:%d/%s", port, strings.TrimPrefix(page, "/"))
}

// TimelineURL is the page listing recent check-ins.
func (b *Bridge) TimelineURL() string {
	return b.UIURL("timeline")
}

// FileHistoryURL is the history page of a checked-in file.
func (b *Bridge) FileHistoryURL(file string) string {
	return b.UIURL("finfo?name=" + url.QueryEscape(file))
}
