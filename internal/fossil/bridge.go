// Package fossil runs the fossil executable on behalf of the UI.
package fossil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	log "github.com/fuel-scm/fuel/internal/log"
)

// DefaultExecutable is used when no fossil path is configured.
const DefaultExecutable = "fossil"

// waitDelay bounds how long output is drained after a cancelled process exits.
const waitDelay = 2 * time.Second

// LookupPath is used to find executables in PATH. It's exposed as a package variable
// so tests can mock it and avoid depending on system binaries being installed.
var LookupPath = exec.LookPath

var (
	// ErrFossilNotFound is returned when the fossil executable cannot be located.
	ErrFossilNotFound = errors.New("fossil executable not found")
	// ErrNotWorkspace is returned for operations that need an open checkout.
	ErrNotWorkspace = errors.New("not a fossil workspace")
)

// RunFlags control how a command's input and output are echoed.
type RunFlags uint

// Run flags.
const (
	RunNone RunFlags = 0
	// SilentInput hides the command line from the UI log.
	SilentInput RunFlags = 1 << 0
	// SilentOutput hides the command's output from the UI log.
	SilentOutput RunFlags = 1 << 1
	// Detached starts the command without waiting for it.
	Detached RunFlags = 1 << 2

	SilentAll = SilentInput | SilentOutput
)

// ExitError reports a fossil command that finished with a non-zero status.
type ExitError struct {
	Args   []string
	Code   int
	Output []string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("fossil %s: exit status %d", strings.Join(e.Args, " "), e.Code)
	for i := len(e.Output) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(e.Output[i]); line != "" {
			return msg + ": " + line
		}
	}
	return msg
}

// Options configure a Bridge.
type Options struct {
	// FossilPath is the executable to run. A bare name is resolved via PATH.
	FossilPath string
	// Workspace is the checkout directory commands run in.
	Workspace string
	UI        UI
}

// Bridge runs fossil commands inside a workspace directory.
type Bridge struct {
	mu         sync.RWMutex
	fossilPath string
	workspace  string
	ui         UI

	project        string
	repositoryFile string

	uiMu   sync.Mutex
	uiProc *uiProcess
	uiPort int
}

// New constructs a Bridge.
func New(opts Options) *Bridge {
	ui := opts.UI
	if ui == nil {
		ui = NopUI{}
	}
	fossilPath := strings.TrimSpace(opts.FossilPath)
	if fossilPath == "" {
		fossilPath = DefaultExecutable
	}
	return &Bridge{
		fossilPath: fossilPath,
		workspace:  opts.Workspace,
		ui:         ui,
	}
}

// Workspace returns the directory commands run in.
func (b *Bridge) Workspace() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.workspace
}

// SetWorkspace changes the working directory and forgets cached repository info.
func (b *Bridge) SetWorkspace(dir string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.workspace = dir
	b.project = ""
	b.repositoryFile = ""
}

// SetFossilPath overrides the executable used for subsequent commands.
func (b *Bridge) SetFossilPath(p string) {
	p = strings.TrimSpace(p)
	if p == "" {
		p = DefaultExecutable
	}
	b.mu.Lock()
	b.fossilPath = p
	b.mu.Unlock()
}

// SetUI replaces the UI callbacks.
func (b *Bridge) SetUI(ui UI) {
	if ui == nil {
		ui = NopUI{}
	}
	b.mu.Lock()
	b.ui = ui
	b.mu.Unlock()
}

func (b *Bridge) getUI() UI {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ui
}

// ProjectName returns the project name found by the last RepoStatus call.
func (b *Bridge) ProjectName() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.project
}

// RepositoryFile returns the repository path found by the last RepoStatus call.
func (b *Bridge) RepositoryFile() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.repositoryFile
}

func (b *Bridge) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// Executable resolves the configured fossil path.
func (b *Bridge) Executable() (string, error) {
	b.mu.RLock()
	p := b.fossilPath
	b.mu.RUnlock()

	if strings.ContainsRune(p, filepath.Separator) {
		return p, nil
	}
	resolved, err := LookupPath(p)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFossilNotFound, p)
	}
	return resolved, nil
}

func (b *Bridge) prepareCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	fossil, err := b.Executable()
	if err != nil {
		return nil, err
	}
	// #nosec G204 -- the executable comes from local config and arguments are never shell interpolated
	cmd := exec.CommandContext(ctx, fossil, args...)
	cmd.Dir = b.Workspace()
	cmd.WaitDelay = waitDelay
	return cmd, nil
}

// RunRaw runs fossil with args and returns its combined output lines and
// exit code. A non-zero exit is not an error; failing to start or a done
// context is. Prompts fossil prints while waiting for input are passed to
// the UI and the answer is written back to the process.
func (b *Bridge) RunRaw(ctx context.Context, args []string, flags RunFlags) ([]string, int, error) {
	command := strings.Join(args, " ")
	ui := b.getUI()
	b.debugf("run: fossil %s (cwd=%s)", command, b.Workspace())

	if flags&SilentInput == 0 {
		ui.LogText("> fossil "+command, false)
	}

	if flags&Detached != 0 {
		return nil, 0, b.runDetached(args)
	}

	cmd, err := b.prepareCommand(ctx, args)
	if err != nil {
		b.debugf("error: %v", err)
		return nil, -1, err
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, -1, err
	}
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		b.debugf("error: fossil %s: %v", command, err)
		return nil, -1, fmt.Errorf("start fossil: %w", err)
	}

	waitErr := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		_ = pw.Close()
		waitErr <- err
	}()

	lines := b.readOutput(ctx, pr, stdin, flags, ui)
	_ = stdin.Close()
	err = <-waitErr

	if ctxErr := ctx.Err(); ctxErr != nil {
		b.debugf("cancelled: fossil %s", command)
		return lines, -1, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			b.debugf("error: fossil %s (exit %d)", command, code)
			return lines, code, nil
		}
		return lines, -1, err
	}
	b.debugf("ok: fossil %s", command)
	return lines, 0, nil
}

// promptIdle is how long a prompt-like fragment must stay without further
// output before it is treated as a question.
var promptIdle = 150 * time.Millisecond

func (b *Bridge) readOutput(ctx context.Context, r io.Reader, stdin io.Writer, flags RunFlags, ui UI) []string {
	var lines []string
	emit := func(line string) {
		line = strings.TrimRight(line, "\r")
		lines = append(lines, line)
		if flags&SilentOutput == 0 {
			ui.LogText(line, false)
		}
	}

	// Reads end once the process exits and the pipe is closed.
	chunks := make(chan string)
	go func() {
		defer close(chunks)
		buf := make([]byte, 4096)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunks <- string(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	pending := ""
	var timer *time.Timer
	var idle <-chan time.Time
	stopIdle := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
		}
		idle = nil
	}
	defer stopIdle()

	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				if pending != "" {
					emit(pending)
				}
				return lines
			}
			stopIdle()
			pending += chunk
			for {
				idx := strings.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				emit(pending[:idx])
				pending = pending[idx+1:]
			}
			if pending != "" && isPrompt(pending) {
				timer = time.NewTimer(promptIdle)
				idle = timer.C
			}
		case <-idle:
			timer = nil
			idle = nil
			prompt := strings.TrimSpace(pending)
			emit(pending)
			pending = ""
			answer := ui.Query(ctx, "Fossil", prompt, promptAnswers(prompt))
			b.debugf("prompt: %q -> %s", prompt, answer)
			if _, werr := io.WriteString(stdin, answer.reply()); werr != nil {
				b.debugf("prompt reply failed: %v", werr)
			}
		}
	}
}

func (b *Bridge) runDetached(args []string) error {
	fossil, err := b.Executable()
	if err != nil {
		return err
	}
	// #nosec G204 -- see prepareCommand
	cmd := exec.Command(fossil, args...)
	cmd.Dir = b.Workspace()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start fossil: %w", err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// Run is RunRaw with a non-zero exit reported as *ExitError.
func (b *Bridge) Run(ctx context.Context, args []string, flags RunFlags) ([]string, error) {
	lines, code, err := b.RunRaw(ctx, args, flags)
	if err != nil {
		return lines, err
	}
	if code != 0 {
		return lines, &ExitError{Args: append([]string(nil), args...), Code: code, Output: lines}
	}
	return lines, nil
}

// ExitCode extracts the fossil exit status from err, or -1.
func ExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if err == nil {
		return 0
	}
	return -1
}
