package fossil

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ListFiles returns `fossil ls -l` status lines for the workspace.
func (b *Bridge) ListFiles(ctx context.Context) ([]string, error) {
	if !b.IsWorkspace() {
		return nil, ErrNotWorkspace
	}
	return b.Run(ctx, []string{"ls", "-l"}, SilentAll)
}

var versionRe = regexp.MustCompile(`version\s+([0-9][0-9A-Za-z.\-]*)`)

// Version returns the version reported by `fossil version`.
func (b *Bridge) Version(ctx context.Context) (string, error) {
	lines, err := b.Run(ctx, []string{"version"}, SilentAll)
	if err != nil {
		return "", err
	}
	for _, line := range lines {
		if m := versionRe.FindStringSubmatch(line); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("unexpected fossil version output %q", strings.Join(lines, " "))
}

// Add schedules files for addition.
func (b *Bridge) Add(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}
	_, err := b.Run(ctx, append([]string{"add"}, files...), RunNone)
	return err
}

// Remove schedules files for removal. With deleteLocal the files are also
// removed from disk.
func (b *Bridge) Remove(ctx context.Context, files []string, deleteLocal bool) error {
	if len(files) == 0 {
		return nil
	}
	if _, err := b.Run(ctx, append([]string{"delete"}, files...), RunNone); err != nil {
		return err
	}
	if !deleteLocal {
		return nil
	}
	var errs []error
	for _, f := range files {
		if err := os.Remove(b.localPath(f)); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Revert reverts files to their checked-out state.
func (b *Bridge) Revert(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}
	_, err := b.Run(ctx, append([]string{"revert"}, files...), RunNone)
	return err
}

// Rename records a rename of from to to. With moveLocal the file on disk
// is moved as well.
func (b *Bridge) Rename(ctx context.Context, from, to string, moveLocal bool) error {
	if from == "" || to == "" {
		return errors.New("rename needs a source and a target")
	}
	if _, err := b.Run(ctx, []string{"mv", from, to}, RunNone); err != nil {
		return err
	}
	if !moveLocal {
		return nil
	}
	dst := b.localPath(to)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.Rename(b.localPath(from), dst)
}

// Diff returns the diff for file, or for the whole checkout when file is
// empty. With graphical the configured diff tool is launched instead and no
// output is returned.
func (b *Bridge) Diff(ctx context.Context, file string, graphical bool) ([]string, error) {
	args := []string{"diff"}
	flags := SilentOutput
	if graphical {
		args = []string{"gdiff"}
		flags |= Detached
	}
	if file != "" {
		args = append(args, file)
	}
	return b.Run(ctx, args, flags)
}

// CommitOptions configure a commit.
type CommitOptions struct {
	Message string
	// Branch starts a new branch when not empty.
	Branch string
	// Private marks the new branch private.
	Private bool
}

// Commit commits files, or every change when files is empty. The message is
// passed through a temporary file so it survives any quoting.
func (b *Bridge) Commit(ctx context.Context, files []string, opts CommitOptions) error {
	if strings.TrimSpace(opts.Message) == "" {
		return errors.New("commit message is empty")
	}
	msgFile, err := os.CreateTemp("", "fuel-commit-*.txt")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(msgFile.Name()) }()
	if _, err := msgFile.WriteString(opts.Message); err != nil {
		_ = msgFile.Close()
		return err
	}
	if err := msgFile.Close(); err != nil {
		return err
	}

	args := []string{"commit", "--message-file", msgFile.Name()}
	if branch := strings.TrimSpace(opts.Branch); branch != "" {
		args = append(args, "--branch", branch)
		if opts.Private {
			args = append(args, "--private")
		}
	}
	args = append(args, files...)
	_, err = b.Run(ctx, args, RunNone)
	return err
}

// Undo undoes the last update, merge or revert. With dryRun only the
// changes are reported.
func (b *Bridge) Undo(ctx context.Context, dryRun bool) ([]string, error) {
	args := []string{"undo"}
	if dryRun {
		args = append(args, "--dry-run")
	}
	return b.Run(ctx, args, RunNone)
}

// Update brings the checkout up to date. With dryRun only the changes are
// reported.
func (b *Bridge) Update(ctx context.Context, dryRun bool) ([]string, error) {
	args := []string{"update"}
	if dryRun {
		args = append(args, "--dry-run")
	}
	return b.Run(ctx, args, RunNone)
}

// Push pushes to the default remote.
func (b *Bridge) Push(ctx context.Context) error {
	_, err := b.Run(ctx, []string{"push"}, RunNone)
	return err
}

// Pull pulls from the default remote.
func (b *Bridge) Pull(ctx context.Context) error {
	_, err := b.Run(ctx, []string{"pull"}, RunNone)
	return err
}

// HasChanges reports whether a dry-run update or undo lists anything to do.
func HasChanges(lines []string) bool {
	for _, line := range lines {
		word, _, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch word {
		case "ADD", "UPDATE", "REMOVE", "MERGE", "CONFLICT", "UNDO", "REDO", "NEW":
			return true
		}
	}
	return false
}

func (b *Bridge) localPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(b.Workspace(), filepath.FromSlash(rel))
}

func cloneURL(rawURL, user, password string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New("clone url is empty")
	}
	if user == "" {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid clone url: %w", err)
	}
	if u.Scheme == "" || u.Scheme == "file" {
		return rawURL, nil
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String(), nil
}
