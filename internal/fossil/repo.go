package fossil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fuel-scm/fuel/internal/workspace"
)

// RepoStatus describes the state of the checkout in the bridge's workspace.
type RepoStatus int

// Repository states.
const (
	RepoOK RepoStatus = iota
	RepoNotFound
	RepoOldSchema
)

func (s RepoStatus) String() string {
	switch s {
	case RepoOK:
		return "ok"
	case RepoOldSchema:
		return "old-schema"
	default:
		return "not-found"
	}
}

// Info holds the fields of `fossil info` the UI cares about.
type Info struct {
	ProjectName    string
	RepositoryFile string
	LocalRoot      string
	Checkout       string
	Tags           string
}

const oldSchemaMarker = "incorrect repository schema version"

// IsWorkspace reports whether dir holds a fossil checkout database.
func IsWorkspace(dir string) bool {
	if dir == "" {
		return false
	}
	for _, name := range []string{workspace.CheckoutFile, workspace.LegacyCheckoutFile} {
		if st, err := os.Stat(filepath.Join(dir, name)); err == nil && st.Mode().IsRegular() {
			return true
		}
	}
	return false
}

// IsWorkspace reports whether the bridge's workspace holds a checkout.
func (b *Bridge) IsWorkspace() bool {
	return IsWorkspace(b.Workspace())
}

// ParseInfo extracts Info from `fossil info` output.
func ParseInfo(lines []string) Info {
	var info Info
	for _, line := range lines {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "project-name":
			info.ProjectName = value
		case "repository":
			info.RepositoryFile = value
		case "local-root":
			info.LocalRoot = value
		case "checkout":
			info.Checkout = value
		case "tags":
			info.Tags = value
		}
	}
	return info
}

// Info runs `fossil info` in the workspace.
func (b *Bridge) Info(ctx context.Context) (Info, error) {
	lines, err := b.Run(ctx, []string{"info"}, SilentAll)
	if err != nil {
		return Info{}, err
	}
	return ParseInfo(lines), nil
}

// RepoStatus checks the workspace checkout and caches its project name and
// repository file.
func (b *Bridge) RepoStatus(ctx context.Context) (RepoStatus, error) {
	if !b.IsWorkspace() {
		return RepoNotFound, nil
	}
	lines, code, err := b.RunRaw(ctx, []string{"info"}, SilentAll)
	if err != nil {
		return RepoNotFound, err
	}
	for _, line := range lines {
		if strings.Contains(line, oldSchemaMarker) {
			return RepoOldSchema, nil
		}
	}
	if code != 0 {
		return RepoNotFound, nil
	}

	info := ParseInfo(lines)
	b.mu.Lock()
	b.project = info.ProjectName
	b.repositoryFile = info.RepositoryFile
	b.mu.Unlock()
	return RepoOK, nil
}

// RebuildRepository runs `fossil rebuild` on the repository file, used to
// upgrade a repository with an old schema.
func (b *Bridge) RebuildRepository(ctx context.Context, repoFile string) error {
	if repoFile == "" {
		return errors.New("no repository file")
	}
	_, err := b.Run(ctx, []string{"rebuild", repoFile}, RunNone)
	return err
}

// NewRepository creates repoFile and opens it in the workspace directory.
func (b *Bridge) NewRepository(ctx context.Context, repoFile string) error {
	if _, err := b.Run(ctx, []string{"new", repoFile}, RunNone); err != nil {
		return err
	}
	return b.OpenRepository(ctx, repoFile)
}

// OpenRepository opens repoFile into the workspace directory.
func (b *Bridge) OpenRepository(ctx context.Context, repoFile string) error {
	if dir := b.Workspace(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	_, err := b.Run(ctx, []string{"open", repoFile}, RunNone)
	return err
}

// CloseRepository closes the workspace checkout.
func (b *Bridge) CloseRepository(ctx context.Context) error {
	if !b.IsWorkspace() {
		return ErrNotWorkspace
	}
	if _, err := b.Run(ctx, []string{"close"}, RunNone); err != nil {
		return err
	}
	b.mu.Lock()
	b.project = ""
	b.repositoryFile = ""
	b.mu.Unlock()
	return nil
}

// CloneRepository clones rawURL into repoFile. Credentials, when given,
// are embedded into the URL the way fossil expects them.
func (b *Bridge) CloneRepository(ctx context.Context, rawURL, user, password, repoFile string) error {
	target, err := cloneURL(rawURL, user, password)
	if err != nil {
		return err
	}
	_, err = b.Run(ctx, []string{"clone", target, repoFile}, SilentInput)
	return err
}
