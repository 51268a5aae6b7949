package fossil

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	stashHeaderRe = regexp.MustCompile(`^\s*(\d+):\s*(.*)$`)
	stashHashRe   = regexp.MustCompile(`^\[[0-9a-fA-F]+\]\s+on\s+`)
)

// ParseStashList maps stash names to ids from `fossil stash ls` output. A
// stash's name is its comment line when present, the date of the header
// otherwise.
// Duplicate names get the id appended.
func ParseStashList(lines []string) map[string]string {
	stashes := make(map[string]string)
	for i := 0; i < len(lines); i++ {
		m := stashHeaderRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		id := m[1]
		name := strings.TrimSpace(stashHashRe.ReplaceAllString(strings.TrimSpace(m[2]), ""))
		if i+1 < len(lines) {
			next := lines[i+1]
			if strings.TrimSpace(next) != "" && !stashHeaderRe.MatchString(next) {
				name = strings.TrimSpace(next)
				i++
			}
		}
		if name == "" {
			name = "stash " + id
		}
		if _, dup := stashes[name]; dup {
			name = fmt.Sprintf("%s (%s)", name, id)
		}
		stashes[name] = id
	}
	return stashes
}

// StashList returns the workspace stashes keyed by name.
func (b *Bridge) StashList(ctx context.Context) (map[string]string, error) {
	if !b.IsWorkspace() {
		return nil, ErrNotWorkspace
	}
	lines, err := b.Run(ctx, []string{"stash", "ls"}, SilentAll)
	if err != nil {
		return nil, err
	}
	return ParseStashList(lines), nil
}

// StashNew stashes changes to files under name. Unless revert is set the
// changes are re-applied so the working files stay as they were.
func (b *Bridge) StashNew(ctx context.Context, files []string, name string, revert bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("stash name is empty")
	}
	args := append([]string{"stash", "save", "-m", name}, files...)
	if _, err := b.Run(ctx, args, RunNone); err != nil {
		return err
	}
	if revert {
		return nil
	}
	_, err := b.Run(ctx, []string{"stash", "apply"}, RunNone)
	return err
}

// StashApply applies the stash with id to the checkout.
func (b *Bridge) StashApply(ctx context.Context, id string) error {
	_, err := b.Run(ctx, []string{"stash", "apply", id}, RunNone)
	return err
}

// StashDrop deletes the stash with id.
func (b *Bridge) StashDrop(ctx context.Context, id string) error {
	_, err := b.Run(ctx, []string{"stash", "drop", id}, RunNone)
	return err
}

// StashDiff returns the diff stored in the stash with id.
func (b *Bridge) StashDiff(ctx context.Context, id string) ([]string, error) {
	return b.Run(ctx, []string{"stash", "diff", id}, SilentOutput)
}
