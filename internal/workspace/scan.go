package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/fuel-scm/fuel/internal/log"
	"github.com/spf13/afero"
)

// Checkout database names Fossil keeps at the workspace root.
const (
	CheckoutFile       = ".fslckout"
	LegacyCheckoutFile = "_FOSSIL_"
)

var checkoutSuffixes = []string{"", "-journal", "-wal", "-shm"}

// StatusSource reports the tracked state of a checkout.
// The fossil Bridge implements it.
type StatusSource interface {
	// ListFiles returns the raw lines of "fossil ls -l".
	ListFiles(ctx context.Context) ([]string, error)
	// StashList returns stash names mapped to stash ids.
	StashList(ctx context.Context) (map[string]string, error)
}

// ScanOptions selects what Scan records.
type ScanOptions struct {
	ScanLocal     bool // walk the disk and record untracked files
	ScanIgnored   bool // keep files matched by IgnoreGlob
	ScanModified  bool // keep tracked files with a modified status
	ScanUnchanged bool // keep tracked unchanged files

	// IgnoreGlob is a Fossil glob list (comma or newline separated).
	IgnoreGlob string

	// RepositoryFile is skipped when it lives inside the workspace.
	RepositoryFile string

	// Progress, when set, is called with every directory visited.
	Progress func(dir string)
}

// DefaultScanOptions shows everything but ignored files.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		ScanLocal:     true,
		ScanModified:  true,
		ScanUnchanged: true,
	}
}

// statusWords maps the status column of "fossil ls -l" to entry types.
var statusWords = map[string]EntryType{
	"EDITED":               TypeEdited,
	"ADDED":                TypeAdded,
	"DELETED":              TypeDeleted,
	"MISSING":              TypeMissing,
	"RENAMED":              TypeRenamed,
	"UNCHANGED":            TypeUnchanged,
	"CONFLICT":             TypeConflicted,
	"ADDED_BY_MERGE":       TypeAdded,
	"ADDED_BY_INTEGRATE":   TypeAdded,
	"UPDATED_BY_MERGE":     TypeEdited,
	"UPDATED_BY_INTEGRATE": TypeEdited,
}

// ParseStatusLine splits a "fossil ls -l" line into its type and path.
// ok is false for blank lines.
func ParseStatusLine(line string) (typ EntryType, rel string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, "", false
	}
	word, rest, found := strings.Cut(line, " ")
	if !found {
		return 0, "", false
	}
	rel = strings.TrimSpace(rest)
	if rel == "" {
		return 0, "", false
	}
	typ, known := statusWords[strings.ToUpper(word)]
	if !known {
		typ = TypeUnknown
	}
	return typ, filepath.ToSlash(rel), true
}

// ScanDirectory returns the absolute paths of the regular files below dir.
// Entries whose path relative to base matches ignore are skipped, and
// ignored directories are not descended.
func ScanDirectory(ctx context.Context, fsys afero.Fs, dir, base string, ignore *IgnoreMatcher, progress func(string)) ([]string, error) {
	var entries []string
	err := afero.Walk(fsys, dir, func(p string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			log.Printf("scan: skipping %s: %v", p, err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == dir {
			if progress != nil {
				progress(p)
			}
			return nil
		}

		rel, relErr := filepath.Rel(base, p)
		if relErr != nil {
			return relErr
		}
		if ignore.Match(filepath.ToSlash(rel)) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if progress != nil {
				progress(p)
			}
			return nil
		}
		entries = append(entries, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Scan rebuilds the workspace from disk and src. A cancelled context
// leaves the workspace empty and returns the context error.
func (w *Workspace) Scan(ctx context.Context, src StatusSource, opts ScanOptions) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()

	err := w.scanLocked(ctx, src, opts)
	if err != nil {
		w.reset()
		return err
	}
	log.Printf("scan: %s: %d files, %d dirs, %d stashes", w.root, len(w.files), len(w.paths), len(w.stashes))
	return nil
}

func (w *Workspace) scanLocked(ctx context.Context, src StatusSource, opts ScanOptions) error {
	lines, err := src.ListFiles(ctx)
	if err != nil {
		return fmt.Errorf("listing tracked files: %w", err)
	}

	if opts.ScanLocal {
		var ignore *IgnoreMatcher
		if !opts.ScanIgnored {
			ignore, err = NewIgnoreMatcher(opts.IgnoreGlob)
			if err != nil {
				return err
			}
		}
		disk, err := ScanDirectory(ctx, w.fsys(), w.root, w.root, ignore, opts.Progress)
		if err != nil {
			return err
		}
		for _, abs := range disk {
			if w.isCheckoutFile(abs, opts.RepositoryFile) {
				continue
			}
			f, err := NewRepoFile(abs, TypeUnknown, w.root)
			if err != nil {
				log.Printf("scan: %v", err)
				continue
			}
			w.put(f)
		}
	}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		typ, rel, ok := ParseStatusLine(line)
		if !ok {
			continue
		}

		if (typ&TypeModified != 0 && !opts.ScanModified) ||
			(typ&TypeUnchanged != 0 && !opts.ScanUnchanged) {
			w.remove(rel)
			continue
		}

		f, exists := w.files[rel]
		if !exists {
			f, err = NewRepoFile(filepath.Join(w.root, filepath.FromSlash(rel)), typ, w.root)
			if err != nil {
				log.Printf("scan: %v", err)
				continue
			}
		} else if err := f.SetType(typ); err != nil {
			return err
		}
		w.put(f)
	}

	stashes, err := src.StashList(ctx)
	if err != nil {
		return fmt.Errorf("listing stashes: %w", err)
	}
	for name, id := range stashes {
		w.stashes[name] = id
	}
	return nil
}

func (w *Workspace) isCheckoutFile(abs, repositoryFile string) bool {
	rel, err := filepath.Rel(w.root, abs)
	if err == nil && filepath.Dir(rel) == "." {
		name := filepath.Base(rel)
		for _, base := range []string{CheckoutFile, LegacyCheckoutFile} {
			for _, suffix := range checkoutSuffixes {
				if name == base+suffix {
					return true
				}
			}
		}
	}
	if repositoryFile == "" {
		return false
	}
	return filepath.Clean(abs) == filepath.Clean(repositoryFile)
}
