package workspace

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/spf13/afero"
)

// Workspace holds the result of the last scan of a checkout.
type Workspace struct {
	mu      sync.RWMutex
	root    string
	fs      afero.Fs
	files   map[string]*RepoFile
	index   *iradix.Tree
	paths   map[string]struct{}
	stashes map[string]string
}

// New creates an empty Workspace rooted at root on the OS filesystem.
func New(root string) *Workspace {
	return NewWithFs(root, afero.NewOsFs())
}

// NewWithFs creates an empty Workspace reading from fsys.
func NewWithFs(root string, fsys afero.Fs) *Workspace {
	w := &Workspace{root: filepath.Clean(root), fs: fsys}
	w.reset()
	return w
}

func (w *Workspace) fsys() afero.Fs {
	if w.fs == nil {
		return afero.NewOsFs()
	}
	return w.fs
}

func (w *Workspace) reset() {
	w.files = make(map[string]*RepoFile)
	w.index = iradix.New()
	w.paths = make(map[string]struct{})
	w.stashes = make(map[string]string)
}

// Root returns the absolute workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Clear drops every file, directory and stash.
func (w *Workspace) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

// Len returns the number of file entries.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.files)
}

// File returns the entry for a relative path.
func (w *Workspace) File(rel string) (*RepoFile, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	f, ok := w.files[rel]
	return f, ok
}

// Files returns every entry matching mask, sorted by relative path.
func (w *Workspace) Files(mask EntryType) []*RepoFile {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*RepoFile, 0, len(w.files))
	w.index.Root().Walk(func(_ []byte, v interface{}) bool {
		if f := v.(*RepoFile); f.Matches(mask) {
			out = append(out, f)
		}
		return false
	})
	return out
}

// FilesUnder returns the entries matching mask whose directory is one of
// dirs or below it. The root directory is "".
func (w *Workspace) FilesUnder(dirs []string, mask EntryType) []*RepoFile {
	w.mu.RLock()
	defer w.mu.RUnlock()

	seen := make(map[string]bool)
	var out []*RepoFile
	collect := func(_ []byte, v interface{}) bool {
		f := v.(*RepoFile)
		if !seen[f.filePath] && f.Matches(mask) {
			seen[f.filePath] = true
			out = append(out, f)
		}
		return false
	}
	for _, dir := range dirs {
		if dir == "" {
			w.index.Root().Walk(collect)
			continue
		}
		w.index.Root().WalkPrefix([]byte(strings.TrimSuffix(dir, "/")+"/"), collect)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].filePath < out[j].filePath })
	return out
}

// FilesIn returns the entries matching mask located directly in dir.
func (w *Workspace) FilesIn(dir string, mask EntryType) []*RepoFile {
	var out []*RepoFile
	for _, f := range w.FilesUnder([]string{dir}, mask) {
		if f.path == dir {
			out = append(out, f)
		}
	}
	return out
}

// Paths returns every directory seen during the scan, sorted. The root
// directory is reported as "".
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.paths))
	for p := range w.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HasPath reports whether dir was seen during the scan.
func (w *Workspace) HasPath(dir string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.paths[dir]
	return ok
}

// Stash is a named Fossil stash entry.
type Stash struct {
	Name string
	ID   string
}

// Stashes returns the stash entries sorted by name.
func (w *Workspace) Stashes() []Stash {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Stash, 0, len(w.stashes))
	for name, id := range w.stashes {
		out = append(out, Stash{Name: name, ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StashID looks up a stash id by name.
func (w *Workspace) StashID(name string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	id, ok := w.stashes[name]
	return id, ok
}

// Counts returns the number of files for each primitive type.
func (w *Workspace) Counts() map[EntryType]int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	counts := make(map[EntryType]int, len(PrimitiveTypes))
	for _, f := range w.files {
		counts[f.typ]++
	}
	return counts
}

// The helpers below expect w.mu to be held for writing.

func (w *Workspace) put(f *RepoFile) {
	w.files[f.filePath] = f
	w.index, _, _ = w.index.Insert([]byte(f.filePath), f)
	w.addPath(f.path)
}

func (w *Workspace) remove(rel string) {
	if _, ok := w.files[rel]; !ok {
		return
	}
	delete(w.files, rel)
	w.index, _, _ = w.index.Delete([]byte(rel))
}

func (w *Workspace) addPath(dir string) {
	w.paths[dir] = struct{}{}
}
