// Package workspace scans a Fossil checkout and classifies its files.
package workspace

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// EntryType is the status of a single workspace file.
// Primitive values are single bits; the composite masks are only used for
// filtering and are never stored on a RepoFile.
type EntryType uint

// Primitive entry types.
const (
	TypeUnknown EntryType = 1 << iota
	TypeUnchanged
	TypeEdited
	TypeAdded
	TypeDeleted
	TypeMissing
	TypeRenamed
	TypeConflicted
)

// Composite masks.
const (
	TypeModified = TypeEdited | TypeAdded | TypeDeleted | TypeMissing | TypeRenamed | TypeConflicted
	TypeRepo     = TypeUnchanged | TypeModified
	TypeAll      = TypeUnknown | TypeRepo
)

// ErrInvalidType is returned when a composite or empty type is assigned to a file.
var ErrInvalidType = errors.New("invalid entry type")

// PrimitiveTypes lists every primitive entry type in bit order.
var PrimitiveTypes = []EntryType{
	TypeUnknown,
	TypeUnchanged,
	TypeEdited,
	TypeAdded,
	TypeDeleted,
	TypeMissing,
	TypeRenamed,
	TypeConflicted,
}

// IsPrimitive reports whether exactly one known status bit is set.
func (t EntryType) IsPrimitive() bool {
	return t != 0 && t&(t-1) == 0 && t&TypeAll == t
}

// String returns the lowercase name of a primitive type, or a "|" joined
// list for masks.
func (t EntryType) String() string {
	switch t {
	case TypeUnknown:
		return "unknown"
	case TypeUnchanged:
		return "unchanged"
	case TypeEdited:
		return "edited"
	case TypeAdded:
		return "added"
	case TypeDeleted:
		return "deleted"
	case TypeMissing:
		return "missing"
	case TypeRenamed:
		return "renamed"
	case TypeConflicted:
		return "conflicted"
	case 0:
		return "none"
	}
	var names []string
	for _, p := range PrimitiveTypes {
		if t&p != 0 {
			names = append(names, p.String())
		}
	}
	return strings.Join(names, "|")
}

// Symbol returns the one-character marker used in listings.
func (t EntryType) Symbol() string {
	switch t {
	case TypeUnknown:
		return "?"
	case TypeUnchanged:
		return " "
	case TypeEdited:
		return "M"
	case TypeAdded:
		return "A"
	case TypeDeleted:
		return "D"
	case TypeMissing:
		return "!"
	case TypeRenamed:
		return "R"
	case TypeConflicted:
		return "C"
	default:
		return "*"
	}
}

// ParseEntryType maps a name as printed by String back to its type.
func ParseEntryType(name string) (EntryType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "modified":
		return TypeModified, nil
	case "repo":
		return TypeRepo, nil
	case "all":
		return TypeAll, nil
	}
	for _, p := range PrimitiveTypes {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidType, name)
}

// RepoFile is one file entry of a workspace.
type RepoFile struct {
	absPath  string
	filePath string
	path     string
	typ      EntryType
}

// NewRepoFile creates a RepoFile for absPath inside root.
func NewRepoFile(absPath string, typ EntryType, root string) (*RepoFile, error) {
	if !typ.IsPrimitive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidType, typ)
	}
	rel, err := relativePath(root, absPath)
	if err != nil {
		return nil, err
	}
	return &RepoFile{
		absPath:  filepath.Clean(absPath),
		filePath: rel,
		path:     parentDir(rel),
		typ:      typ,
	}, nil
}

func relativePath(root, absPath string) (string, error) {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(absPath))
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", absPath, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is not inside workspace %s", absPath, root)
	}
	return rel, nil
}

func parentDir(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return ""
	}
	return dir
}

// IsType reports whether the file has exactly type t.
func (f *RepoFile) IsType(t EntryType) bool {
	return f.typ == t
}

// Matches reports whether the file's type is part of mask.
func (f *RepoFile) Matches(mask EntryType) bool {
	return f.typ&mask != 0
}

// Type returns the file's status.
func (f *RepoFile) Type() EntryType {
	return f.typ
}

// SetType replaces the file's status. Only primitive types are accepted.
func (f *RepoFile) SetType(t EntryType) error {
	if !t.IsPrimitive() {
		return fmt.Errorf("%w: %s", ErrInvalidType, t)
	}
	f.typ = t
	return nil
}

// FilePath returns the path relative to the workspace root, "/" separated.
func (f *RepoFile) FilePath() string {
	return f.filePath
}

// Path returns the directory relative to the workspace root, "" at the root.
func (f *RepoFile) Path() string {
	return f.path
}

// Filename returns the base name of the file.
func (f *RepoFile) Filename() string {
	return path.Base(f.filePath)
}

// AbsPath returns the absolute path on disk.
func (f *RepoFile) AbsPath() string {
	return f.absPath
}
