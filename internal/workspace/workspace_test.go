package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryTypeMasks(t *testing.T) {
	for _, p := range PrimitiveTypes {
		assert.True(t, p.IsPrimitive(), p.String())
		assert.NotZero(t, TypeAll&p)
	}
	assert.False(t, TypeModified.IsPrimitive())
	assert.False(t, TypeAll.IsPrimitive())
	assert.False(t, EntryType(0).IsPrimitive())
	assert.False(t, EntryType(1<<9).IsPrimitive())

	assert.Equal(t, TypeUnknown|TypeUnchanged|TypeModified, TypeAll)
	assert.Zero(t, TypeModified&TypeUnchanged)
	assert.Equal(t, "edited|added", (TypeEdited | TypeAdded).String())
}

func TestParseEntryType(t *testing.T) {
	typ, err := ParseEntryType("Modified")
	require.NoError(t, err)
	assert.Equal(t, TypeModified, typ)

	typ, err = ParseEntryType("conflicted")
	require.NoError(t, err)
	assert.Equal(t, TypeConflicted, typ)

	_, err = ParseEntryType("bogus")
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestNewRepoFile(t *testing.T) {
	f, err := NewRepoFile("/ws/src/pkg/file.go", TypeEdited, "/ws")
	require.NoError(t, err)
	assert.Equal(t, "src/pkg/file.go", f.FilePath())
	assert.Equal(t, "src/pkg", f.Path())
	assert.Equal(t, "file.go", f.Filename())
	assert.Equal(t, "/ws/src/pkg/file.go", f.AbsPath())
	assert.True(t, f.IsType(TypeEdited))
	assert.True(t, f.Matches(TypeModified))
	assert.False(t, f.Matches(TypeUnchanged|TypeUnknown))

	root, err := NewRepoFile("/ws/README", TypeUnknown, "/ws/")
	require.NoError(t, err)
	assert.Equal(t, "", root.Path())

	_, err = NewRepoFile("/elsewhere/file", TypeUnknown, "/ws")
	require.Error(t, err)

	_, err = NewRepoFile("/ws/file", TypeModified, "/ws")
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestSetTypeKeepsSinglePrimitive(t *testing.T) {
	f, err := NewRepoFile("/ws/a", TypeUnknown, "/ws")
	require.NoError(t, err)

	require.NoError(t, f.SetType(TypeAdded))
	assert.Equal(t, TypeAdded, f.Type())

	require.ErrorIs(t, f.SetType(TypeAdded|TypeEdited), ErrInvalidType)
	require.ErrorIs(t, f.SetType(0), ErrInvalidType)
	assert.Equal(t, TypeAdded, f.Type())
}

func TestFilesUnderUsesDirectoryPrefix(t *testing.T) {
	fsys := newTestFs(t, "src/a.c", "src/sub/b.c", "srcx/c.c", "top.txt")
	src := &fakeSource{lines: []string{"EDITED     src/a.c"}}
	w := NewWithFs(testRoot, fsys)
	require.NoError(t, w.Scan(context.Background(), src, DefaultScanOptions()))

	names := func(files []*RepoFile) []string {
		var out []string
		for _, f := range files {
			out = append(out, f.FilePath())
		}
		return out
	}

	assert.Equal(t, []string{"src/a.c", "src/sub/b.c"}, names(w.FilesUnder([]string{"src"}, TypeAll)))
	assert.Equal(t, []string{"src/a.c"}, names(w.FilesUnder([]string{"src"}, TypeModified)))
	assert.Equal(t, []string{"src/a.c"}, names(w.FilesIn("src", TypeAll)))
	assert.Equal(t, []string{"top.txt"}, names(w.FilesIn("", TypeAll)))
	assert.Len(t, w.FilesUnder([]string{"", "src"}, TypeAll), 4)
	assert.Equal(t, []string{"src/a.c", "src/sub/b.c", "srcx/c.c", "top.txt"}, names(w.Files(TypeAll)))

	counts := w.Counts()
	assert.Equal(t, 1, counts[TypeEdited])
	assert.Equal(t, 3, counts[TypeUnknown])
}

func TestClearDropsState(t *testing.T) {
	w := NewWithFs(testRoot, newTestFs(t, "a"))
	require.NoError(t, w.Scan(context.Background(), &fakeSource{stashes: map[string]string{"x": "1"}}, DefaultScanOptions()))
	require.Equal(t, 1, w.Len())

	w.Clear()
	assert.Zero(t, w.Len())
	assert.Empty(t, w.Paths())
	assert.Empty(t, w.Stashes())
	_, ok := w.File("a")
	assert.False(t, ok)
}
