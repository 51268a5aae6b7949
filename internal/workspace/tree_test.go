package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatPaths(nodes []*DirNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Path)
	}
	return out
}

func TestBuildTreeCreatesAncestors(t *testing.T) {
	root := BuildTree([]string{"src/internal/app", "docs", "", "Build"})

	flat := FlattenTree(root, nil, 0)
	assert.Equal(t, []string{"", "Build", "docs", "src", "src/internal", "src/internal/app"}, flatPaths(flat))
	assert.Equal(t, 0, flat[0].Depth)
	assert.Equal(t, 3, flat[len(flat)-1].Depth)
	assert.Equal(t, ".", flat[0].Name())
	assert.Equal(t, "app", flat[len(flat)-1].Name())
}

func TestTreeViewCollapseAndSelection(t *testing.T) {
	v := NewTreeView()
	v.SetPaths([]string{"a/b", "c"})
	require.Equal(t, []string{"", "a", "a/b", "c"}, flatPaths(v.Flat))

	v.Index = 2
	assert.Equal(t, "a/b", v.SelectedPath())

	v.ToggleCollapse("a")
	assert.Equal(t, []string{"", "a", "c"}, flatPaths(v.Flat))
	assert.Equal(t, "c", v.SelectedPath())

	v.RestoreSelection("a")
	assert.Equal(t, 1, v.Index)

	v.SetPaths([]string{"a/b", "c", "d"})
	assert.Equal(t, "a", v.SelectedPath())

	v.SetPaths(nil)
	assert.Equal(t, []string{""}, flatPaths(v.Flat))
	assert.Equal(t, "", v.SelectedPath())
}
