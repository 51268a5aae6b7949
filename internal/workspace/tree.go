package workspace

import (
	"path"
	"sort"
	"strings"
)

// DirNode is a directory in the workspace tree. The root has Path "".
type DirNode struct {
	Path     string
	Children []*DirNode
	Depth    int // set by FlattenTree
}

// Name returns the display name for the node.
func (n *DirNode) Name() string {
	if n.Path == "" {
		return "."
	}
	return path.Base(n.Path)
}

// BuildTree builds a directory tree from workspace paths. Missing ancestors
// are created so every directory hangs off the root.
func BuildTree(paths []string) *DirNode {
	root := &DirNode{Path: ""}
	byPath := map[string]*DirNode{"": root}

	var ensure func(p string) *DirNode
	ensure = func(p string) *DirNode {
		if node, ok := byPath[p]; ok {
			return node
		}
		parent := ensure(parentDir(p))
		node := &DirNode{Path: p}
		parent.Children = append(parent.Children, node)
		byPath[p] = node
		return node
	}

	for _, p := range paths {
		p = strings.Trim(p, "/")
		ensure(p)
	}

	SortTree(root)
	return root
}

// SortTree orders children case-insensitively, recursively.
func SortTree(node *DirNode) {
	if node == nil {
		return
	}
	sort.Slice(node.Children, func(i, j int) bool {
		a, b := strings.ToLower(node.Children[i].Name()), strings.ToLower(node.Children[j].Name())
		if a == b {
			return node.Children[i].Path < node.Children[j].Path
		}
		return a < b
	})
	for _, child := range node.Children {
		SortTree(child)
	}
}

// FlattenTree returns the visible nodes, root included, with their depth.
func FlattenTree(node *DirNode, collapsed map[string]bool, depth int) []*DirNode {
	if node == nil {
		return nil
	}
	nodeCopy := *node
	nodeCopy.Depth = depth
	result := []*DirNode{&nodeCopy}
	if collapsed[node.Path] {
		return result
	}
	for _, child := range node.Children {
		result = append(result, FlattenTree(child, collapsed, depth+1)...)
	}
	return result
}

// TreeView keeps the flattened tree and the selection of the directory pane.
type TreeView struct {
	Tree      *DirNode
	Flat      []*DirNode
	Collapsed map[string]bool
	Index     int
}

// NewTreeView creates an empty TreeView.
func NewTreeView() *TreeView {
	return &TreeView{Collapsed: make(map[string]bool)}
}

// SetPaths rebuilds the tree and keeps the current selection when possible.
func (v *TreeView) SetPaths(paths []string) {
	selected := v.SelectedPath()
	v.Tree = BuildTree(paths)
	v.RebuildFlat()
	v.RestoreSelection(selected)
	v.ClampIndex()
}

// RebuildFlat recomputes the visible node list.
func (v *TreeView) RebuildFlat() {
	if v.Collapsed == nil {
		v.Collapsed = make(map[string]bool)
	}
	v.Flat = FlattenTree(v.Tree, v.Collapsed, 0)
}

// ToggleCollapse toggles a directory and rebuilds the visible list.
func (v *TreeView) ToggleCollapse(p string) {
	if v.Collapsed == nil {
		v.Collapsed = make(map[string]bool)
	}
	v.Collapsed[p] = !v.Collapsed[p]
	v.RebuildFlat()
	v.ClampIndex()
}

// SelectedPath returns the directory under the cursor, "" for the root.
func (v *TreeView) SelectedPath() string {
	if v.Index >= 0 && v.Index < len(v.Flat) {
		return v.Flat[v.Index].Path
	}
	return ""
}

// RestoreSelection moves the cursor to p if it is visible.
func (v *TreeView) RestoreSelection(p string) {
	for i, node := range v.Flat {
		if node.Path == p {
			v.Index = i
			return
		}
	}
}

// ClampIndex keeps the cursor inside the visible list.
func (v *TreeView) ClampIndex() {
	if v.Index >= len(v.Flat) {
		v.Index = len(v.Flat) - 1
	}
	if v.Index < 0 {
		v.Index = 0
	}
}
