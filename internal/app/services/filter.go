// Package services holds helpers used by the main window that do not
// depend on Bubble Tea state.
package services

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/fuel-scm/fuel/internal/workspace"
)

// fileSource matches against workspace relative paths.
type fileSource []*workspace.RepoFile

func (s fileSource) String(i int) string { return s[i].FilePath() }

func (s fileSource) Len() int { return len(s) }

// FileMatch is a filtered file with the matched rune positions of its
// relative path.
type FileMatch struct {
	File    *workspace.RepoFile
	Indexes []int
}

// FilterFiles fuzzy-matches query against the relative path of files.
// An empty query keeps every file in its original order; otherwise the
// best matches come first.
func FilterFiles(files []*workspace.RepoFile, query string) []FileMatch {
	query = strings.TrimSpace(query)
	out := make([]FileMatch, 0, len(files))
	if query == "" {
		for _, f := range files {
			out = append(out, FileMatch{File: f})
		}
		return out
	}
	for _, m := range fuzzy.FindFrom(query, fileSource(files)) {
		out = append(out, FileMatch{File: files[m.Index], Indexes: m.MatchedIndexes})
	}
	return out
}
