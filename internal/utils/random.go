// Package utils holds small helpers shared by the CLI and the TUI.
package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Stash names are built from one word of each list, joined by dashes.
var nameParts = [][]string{
	{"amber", "ancient", "buried", "chalky", "dusty", "etched", "flinty", "glassy",
		"hidden", "layered", "mossy", "pressed", "rusty", "sandy", "silty", "stony"},
	{"ammonite", "basalt", "bone", "coral", "fern", "geode", "shale", "spiral",
		"trilobite", "nautilus", "obsidian", "quarry", "relic", "strata", "tusk", "crinoid"},
}

// RandomName returns a word-word name, used as the suggested name of a new
// stash.
func RandomName() string {
	words := make([]string, 0, len(nameParts))
	for _, part := range nameParts {
		words = append(words, pick(part))
	}
	return strings.Join(words, "-")
}

// pick returns a uniformly chosen word, or "" for an empty list.
func pick(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return words[0]
	}
	return words[n.Int64()]
}
