package utils

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomName(t *testing.T) {
	for range 20 {
		words := strings.Split(RandomName(), "-")
		require.Len(t, words, len(nameParts))
		for i, w := range words {
			assert.True(t, slices.Contains(nameParts[i], w), "unexpected word %q", w)
		}
	}
}

func TestPick(t *testing.T) {
	assert.Empty(t, pick(nil))
	assert.Equal(t, "only", pick([]string{"only"}))
}
