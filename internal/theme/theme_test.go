package theme

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetThemeFallsBackToDracula(t *testing.T) {
	assert.Equal(t, Dracula(), GetTheme("no-such-theme"))
	for _, name := range AvailableThemes() {
		th := GetTheme(name)
		require.NotNil(t, th, name)
		assert.NotEmpty(t, th.Accent, name)
		assert.NotEmpty(t, th.TextFg, name)
	}
}

func TestIsLight(t *testing.T) {
	assert.True(t, IsLight(DefaultLight()))
	assert.False(t, IsLight(DefaultDark()))
	assert.True(t, IsLight(GruvboxLightName))
}

func TestStatusColors(t *testing.T) {
	th := Nord()
	assert.Equal(t, th.SuccessFg, th.Status("added"))
	assert.Equal(t, th.ErrorFg, th.Status("missing"))
	assert.Equal(t, th.WarnFg, th.Status("edited"))
	assert.Equal(t, th.TextFg, th.Status("unchanged"))
}

func TestDetectBackground(t *testing.T) {
	orig := hasDarkBackground
	t.Cleanup(func() { hasDarkBackground = orig })

	hasDarkBackground = func() bool { return false }
	name, err := DetectBackground(time.Second)
	require.NoError(t, err)
	assert.Equal(t, DefaultLight(), name)

	block := make(chan struct{})
	t.Cleanup(func() { close(block) })
	hasDarkBackground = func() bool {
		<-block
		return true
	}
	_, err = DetectBackground(10 * time.Millisecond)
	require.ErrorIs(t, err, ErrDetectTimeout)
}
