package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fuel-scm/fuel/internal/config"
)

func TestPaneCycle(t *testing.T) {
	assert.Equal(t, PaneFiles, PaneDirs.Next())
	assert.Equal(t, PaneDirs, PaneLog.Next())
	assert.Equal(t, PaneLog, PaneDirs.Prev())
	assert.Equal(t, "Stashes", PaneStash.String())
}

func TestFiltersRoundTripConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	f := FiltersFromConfig(cfg)
	assert.True(t, f.Unknown)
	assert.False(t, f.Ignored)

	f.Ignored = true
	f.Unchanged = false
	f.Store(cfg)
	assert.True(t, cfg.ViewIgnored)
	assert.False(t, cfg.ViewUnchanged)
}

func TestFiltersScanOptions(t *testing.T) {
	f := Filters{Unknown: true, Modified: true}
	opts := f.ScanOptions("*.o,*.a", []string{"build/*"})
	assert.True(t, opts.ScanLocal)
	assert.True(t, opts.ScanModified)
	assert.False(t, opts.ScanUnchanged)
	assert.False(t, opts.ScanIgnored)
	assert.Equal(t, "*.o,*.a\nbuild/*", opts.IgnoreGlob)

	assert.Equal(t, "", Filters{}.ScanOptions("  ", nil).IgnoreGlob)
	assert.Equal(t, "nothing", Filters{}.Summary())
	assert.Equal(t, "modified, unknown", f.Summary())
}
