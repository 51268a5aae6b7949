package state

import (
	"strings"

	"github.com/fuel-scm/fuel/internal/config"
	"github.com/fuel-scm/fuel/internal/workspace"
)

// Filters are the view toggles of the file list. They decide what a scan
// records, not only what is shown.
type Filters struct {
	Unknown   bool
	Modified  bool
	Unchanged bool
	Ignored   bool
	AsList    bool
}

// FiltersFromConfig reads the view toggles from cfg.
func FiltersFromConfig(cfg *config.AppConfig) Filters {
	return Filters{
		Unknown:   cfg.ViewUnknown,
		Modified:  cfg.ViewModified,
		Unchanged: cfg.ViewUnchanged,
		Ignored:   cfg.ViewIgnored,
		AsList:    cfg.ViewAsList,
	}
}

// Store writes the toggles back to cfg.
func (f Filters) Store(cfg *config.AppConfig) {
	cfg.ViewUnknown = f.Unknown
	cfg.ViewModified = f.Modified
	cfg.ViewUnchanged = f.Unchanged
	cfg.ViewIgnored = f.Ignored
	cfg.ViewAsList = f.AsList
}

// ScanOptions turns the toggles into scan options. ignoreGlob is the
// workspace ignore-glob setting; extra patterns from the config are merged in.
func (f Filters) ScanOptions(ignoreGlob string, extra []string) workspace.ScanOptions {
	globs := make([]string, 0, len(extra)+1)
	if strings.TrimSpace(ignoreGlob) != "" {
		globs = append(globs, ignoreGlob)
	}
	globs = append(globs, extra...)
	return workspace.ScanOptions{
		ScanLocal:     f.Unknown,
		ScanIgnored:   f.Ignored,
		ScanModified:  f.Modified,
		ScanUnchanged: f.Unchanged,
		IgnoreGlob:    strings.Join(globs, "\n"),
	}
}

// Summary lists the enabled toggles for the header.
func (f Filters) Summary() string {
	var parts []string
	if f.Modified {
		parts = append(parts, "modified")
	}
	if f.Unchanged {
		parts = append(parts, "unchanged")
	}
	if f.Unknown {
		parts = append(parts, "unknown")
	}
	if f.Ignored {
		parts = append(parts, "ignored")
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}
