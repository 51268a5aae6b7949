package fossil

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	log "github.com/fuel-scm/fuel/internal/log"
)

const overrideMarker = "(overridden by contents of file "

// Setting is a fossil setting value and where it was set.
type Setting struct {
	Value string
	// Scope is "local", "global", "versioned" or empty when unset.
	Scope string
	// File is the workspace-relative file holding a versioned value.
	File string
}

// ParseSettings parses `fossil settings` output. Unset settings appear with
// an empty value and scope. A setting overridden by a file under
// .fossil-settings is reported with that File and the versioned scope; its
// Value is left for the caller to read.
func ParseSettings(lines []string) map[string]Setting {
	settings := make(map[string]Setting)
	last := ""
	for _, line := range lines {
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			trimmed := strings.TrimSpace(line)
			if last == "" || !strings.HasPrefix(trimmed, overrideMarker) {
				continue
			}
			file := strings.TrimSuffix(strings.TrimPrefix(trimmed, overrideMarker), ")")
			s := settings[last]
			s.File = strings.TrimSpace(file)
			s.Scope = "versioned"
			s.Value = ""
			settings[last] = s
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := fields[0]
		rest := strings.TrimSpace(strings.TrimPrefix(line, name))
		var s Setting
		if strings.HasPrefix(rest, "(") {
			if end := strings.IndexByte(rest, ')'); end > 0 {
				s.Scope = rest[1:end]
				rest = strings.TrimSpace(rest[end+1:])
			}
		}
		s.Value = rest
		settings[name] = s
		last = name
	}
	return settings
}

// Settings returns every fossil setting visible from the workspace. Values
// kept in versioned files are read from the workspace, one pattern per line.
func (b *Bridge) Settings(ctx context.Context) (map[string]Setting, error) {
	lines, err := b.Run(ctx, []string{"settings"}, SilentAll)
	if err != nil {
		return nil, err
	}
	settings := ParseSettings(lines)
	root := b.Workspace()
	for name, s := range settings {
		if s.File == "" {
			continue
		}
		// #nosec G304 -- the file lives in the user's checkout
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(s.File)))
		if err != nil {
			log.Printf("settings: %s: %v", name, err)
			continue
		}
		s.Value = strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
		settings[name] = s
	}
	return settings, nil
}

// SetSetting stores a setting, globally or for the checkout.
func (b *Bridge) SetSetting(ctx context.Context, name, value string, global bool) error {
	args := []string{"settings", name, value}
	if global {
		args = append(args, "--global")
	}
	_, err := b.Run(ctx, args, SilentAll)
	return err
}

// UnsetSetting clears a setting.
func (b *Bridge) UnsetSetting(ctx context.Context, name string, global bool) error {
	args := []string{"unset", name}
	if global {
		args = append(args, "--global")
	}
	_, err := b.Run(ctx, args, SilentAll)
	return err
}
