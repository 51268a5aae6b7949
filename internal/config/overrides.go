package config

import (
	"fmt"
	"strings"
)

// OverridePrefix marks keys passed with --config.
const OverridePrefix = "fu."

// parseCLIConfigOverrides parses --config=fu.key=value format.
// Returns a map suitable for applyConfig().
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)
	keyCount := make(map[string]int)

	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config override: %q, expected format: fu.key=value (note: use = not space)", override)
		}

		fullKey := strings.TrimSpace(parts[0])
		value := parts[1]

		if !strings.HasPrefix(fullKey, OverridePrefix) {
			return nil, fmt.Errorf("config override key must start with %q: %q", OverridePrefix, fullKey)
		}

		key := strings.TrimPrefix(fullKey, OverridePrefix)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}

		// Repeated keys become a list (ignore_glob, recent_workspaces).
		keyCount[key]++
		switch keyCount[key] {
		case 1:
			result[key] = value
		case 2:
			result[key] = []any{result[key].(string), value}
		default:
			result[key] = append(result[key].([]any), value)
		}
	}

	return result, nil
}

// ApplyCLIOverrides applies fu.key=value overrides on top of the loaded
// configuration. They last for this run only: SaveConfig writes the
// file's values back for them.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}
	data, err := parseCLIConfigOverrides(overrides)
	if err != nil {
		return err
	}
	before := c.toMap()
	applyConfig(c, data)
	after := c.values()

	if c.session == nil {
		c.session = make(map[string]sessionValue)
	}
	for key := range data {
		if _, seen := c.session[key]; seen {
			sv := c.session[key]
			sv.applied = after[key]
			c.session[key] = sv
			continue
		}
		file, inFile := before[key]
		c.session[key] = sessionValue{file: file, inFile: inFile, applied: after[key]}
	}
	return nil
}
