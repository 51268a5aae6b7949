// Package config loads application configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/fuel-scm/fuel/internal/theme"
	"gopkg.in/yaml.v3"
)

// MaxRecentWorkspaces bounds the recent workspace list.
const MaxRecentWorkspaces = 5

// DefaultHTTPPort is the port used for the fossil web UI.
const DefaultHTTPPort = 8080

// ErrUnparsedConfig is returned by SaveConfig for a config whose file could
// not be parsed. The file is left for the user to fix.
var ErrUnparsedConfig = errors.New("config file could not be parsed, not overwriting it")

// AppConfig defines the global fuel configuration options.
type AppConfig struct {
	FossilPath string // Path to the fossil executable, empty to search PATH
	HTTPPort   int    // Port for `fossil ui`
	Theme      string // Theme name: see AvailableThemes in internal/theme
	DebugLog   string
	Editor     string

	ViewUnknown   bool
	ViewModified  bool
	ViewUnchanged bool
	ViewIgnored   bool
	ViewAsList    bool // Flat file list instead of per-directory view

	IgnoreGlob  []string // Extra patterns merged with fossil's ignore-glob
	AutoRefresh bool     // Rescan when files in the workspace change
	ShowIcons   bool     // Render Nerd Font icons in the file list (default: true)

	RecentWorkspaces []string
	LastWorkspace    string

	// Path is the file the config was loaded from and is saved to.
	Path string `yaml:"-"`

	unparsed      bool
	themeDetected bool
	// session holds the keys set for this run only, see ApplyCLIOverrides.
	session map[string]sessionValue
}

// sessionValue remembers what the file held for a key overridden on the
// command line, and what the override set.
type sessionValue struct {
	file    any
	inFile  bool
	applied any
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		HTTPPort:      DefaultHTTPPort,
		ViewUnknown:   true,
		ViewModified:  true,
		ViewUnchanged: true,
		ViewIgnored:   false,
		ViewAsList:    false,
		AutoRefresh:   true,
		ShowIcons:     true,
	}
}

// normalizeList converts a string or list value to a list of trimmed strings.
func normalizeList(value any) []string {
	if value == nil {
		return []string{}
	}

	switch v := value.(type) {
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return []string{}
		}
		return []string{text}
	case []any:
		items := []string{}
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(fmt.Sprintf("%v", item))
			if text != "" {
				items = append(items, text)
			}
		}
		return items
	}
	return []string{}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func coerceString(value any, defaultVal string) string {
	s, ok := value.(string)
	if !ok {
		return defaultVal
	}
	if s = strings.TrimSpace(s); s == "" {
		return defaultVal
	}
	return s
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	applyConfig(cfg, data)
	return cfg
}

// applyConfig overlays the keys present in data onto cfg.
func applyConfig(cfg *AppConfig, data map[string]any) {
	cfg.FossilPath = coerceString(data["fossil_path"], cfg.FossilPath)
	cfg.DebugLog = coerceString(data["debug_log"], cfg.DebugLog)
	cfg.Editor = coerceString(data["editor"], cfg.Editor)
	cfg.LastWorkspace = coerceString(data["last_workspace"], cfg.LastWorkspace)

	cfg.HTTPPort = coerceInt(data["http_port"], cfg.HTTPPort)
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		cfg.HTTPPort = DefaultHTTPPort
	}

	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}

	cfg.ViewUnknown = coerceBool(data["view_unknown"], cfg.ViewUnknown)
	cfg.ViewModified = coerceBool(data["view_modified"], cfg.ViewModified)
	cfg.ViewUnchanged = coerceBool(data["view_unchanged"], cfg.ViewUnchanged)
	cfg.ViewIgnored = coerceBool(data["view_ignored"], cfg.ViewIgnored)
	cfg.ViewAsList = coerceBool(data["view_as_list"], cfg.ViewAsList)
	cfg.AutoRefresh = coerceBool(data["auto_refresh"], cfg.AutoRefresh)
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)

	if _, ok := data["ignore_glob"]; ok {
		cfg.IgnoreGlob = normalizeList(data["ignore_glob"])
	}
	if _, ok := data["recent_workspaces"]; ok {
		cfg.RecentWorkspaces = dedupe(normalizeList(data["recent_workspaces"]))
		if len(cfg.RecentWorkspaces) > MaxRecentWorkspaces {
			cfg.RecentWorkspaces = cfg.RecentWorkspaces[:MaxRecentWorkspaces]
		}
	}
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}

// AddRecentWorkspace moves dir to the front of the recent list and records
// it as the last opened workspace.
func (c *AppConfig) AddRecentWorkspace(dir string) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return
	}
	recent := []string{dir}
	for _, existing := range c.RecentWorkspaces {
		if existing != dir {
			recent = append(recent, existing)
		}
	}
	if len(recent) > MaxRecentWorkspaces {
		recent = recent[:MaxRecentWorkspaces]
	}
	c.RecentWorkspaces = recent
	c.LastWorkspace = dir
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// DefaultPath is where the configuration lives unless --config-file is given.
func DefaultPath() string {
	return filepath.Join(filepath.Clean(filepath.Join(getConfigDir(), "fuel")), "config.yaml")
}

// LoadConfig reads the application configuration from a YAML file. A
// missing file yields the defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Dir(DefaultPath())

	var paths []string
	if configPath != "" {
		expanded, err := ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	var cfg *AppConfig
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- the config path is chosen by the local user
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			cfg = DefaultConfig()
			cfg.Path = path
			cfg.unparsed = true
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		cfg = parseConfig(yamlData)
		cfg.Path = path
		break
	}

	if cfg == nil {
		cfg = DefaultConfig()
		cfg.Path = paths[0]
	}

	if cfg.Theme == "" {
		detected, err := theme.DetectBackground(500 * time.Millisecond)
		if err == nil {
			cfg.Theme = detected
		} else {
			cfg.Theme = theme.DefaultDark()
		}
		cfg.themeDetected = true
	}

	return cfg, nil
}

// SetTheme selects a theme for this and later runs.
func (c *AppConfig) SetTheme(name string) {
	c.Theme = name
	c.themeDetected = false
	delete(c.session, "theme")
}

// toMap returns the persisted keys. Theme is only saved when it was
// chosen explicitly. A key overridden on the command line keeps the file's
// value unless it was changed again during the run.
func (c *AppConfig) toMap() map[string]any {
	data := c.values()
	if c.themeDetected {
		delete(data, "theme")
	}
	for key, sv := range c.session {
		if !reflect.DeepEqual(data[key], sv.applied) {
			continue
		}
		if sv.inFile {
			data[key] = sv.file
		} else {
			delete(data, key)
		}
	}
	return data
}

// values returns every key as it would be written.
func (c *AppConfig) values() map[string]any {
	data := map[string]any{
		"http_port":      c.HTTPPort,
		"view_unknown":   c.ViewUnknown,
		"view_modified":  c.ViewModified,
		"view_unchanged": c.ViewUnchanged,
		"view_ignored":   c.ViewIgnored,
		"view_as_list":   c.ViewAsList,
		"auto_refresh":   c.AutoRefresh,
		"show_icons":     c.ShowIcons,
	}
	for key, value := range map[string]string{
		"fossil_path":    c.FossilPath,
		"theme":          c.Theme,
		"debug_log":      c.DebugLog,
		"editor":         c.Editor,
		"last_workspace": c.LastWorkspace,
	} {
		if value != "" {
			data[key] = value
		}
	}
	if len(c.IgnoreGlob) > 0 {
		data["ignore_glob"] = c.IgnoreGlob
	}
	if len(c.RecentWorkspaces) > 0 {
		data["recent_workspaces"] = c.RecentWorkspaces
	}
	return data
}

// SaveConfig writes cfg to cfg.Path, or to DefaultPath when unset.
func SaveConfig(cfg *AppConfig) error {
	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}
	if cfg.unparsed {
		return fmt.Errorf("%w: %s", ErrUnparsedConfig, path)
	}
	out, err := yaml.Marshal(cfg.toMap())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write config: %w", err)
	}
	cfg.Path = path
	return nil
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if slices.Contains(theme.AvailableThemes(), name) {
		return name
	}
	return ""
}
