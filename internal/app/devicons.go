package app

import (
	"io/fs"
	"path"
	"strings"
	"time"

	devicons "github.com/epilande/go-devicons"
)

// Nerd Font glyphs for files fossil itself owns.
const (
	iconRepository = "\U000f01bc" // nf-md-database
	iconCheckout   = "\uf023"     // nf-fa-lock
	iconManifest   = "\uf4c9"     // nf-oct-checklist
	iconSettings   = "\ue615"     // nf-seti-config
)

var fossilIcons = map[string]string{
	".fslckout":        iconCheckout,
	"_FOSSIL_":         iconCheckout,
	"manifest":         iconManifest,
	"manifest.uuid":    iconManifest,
	"manifest.tags":    iconManifest,
	".fossil-settings": iconSettings,
	".fossil-custom":   iconSettings,
}

// entryInfo is a name-only fs.FileInfo; go-devicons only looks at the name
// and the directory bit.
type entryInfo struct {
	name string
	dir  bool
}

func (e entryInfo) Name() string       { return e.name }
func (e entryInfo) Size() int64        { return 0 }
func (e entryInfo) ModTime() time.Time { return time.Time{} }
func (e entryInfo) IsDir() bool        { return e.dir }
func (e entryInfo) Sys() any           { return nil }

func (e entryInfo) Mode() fs.FileMode {
	if e.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}

// deviconForName picks the icon for a file list or directory tree entry.
func deviconForName(name string, isDir bool) string {
	base := path.Base(name)
	if name == "" || base == "." || base == "/" {
		return ""
	}
	if icon, ok := fossilIcons[base]; ok {
		return icon
	}
	if !isDir && strings.EqualFold(path.Ext(base), ".fossil") {
		return iconRepository
	}
	return devicons.IconForInfo(entryInfo{name: base, dir: isDir}).Icon
}

func iconWithSpace(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}
