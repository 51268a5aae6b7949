package commands

const defaultMRUSectionLabel = "Recently Used"

// sectionIcons maps section names to their icons.
var sectionIcons = map[string]string{
	sectionFiles:           IconFiles,
	sectionRepository:      IconRepository,
	sectionStash:           IconStash,
	sectionView:            IconView,
	sectionNavigation:      IconNavigation,
	sectionSettings:        IconSettings,
	defaultMRUSectionLabel: IconRecent,
}

// SectionIcon returns the icon for a section name.
func SectionIcon(section string) string {
	return sectionIcons[section]
}

// PaletteItem represents a palette entry.
type PaletteItem struct {
	ID          string
	Label       string
	Description string
	Section     string
	IsMRU       bool
	Shortcut    string
	Icon        string
}

// PaletteOptions controls palette item building.
type PaletteOptions struct {
	MRULimit int
	History  []string // action ids, most recent first
	Actions  []CommandAction
}

// BuildPaletteItems builds palette items from actions and history.
// Recently used actions come first and are not repeated in their section.
// Unavailable actions are left out.
func BuildPaletteItems(opts PaletteOptions) []PaletteItem {
	available := make(map[string]CommandAction, len(opts.Actions))
	for _, action := range opts.Actions {
		if action.ID == "" || action.Handler == nil {
			continue
		}
		if action.Available != nil && !action.Available() {
			continue
		}
		available[action.ID] = action
	}

	items := make([]PaletteItem, 0, len(available))
	seen := make(map[string]bool)
	for _, id := range opts.History {
		if len(items) >= opts.MRULimit {
			break
		}
		action, ok := available[id]
		if !ok || seen[id] {
			continue
		}
		item := toPaletteItem(action)
		item.IsMRU = true
		item.Section = defaultMRUSectionLabel
		items = append(items, item)
		seen[id] = true
	}

	for _, action := range opts.Actions {
		if _, ok := available[action.ID]; !ok || seen[action.ID] {
			continue
		}
		items = append(items, toPaletteItem(action))
	}
	return items
}

func toPaletteItem(action CommandAction) PaletteItem {
	icon := action.Icon
	if icon == "" {
		icon = SectionIcon(action.Section)
	}
	return PaletteItem{
		ID:          action.ID,
		Label:       action.Label,
		Description: action.Description,
		Section:     action.Section,
		Shortcut:    action.Shortcut,
		Icon:        icon,
	}
}
