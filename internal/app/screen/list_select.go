package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	"github.com/fuel-scm/fuel/internal/theme"
)

// SelectionItem represents a single item in a list selection.
type SelectionItem struct {
	ID          string
	Label       string
	Description string
}

// selectionSource matches against label and description together.
type selectionSource []SelectionItem

func (s selectionSource) String(i int) string {
	if s[i].Description == "" {
		return s[i].Label
	}
	return s[i].Label + " " + s[i].Description
}

func (s selectionSource) Len() int { return len(s) }

// ListSelectionScreen lets the user pick from a list of options, with a
// fuzzy filter.
type ListSelectionScreen struct {
	Items    []SelectionItem
	Filtered []SelectionItem

	FilterInput  textinput.Model
	FilterActive bool
	Cursor       int
	ScrollOffset int
	Width        int
	Height       int
	Title        string
	NoResults    string
	Thm          *theme.Theme

	OnSelect func(SelectionItem) tea.Cmd
	OnCancel func() tea.Cmd
	// OnDelete is bound to ctrl+d when set; the item is dropped from the list.
	OnDelete func(SelectionItem) tea.Cmd
}

// NewListSelectionScreen builds a list selection screen with 80% of screen size.
func NewListSelectionScreen(items []SelectionItem, title, placeholder, noResults string, maxWidth, maxHeight int, initialID string, thm *theme.Theme) *ListSelectionScreen {
	width := max(60, int(float64(maxWidth)*0.8))
	height := max(12, int(float64(maxHeight)*0.8))

	if placeholder == "" {
		placeholder = "Filter..."
	}
	if noResults == "" {
		noResults = "No results found."
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Prompt = "> "
	ti.Width = width - 4

	cursor := 0
	if len(items) == 0 {
		cursor = -1
	}
	for i, item := range items {
		if initialID != "" && item.ID == initialID {
			cursor = i
			break
		}
	}

	return &ListSelectionScreen{
		Items:       items,
		Filtered:    items,
		FilterInput: ti,
		Cursor:      cursor,
		Width:       width,
		Height:      height,
		Title:       title,
		NoResults:   noResults,
		Thm:         thm,
	}
}

// Type returns the screen type.
func (s *ListSelectionScreen) Type() Type {
	return TypeListSelect
}

func (s *ListSelectionScreen) moveCursor(delta int) {
	if len(s.Filtered) == 0 {
		return
	}
	s.Cursor = clampInt(s.Cursor+delta, 0, len(s.Filtered)-1)
	maxVisible := s.maxVisible()
	if s.Cursor < s.ScrollOffset {
		s.ScrollOffset = s.Cursor
	}
	if s.Cursor >= s.ScrollOffset+maxVisible {
		s.ScrollOffset = s.Cursor - maxVisible + 1
	}
}

func (s *ListSelectionScreen) selectCurrent() (Screen, tea.Cmd) {
	item, ok := s.Selected()
	if !ok || s.OnSelect == nil {
		return nil, nil
	}
	return nil, s.OnSelect(item)
}

func (s *ListSelectionScreen) deleteCurrent() (Screen, tea.Cmd) {
	item, ok := s.Selected()
	if !ok || s.OnDelete == nil {
		return s, nil
	}
	kept := s.Items[:0:0]
	for _, it := range s.Items {
		if it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	s.Items = kept
	s.applyFilter()
	return s, s.OnDelete(item)
}

// Update handles keyboard input and returns nil to signal the screen should close.
func (s *ListSelectionScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	key := msg.String()

	switch key {
	case keyEnter:
		return s.selectCurrent()
	case keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	case "ctrl+d":
		return s.deleteCurrent()
	case "up", "ctrl+k":
		s.moveCursor(-1)
		return s, nil
	case "down", "ctrl+j":
		s.moveCursor(1)
		return s, nil
	}

	if isEscape(key) {
		if s.FilterActive {
			s.FilterActive = false
			s.FilterInput.Blur()
			return s, nil
		}
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	}

	if !s.FilterActive {
		switch key {
		case "f", "/":
			s.FilterActive = true
			s.FilterInput.Focus()
			return s, textinput.Blink
		case "k":
			s.moveCursor(-1)
		case "j":
			s.moveCursor(1)
		case keyQ:
			if s.OnCancel != nil {
				return nil, s.OnCancel()
			}
			return nil, nil
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.FilterInput, cmd = s.FilterInput.Update(msg)
	s.applyFilter()
	return s, cmd
}

// View renders the list selection screen.
func (s *ListSelectionScreen) View() string {
	maxVisible := s.maxVisible()

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width)

	title := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render(s.Title)

	itemStyle := lipgloss.NewStyle().Padding(0, 1).Width(s.Width - 2)
	selectedStyle := itemStyle.
		Background(s.Thm.Accent).
		Foreground(s.Thm.AccentFg).
		Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(s.Thm.MutedFg)

	end := min(s.ScrollOffset+maxVisible, len(s.Filtered))
	start := min(s.ScrollOffset, end)

	itemViews := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		item := s.Filtered[i]
		label := item.Label
		if i == s.Cursor {
			if item.Description != "" {
				label = fmt.Sprintf("%s  %s", label, item.Description)
			}
			itemViews = append(itemViews, selectedStyle.Render(ansi.Strip(label)))
			continue
		}
		if item.Description != "" {
			label = fmt.Sprintf("%s  %s", label, descStyle.Render(item.Description))
		}
		itemViews = append(itemViews, itemStyle.Render(label))
	}
	if len(s.Filtered) == 0 {
		itemViews = append(itemViews, itemStyle.Foreground(s.Thm.MutedFg).Italic(true).Render(s.NoResults))
	}

	footerText := "j/k to move • f to filter • Enter to select • Esc to cancel"
	if s.FilterActive {
		footerText = "Esc to return • Enter to select"
	}
	if s.OnDelete != nil {
		footerText = "Ctrl+d to forget • " + footerText
	}
	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Right).
		Width(s.Width - 2).
		PaddingTop(1).
		Render(footerText)

	blocks := []string{title}
	if s.FilterActive || s.FilterInput.Value() != "" {
		blocks = append(blocks, lipgloss.NewStyle().Padding(0, 1).Foreground(s.Thm.TextFg).Render(s.FilterInput.View()))
	}
	blocks = append(blocks, strings.Join(itemViews, "\n"), footer)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

// Selected returns the currently selected item, if any.
func (s *ListSelectionScreen) Selected() (SelectionItem, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Filtered) {
		return SelectionItem{}, false
	}
	return s.Filtered[s.Cursor], true
}

func (s *ListSelectionScreen) applyFilter() {
	query := strings.TrimSpace(s.FilterInput.Value())
	if query == "" {
		s.Filtered = s.Items
	} else {
		matches := fuzzy.FindFrom(query, selectionSource(s.Items))
		s.Filtered = make([]SelectionItem, 0, len(matches))
		for _, m := range matches {
			s.Filtered = append(s.Filtered, s.Items[m.Index])
		}
	}

	if len(s.Filtered) == 0 {
		s.Cursor = -1
	} else if s.Cursor >= len(s.Filtered) || s.Cursor < 0 {
		s.Cursor = 0
	}
	s.ScrollOffset = 0
}

func (s *ListSelectionScreen) maxVisible() int {
	return max(1, s.Height-6)
}
