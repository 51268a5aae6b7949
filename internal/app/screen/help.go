package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fuel-scm/fuel/internal/theme"
)

// HelpScreen renders searchable documentation for the app controls.
// Lines wrapped in ** are section headers; "- keys: text" lines are bindings.
type HelpScreen struct {
	Viewport    viewport.Model
	Width       int
	Height      int
	FullText    []string
	SearchInput textinput.Model
	Searching   bool
	SearchQuery string
	Thm         *theme.Theme
}

// NewHelpScreen initializes help content with the available screen size.
func NewHelpScreen(text string, maxWidth, maxHeight int, thm *theme.Theme) *HelpScreen {
	ti := textinput.New()
	ti.Placeholder = "Search help"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	s := &HelpScreen{
		FullText:    strings.Split(strings.TrimRight(text, "\n"), "\n"),
		SearchInput: ti,
		Thm:         thm,
		Viewport:    viewport.New(0, 0),
	}
	s.SetSize(maxWidth, maxHeight)
	s.refreshContent()
	return s
}

// Type returns the screen type.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// SetSize updates the help screen dimensions (useful on terminal resize).
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	s.Width = 80
	s.Height = 30
	if maxWidth > 0 {
		s.Width = clampInt(int(float64(maxWidth)*0.75), 60, 100)
	}
	if maxHeight > 0 {
		s.Height = clampInt(int(float64(maxHeight)*0.8), 12, 40)
	}
	s.Viewport.Width = s.Width - 2
	s.Viewport.Height = max(5, s.Height-4)
}

// Update handles scrolling and search.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch {
	case key == "/" && !s.Searching:
		s.Searching = true
		s.SearchInput.Focus()
		return s, textinput.Blink
	case key == keyEnter && s.Searching:
		s.Searching = false
		s.SearchInput.Blur()
		return s, nil
	case isEscape(key):
		if s.Searching || s.SearchQuery != "" {
			s.Searching = false
			s.SearchInput.SetValue("")
			s.SearchQuery = ""
			s.SearchInput.Blur()
			s.refreshContent()
			return s, nil
		}
		return nil, nil
	case key == keyCtrlC:
		return nil, nil
	case key == keyQ && !s.Searching:
		return nil, nil
	}

	if s.Searching {
		s.SearchInput, cmd = s.SearchInput.Update(msg)
		if query := strings.TrimSpace(s.SearchInput.Value()); query != s.SearchQuery {
			s.SearchQuery = query
			s.refreshContent()
		}
		return s, cmd
	}

	switch key {
	case "ctrl+d", " ":
		s.Viewport.HalfPageDown()
	case "ctrl+u":
		s.Viewport.HalfPageUp()
	case "j", "down":
		s.Viewport.ScrollDown(1)
	case "k", "up":
		s.Viewport.ScrollUp(1)
	default:
		s.Viewport, cmd = s.Viewport.Update(msg)
	}
	return s, cmd
}

func (s *HelpScreen) refreshContent() {
	s.Viewport.SetContent(s.renderContent())
	s.Viewport.GotoTop()
}

// renderContent applies styling and search filtering to help text.
func (s *HelpScreen) renderContent() string {
	titleStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(s.Thm.SuccessFg).Bold(true)

	styled := make([]string, 0, len(s.FullText))
	for _, line := range s.FullText {
		if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") && len(line) > 4 {
			styled = append(styled, titleStyle.Render("▸ "+line[2:len(line)-2]))
			continue
		}
		if strings.HasPrefix(line, "- ") {
			if keys, desc, ok := strings.Cut(strings.TrimPrefix(line, "- "), ": "); ok {
				styled = append(styled, "  "+keyStyle.Render(keys)+": "+desc)
				continue
			}
		}
		styled = append(styled, line)
	}

	if s.SearchQuery == "" {
		return strings.Join(styled, "\n")
	}

	query := strings.ToLower(s.SearchQuery)
	highlight := lipgloss.NewStyle().Foreground(s.Thm.AccentFg).Background(s.Thm.Accent).Bold(true)
	var matches []string
	for _, line := range s.FullText {
		lower := strings.ToLower(line)
		if strings.Contains(lower, query) {
			matches = append(matches, highlightMatches(line, lower, query, highlight))
		}
	}
	if len(matches) == 0 {
		return fmt.Sprintf("No help entries match %q", s.SearchQuery)
	}
	return strings.Join(matches, "\n")
}

// highlightMatches highlights all occurrences of the query in the line.
func highlightMatches(line, lowerLine, lowerQuery string, style lipgloss.Style) string {
	if lowerQuery == "" || len(lowerLine) != len(line) {
		return line
	}

	var b strings.Builder
	from := 0
	for {
		idx := strings.Index(lowerLine[from:], lowerQuery)
		if idx < 0 {
			b.WriteString(line[from:])
			break
		}
		start := from + idx
		end := start + len(lowerQuery)
		b.WriteString(line[from:start])
		b.WriteString(style.Render(line[start:end]))
		from = end
	}
	return b.String()
}

// View renders the help content and search input inside the viewport.
func (s *HelpScreen) View() string {
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
		Render("Help")

	blocks := []string{title}
	if s.Searching || s.SearchQuery != "" {
		blocks = append(blocks, lipgloss.NewStyle().Padding(0, 1).Render(s.SearchInput.View()))
	}
	blocks = append(blocks,
		lipgloss.NewStyle().Padding(0, 1).Render(s.Viewport.View()),
		lipgloss.NewStyle().Foreground(s.Thm.MutedFg).Padding(0, 1).Render("j/k: scroll • Ctrl+d/u: page • /: search • esc: close"),
	)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}
