package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fuel-scm/fuel/internal/theme"
)

// InputScreen displays a modal input prompt with optional validation and
// an optional checkbox.
type InputScreen struct {
	Prompt   string
	Input    textinput.Model
	ErrorMsg string
	Thm      *theme.Theme

	// Validate returns an error message, or "" when the value is accepted.
	Validate func(string) string

	OnSubmit func(value string, checked bool) tea.Cmd
	OnCancel func() tea.Cmd

	CheckboxEnabled bool
	CheckboxChecked bool
	CheckboxFocused bool
	CheckboxLabel   string

	boxWidth int
}

// NewInputScreen creates an input screen with the given parameters.
func NewInputScreen(prompt, placeholder, value string, thm *theme.Theme) *InputScreen {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	ti.CharLimit = 512
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(thm.TextFg)
	ti.Width = 52

	return &InputScreen{
		Prompt:   prompt,
		Input:    ti,
		Thm:      thm,
		boxWidth: 60,
	}
}

// SetCheckbox enables a checkbox with the given label and default state.
func (s *InputScreen) SetCheckbox(label string, defaultChecked bool) {
	s.CheckboxEnabled = true
	s.CheckboxLabel = label
	s.CheckboxChecked = defaultChecked
	s.CheckboxFocused = false
}

// Type returns the screen type.
func (s *InputScreen) Type() Type {
	return TypeInput
}

// Update handles keyboard input for the input screen.
// Returns nil to signal the screen should be closed.
func (s *InputScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch {
	case (key == keyTab || key == keyShiftTab) && s.CheckboxEnabled:
		s.CheckboxFocused = !s.CheckboxFocused
		if s.CheckboxFocused {
			s.Input.Blur()
		} else {
			s.Input.Focus()
		}
		return s, nil

	case key == " " && s.CheckboxEnabled && s.CheckboxFocused:
		s.CheckboxChecked = !s.CheckboxChecked
		return s, nil

	case key == keyEnter:
		value := s.Input.Value()
		if s.Validate != nil {
			if errMsg := strings.TrimSpace(s.Validate(value)); errMsg != "" {
				s.ErrorMsg = errMsg
				return s, nil
			}
		}
		s.ErrorMsg = ""
		if s.OnSubmit != nil {
			cmd = s.OnSubmit(value, s.CheckboxChecked)
		}
		return nil, cmd

	case isEscape(key) || key == keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	}

	if s.CheckboxFocused {
		return s, nil
	}
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// View renders the input screen.
func (s *InputScreen) View() string {
	width := s.boxWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(width)

	promptStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(width - 6).
		Align(lipgloss.Center)

	inputWrapperStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(width - 6).
		BorderForeground(s.Thm.Border)
	if s.CheckboxFocused {
		inputWrapperStyle = inputWrapperStyle.BorderForeground(s.Thm.BorderDim)
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(width - 6).
		Align(lipgloss.Center)

	contentLines := []string{
		promptStyle.Render(s.Prompt),
		inputWrapperStyle.Render(s.Input.View()),
	}

	if s.CheckboxEnabled {
		checkbox := "[ ] "
		if s.CheckboxChecked {
			checkbox = "[x] "
		}
		checkboxStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent)
		if s.CheckboxFocused {
			checkboxStyle = checkboxStyle.
				Background(s.Thm.Accent).
				Foreground(s.Thm.AccentFg).
				Padding(0, 1).
				Bold(true)
		}
		contentLines = append(contentLines, checkboxStyle.Render(checkbox+s.CheckboxLabel))
	}

	if s.ErrorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(s.Thm.ErrorFg).
			Width(width - 6).
			Align(lipgloss.Center)
		contentLines = append(contentLines, errorStyle.Render(s.ErrorMsg))
	}

	footer := "Enter to confirm • Esc to cancel"
	if s.CheckboxEnabled {
		footer = "Tab to switch focus • Space to toggle • Enter to confirm • Esc to cancel"
	}
	contentLines = append(contentLines, footerStyle.Render(footer))

	return boxStyle.Render(strings.Join(contentLines, "\n\n"))
}
