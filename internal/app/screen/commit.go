package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fuel-scm/fuel/internal/theme"
)

// CommitRequest is what the commit screen submits.
type CommitRequest struct {
	Message string
	Branch  string
	Private bool
}

const (
	commitFocusMessage = iota
	commitFocusBranch
	commitFocusPrivate
	commitFocusCount
)

// CommitScreen collects a commit message and optional new branch.
type CommitScreen struct {
	Files    []string
	Message  textarea.Model
	Branch   textinput.Model
	Private  bool
	ErrorMsg string
	Thm      *theme.Theme

	OnSubmit func(CommitRequest) tea.Cmd
	OnCancel func() tea.Cmd

	focus     int
	boxWidth  int
	boxHeight int
}

// NewCommitScreen creates the commit dialog sized relative to the terminal.
func NewCommitScreen(files []string, maxWidth, maxHeight int, thm *theme.Theme) *CommitScreen {
	width := 90
	height := 24
	if maxWidth > 0 {
		width = clampInt(int(float64(maxWidth)*0.75), 60, 110)
	}
	if maxHeight > 0 {
		height = clampInt(int(float64(maxHeight)*0.75), 18, 36)
	}

	ta := textarea.New()
	ta.Placeholder = "Commit message"
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(width - 8)
	ta.SetHeight(clampInt(height-16, 4, 20))
	ta.Focus()

	focused, _ := textarea.DefaultStyles()
	focused.Base = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(thm.Border).
		Padding(0, 1)
	focused.Text = lipgloss.NewStyle().Foreground(thm.TextFg)
	focused.Placeholder = lipgloss.NewStyle().Foreground(thm.MutedFg).Italic(true)
	focused.CursorLine = lipgloss.NewStyle().Foreground(thm.TextFg)
	focused.EndOfBuffer = lipgloss.NewStyle().Foreground(thm.MutedFg)
	blurred := focused
	blurred.Base = blurred.Base.BorderForeground(thm.BorderDim)
	ta.FocusedStyle = focused
	ta.BlurredStyle = blurred

	branch := textinput.New()
	branch.Placeholder = "new branch (optional)"
	branch.Prompt = ""
	branch.CharLimit = 200
	branch.Width = width - 12
	branch.TextStyle = lipgloss.NewStyle().Foreground(thm.TextFg)

	return &CommitScreen{
		Files:     files,
		Message:   ta,
		Branch:    branch,
		Thm:       thm,
		boxWidth:  width,
		boxHeight: height,
	}
}

// Type returns the screen type.
func (s *CommitScreen) Type() Type {
	return TypeCommit
}

func (s *CommitScreen) setFocus(focus int) {
	s.focus = focus
	s.Message.Blur()
	s.Branch.Blur()
	switch focus {
	case commitFocusMessage:
		s.Message.Focus()
	case commitFocusBranch:
		s.Branch.Focus()
	}
}

// Request returns the current form values.
func (s *CommitScreen) Request() CommitRequest {
	return CommitRequest{
		Message: strings.TrimSpace(s.Message.Value()),
		Branch:  strings.TrimSpace(s.Branch.Value()),
		Private: s.Private,
	}
}

// Update handles keyboard input. Ctrl+S submits, Tab moves between fields.
func (s *CommitScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch {
	case key == "ctrl+s":
		req := s.Request()
		if req.Message == "" {
			s.ErrorMsg = "Commit message is empty"
			return s, nil
		}
		if req.Private && req.Branch == "" {
			s.ErrorMsg = "A private commit needs a new branch"
			return s, nil
		}
		s.ErrorMsg = ""
		if s.OnSubmit != nil {
			cmd = s.OnSubmit(req)
		}
		return nil, cmd
	case isEscape(key) || key == keyCtrlC:
		if s.OnCancel != nil {
			return nil, s.OnCancel()
		}
		return nil, nil
	case key == keyTab:
		s.setFocus((s.focus + 1) % commitFocusCount)
		return s, nil
	case key == keyShiftTab:
		s.setFocus((s.focus - 1 + commitFocusCount) % commitFocusCount)
		return s, nil
	}

	switch s.focus {
	case commitFocusMessage:
		s.Message, cmd = s.Message.Update(msg)
	case commitFocusBranch:
		s.Branch, cmd = s.Branch.Update(msg)
	case commitFocusPrivate:
		if key == " " || key == keyEnter {
			s.Private = !s.Private
		}
	}
	return s, cmd
}

// View renders the commit dialog.
func (s *CommitScreen) View() string {
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
	mutedStyle := lipgloss.NewStyle().Foreground(s.Thm.MutedFg)

	title := "Commit all changes"
	if len(s.Files) > 0 {
		title = fmt.Sprintf("Commit %d file(s)", len(s.Files))
	}

	branchBorder := s.Thm.BorderDim
	if s.focus == commitFocusBranch {
		branchBorder = s.Thm.Border
	}
	branchStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(branchBorder).
		Padding(0, 1).
		Width(width - 8)

	checkbox := "[ ] "
	if s.Private {
		checkbox = "[x] "
	}
	checkboxStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent)
	if s.focus == commitFocusPrivate {
		checkboxStyle = checkboxStyle.Background(s.Thm.Accent).Foreground(s.Thm.AccentFg).Bold(true)
	}

	parts := []string{
		promptStyle.Render(title),
		s.Message.View(),
		branchStyle.Render(s.Branch.View()),
		checkboxStyle.Render(checkbox + "Private branch"),
	}
	if s.ErrorMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(s.Thm.ErrorFg).Render(s.ErrorMsg))
	}
	parts = append(parts, mutedStyle.Render("Ctrl+S commit • Tab next field • Esc cancel"))

	return boxStyle.Render(strings.Join(parts, "\n\n"))
}
