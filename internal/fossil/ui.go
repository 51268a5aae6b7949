package fossil

import (
	"context"
	"strings"

	log "github.com/fuel-scm/fuel/internal/log"
)

// Answer is the reply to an interactive fossil prompt.
type Answer int

// Possible answers.
const (
	AnswerNo Answer = iota
	AnswerYes
	AnswerAll
	AnswerCancel
)

// String returns the label shown for the answer.
func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "Yes"
	case AnswerAll:
		return "All"
	case AnswerCancel:
		return "Cancel"
	default:
		return "No"
	}
}

// reply is what gets written to fossil's stdin.
func (a Answer) reply() string {
	switch a {
	case AnswerYes:
		return "y\n"
	case AnswerAll:
		return "a\n"
	default:
		return "n\n"
	}
}

// UI receives output and progress from the bridge and answers prompts.
type UI interface {
	LogText(text string, isHTML bool)
	BeginProcess(text string)
	UpdateProcess(text string)
	EndProcess()
	// Query blocks until the user picks one of answers or ctx is done.
	Query(ctx context.Context, title, query string, answers []Answer) Answer
}

// NopUI discards output and declines every prompt.
type NopUI struct{}

// LogText implements UI.
func (NopUI) LogText(string, bool) {}

// BeginProcess implements UI.
func (NopUI) BeginProcess(string) {}

// UpdateProcess implements UI.
func (NopUI) UpdateProcess(string) {}

// EndProcess implements UI.
func (NopUI) EndProcess() {}

// Query implements UI.
func (NopUI) Query(context.Context, string, string, []Answer) Answer { return AnswerNo }

// LogUI writes output to the debug log and replies to prompts with a fixed answer.
type LogUI struct {
	AutoAnswer Answer
}

// LogText implements UI.
func (LogUI) LogText(text string, _ bool) {
	log.Printf("%s", text)
}

// BeginProcess implements UI.
func (LogUI) BeginProcess(text string) {
	log.Printf("begin: %s", text)
}

// UpdateProcess implements UI.
func (LogUI) UpdateProcess(string) {}

// EndProcess implements UI.
func (LogUI) EndProcess() {}

// Query implements UI.
func (u LogUI) Query(_ context.Context, title, query string, _ []Answer) Answer {
	log.Printf("%s: %s -> %s", title, query, u.AutoAnswer)
	return u.AutoAnswer
}

// promptAnswers returns the answers a fossil prompt accepts. Prompts that
// offer "a=all" style choices get AnswerAll as well.
func promptAnswers(prompt string) []Answer {
	answers := []Answer{AnswerYes, AnswerNo}
	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "a=all") || strings.Contains(lower, "a=always") {
		answers = append(answers, AnswerAll)
	}
	return append(answers, AnswerCancel)
}

// isPrompt reports whether a partial output line looks like a question:
// it ends in "?", optionally followed by one space.
func isPrompt(partial string) bool {
	return strings.HasSuffix(strings.TrimSuffix(partial, " "), "?")
}
