package app

import (
	"context"
	"regexp"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fuel-scm/fuel/internal/fossil"
	log "github.com/fuel-scm/fuel/internal/log"
)

// paneMarker tags debug log lines that belong in the log pane. It is only
// recognised right after the logger's timestamp.
const paneMarker = "| "

var paneLineRe = regexp.MustCompile(`(?s)^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)? ` + regexp.QuoteMeta(paneMarker) + `(.*)$`)

// maxLogLines bounds the log pane history.
const maxLogLines = 1000

// queryRequest is a fossil prompt waiting for the user.
type queryRequest struct {
	title   string
	query   string
	answers []fossil.Answer
	reply   chan fossil.Answer
}

// tuiBridge implements fossil.UI for the Bubble Tea program. Fossil output
// goes through the debug logger and comes back to the log pane through a
// subscription; prompts are handed to the model on a channel.
type tuiBridge struct {
	queries chan *queryRequest

	mu      sync.Mutex
	pending []string
	status  string
	notify  chan struct{}
	unsub   func()
}

func newTUIBridge() *tuiBridge {
	u := &tuiBridge{
		queries: make(chan *queryRequest),
		notify:  make(chan struct{}, 1),
	}
	u.unsub = log.Subscribe(u.collect)
	return u
}

// collect keeps pane lines until the model drains them. It never blocks:
// the model itself logs from inside Update.
func (u *tuiBridge) collect(line string) {
	m := paneLineRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	msg := m[1]
	u.mu.Lock()
	u.pending = append(u.pending, msg)
	if len(u.pending) > maxLogLines {
		u.pending = u.pending[len(u.pending)-maxLogLines:]
	}
	u.mu.Unlock()
	select {
	case u.notify <- struct{}{}:
	default:
	}
}

func (u *tuiBridge) drain() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	lines := u.pending
	u.pending = nil
	return lines
}

func (u *tuiBridge) close() {
	if u.unsub != nil {
		u.unsub()
		u.unsub = nil
	}
}

// LogText implements fossil.UI.
func (u *tuiBridge) LogText(text string, _ bool) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		log.Printf("%s%s", paneMarker, line)
	}
}

// BeginProcess implements fossil.UI.
func (u *tuiBridge) BeginProcess(text string) {
	u.setStatus(text)
}

// UpdateProcess implements fossil.UI.
func (u *tuiBridge) UpdateProcess(text string) {
	u.setStatus(text)
}

// EndProcess implements fossil.UI.
func (u *tuiBridge) EndProcess() {
	u.setStatus("")
}

func (u *tuiBridge) setStatus(text string) {
	u.mu.Lock()
	u.status = text
	u.mu.Unlock()
}

// Status returns the progress text of the running process.
func (u *tuiBridge) Status() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.status
}

// Query implements fossil.UI. It blocks the fossil goroutine until the
// model answers or ctx is cancelled.
func (u *tuiBridge) Query(ctx context.Context, title, query string, answers []fossil.Answer) fossil.Answer {
	req := &queryRequest{
		title:   title,
		query:   query,
		answers: answers,
		reply:   make(chan fossil.Answer, 1),
	}
	select {
	case u.queries <- req:
	case <-ctx.Done():
		return fossil.AnswerCancel
	}
	select {
	case answer := <-req.reply:
		return answer
	case <-ctx.Done():
		return fossil.AnswerCancel
	}
}

func (u *tuiBridge) waitForLog() tea.Cmd {
	return func() tea.Msg {
		<-u.notify
		return logLinesMsg{lines: u.drain()}
	}
}

func (u *tuiBridge) waitForQuery() tea.Cmd {
	return func() tea.Msg {
		return queryMsg{req: <-u.queries}
	}
}

// cancelIndex is the answer used when the prompt is dismissed.
func cancelIndex(answers []fossil.Answer) int {
	idx := -1
	for i, a := range answers {
		switch a {
		case fossil.AnswerCancel:
			return i
		case fossil.AnswerNo:
			idx = i
		}
	}
	return idx
}
