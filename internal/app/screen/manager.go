package screen

import tea "github.com/charmbracelet/bubbletea"

// Manager keeps modal screens on a stack; only the top one receives input.
type Manager struct {
	stack []Screen
}

// NewManager creates an empty screen manager.
func NewManager() *Manager {
	return &Manager{}
}

// Push shows s on top of the current screen.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	m.stack = append(m.stack, s)
}

// Pop removes the current screen and returns it, or nil if none was shown.
func (m *Manager) Pop() Screen {
	if len(m.stack) == 0 {
		return nil
	}
	top := m.stack[len(m.stack)-1]
	m.stack[len(m.stack)-1] = nil
	m.stack = m.stack[:len(m.stack)-1]
	return top
}

// Current returns the screen receiving input, or nil.
func (m *Manager) Current() Screen {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// IsActive reports whether any screen is shown.
func (m *Manager) IsActive() bool {
	return len(m.stack) > 0
}

// Type returns the type of the current screen, or TypeNone.
func (m *Manager) Type() Type {
	if cur := m.Current(); cur != nil {
		return cur.Type()
	}
	return TypeNone
}

// Clear drops every screen.
func (m *Manager) Clear() {
	m.stack = nil
}

// Depth returns the number of stacked screens, including the current one.
func (m *Manager) Depth() int {
	return len(m.stack)
}

// Update routes a key to the current screen and pops it when it closes.
func (m *Manager) Update(msg tea.KeyMsg) tea.Cmd {
	cur := m.Current()
	if cur == nil {
		return nil
	}
	next, c := cur.Update(msg)
	if next == nil {
		// The callback may have pushed a follow-up screen; remove only cur.
		m.remove(cur)
		return c
	}
	if next != cur {
		m.replace(cur, next)
	}
	return c
}

func (m *Manager) remove(s Screen) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.stack[i] == s {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return
		}
	}
}

func (m *Manager) replace(old, s Screen) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.stack[i] == old {
			m.stack[i] = s
			return
		}
	}
}
