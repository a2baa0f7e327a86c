// Package router keeps the stack of TUI screens and applies navigation
// messages to it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/mathforge/mathforge/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen and returns to the one below.
type PopScreenMsg struct{}

// ReplaceScreenMsg closes the current screen and opens Screen in its place.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PushCmd returns a command that opens s.
func PushCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// PopCmd is a command that closes the current screen.
func PopCmd() tea.Msg { return PopScreenMsg{} }

// ReplaceCmd returns a command that swaps the current screen for s.
func ReplaceCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Router owns the screen stack. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New returns a Router whose root screen is root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen. The uncovered screen is resumed if it
// implements screen.Resumer. Popping the root is a no-op.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) == 1 {
		return nil
	}
	r.stack[len(r.stack)-1] = nil
	r.stack = r.stack[:len(r.stack)-1]
	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace swaps the top screen for s and returns s's Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen { return r.stack[len(r.stack)-1] }

// Depth returns the number of open screens.
func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
