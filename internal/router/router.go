// Package router keeps the stack of open screens. Screens navigate by
// returning one of the messages below; only the top screen sees input.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ndscreen/internal/screen"
)

type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	PopToRootMsg     struct{}
)

// Router owns the screen stack. It is never empty.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Active returns the screen receiving input.
func (r *Router) Active() screen.Screen { return r.stack[r.top()] }

func (r *Router) Depth() int { return len(r.stack) }

// Push opens s above the current screen.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s without changing the depth.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[r.top()] = s
	return s.Init()
}

// Pop closes the top screen. The root is never popped.
func (r *Router) Pop() tea.Cmd {
	return r.truncate(r.top())
}

// PopToRoot closes everything above the root.
func (r *Router) PopToRoot() tea.Cmd {
	return r.truncate(1)
}

func (r *Router) truncate(n int) tea.Cmd {
	if n < 1 || n >= len(r.stack) {
		return nil
	}
	clear(r.stack[n:])
	r.stack = r.stack[:n]
	if rv, ok := r.Active().(screen.Revealer); ok {
		return rv.Revealed()
	}
	return nil
}

// Breadcrumb joins the titles of the stack from the root up, skipping
// screens with no title.
func (r *Router) Breadcrumb() string {
	parts := make([]string, 0, len(r.stack))
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " › ")
}

// Update applies navigation messages and forwards anything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}

	next, cmd := r.Active().Update(msg)
	r.stack[r.top()] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
