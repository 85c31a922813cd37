package canvas

import (
	"fmt"

	"sketch/internal/domain"
)

// Transition records one tool change.
type Transition struct {
	From domain.Tool
	To   domain.Tool
}

// Changed reports whether the active tool differs after the transition.
func (t Transition) Changed() bool { return t.From != t.To }

// ToolMachine holds the active tool. Freehand is the resting state.
type ToolMachine struct {
	active domain.Tool
}

// NewToolMachine starts in freehand.
func NewToolMachine() *ToolMachine {
	return &ToolMachine{active: domain.ToolFreehand}
}

// Active returns the current tool. It is never ToolNone.
func (m *ToolMachine) Active() domain.Tool { return m.active }

// Set activates t. ToolNone resolves to freehand.
func (m *ToolMachine) Set(t domain.Tool) Transition {
	if t == domain.ToolNone {
		t = domain.ToolFreehand
	}
	if t != domain.ToolSelect && !t.Draws() {
		panic(fmt.Sprintf("canvas: set unknown tool %q", string(t)))
	}
	tr := Transition{From: m.active, To: t}
	m.active = t
	return tr
}

// Toggle is a toolbar press: pressing the active tool releases it back to
// freehand, any other tool becomes active.
func (m *ToolMachine) Toggle(t domain.Tool) Transition {
	if t == m.active {
		return m.Set(domain.ToolNone)
	}
	return m.Set(t)
}
