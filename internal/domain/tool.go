package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Tool is the active drawing tool of a canvas.
type Tool string

const (
	// ToolNone is what the host sends when a toggle is released. It resolves to ToolFreehand.
	ToolNone      Tool = ""
	ToolSelect    Tool = "select"
	ToolFreehand  Tool = "freehand"
	ToolLine      Tool = "line"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolBezier    Tool = "bezier"
)

// ErrUnknownTool is returned by ParseTool for names outside the tool set.
var ErrUnknownTool = errors.New("unknown tool")

// Tools lists every selectable tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolFreehand, ToolLine, ToolRectangle, ToolCircle, ToolBezier}

// ParseTool converts a frontend tool name. The empty string is ToolNone.
func ParseTool(name string) (Tool, error) {
	t := Tool(strings.ToLower(strings.TrimSpace(name)))
	if t == ToolNone {
		return ToolNone, nil
	}
	for _, known := range Tools {
		if t == known {
			return t, nil
		}
	}
	return ToolNone, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Draws reports whether the tool creates shapes.
func (t Tool) Draws() bool {
	_, ok := t.ShapeKind()
	return ok
}

// ShapeKind returns the shape variant a drawing tool creates.
func (t Tool) ShapeKind() (ShapeKind, bool) {
	switch t {
	case ToolFreehand:
		return ShapeFreehand, true
	case ToolLine:
		return ShapeLine, true
	case ToolRectangle:
		return ShapeRectangle, true
	case ToolCircle:
		return ShapeCircle, true
	case ToolBezier:
		return ShapeBezier, true
	}
	return 0, false
}
