// Package canvas is the interactive drawing surface: tool state, shapes,
// selection and zoom. A Controller is not safe for concurrent use; callers
// deliver events one at a time.
package canvas

import (
	"github.com/gogpu/gg"

	"sketch/internal/domain"
)

// Controller turns pointer and toolbar events into shape and selection changes.
type Controller struct {
	tools   *ToolMachine
	surface Surface
	overlay *Overlay
	view    View

	width, height float64

	shapes map[ShapeID]*Shape
	active *Shape
	nextID ShapeID
}

// NewController binds a controller to surface with a width×height canvas.
func NewController(surface Surface, width, height float64) *Controller {
	c := &Controller{
		tools:   NewToolMachine(),
		surface: surface,
		overlay: NewOverlay(),
		view:    NewView(),
		width:   max(width, 0),
		height:  max(height, 0),
		shapes:  make(map[ShapeID]*Shape),
	}
	c.overlay.Attach(surface)
	c.overlay.SetActive(false)
	c.applyZoom()
	return c
}

// ─────────────────────────────────────────────────────────────
// Pointer events
// ─────────────────────────────────────────────────────────────

// PointerDown selects in select mode, otherwise starts a shape at the
// mapped point.
func (c *Controller) PointerDown(screen gg.Point) {
	p := c.canvasPoint(screen)
	tool := c.tools.Active()
	if tool == domain.ToolSelect {
		if s := c.hitTest(p); s != nil {
			c.overlay.SetTarget(s)
		} else {
			c.overlay.Clear()
		}
		return
	}

	c.overlay.Clear()
	c.finishActive()
	kind, _ := tool.ShapeKind()
	c.nextID++
	s := newShape(c.nextID, kind, p)
	c.shapes[s.ID] = s
	c.surface.Insert(s.Node())
	c.active = s
}

// PointerMove drags the in-progress shape.
func (c *Controller) PointerMove(screen gg.Point) {
	if c.tools.Active() == domain.ToolSelect || c.active == nil {
		return
	}
	c.active.Update(c.canvasPoint(screen))
}

// PointerUp applies the last point and freezes the in-progress shape.
func (c *Controller) PointerUp(screen gg.Point) {
	if c.tools.Active() == domain.ToolSelect || c.active == nil {
		return
	}
	c.active.Update(c.canvasPoint(screen))
	c.finishActive()
}

func (c *Controller) finishActive() {
	if c.active != nil {
		c.active.commit()
		c.active = nil
	}
}

// canvasPoint maps a screen point into canvas-local space and clamps it to
// the canvas bounds.
func (c *Controller) canvasPoint(screen gg.Point) gg.Point {
	p := c.view.ToCanvas(screen)
	return gg.Pt(clamp(p.X, 0, c.width), clamp(p.Y, 0, c.height))
}

// hitTest returns the topmost visible shape containing p.
func (c *Controller) hitTest(p gg.Point) *Shape {
	if !c.overlay.Active() {
		return nil
	}
	for i := c.surface.Len() - 1; i >= 0; i-- {
		n := c.surface.At(i)
		if c.overlay.IsOverlayNode(n) || !c.surface.IsVisible(n) || n.Shape() == nil {
			continue
		}
		if c.surface.Contains(n, p) {
			return n.Shape()
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────
// Toolbar
// ─────────────────────────────────────────────────────────────

// SetTool activates t (ToolNone means freehand).
func (c *Controller) SetTool(t domain.Tool) Transition {
	tr := c.tools.Set(t)
	c.applyTransition(tr)
	return tr
}

// ToggleTool is a toolbar press with click-again-to-release semantics.
func (c *Controller) ToggleTool(t domain.Tool) Transition {
	tr := c.tools.Toggle(t)
	c.applyTransition(tr)
	return tr
}

func (c *Controller) applyTransition(tr Transition) {
	c.finishActive()
	if tr.To == domain.ToolSelect {
		c.overlay.SetActive(true)
		return
	}
	c.overlay.Clear()
	c.overlay.SetActive(false)
}

// Tool returns the active tool.
func (c *Controller) Tool() domain.Tool { return c.tools.Active() }

// ZoomIn scales the view up by one step.
func (c *Controller) ZoomIn() {
	c.view.setZoom(c.view.Zoom * ZoomStep)
	c.applyZoom()
}

// ZoomOut scales the view down by one step.
func (c *Controller) ZoomOut() {
	c.view.setZoom(c.view.Zoom / ZoomStep)
	c.applyZoom()
}

// ZoomReset returns to 1:1.
func (c *Controller) ZoomReset() {
	c.view.setZoom(1)
	c.applyZoom()
}

func (c *Controller) applyZoom() {
	c.surface.SetScale(c.view.Zoom)
}

// Zoom returns the current zoom factor.
func (c *Controller) Zoom() float64 { return c.view.Zoom }

// View returns the current screen transform.
func (c *Controller) View() View { return c.view }

// Clear removes every shape and resets selection. The overlay stays attached
// and follows the active tool.
func (c *Controller) Clear() {
	c.surface.RemoveAll()
	c.active = nil
	c.shapes = make(map[ShapeID]*Shape)
	c.overlay.Attach(c.surface)
	c.overlay.Clear()
	c.overlay.SetActive(c.tools.Active() == domain.ToolSelect)
}

// Resize changes the clamp bounds. Existing shapes are untouched.
func (c *Controller) Resize(width, height float64) {
	c.width = max(width, 0)
	c.height = max(height, 0)
}

// Bounds returns the canvas size.
func (c *Controller) Bounds() (width, height float64) { return c.width, c.height }

// ─────────────────────────────────────────────────────────────
// Queries
// ─────────────────────────────────────────────────────────────

// Selected resolves the overlay target. A target that no longer exists
// reads as no selection; the overlay itself is left alone.
func (c *Controller) Selected() (*Shape, bool) {
	id, ok := c.overlay.Target()
	if !ok {
		return nil, false
	}
	s, ok := c.shapes[id]
	return s, ok
}

// Shape looks up a shape by ID.
func (c *Controller) Shape(id ShapeID) (*Shape, bool) {
	s, ok := c.shapes[id]
	return s, ok
}

// InProgress returns the shape under construction, if any.
func (c *Controller) InProgress() (*Shape, bool) {
	return c.active, c.active != nil
}

// Shapes returns shapes bottom to top.
func (c *Controller) Shapes() []*Shape {
	out := make([]*Shape, 0, len(c.shapes))
	for i := 0; i < c.surface.Len(); i++ {
		if s := c.surface.At(i).Shape(); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Overlay exposes the selection overlay for renderers.
func (c *Controller) Overlay() *Overlay { return c.overlay }

// Surface returns the display list the controller draws into.
func (c *Controller) Surface() Surface { return c.surface }
