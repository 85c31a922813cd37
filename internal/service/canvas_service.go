package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gogpu/gg"

	"sketch/internal/canvas"
	"sketch/internal/config"
	"sketch/internal/domain"
	"sketch/internal/render"
)

// ─────────────────────────────────────────────────────────────
// Canvas Service: serialized access to the drawing surface
// ─────────────────────────────────────────────────────────────

// EventCanvasChanged carries a canvas.Scene after every committed change.
const EventCanvasChanged = "canvas:changed"

// CanvasService owns the canvas controller. Wails bindings, the MCP server
// and the config watcher all call in from their own goroutines; every call
// holds mu so the controller sees one event at a time.
type CanvasService struct {
	mu   sync.Mutex
	ctrl *canvas.Controller
	opts render.Options

	emitter EventEmitter
	nav     domain.Navigator
}

// NewCanvasService builds an empty canvas sized and styled from cfg.
func NewCanvasService(cfg config.Config, emitter EventEmitter, nav domain.Navigator) *CanvasService {
	surface := canvas.NewDisplayList(cfg.StrokeWidth, cfg.HitSlop)
	opts := render.DefaultOptions()
	opts.StrokeWidth = cfg.StrokeWidth
	return &CanvasService{
		ctrl:    canvas.NewController(surface, cfg.CanvasWidth, cfg.CanvasHeight),
		opts:    opts,
		emitter: emitter,
		nav:     nav,
	}
}

func (s *CanvasService) emit(ctx context.Context) canvas.Scene {
	sc := s.ctrl.Scene()
	if s.emitter != nil {
		s.emitter.Emit(ctx, EventCanvasChanged, sc)
	}
	return sc
}

// ── Pointer ────────────────────────────────────────────────

// PointerDown starts a shape or selects, depending on the tool.
func (s *CanvasService) PointerDown(ctx context.Context, x, y float64) canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.PointerDown(gg.Pt(x, y))
	return s.emit(ctx)
}

// PointerMove drags the in-progress shape. Moves are not broadcast; the
// caller gets the scene back directly.
func (s *CanvasService) PointerMove(_ context.Context, x, y float64) canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.PointerMove(gg.Pt(x, y))
	return s.ctrl.Scene()
}

// PointerUp finishes the in-progress shape.
func (s *CanvasService) PointerUp(ctx context.Context, x, y float64) canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.PointerUp(gg.Pt(x, y))
	return s.emit(ctx)
}

// Stroke replays a full down/move/up gesture atomically.
func (s *CanvasService) Stroke(ctx context.Context, points []gg.Point) (canvas.Scene, error) {
	if len(points) < 2 {
		return canvas.Scene{}, fmt.Errorf("stroke needs at least 2 points, got %d", len(points))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stroke(points)
	return s.emit(ctx), nil
}

// Draw activates a drawing tool and replays the gesture in one step.
func (s *CanvasService) Draw(ctx context.Context, name string, points []gg.Point) (canvas.Scene, error) {
	tool, err := domain.ParseTool(name)
	if err != nil {
		return canvas.Scene{}, fmt.Errorf("draw: %w", err)
	}
	if tool != domain.ToolNone && !tool.Draws() {
		return canvas.Scene{}, fmt.Errorf("draw: tool %q does not draw", tool)
	}
	if len(points) < 2 {
		return canvas.Scene{}, fmt.Errorf("draw needs at least 2 points, got %d", len(points))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SetTool(tool)
	s.stroke(points)
	return s.emit(ctx), nil
}

func (s *CanvasService) stroke(points []gg.Point) {
	s.ctrl.PointerDown(points[0])
	for _, p := range points[1 : len(points)-1] {
		s.ctrl.PointerMove(p)
	}
	s.ctrl.PointerUp(points[len(points)-1])
}

// ── Toolbar ────────────────────────────────────────────────

// SetTool activates the named tool. An empty name means freehand.
func (s *CanvasService) SetTool(ctx context.Context, name string) (canvas.Scene, error) {
	tool, err := domain.ParseTool(name)
	if err != nil {
		return canvas.Scene{}, fmt.Errorf("set tool: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SetTool(tool)
	return s.emit(ctx), nil
}

// ToggleTool is a toolbar press: the active tool toggles back to freehand.
func (s *CanvasService) ToggleTool(ctx context.Context, name string) (canvas.Scene, error) {
	tool, err := domain.ParseTool(name)
	if err != nil {
		return canvas.Scene{}, fmt.Errorf("toggle tool: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tr := s.ctrl.ToggleTool(tool)
	if tr.Changed() {
		log.Printf("canvas: tool %s -> %s", tr.From, tr.To)
	}
	return s.emit(ctx), nil
}

// ZoomIn scales the view up one step.
func (s *CanvasService) ZoomIn(ctx context.Context) canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.ZoomIn()
	return s.emit(ctx)
}

// ZoomOut scales the view down one step.
func (s *CanvasService) ZoomOut(ctx context.Context) canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.ZoomOut()
	return s.emit(ctx)
}

// ZoomReset returns to 1:1.
func (s *CanvasService) ZoomReset(ctx context.Context) canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.ZoomReset()
	return s.emit(ctx)
}

// Clear removes every shape.
func (s *CanvasService) Clear(ctx context.Context) canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Clear()
	log.Printf("canvas: cleared")
	return s.emit(ctx)
}

// Resize changes the clamp bounds, e.g. after a config reload.
func (s *CanvasService) Resize(ctx context.Context, width, height float64) canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Resize(width, height)
	return s.emit(ctx)
}

// ── Queries ────────────────────────────────────────────────

// Scene snapshots the canvas.
func (s *CanvasService) Scene() canvas.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Scene()
}

// SelectAt switches to the select tool and hit-tests (x, y). It reports the
// selected shape ID, or 0.
func (s *CanvasService) SelectAt(ctx context.Context, x, y float64) (canvas.ShapeID, canvas.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SetTool(domain.ToolSelect)
	s.ctrl.PointerDown(gg.Pt(x, y))
	var id canvas.ShapeID
	if sh, ok := s.ctrl.Selected(); ok {
		id = sh.ID
	}
	return id, s.emit(ctx)
}

// RenderPNG writes the current canvas as PNG.
func (s *CanvasService) RenderPNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := render.PNG(w, s.ctrl, s.opts); err != nil {
		return fmt.Errorf("render canvas: %w", err)
	}
	return nil
}

// Preview renders a data URL no larger than maxSide on either axis.
func (s *CanvasService) Preview(maxSide int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	url, err := render.DataURL(s.ctrl, s.opts, maxSide)
	if err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return url, nil
}

// ── Navigation ─────────────────────────────────────────────

// Logout asks the host to show the login screen. The canvas is left as is.
func (s *CanvasService) Logout(ctx context.Context) error {
	if s.nav == nil {
		return fmt.Errorf("logout: no navigator")
	}
	if err := s.nav.Navigate(ctx, domain.ScreenLogin); err != nil {
		return fmt.Errorf("navigate to login: %w", err)
	}
	return nil
}
