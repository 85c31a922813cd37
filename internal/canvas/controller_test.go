package canvas_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"sketch/internal/canvas"
	"sketch/internal/domain"
)

func newTestController() (*canvas.Controller, *canvas.DisplayList) {
	dl := canvas.NewDisplayList(2, 1)
	return canvas.NewController(dl, 800, 600), dl
}

func drag(c *canvas.Controller, pts ...gg.Point) {
	c.PointerDown(pts[0])
	for _, p := range pts[1 : len(pts)-1] {
		c.PointerMove(p)
	}
	c.PointerUp(pts[len(pts)-1])
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// ─────────────────────────────────────────────────────────────
// Tool state
// ─────────────────────────────────────────────────────────────

func TestController_StartsInFreehand(t *testing.T) {
	c, _ := newTestController()
	if c.Tool() != domain.ToolFreehand {
		t.Fatalf("expected freehand, got %q", c.Tool())
	}
	if c.Overlay().Active() {
		t.Error("overlay should start inactive")
	}
}

func TestToggleTool_PressingActiveToolReturnsToFreehand(t *testing.T) {
	for _, tool := range domain.Tools {
		c, _ := newTestController()
		c.SetTool(tool)
		tr := c.ToggleTool(tool)
		if c.Tool() != domain.ToolFreehand {
			t.Errorf("pressing active %q: got %q, want freehand", tool, c.Tool())
		}
		if tr.From != tool || tr.To != domain.ToolFreehand {
			t.Errorf("pressing active %q: transition %v", tool, tr)
		}
	}
}

func TestToggleTool_PressingTwiceFromFreehand(t *testing.T) {
	for _, tool := range domain.Tools {
		if tool == domain.ToolFreehand {
			continue
		}
		c, _ := newTestController()
		c.ToggleTool(tool)
		c.ToggleTool(tool)
		if c.Tool() != domain.ToolFreehand {
			t.Errorf("pressing %q twice from freehand: got %q", tool, c.Tool())
		}
	}
}

func TestToggleTool_ThirdPressReactivates(t *testing.T) {
	for _, tool := range domain.Tools {
		c, _ := newTestController()
		c.SetTool(tool)
		c.ToggleTool(tool)
		c.ToggleTool(tool)
		if c.Tool() != tool {
			t.Errorf("%q: release then press: got %q", tool, c.Tool())
		}
	}
}

func TestToggleTool_OtherToolActivates(t *testing.T) {
	c, _ := newTestController()
	c.ToggleTool(domain.ToolLine)
	tr := c.ToggleTool(domain.ToolCircle)
	if c.Tool() != domain.ToolCircle {
		t.Fatalf("expected circle, got %q", c.Tool())
	}
	if tr.From != domain.ToolLine || tr.To != domain.ToolCircle || !tr.Changed() {
		t.Errorf("unexpected transition %+v", tr)
	}
}

func TestSetTool_NoneIsFreehand(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolRectangle)
	c.SetTool(domain.ToolNone)
	if c.Tool() != domain.ToolFreehand {
		t.Fatalf("expected freehand, got %q", c.Tool())
	}
}

func TestToolMachine_UnknownToolPanics(t *testing.T) {
	m := canvas.NewToolMachine()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown tool")
		}
	}()
	m.Set(domain.Tool("spray"))
}

// ─────────────────────────────────────────────────────────────
// Shape lifecycle
// ─────────────────────────────────────────────────────────────

func TestRectangleScenario(t *testing.T) {
	c, dl := newTestController()
	c.SetTool(domain.ToolRectangle)
	drag(c, gg.Pt(10, 10), gg.Pt(50, 5), gg.Pt(50, 5))

	shapes := c.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	r, ok := shapes[0].Geometry().(canvas.RectGeometry)
	if !ok {
		t.Fatalf("expected rectangle geometry, got %T", shapes[0].Geometry())
	}
	if r.Min != gg.Pt(10, 5) || r.Width != 40 || r.Height != 5 {
		t.Errorf("unexpected rectangle %+v", r)
	}
	if !shapes[0].Committed() {
		t.Error("shape should be committed after pointer up")
	}

	c.ToggleTool(domain.ToolSelect)
	c.PointerDown(gg.Pt(30, 7))
	sel, ok := c.Selected()
	if !ok || sel.ID != shapes[0].ID {
		t.Fatalf("expected rectangle selected, got %v %v", sel, ok)
	}

	c.Clear()
	if len(c.Shapes()) != 0 {
		t.Errorf("expected no shapes after clear, got %d", len(c.Shapes()))
	}
	if _, ok := c.Selected(); ok {
		t.Error("selection should be cleared")
	}
	if dl.Len() != 1 || !c.Overlay().IsOverlayNode(dl.At(0)) {
		t.Errorf("display list should only hold the overlay indicator, len=%d", dl.Len())
	}
	if !c.Overlay().Active() {
		t.Error("overlay should stay active in select mode")
	}
}

func TestPointer_ClampsToCanvas(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolLine)
	c.PointerDown(gg.Pt(-50, 700))
	c.PointerMove(gg.Pt(2000, -10))

	s, ok := c.InProgress()
	if !ok {
		t.Fatal("expected an in-progress shape")
	}
	if s.Anchor != gg.Pt(0, 600) {
		t.Errorf("anchor not clamped: %v", s.Anchor)
	}
	if end := s.Geometry().(canvas.LineGeometry).End; end != gg.Pt(800, 0) {
		t.Errorf("end not clamped: %v", end)
	}

	c.PointerUp(gg.Pt(-1, -1))
	if end := s.Geometry().(canvas.LineGeometry).End; end != gg.Pt(0, 0) {
		t.Errorf("final point not clamped: %v", end)
	}
	if _, ok := c.InProgress(); ok {
		t.Error("in-progress slot should be empty after pointer up")
	}
}

func TestPointer_BezierControlOnCommit(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolBezier)
	drag(c, gg.Pt(100, 100), gg.Pt(150, 120), gg.Pt(300, 200))
	b := c.Shapes()[0].Geometry().(canvas.BezierGeometry)
	if b.End != gg.Pt(300, 200) || b.Control != gg.Pt(200, 150) {
		t.Errorf("unexpected curve %+v", b)
	}
}

func TestPointer_MoveWithoutDownIsNoop(t *testing.T) {
	c, _ := newTestController()
	c.PointerMove(gg.Pt(10, 10))
	c.PointerUp(gg.Pt(10, 10))
	if len(c.Shapes()) != 0 {
		t.Fatalf("expected no shapes, got %d", len(c.Shapes()))
	}
}

func TestPointer_SelectModeNeverDraws(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolSelect)
	drag(c, gg.Pt(10, 10), gg.Pt(40, 40), gg.Pt(80, 80))
	if len(c.Shapes()) != 0 {
		t.Fatalf("select mode created %d shapes", len(c.Shapes()))
	}
}

func TestSetTool_FreezesInProgressShape(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolLine)
	c.PointerDown(gg.Pt(10, 10))
	c.PointerMove(gg.Pt(20, 20))
	s, _ := c.InProgress()

	c.SetTool(domain.ToolSelect)
	if _, ok := c.InProgress(); ok {
		t.Fatal("tool change should clear the in-progress slot")
	}
	if !s.Committed() {
		t.Error("abandoned shape should be frozen")
	}
	c.PointerMove(gg.Pt(90, 90))
	if end := s.Geometry().(canvas.LineGeometry).End; end != gg.Pt(20, 20) {
		t.Errorf("frozen shape moved to %v", end)
	}
}

func TestShapes_InsertionOrder(t *testing.T) {
	c, _ := newTestController()
	for _, tool := range []domain.Tool{domain.ToolLine, domain.ToolCircle, domain.ToolFreehand} {
		c.SetTool(tool)
		drag(c, gg.Pt(10, 10), gg.Pt(20, 20))
	}
	shapes := c.Shapes()
	want := []domain.ShapeKind{domain.ShapeLine, domain.ShapeCircle, domain.ShapeFreehand}
	if len(shapes) != len(want) {
		t.Fatalf("expected %d shapes, got %d", len(want), len(shapes))
	}
	for i, s := range shapes {
		if s.Kind != want[i] {
			t.Errorf("shape %d: kind %s, want %s", i, s.Kind, want[i])
		}
		if i > 0 && s.ID <= shapes[i-1].ID {
			t.Errorf("shape IDs not increasing: %d after %d", s.ID, shapes[i-1].ID)
		}
	}
}

// ─────────────────────────────────────────────────────────────
// Selection
// ─────────────────────────────────────────────────────────────

func TestHitTest_TopmostWins(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolRectangle)
	drag(c, gg.Pt(0, 0), gg.Pt(100, 100))
	drag(c, gg.Pt(50, 50), gg.Pt(150, 150))
	top := c.Shapes()[1]

	c.SetTool(domain.ToolSelect)
	c.PointerDown(gg.Pt(75, 75))
	sel, ok := c.Selected()
	if !ok || sel.ID != top.ID {
		t.Fatalf("expected topmost shape %d, got %v", top.ID, sel)
	}
}

func TestHitTest_IgnoresOverlayIndicator(t *testing.T) {
	c, dl := newTestController()
	c.SetTool(domain.ToolRectangle)
	drag(c, gg.Pt(100, 100), gg.Pt(200, 200))
	c.SetTool(domain.ToolSelect)
	c.PointerDown(gg.Pt(150, 150))
	if _, ok := c.Selected(); !ok {
		t.Fatal("expected selection")
	}

	// Inside the padded indicator frame, outside the shape.
	p := gg.Pt(203, 150)
	if !dl.Contains(c.Overlay().Indicator(), p) {
		t.Fatal("test point should fall on the indicator")
	}
	c.PointerDown(p)
	if _, ok := c.Selected(); ok {
		t.Error("overlay indicator must never be selectable")
	}
}

func TestHitTest_EmptySpaceClearsSelection(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolCircle)
	drag(c, gg.Pt(100, 100), gg.Pt(120, 100))
	c.SetTool(domain.ToolSelect)
	c.PointerDown(gg.Pt(100, 100))
	if _, ok := c.Selected(); !ok {
		t.Fatal("expected circle selected")
	}
	c.PointerDown(gg.Pt(500, 500))
	if _, ok := c.Selected(); ok {
		t.Error("click on empty space should clear selection")
	}
	if c.Overlay().Indicator().Frame() != (gg.Rect{}) {
		t.Error("indicator should be reset")
	}
}

// hidingSurface reports chosen nodes as invisible.
type hidingSurface struct {
	*canvas.DisplayList
	hidden map[*canvas.Node]bool
}

func (h *hidingSurface) IsVisible(n *canvas.Node) bool {
	return !h.hidden[n] && h.DisplayList.IsVisible(n)
}

func TestHitTest_SkipsInvisibleNodes(t *testing.T) {
	hs := &hidingSurface{DisplayList: canvas.NewDisplayList(2, 1), hidden: map[*canvas.Node]bool{}}
	c := canvas.NewController(hs, 800, 600)
	c.SetTool(domain.ToolRectangle)
	drag(c, gg.Pt(0, 0), gg.Pt(100, 100))
	drag(c, gg.Pt(0, 0), gg.Pt(100, 100))
	bottom, top := c.Shapes()[0], c.Shapes()[1]
	hs.hidden[top.Node()] = true

	c.SetTool(domain.ToolSelect)
	c.PointerDown(gg.Pt(50, 50))
	sel, ok := c.Selected()
	if !ok || sel.ID != bottom.ID {
		t.Fatalf("expected hidden top shape to be skipped, got %v", sel)
	}
}

func TestSwitchTools_SelectionAndOverlay(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolRectangle)
	drag(c, gg.Pt(10, 10), gg.Pt(60, 60))

	c.SetTool(domain.ToolSelect)
	if !c.Overlay().Active() {
		t.Fatal("select should activate the overlay")
	}
	c.PointerDown(gg.Pt(30, 30))
	if _, ok := c.Selected(); !ok {
		t.Fatal("expected selection")
	}

	for _, tool := range []domain.Tool{domain.ToolFreehand, domain.ToolLine, domain.ToolRectangle, domain.ToolCircle, domain.ToolBezier} {
		c.SetTool(domain.ToolSelect)
		c.PointerDown(gg.Pt(30, 30))
		c.SetTool(tool)
		if _, ok := c.Selected(); ok {
			t.Errorf("switching to %q should clear selection", tool)
		}
		if c.Overlay().Active() {
			t.Errorf("switching to %q should deactivate the overlay", tool)
		}
	}
}

func TestSetTool_SelectAgainKeepsSelection(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolRectangle)
	drag(c, gg.Pt(10, 10), gg.Pt(60, 60))
	c.SetTool(domain.ToolSelect)
	c.PointerDown(gg.Pt(30, 30))
	c.SetTool(domain.ToolSelect)
	if _, ok := c.Selected(); !ok {
		t.Fatal("re-selecting select should keep the selection")
	}
}

// ─────────────────────────────────────────────────────────────
// Zoom
// ─────────────────────────────────────────────────────────────

func TestZoom_RoundTrip(t *testing.T) {
	c, dl := newTestController()
	for n := 1; n <= 14; n++ {
		c.ZoomReset()
		for i := 0; i < n; i++ {
			c.ZoomIn()
		}
		for i := 0; i < n; i++ {
			c.ZoomOut()
		}
		if !near(c.Zoom(), 1) {
			t.Errorf("n=%d: zoom %v after round trip", n, c.Zoom())
		}
		if dl.Scale() != c.Zoom() {
			t.Errorf("n=%d: surface scale %v, zoom %v", n, dl.Scale(), c.Zoom())
		}
	}
}

func TestZoom_Bounds(t *testing.T) {
	c, dl := newTestController()
	for i := 0; i < 100; i++ {
		c.ZoomIn()
		if c.Zoom() > canvas.MaxZoom {
			t.Fatalf("zoom %v exceeds max", c.Zoom())
		}
	}
	if c.Zoom() != canvas.MaxZoom {
		t.Errorf("expected zoom pinned at %v, got %v", canvas.MaxZoom, c.Zoom())
	}
	for i := 0; i < 100; i++ {
		c.ZoomOut()
		if c.Zoom() < canvas.MinZoom {
			t.Fatalf("zoom %v below min", c.Zoom())
		}
	}
	if c.Zoom() != canvas.MinZoom {
		t.Errorf("expected zoom pinned at %v, got %v", canvas.MinZoom, c.Zoom())
	}
	c.ZoomReset()
	if c.Zoom() != 1 || dl.Scale() != 1 {
		t.Errorf("reset: zoom %v scale %v", c.Zoom(), dl.Scale())
	}
}

func TestZoom_MapsPointerThroughInverse(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolLine)
	drag(c, gg.Pt(100, 50), gg.Pt(200, 50))
	before := c.Shapes()[0].Geometry()

	c.ZoomIn()
	c.ZoomIn()
	if c.Shapes()[0].Geometry() != before {
		t.Error("zoom must not touch stored geometry")
	}

	c.PointerDown(gg.Pt(121, 60.5))
	s, _ := c.InProgress()
	if !near(s.Anchor.X, 100) || !near(s.Anchor.Y, 50) {
		t.Errorf("expected canvas point (100,50), got %v", s.Anchor)
	}
}

// ─────────────────────────────────────────────────────────────
// Clear / resize / scene
// ─────────────────────────────────────────────────────────────

func TestClear_OverlayFollowsTool(t *testing.T) {
	c, dl := newTestController()
	c.SetTool(domain.ToolCircle)
	drag(c, gg.Pt(10, 10), gg.Pt(30, 30))
	c.Clear()
	c.Clear()
	if dl.Len() != 1 {
		t.Fatalf("overlay re-attached more than once: len=%d", dl.Len())
	}
	if c.Overlay().Active() {
		t.Error("overlay should be inactive with a drawing tool")
	}
	if len(c.Shapes()) != 0 {
		t.Error("expected empty canvas")
	}
}

func TestClear_DuringDrag(t *testing.T) {
	c, _ := newTestController()
	c.PointerDown(gg.Pt(5, 5))
	c.Clear()
	c.PointerMove(gg.Pt(10, 10))
	c.PointerUp(gg.Pt(10, 10))
	if len(c.Shapes()) != 0 {
		t.Fatalf("expected no shapes, got %d", len(c.Shapes()))
	}
}

func TestResize_ClampsToNewBounds(t *testing.T) {
	c, _ := newTestController()
	c.Resize(100, 50)
	c.SetTool(domain.ToolLine)
	c.PointerDown(gg.Pt(500, 500))
	s, _ := c.InProgress()
	if s.Anchor != gg.Pt(100, 50) {
		t.Errorf("expected anchor clamped to resized bounds, got %v", s.Anchor)
	}
	if w, h := c.Bounds(); w != 100 || h != 50 {
		t.Errorf("bounds %vx%v", w, h)
	}
}

func TestScene_JSON(t *testing.T) {
	c, _ := newTestController()
	c.SetTool(domain.ToolRectangle)
	drag(c, gg.Pt(10, 10), gg.Pt(50, 5))
	c.SetTool(domain.ToolSelect)
	c.PointerDown(gg.Pt(30, 7))

	sc := c.Scene()
	if sc.Tool != domain.ToolSelect || sc.Selected == 0 {
		t.Fatalf("unexpected scene header %+v", sc)
	}
	if len(sc.Nodes) != 2 || !sc.Nodes[0].Overlay || !sc.Nodes[0].Visible {
		t.Fatalf("expected visible overlay then shape, got %+v", sc.Nodes)
	}
	sv := sc.Nodes[1].Shape
	if sv == nil || sv.Corner == nil || *sv.Corner != (canvas.Point{X: 10, Y: 5}) || sv.Width != 40 || sv.Height != 5 {
		t.Fatalf("unexpected shape view %+v", sv)
	}

	data, err := json.Marshal(sc)
	if err != nil {
		t.Fatalf("marshal scene: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"rectangle"`) {
		t.Errorf("kind should marshal by name: %s", data)
	}
}
