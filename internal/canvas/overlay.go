package canvas

import "github.com/gogpu/gg"

// indicatorPadding separates the selection frame from the shape bounds.
const indicatorPadding = 4

// Overlay draws the selection frame. It keeps the selected shape by ID only;
// the canvas owns the shape.
type Overlay struct {
	indicator *Node
	active    bool
	target    ShapeID
}

// NewOverlay returns an inactive overlay with a hidden indicator.
func NewOverlay() *Overlay {
	return &Overlay{indicator: &Node{}}
}

// Attach inserts the indicator into s unless it is already there.
func (o *Overlay) Attach(s Surface) {
	if indexOf(s, o.indicator) >= 0 {
		return
	}
	s.Insert(o.indicator)
}

// SetActive turns selection on or off. Deactivating drops the target.
func (o *Overlay) SetActive(active bool) {
	o.active = active
	if !active {
		o.Clear()
	}
}

// Active reports whether the overlay may show a selection.
func (o *Overlay) Active() bool { return o.active }

// SetTarget frames s, replacing any previous target. Ignored while inactive.
func (o *Overlay) SetTarget(s *Shape) {
	if s == nil {
		o.Clear()
		return
	}
	if !o.active {
		return
	}
	o.target = s.ID
	o.indicator.frame = expand(s.Bounds(), indicatorPadding)
	o.indicator.visible = true
}

// Clear removes the target and hides the indicator.
func (o *Overlay) Clear() {
	o.target = 0
	o.indicator.frame = gg.Rect{}
	o.indicator.visible = false
}

// Target returns the selected shape ID.
func (o *Overlay) Target() (ShapeID, bool) {
	return o.target, o.target != 0
}

// IsOverlayNode reports whether n belongs to the overlay.
func (o *Overlay) IsOverlayNode(n *Node) bool { return n == o.indicator }

// Indicator is the overlay's display list node.
func (o *Overlay) Indicator() *Node { return o.indicator }
