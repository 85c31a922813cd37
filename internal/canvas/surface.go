package canvas

import "github.com/gogpu/gg"

// Node is a handle in a display list: either a shape or the selection
// indicator.
type Node struct {
	shape   *Shape
	frame   gg.Rect
	visible bool
}

// Shape returns the shape behind the node, or nil for overlay nodes.
func (n *Node) Shape() *Shape { return n.shape }

// Frame is the box a renderer should draw for the node.
func (n *Node) Frame() gg.Rect {
	if n.shape != nil {
		return n.shape.Bounds()
	}
	return n.frame
}

// Surface is the rendering collaborator. Index 0 is the bottom of the
// z-order.
type Surface interface {
	Insert(n *Node)
	RemoveAll()
	Len() int
	At(i int) *Node
	IsVisible(n *Node) bool
	// Contains tests a canvas-local point against the node's rendered boundary.
	Contains(n *Node, p gg.Point) bool
	// SetScale sets the uniform scale of the container group.
	SetScale(s float64)
}

// DisplayList is the in-memory Surface.
type DisplayList struct {
	nodes     []*Node
	scale     float64
	tolerance float64
}

// NewDisplayList creates an empty list. strokeWidth widens hit tests of
// open shapes by half the stroke plus slop.
func NewDisplayList(strokeWidth, slop float64) *DisplayList {
	return &DisplayList{
		scale:     1,
		tolerance: strokeWidth/2 + slop,
	}
}

func (d *DisplayList) Insert(n *Node) { d.nodes = append(d.nodes, n) }

func (d *DisplayList) RemoveAll() { d.nodes = nil }

func (d *DisplayList) Len() int { return len(d.nodes) }

func (d *DisplayList) At(i int) *Node { return d.nodes[i] }

func (d *DisplayList) IsVisible(n *Node) bool { return n.visible }

func (d *DisplayList) Contains(n *Node, p gg.Point) bool {
	if n.shape == nil {
		return n.frame.Contains(p)
	}
	return n.shape.Contains(p, d.tolerance)
}

func (d *DisplayList) SetScale(s float64) { d.scale = s }

// Scale returns the last scale set on the container.
func (d *DisplayList) Scale() float64 { return d.scale }

// Tolerance is the hit-test widening applied to strokes.
func (d *DisplayList) Tolerance() float64 { return d.tolerance }

func indexOf(s Surface, n *Node) int {
	for i := 0; i < s.Len(); i++ {
		if s.At(i) == n {
			return i
		}
	}
	return -1
}
