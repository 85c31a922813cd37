package domain

import "fmt"

// ShapeKind tags a shape variant.
type ShapeKind int

const (
	ShapeFreehand ShapeKind = iota
	ShapeLine
	ShapeRectangle
	ShapeCircle
	ShapeBezier

	// ShapeKindCount sizes per-kind tables.
	ShapeKindCount
)

var shapeKindNames = [ShapeKindCount]string{
	ShapeFreehand:  "freehand",
	ShapeLine:      "line",
	ShapeRectangle: "rectangle",
	ShapeCircle:    "circle",
	ShapeBezier:    "bezier",
}

func (k ShapeKind) String() string {
	if k < 0 || k >= ShapeKindCount {
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
	return shapeKindNames[k]
}

// MarshalText encodes the kind by name so scene JSON stays readable.
func (k ShapeKind) MarshalText() ([]byte, error) {
	if k < 0 || k >= ShapeKindCount {
		return nil, fmt.Errorf("marshal shape kind %d: out of range", int(k))
	}
	return []byte(shapeKindNames[k]), nil
}

// UnmarshalText decodes a kind name.
func (k *ShapeKind) UnmarshalText(b []byte) error {
	for i, name := range shapeKindNames {
		if name == string(b) {
			*k = ShapeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown shape kind %q", string(b))
}
