package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/gg"
)

// parseJSON parses a JSON string into the target type.
func parseJSON(data string, target any) error {
	return json.Unmarshal([]byte(data), target)
}

// parsePoints reads a [[x,y], ...] list.
func parsePoints(data string) ([]gg.Point, error) {
	var raw [][]float64
	if err := parseJSON(data, &raw); err != nil {
		return nil, fmt.Errorf("parse points: %w", err)
	}
	pts := make([]gg.Point, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d: expected [x, y], got %d values", i, len(p))
		}
		pts[i] = gg.Pt(p[0], p[1])
	}
	return pts, nil
}

func boolPtr(v bool) *bool { return &v }
