package mcpserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"sketch/internal/domain"
)

func (s *Server) registerCanvasTools() {
	toolNames := make([]string, len(domain.Tools))
	for i, t := range domain.Tools {
		toolNames[i] = string(t)
	}
	toolList := strings.Join(toolNames, ", ")

	// ── get_canvas ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_canvas",
		mcp.WithDescription("Return the canvas scene: size, zoom, active tool, selection and every shape bottom to top"),
	), s.handleGetCanvas)

	// ── set_tool ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_tool",
		mcp.WithDescription("Activate a tool. Empty name means freehand."),
		mcp.WithString("tool", mcp.Description("One of: "+toolList)),
	), s.handleSetTool)

	// ── toggle_tool ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("toggle_tool",
		mcp.WithDescription("Press a toolbar button. Pressing the active tool again returns to freehand."),
		mcp.WithString("tool", mcp.Description("One of: "+toolList), mcp.Required()),
	), s.handleToggleTool)

	// ── draw_shape ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("draw_shape",
		mcp.WithDescription("Draw one shape with a full pointer gesture: down at the first point, move through the middle ones, up at the last"),
		mcp.WithString("tool", mcp.Description("Drawing tool: freehand, line, rectangle, circle, bezier"), mcp.Required()),
		mcp.WithString("pointsJSON", mcp.Description(`Screen points as JSON, e.g. [[10,10],[120,80]]. At least two.`), mcp.Required()),
	), s.handleDrawShape)

	// ── pointer ────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("pointer",
		mcp.WithDescription("Deliver a single pointer event to the canvas"),
		mcp.WithString("phase", mcp.Description("down, move or up"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Screen X"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Screen Y"), mcp.Required()),
	), s.handlePointer)

	// ── select_at ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("select_at",
		mcp.WithDescription("Switch to the select tool and select the topmost shape under the point"),
		mcp.WithNumber("x", mcp.Description("Screen X"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Screen Y"), mcp.Required()),
	), s.handleSelectAt)

	// ── zoom ───────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("zoom",
		mcp.WithDescription("Zoom the view by one step (x1.1) or reset it. Range 0.3 to 4.0."),
		mcp.WithString("direction", mcp.Description("in, out or reset"), mcp.Required()),
	), s.handleZoom)

	// ── clear_canvas ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("clear_canvas",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove every shape from the canvas. Requires user approval."),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleClearCanvas)

	// ── render_canvas ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("render_canvas",
		mcp.WithDescription("Render the canvas as a PNG image at the current zoom"),
	), s.handleRenderCanvas)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleGetCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.canvas.Scene())
}

func (s *Server) handleSetTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sc, err := s.canvas.SetTool(ctx, req.GetString("tool", ""))
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Active tool: %s", sc.Tool)), nil
}

func (s *Server) handleToggleTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("tool", "")
	if name == "" {
		return nil, fmt.Errorf("tool is required")
	}
	sc, err := s.canvas.ToggleTool(ctx, name)
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Active tool: %s", sc.Tool)), nil
}

func (s *Server) handleDrawShape(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tool := req.GetString("tool", "")
	if tool == "" {
		return nil, fmt.Errorf("tool is required")
	}
	pts, err := parsePoints(req.GetString("pointsJSON", ""))
	if err != nil {
		return nil, err
	}
	sc, err := s.canvas.Draw(ctx, tool, pts)
	if err != nil {
		return nil, err
	}
	top := sc.Nodes[len(sc.Nodes)-1]
	if top.Shape == nil {
		return nil, fmt.Errorf("draw %s: no shape created", tool)
	}
	return jsonResult(top.Shape)
}

func (s *Server) handlePointer(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	x, y, err := requirePoint(args)
	if err != nil {
		return nil, err
	}
	switch phase := strings.ToLower(req.GetString("phase", "")); phase {
	case "down":
		return jsonResult(s.canvas.PointerDown(ctx, x, y))
	case "move":
		return jsonResult(s.canvas.PointerMove(ctx, x, y))
	case "up":
		return jsonResult(s.canvas.PointerUp(ctx, x, y))
	default:
		return nil, fmt.Errorf("phase must be down, move or up, got %q", phase)
	}
}

func (s *Server) handleSelectAt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	x, y, err := requirePoint(req.GetArguments())
	if err != nil {
		return nil, err
	}
	id, _ := s.canvas.SelectAt(ctx, x, y)
	if id == 0 {
		return textResult(fmt.Sprintf("No shape at (%g, %g)", x, y)), nil
	}
	return textResult(fmt.Sprintf("Selected shape %d", id)), nil
}

func (s *Server) handleZoom(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var zoom float64
	switch dir := strings.ToLower(req.GetString("direction", "")); dir {
	case "in":
		zoom = s.canvas.ZoomIn(ctx).Zoom
	case "out":
		zoom = s.canvas.ZoomOut(ctx).Zoom
	case "reset":
		zoom = s.canvas.ZoomReset(ctx).Zoom
	default:
		return nil, fmt.Errorf("direction must be in, out or reset, got %q", dir)
	}
	return textResult(fmt.Sprintf("Zoom: %.4f", zoom)), nil
}

func (s *Server) handleClearCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n := 0
	for _, node := range s.canvas.Scene().Nodes {
		if node.Shape != nil {
			n++
		}
	}
	approved, err := s.approval.Request("clear_canvas", fmt.Sprintf("Clear %d shape(s) from the canvas", n))
	if err != nil {
		return textResult("Canvas not cleared: " + err.Error()), nil
	}
	if !approved {
		return textResult("Action rejected by user"), nil
	}
	s.canvas.Clear(ctx)
	return textResult(fmt.Sprintf("Canvas cleared (%d shape(s) removed)", n)), nil
}

func (s *Server) handleRenderCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := s.canvas.RenderPNG(&buf); err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
				MIMEType: "image/png",
			},
		},
	}, nil
}

func requirePoint(args map[string]any) (x, y float64, err error) {
	x, hasX := args["x"].(float64)
	y, hasY := args["y"].(float64)
	if !hasX || !hasY {
		return 0, 0, fmt.Errorf("x and y are required")
	}
	return x, y, nil
}
