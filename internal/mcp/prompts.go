package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("sketch_diagram",
		mcp.WithPromptDescription("Sketch a simple box-and-line diagram on the canvas"),
		mcp.WithArgument("subject",
			mcp.ArgumentDescription("What the diagram should show"),
			mcp.RequiredArgument(),
		),
	), s.handleSketchDiagramPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("trace_outline",
		mcp.WithPromptDescription("Outline an object with freehand and bezier strokes"),
		mcp.WithArgument("object",
			mcp.ArgumentDescription("Object to outline"),
			mcp.RequiredArgument(),
		),
	), s.handleTraceOutlinePrompt)
}

func (s *Server) handleSketchDiagramPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	subject := req.Params.Arguments["subject"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Sketch a diagram of: %s", subject),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Sketch a diagram of "%s" on the canvas. Follow these steps:

1. Call get_canvas to learn the canvas size and what is already drawn
2. Draw one rectangle per component with draw_shape (tool "rectangle", two corner points)
3. Connect related components with draw_shape using tool "line" between box edges
4. Use "circle" for external actors and "bezier" for loose or optional links
5. Call render_canvas and check the result; fix overlaps before finishing

Keep every point inside the canvas bounds; points outside are clamped to the edge.`, subject),
				},
			},
		},
	}, nil
}

func (s *Server) handleTraceOutlinePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	object := req.Params.Arguments["object"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Outline: %s", object),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Draw the outline of "%s".

1. Use draw_shape with tool "freehand" and a dense list of points for curved contours
2. Use tool "line" for straight edges
3. Render with render_canvas when done and describe what you drew`, object),
				},
			},
		},
	}, nil
}
