package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const sceneURI = "sketch://canvas/scene"

func (s *Server) registerResources() {
	// ── sketch://canvas/scene ──────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		sceneURI,
		"Canvas Scene",
		mcp.WithResourceDescription("Current display list with every shape and the selection overlay"),
		mcp.WithMIMEType("application/json"),
	), s.handleSceneResource)
}

func (s *Server) handleSceneResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(s.canvas.Scene(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      sceneURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
