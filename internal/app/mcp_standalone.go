package app

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sketch/internal/config"
	mcpserver "sketch/internal/mcp"
	"sketch/internal/render"
	"sketch/internal/service"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// The canvas lives only as long as the process.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Default()
	if paths, err := config.DefaultPaths(); err == nil {
		if cfg, err = config.Load(paths.Config); err != nil {
			log.Printf("config: %v (using defaults)", err)
		}
	}
	if cfg.Debug {
		render.EnableLogging(slog.Default())
	}

	emitter := service.NopEmitter{}
	canvasSvc := service.NewCanvasService(cfg, emitter, nil)

	mcpSrv := mcpserver.New(ctx, mcpserver.Deps{
		Emitter: emitter,
		Canvas:  canvasSvc,
	})

	log.Println("[MCP] Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
