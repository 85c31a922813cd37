package app

import (
	"context"
	"log/slog"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"sketch/internal/config"
	mcpserver "sketch/internal/mcp"
	"sketch/internal/render"
	"sketch/internal/service"
	"sketch/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx   context.Context
	paths config.Paths
	cfg   config.Config

	db     *storage.DB
	users  storage.AccountStore
	canvas *service.CanvasService
	accts  *service.AccountService
	window *service.WindowSettingsService
	mcp    *mcpserver.Server

	stopWatch context.CancelFunc
}

// New creates a new App.
func New() *App {
	return &App{}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	paths, err := config.DefaultPaths()
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to resolve data dir: %v", err)
		return
	}
	a.paths = paths

	cfg, err := config.Load(paths.Config)
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to load config, using defaults: %v", err)
	}
	a.cfg = cfg
	if cfg.Debug {
		render.EnableLogging(slog.Default())
	}

	db, err := storage.New(paths.DBPath)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db

	users, err := storage.OpenAccountStore(ctx, db, cfg.UserStore)
	if err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to open %s user store, falling back to sqlite: %v", cfg.UserStore.Driver, err)
		users = storage.NewUserStore(db)
	}
	a.users = users

	emitter := wailsEmitter{}
	nav := newWailsNavigator(emitter)
	a.canvas = service.NewCanvasService(cfg, emitter, nav)
	a.accts = service.NewAccountService(users, nav, emitter)
	a.window = service.NewWindowSettingsService(db)

	size := a.window.LoadWindowSize(ctx)
	wailsRuntime.WindowSetSize(ctx, size.Width, size.Height)

	watchCtx, cancel := context.WithCancel(ctx)
	a.stopWatch = cancel
	if err := config.Watch(watchCtx, paths.Config, a.onConfigChanged); err != nil {
		wailsRuntime.LogErrorf(ctx, "Failed to watch config: %v", err)
	}

	a.mcp = mcpserver.New(ctx, mcpserver.Deps{
		Emitter:     emitter,
		Canvas:      a.canvas,
		Interactive: true,
	})
	if cfg.MCPAddr != "" {
		go func() {
			if err := a.mcp.ServeHTTP(cfg.MCPAddr); err != nil {
				wailsRuntime.LogErrorf(ctx, "MCP server stopped: %v", err)
			}
		}()
	}
}

// onConfigChanged applies the settings that can change while running.
func (a *App) onConfigChanged(cfg config.Config) {
	if cfg.CanvasWidth != a.cfg.CanvasWidth || cfg.CanvasHeight != a.cfg.CanvasHeight {
		a.canvas.Resize(a.ctx, cfg.CanvasWidth, cfg.CanvasHeight)
		wailsRuntime.LogInfof(a.ctx, "Canvas resized to %.0fx%.0f", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.Debug != a.cfg.Debug {
		if cfg.Debug {
			render.EnableLogging(slog.Default())
		} else {
			render.EnableLogging(nil)
		}
	}
	a.cfg = cfg
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.mcp != nil {
		if err := a.mcp.Shutdown(ctx); err != nil {
			wailsRuntime.LogErrorf(ctx, "MCP shutdown: %v", err)
		}
	}
	if a.window != nil {
		w, h := wailsRuntime.WindowGetSize(ctx)
		if err := a.window.SaveWindowSize(ctx, w, h); err != nil {
			wailsRuntime.LogErrorf(ctx, "Failed to save window size: %v", err)
		}
	}
	if a.users != nil {
		a.users.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
