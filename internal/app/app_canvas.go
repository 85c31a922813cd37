package app

import (
	"sketch/internal/canvas"
)

// ============================================================
// Canvas
// ============================================================

func (a *App) PointerDown(x, y float64) canvas.Scene {
	return a.canvas.PointerDown(a.ctx, x, y)
}

func (a *App) PointerMove(x, y float64) canvas.Scene {
	return a.canvas.PointerMove(a.ctx, x, y)
}

func (a *App) PointerUp(x, y float64) canvas.Scene {
	return a.canvas.PointerUp(a.ctx, x, y)
}

// SetTool activates a tool by name ("" means freehand).
func (a *App) SetTool(name string) (canvas.Scene, error) {
	return a.canvas.SetTool(a.ctx, name)
}

// ToggleTool is bound to the toolbar buttons.
func (a *App) ToggleTool(name string) (canvas.Scene, error) {
	return a.canvas.ToggleTool(a.ctx, name)
}

func (a *App) ZoomIn() canvas.Scene {
	return a.canvas.ZoomIn(a.ctx)
}

func (a *App) ZoomOut() canvas.Scene {
	return a.canvas.ZoomOut(a.ctx)
}

func (a *App) ZoomReset() canvas.Scene {
	return a.canvas.ZoomReset(a.ctx)
}

func (a *App) ClearCanvas() canvas.Scene {
	return a.canvas.Clear(a.ctx)
}

func (a *App) GetScene() canvas.Scene {
	return a.canvas.Scene()
}

// RenderPreview returns a PNG data URL of the canvas for thumbnails.
func (a *App) RenderPreview(maxSide int) (string, error) {
	return a.canvas.Preview(maxSide)
}

// Logout leaves the canvas for the login screen.
func (a *App) Logout() error {
	return a.canvas.Logout(a.ctx)
}
