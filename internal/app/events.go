package app

import (
	"context"
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"sketch/internal/domain"
	"sketch/internal/service"
)

// EventNavigate tells the frontend router which screen to show.
const EventNavigate = "nav:screen"

// wailsEmitter forwards service events to the webview.
type wailsEmitter struct{}

func (wailsEmitter) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

// wailsNavigator switches screens by asking the frontend router; the
// window itself never changes.
type wailsNavigator struct {
	emitter service.EventEmitter
}

func newWailsNavigator(emitter service.EventEmitter) *wailsNavigator {
	return &wailsNavigator{emitter: emitter}
}

func (n *wailsNavigator) Navigate(ctx context.Context, screen domain.Screen) error {
	if !screen.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownScreen, screen)
	}
	n.emitter.Emit(ctx, EventNavigate, screen)
	return nil
}
