package service

import (
	"context"
	"database/sql"
	"fmt"

	"sketch/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main window size between sessions as key/value
// rows in app_settings, created by the storage migration.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowSettingsService persists window size between sessions.
type WindowSettingsService struct {
	db *storage.DB
}

// NewWindowSettingsService creates a WindowSettingsService.
func NewWindowSettingsService(db *storage.DB) *WindowSettingsService {
	return &WindowSettingsService{db: db}
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	defaultWindowWidth  = 1280
	defaultWindowHeight = 860
	minWindowWidth      = 640
	minWindowHeight     = 480
)

// LoadWindowSize returns the saved window dimensions, or defaults when
// nothing usable is stored.
func (s *WindowSettingsService) LoadWindowSize(ctx context.Context) WindowSize {
	size := WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
	if s.db == nil {
		return size
	}
	conn := s.db.Conn()
	if w, ok := loadIntSetting(ctx, conn, settingWindowWidth); ok && w >= minWindowWidth {
		size.Width = w
	}
	if h, ok := loadIntSetting(ctx, conn, settingWindowHeight); ok && h >= minWindowHeight {
		size.Height = h
	}
	return size
}

// SaveWindowSize persists the current window dimensions.
func (s *WindowSettingsService) SaveWindowSize(ctx context.Context, width, height int) error {
	if s.db == nil {
		return fmt.Errorf("window settings: no db")
	}
	conn := s.db.Conn()
	if err := upsertSetting(ctx, conn, settingWindowWidth, width); err != nil {
		return err
	}
	return upsertSetting(ctx, conn, settingWindowHeight, height)
}

func loadIntSetting(ctx context.Context, conn *sql.DB, key string) (int, bool) {
	var v int
	err := conn.QueryRowContext(ctx, `SELECT value FROM app_settings WHERE key = ?`, key).Scan(&v)
	return v, err == nil
}

func upsertSetting(ctx context.Context, conn *sql.DB, key string, value int) error {
	_, err := conn.ExecContext(ctx,
		`INSERT INTO app_settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}
