package config_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sketch/internal/config"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := config.Default()
	if cfg.CanvasWidth != def.CanvasWidth || cfg.CanvasHeight != def.CanvasHeight {
		t.Errorf("expected default size, got %vx%v", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.UserStore.Driver != config.DriverSQLite {
		t.Errorf("expected sqlite driver, got %q", cfg.UserStore.Driver)
	}
}

func TestLoad_OverridesAndNormalizes(t *testing.T) {
	t.Setenv(config.EnvDBPassword, "s3cret")
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"canvasWidth": 640, "canvasHeight": -1, "hitSlop": -3,
		"userStore": {"driver": " PostgreSQL ", "host": "db", "port": 5432}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CanvasWidth != 640 {
		t.Errorf("width: got %v", cfg.CanvasWidth)
	}
	if cfg.CanvasHeight != 800 {
		t.Errorf("invalid height should fall back to default, got %v", cfg.CanvasHeight)
	}
	if cfg.HitSlop != 0 {
		t.Errorf("negative slop should clamp to 0, got %v", cfg.HitSlop)
	}
	if cfg.UserStore.Driver != config.DriverPostgres || cfg.UserStore.Port != 5432 {
		t.Errorf("unexpected user store %+v", cfg.UserStore)
	}
	if cfg.UserStore.Password != "s3cret" {
		t.Error("password should come from the environment")
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"userStore": {"driver": "oracle"}}`), 0o644)
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"canvasWidth":`), 0o644)
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSave_RoundTripKeepsPasswordOffDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := config.Default()
	cfg.CanvasWidth = 300
	cfg.UserStore.Password = "hunter2"
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) == "" || strings.Contains(string(data), "hunter2") {
		t.Fatalf("password leaked to disk: %s", data)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CanvasWidth != 300 {
		t.Errorf("width: got %v", got.CanvasWidth)
	}
}

func TestDefaultPaths_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.EnvDataDir, dir)
	p, err := config.DefaultPaths()
	if err != nil {
		t.Fatalf("DefaultPaths: %v", err)
	}
	if p.DBPath != filepath.Join(dir, "sketch.db") || p.Config != filepath.Join(dir, "config.json") {
		t.Errorf("unexpected paths %+v", p)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := config.Save(path, config.Default()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan config.Config, 4)
	if err := config.Watch(ctx, path, func(c config.Config) { got <- c }); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := config.Default()
	cfg.CanvasWidth = 321
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-got:
		if c.CanvasWidth != 321 {
			t.Errorf("expected reloaded width 321, got %v", c.CanvasWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
