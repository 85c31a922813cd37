// Package config loads the sketch settings file and watches it for edits.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment overrides.
const (
	EnvDataDir    = "SKETCH_DATA_DIR"
	EnvDBPassword = "SKETCH_DB_PASSWORD"
)

// User store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMongo    = "mongodb"
)

// UserStore selects where accounts live. SQLite uses the app database and
// ignores every other field.
type UserStore struct {
	Driver   string `json:"driver"`
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	Database string `json:"database,omitempty"`
	Username string `json:"username,omitempty"`
	SSLMode  string `json:"sslMode,omitempty"`
	URI      string `json:"uri,omitempty"`

	// Password is read from the environment, never from disk.
	Password string `json:"-"`
}

// Config is the contents of config.json.
type Config struct {
	CanvasWidth  float64   `json:"canvasWidth"`
	CanvasHeight float64   `json:"canvasHeight"`
	StrokeWidth  float64   `json:"strokeWidth"`
	HitSlop      float64   `json:"hitSlop"`
	UserStore    UserStore `json:"userStore"`
	// MCPAddr enables the in-app MCP endpoint (streamable HTTP) when set,
	// e.g. "127.0.0.1:7420".
	MCPAddr string `json:"mcpAddr,omitempty"`
	Debug   bool   `json:"debug"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		CanvasWidth:  1200,
		CanvasHeight: 800,
		StrokeWidth:  2,
		HitSlop:      1,
		UserStore:    UserStore{Driver: DriverSQLite},
	}
}

// Paths locates the files of one installation.
type Paths struct {
	DataDir string
	DBPath  string
	Config  string
}

// DefaultPaths resolves ~/.local/share/sketch, honoring SKETCH_DATA_DIR.
func DefaultPaths() (Paths, error) {
	dir := os.Getenv(EnvDataDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "sketch")
	}
	return PathsIn(dir), nil
}

// PathsIn lays out the files under dir.
func PathsIn(dir string) Paths {
	return Paths{
		DataDir: dir,
		DBPath:  filepath.Join(dir, "sketch.db"),
		Config:  filepath.Join(dir, "config.json"),
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.UserStore.Password = os.Getenv(EnvDBPassword)
	if err := cfg.normalize(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg as indented JSON, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) normalize() error {
	def := Default()
	if c.CanvasWidth <= 0 {
		c.CanvasWidth = def.CanvasWidth
	}
	if c.CanvasHeight <= 0 {
		c.CanvasHeight = def.CanvasHeight
	}
	if c.StrokeWidth <= 0 {
		c.StrokeWidth = def.StrokeWidth
	}
	if c.HitSlop < 0 {
		c.HitSlop = 0
	}
	c.UserStore.Driver = strings.ToLower(strings.TrimSpace(c.UserStore.Driver))
	switch c.UserStore.Driver {
	case "":
		c.UserStore.Driver = DriverSQLite
	case DriverSQLite, DriverMySQL, DriverPostgres, DriverMongo:
	case "postgresql":
		c.UserStore.Driver = DriverPostgres
	case "mongo":
		c.UserStore.Driver = DriverMongo
	default:
		return fmt.Errorf("unsupported user store driver: %s", c.UserStore.Driver)
	}
	return nil
}
