// Package config loads and saves FlowCanvas editor settings from a TOML
// file under the user's config directory. A missing or unreadable file
// silently falls back to defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/geom"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// Config holds FlowCanvas configuration.
type Config struct {
	Canvas    CanvasConfig    `toml:"canvas"`
	View      ViewConfig      `toml:"view"`
	History   HistoryConfig   `toml:"history"`
	Clipboard ClipboardConfig `toml:"clipboard"`
}

// CanvasConfig controls grid, snapping, and node placement defaults.
type CanvasConfig struct {
	GridSize   float64 `toml:"grid_size"`
	SnapToGrid bool    `toml:"snap_to_grid"`
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
}

// ViewConfig controls pan and zoom limits.
type ViewConfig struct {
	MinScale float64 `toml:"min_scale"`
	MaxScale float64 `toml:"max_scale"`
	ZoomStep float64 `toml:"zoom_step"`
}

// HistoryConfig controls the undo stack.
type HistoryConfig struct {
	Limit int `toml:"limit"`
}

// ClipboardConfig controls paste placement.
type ClipboardConfig struct {
	PasteOffsetX float64 `toml:"paste_offset_x"`
	PasteOffsetY float64 `toml:"paste_offset_y"`
}

// Default returns the default configuration.
func Default() *Config {
	def := canvas.DefaultOptions()
	size := graph.DefaultNodeSize
	return &Config{
		Canvas: CanvasConfig{
			GridSize:   def.GridSize,
			SnapToGrid: def.SnapToGrid,
			NodeWidth:  size.Width,
			NodeHeight: size.Height,
		},
		View:    ViewConfig{MinScale: def.MinScale, MaxScale: def.MaxScale, ZoomStep: def.ZoomStep},
		History: HistoryConfig{Limit: 50},
		Clipboard: ClipboardConfig{
			PasteOffsetX: def.PasteOffset.X,
			PasteOffsetY: def.PasteOffset.Y,
		},
	}
}

// NodeSize returns the configured default size for new nodes, falling
// back to the built-in default for non-positive dimensions.
func (c *Config) NodeSize() geom.Size {
	if c.Canvas.NodeWidth <= 0 || c.Canvas.NodeHeight <= 0 {
		return graph.DefaultNodeSize
	}
	return geom.Size{Width: c.Canvas.NodeWidth, Height: c.Canvas.NodeHeight}
}

// EngineOptions converts the configuration into engine options.
func (c *Config) EngineOptions() canvas.Options {
	return canvas.Options{
		GridSize:     c.Canvas.GridSize,
		SnapToGrid:   c.Canvas.SnapToGrid,
		PasteOffset:  geom.Point{X: c.Clipboard.PasteOffsetX, Y: c.Clipboard.PasteOffsetY},
		HistoryLimit: c.History.Limit,
		MinScale:     c.View.MinScale,
		MaxScale:     c.View.MaxScale,
		ZoomStep:     c.View.ZoomStep,
	}
}

// ConfigDir returns the flowcanvas config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "flowcanvas")
}

func configPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't
// exist or cannot be parsed.
func Load() *Config {
	return LoadFile(configPath())
}

// LoadFile reads a config file from an explicit path, falling back to
// defaults if it doesn't exist or cannot be parsed.
func LoadFile(path string) *Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
