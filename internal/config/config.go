// Package config holds the clipping and previewer settings, stored as TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"tacgraph/internal/assemble"
	"tacgraph/internal/clip"
	"tacgraph/internal/graphic"
)

// DefaultColorKey is the colors entry used for kinds without their own.
const DefaultColorKey = "default"

// Clip tunes the clipping pipeline. Distances are in pixels.
type Clip struct {
	RectInset     float64 `toml:"rect_inset"`
	PolygonMargin float64 `toml:"polygon_margin"`
	SegmentLength float64 `toml:"segment_length"`
	SpikeDistance float64 `toml:"spike_distance"`
}

// Viewer configures the terminal previewer.
type Viewer struct {
	ZoomStep float64 `toml:"zoom_step"`

	// Viewport is "rect" or "polygon".
	Viewport string `toml:"viewport"`

	// PolygonRotation turns the polygon viewport, in degrees.
	PolygonRotation float64 `toml:"polygon_rotation"`

	Fills bool `toml:"fills"`
}

type Config struct {
	Clip   Clip   `toml:"clip"`
	Viewer Viewer `toml:"viewer"`

	// Colors maps line kind names to lipgloss colors.
	Colors map[string]string `toml:"colors"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Clip: Clip{
			RectInset:     clip.DefaultRectInset,
			PolygonMargin: clip.DefaultPolygonMargin,
			SegmentLength: 16,
			SpikeDistance: 1,
		},
		Viewer: Viewer{
			ZoomStep:        1.2,
			Viewport:        "rect",
			PolygonRotation: 20,
			Fills:           true,
		},
		Colors: map[string]string{
			DefaultColorKey:                               "252",
			graphic.KindPhaseLine.String():                "39",
			graphic.KindBoundary.String():                 "255",
			graphic.KindForwardLineOfTroops.String():      "33",
			graphic.KindMinefield.String():                "203",
			graphic.KindObstacleBelt.String():             "208",
			graphic.KindRestrictedOperationsZone.String(): "220",
			graphic.KindRangeFan.String():                 "141",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tacgraph", "config.toml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults;
// unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Colors == nil {
		cfg.Colors = Default().Colors
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path, creating the directory if needed.
func (c Config) Save(path string) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.Clip.RectInset < 0 || c.Clip.PolygonMargin < 0 {
		return errors.New("clip: inset and margin must not be negative")
	}
	if c.Clip.SegmentLength < 0 || c.Clip.SpikeDistance < 0 {
		return errors.New("clip: segment length and spike distance must not be negative")
	}
	if c.Viewer.ZoomStep <= 1 {
		return fmt.Errorf("viewer: zoom_step must be above 1, got %v", c.Viewer.ZoomStep)
	}
	if _, err := assemble.ParseViewportMode(c.Viewer.Viewport); err != nil {
		return err
	}
	for name := range c.Colors {
		if name == DefaultColorKey {
			continue
		}
		if _, err := graphic.ParseLineKind(name); err != nil {
			return fmt.Errorf("colors: %w: %q", err, name)
		}
	}
	return nil
}

// ViewportMode returns the configured viewport mode, falling back to rect.
func (c Config) ViewportMode() assemble.ViewportMode {
	m, _ := assemble.ParseViewportMode(c.Viewer.Viewport)
	return m
}

func (c Config) RectClipper() *clip.RectClipper {
	return &clip.RectClipper{Inset: c.Clip.RectInset}
}

func (c Config) PolygonClipper() *clip.PolygonClipper {
	return &clip.PolygonClipper{Margin: c.Clip.PolygonMargin}
}

// Color returns the color for kind, or the default entry.
func (c Config) Color(kind graphic.LineKind) string {
	if col, ok := c.Colors[kind.String()]; ok {
		return col
	}
	return c.Colors[DefaultColorKey]
}
