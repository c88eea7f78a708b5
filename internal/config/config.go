// Package config handles viewer configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/objview/internal/viewport"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	View     ViewConfig     `yaml:"view"`
	Models   ModelsConfig   `yaml:"models"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display and frame pacing settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	TickRate   int  `yaml:"tick_rate"` // Ticks per second
}

// ViewConfig holds projection and rotation settings.
type ViewConfig struct {
	Scale         float64 `yaml:"scale"`
	ZoomStep      float64 `yaml:"zoom_step"`
	Sensitivity   float64 `yaml:"sensitivity"`
	InitialXAngle float64 `yaml:"initial_x_angle"`
	InitialYAngle float64 `yaml:"initial_y_angle"`
	PointSize     float32 `yaml:"point_size"`
}

// ModelsConfig holds model discovery and selection settings.
type ModelsConfig struct {
	Dir          string   `yaml:"dir"`           // Models directory
	Encoding     string   `yaml:"encoding"`      // Source text encoding, "" for UTF-8
	LineElements bool     `yaml:"line_elements"` // Draw OBJ "l" elements as edges
	Selector     string   `yaml:"selector"`      // prompt, dialog or static
	Model        string   `yaml:"model"`         // Preselected model name
	Objects      []string `yaml:"objects"`       // Preselected object filter
}

// SnapshotConfig holds PNG snapshot settings.
type SnapshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      viewport.DefaultWidth,
			Height:     viewport.DefaultHeight,
			Fullscreen: false,
			VSync:      false,
			TickRate:   120,
		},
		View: ViewConfig{
			Scale:         viewport.DefaultScale,
			ZoomStep:      viewport.DefaultZoomStep,
			Sensitivity:   viewport.DefaultSensitivity,
			InitialXAngle: viewport.DefaultXAngle,
			InitialYAngle: viewport.DefaultYAngle,
			PointSize:     2,
		},
		Models: ModelsConfig{
			Dir:      "Models",
			Selector: "prompt",
		},
		Snapshot: SnapshotConfig{
			Dir:    "screenshots",
			Prefix: "objview",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Viewport returns the projector configuration.
func (c *Config) Viewport() viewport.Config {
	return viewport.Config{
		Width:         c.Window.Width,
		Height:        c.Window.Height,
		Scale:         c.View.Scale,
		ZoomStep:      c.View.ZoomStep,
		Sensitivity:   c.View.Sensitivity,
		InitialXAngle: c.View.InitialXAngle,
		InitialYAngle: c.View.InitialYAngle,
	}
}

// TickInterval returns the duration of one tick. A non-positive tick rate
// means unpaced.
func (c *Config) TickInterval() time.Duration {
	if c.Window.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.Window.TickRate)
}
