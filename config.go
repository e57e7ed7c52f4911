package willow3d

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// RunConfig configures the window and loop created by Run.
type RunConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool `toml:"show_fps"`
	// MaxDelta caps the per-tick step in seconds. Zero keeps the stage's value.
	MaxDelta float32 `toml:"max_delta"`
	// Background fills the screen before each frame. The zero value leaves
	// ebiten's default clear.
	Background Color `toml:"background"`
	// ScreenshotDir overrides Stage.ScreenshotDir when non-empty.
	ScreenshotDir string `toml:"screenshot_dir"`
	// TestScript is a path to a JSON test script attached at startup.
	TestScript string `toml:"test_script"`
}

// DefaultRunConfig returns the values Run falls back to.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:  "willow3d",
		Width:  640,
		Height: 480,
	}
}

// withDefaults fills zero fields from DefaultRunConfig.
func (c RunConfig) withDefaults() RunConfig {
	d := DefaultRunConfig()
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	return c
}

// LoadRunConfig parses TOML into a RunConfig. Keys that are absent keep
// their DefaultRunConfig values.
func LoadRunConfig(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return RunConfig{}, fmt.Errorf("parse run config: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.MaxDelta < 0 {
		return RunConfig{}, fmt.Errorf("parse run config: negative max_delta %v", cfg.MaxDelta)
	}
	return cfg, nil
}

// LoadRunConfigFile reads and parses a TOML file.
func LoadRunConfigFile(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read run config: %w", err)
	}
	return LoadRunConfig(data)
}
