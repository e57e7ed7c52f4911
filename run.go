package willow3d

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// UpdateFunc is called once per tick after input and before the stage
// updates. Returning an error stops Run with that error.
type UpdateFunc func() error

// SetUpdateFunc registers a per-tick callback used by Run.
func (s *Stage) SetUpdateFunc(fn UpdateFunc) {
	s.updateFunc = fn
}

// game adapts a Stage to ebiten.Game.
type game struct {
	stage *Stage
	cfg   RunConfig
	fps   *fpsOverlay
}

// Update runs one tick: test runner, input, user callback, stage update.
func (g *game) Update() error {
	s := g.stage
	if s.testRunner != nil {
		s.testRunner.Step(s)
	}
	s.ProcessInput()
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	dt := s.UpdateElapsed()
	if g.fps != nil {
		g.fps.update(dt)
	}
	return nil
}

// Draw clears to the background color and draws the stage.
func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != (Color{}) {
		screen.Fill(g.cfg.Background.toRGBA())
	}
	g.stage.DrawTo(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout keeps the camera viewport in sync with the window size.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if pc, ok := g.stage.camera.(*PerspectiveCamera); ok {
		pc.SetViewport(float32(outsideWidth), float32(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// newGame applies cfg to the stage and builds the ebiten.Game wrapper.
func newGame(s *Stage, cfg RunConfig) (*game, error) {
	cfg = cfg.withDefaults()
	if cfg.MaxDelta > 0 {
		s.MaxDelta = cfg.MaxDelta
	}
	if cfg.ScreenshotDir != "" {
		s.ScreenshotDir = cfg.ScreenshotDir
	}
	if cfg.TestScript != "" {
		data, err := os.ReadFile(cfg.TestScript)
		if err != nil {
			return nil, fmt.Errorf("run: read test script: %w", err)
		}
		runner, err := LoadTestScript(data)
		if err != nil {
			return nil, fmt.Errorf("run: %w", err)
		}
		s.SetTestRunner(runner)
	}
	g := &game{stage: s, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return g, nil
}

// Run opens a window and drives the stage until the window closes or the
// update callback returns an error.
func Run(s *Stage, cfg RunConfig) error {
	if s == nil {
		panic("willow3d: stage cannot be nil")
	}
	g, err := newGame(s, cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if pc, ok := s.camera.(*PerspectiveCamera); ok {
		pc.SetViewport(float32(g.cfg.Width), float32(g.cfg.Height))
	}
	defer func() {
		if g.fps != nil {
			g.fps.dispose()
		}
	}()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
