package willow3d

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewGameAppliesConfig(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.json")
	if err := os.WriteFile(script, []byte(`{"steps":[{"action":"wait","frames":1}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStage(640, 480)
	g, err := newGame(s, RunConfig{
		MaxDelta:      0.1,
		ScreenshotDir: filepath.Join(dir, "shots"),
		TestScript:    script,
	})
	if err != nil {
		t.Fatalf("newGame: %v", err)
	}
	if s.MaxDelta != 0.1 {
		t.Errorf("MaxDelta = %v, want 0.1", s.MaxDelta)
	}
	if s.ScreenshotDir != filepath.Join(dir, "shots") {
		t.Errorf("ScreenshotDir = %q", s.ScreenshotDir)
	}
	if s.testRunner == nil || len(s.testRunner.steps) != 1 {
		t.Error("test script should be attached")
	}
	if g.cfg.Title != "willow3d" {
		t.Errorf("Title = %q, want the default", g.cfg.Title)
	}
	if g.fps != nil {
		t.Error("fps overlay should be off by default")
	}
}

func TestNewGameKeepsStageDefaults(t *testing.T) {
	s := NewStage(640, 480)
	if _, err := newGame(s, RunConfig{}); err != nil {
		t.Fatalf("newGame: %v", err)
	}
	if s.MaxDelta != DefaultMaxDelta {
		t.Errorf("MaxDelta = %v, want %v", s.MaxDelta, DefaultMaxDelta)
	}
	if s.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want screenshots", s.ScreenshotDir)
	}
}

func TestNewGameScriptErrors(t *testing.T) {
	s := NewStage(640, 480)
	if _, err := newGame(s, RunConfig{TestScript: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Error("expected error for missing script")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := newGame(s, RunConfig{TestScript: bad}); err == nil {
		t.Error("expected error for invalid script")
	}
}

func TestGameLayoutSetsViewport(t *testing.T) {
	s := NewStage(640, 480)
	g, err := newGame(s, RunConfig{})
	if err != nil {
		t.Fatal(err)
	}
	w, h := g.Layout(800, 600)
	if w != 800 || h != 600 {
		t.Errorf("Layout = %d,%d, want 800,600", w, h)
	}
	cam := s.Camera().(*PerspectiveCamera)
	if cam.ViewportWidth != 800 || cam.ViewportHeight != 600 {
		t.Errorf("viewport = %vx%v, want 800x600", cam.ViewportWidth, cam.ViewportHeight)
	}
}

func TestSetUpdateFunc(t *testing.T) {
	s := NewStage(640, 480)
	called := false
	s.SetUpdateFunc(func() error { called = true; return nil })
	if err := s.updateFunc(); err != nil || !called {
		t.Error("update func should be stored")
	}
}

func TestRunNilStagePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Run(nil, RunConfig{})
}
