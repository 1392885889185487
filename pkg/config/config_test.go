package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chanvese/pkg/chanvese"
)

// TestDefaultConfig verifies that the defaults match the solver defaults
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if got, want := cfg.Params(), chanvese.DefaultParams(); got != want {
		t.Errorf("Expected params %+v, got %+v", want, got)
	}
	if cfg.Init.Mode != InitDefault {
		t.Errorf("Expected init mode %q, got %q", InitDefault, cfg.Init.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

// TestLoadConfigMissingFile returns defaults when no file exists
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Solver.MaxIter != 500 {
		t.Errorf("Expected default maxIter=500, got %d", cfg.Solver.MaxIter)
	}
}

// TestLoadConfigPartial checks that omitted fields keep their defaults
func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	doc := `
solver:
  mu: 0.05
  tol: 0.01
init:
  mode: rect
  rect: [0, 0, 7, 19]
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Solver.Mu != 0.05 || cfg.Solver.Tol != 0.01 {
		t.Errorf("Expected mu=0.05 tol=0.01, got mu=%v tol=%v", cfg.Solver.Mu, cfg.Solver.Tol)
	}
	if cfg.Solver.Dt != 0.5 || cfg.Solver.Lambda1 != 1 {
		t.Errorf("Expected untouched defaults dt=0.5 lambda1=1, got dt=%v lambda1=%v", cfg.Solver.Dt, cfg.Solver.Lambda1)
	}
	if cfg.Init.Mode != InitRect || len(cfg.Init.Rect) != 4 || cfg.Init.Rect[2] != 7 {
		t.Errorf("Unexpected init section: %+v", cfg.Init)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("solver: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected a parse error")
	}
}

// TestSaveLoadRoundTrip writes a modified config into a nested directory
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cfg.yaml")

	cfg := DefaultConfig()
	cfg.Solver.Nu = -0.2
	cfg.Init.Mode = InitRect
	cfg.Init.Rect = []int{1, 2, 3, 4}
	cfg.Output.Verbose = true

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Params() != cfg.Params() {
		t.Errorf("Expected params %+v, got %+v", cfg.Params(), loaded.Params())
	}
	if !loaded.Output.Verbose || loaded.Init.Mode != InitRect || len(loaded.Init.Rect) != 4 {
		t.Errorf("Round trip lost fields: %+v", loaded)
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("CreateDefaultConfigFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Config file not written: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver.Dt = -1
	if err := cfg.Validate(); !errors.Is(err, chanvese.ErrInvalidParams) {
		t.Errorf("Expected ErrInvalidParams, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Init.Mode = "circle"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected an error for an unknown init mode")
	}
}

// TestLoadExampleConfig keeps the shipped example loadable
func TestLoadExampleConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "testdata", "chanvese.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Example config should validate, got %v", err)
	}
	if cfg.Init.Mode != InitRect || cfg.Solver.MaxIter != 500 {
		t.Errorf("Unexpected example config: %+v", cfg)
	}
}
