package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsBuiltin(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MFact != Defaults.MFact {
		t.Fatalf("expected builtin mfact %v, got %v", Defaults.MFact, cfg.MFact)
	}
	if len(cfg.Tags) != 9 {
		t.Fatalf("expected 9 builtin tags, got %d", len(cfg.Tags))
	}
}

func TestLoad_OverlaysOnlySetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wm.yaml")
	if err := os.WriteFile(path, []byte("mfact: 0.6\nsnap: 10\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MFact != 0.6 {
		t.Fatalf("expected mfact=0.6, got %v", cfg.MFact)
	}
	if cfg.Snap != 10 {
		t.Fatalf("expected snap=10, got %d", cfg.Snap)
	}
	// Untouched fields keep their compiled-in default.
	if cfg.BorderPx != Defaults.BorderPx {
		t.Fatalf("expected border_px to keep default %d, got %d", Defaults.BorderPx, cfg.BorderPx)
	}
	if !cfg.ShowBar {
		t.Fatalf("expected show_bar to keep default true")
	}
}

func TestBuiltin_RuleTableMatchesCompileIn(t *testing.T) {
	cfg := Builtin()
	if len(cfg.Rules) != len(DefaultRules) {
		t.Fatalf("expected %d rules, got %d", len(DefaultRules), len(cfg.Rules))
	}
	if cfg.Layouts[0].Kind != LayoutTile {
		t.Fatalf("expected first layout to be tile, got %v", cfg.Layouts[0].Kind)
	}
}
