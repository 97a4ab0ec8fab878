package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	def := DefaultFlapperConfig()
	if cfg.Physics != def.Physics {
		t.Errorf("physics mismatch:\n yaml: %+v\n code: %+v", cfg.Physics, def.Physics)
	}
	if cfg.Player != def.Player {
		t.Errorf("player mismatch:\n yaml: %+v\n code: %+v", cfg.Player, def.Player)
	}
	if cfg.Timing != def.Timing {
		t.Errorf("timing mismatch:\n yaml: %+v\n code: %+v", cfg.Timing, def.Timing)
	}
	if cfg.Display != def.Display {
		t.Errorf("display mismatch:\n yaml: %+v\n code: %+v", cfg.Display, def.Display)
	}
	if cfg.Difficulty != def.Difficulty {
		t.Errorf("difficulty mismatch:\n yaml: %+v\n code: %+v", cfg.Difficulty, def.Difficulty)
	}
	if strings.Join(cfg.Obstacles.Kinds, ",") != "stone,stone2,cactus,wood" {
		t.Errorf("kinds = %v", cfg.Obstacles.Kinds)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "physics:\n  gravity: 0.5\ntiming:\n  jump_cooldown: 150ms\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %f, expected 0.5", cfg.Physics.Gravity)
	}
	if cfg.Timing.JumpCooldown != 150*time.Millisecond {
		t.Errorf("jump cooldown = %v, expected 150ms", cfg.Timing.JumpCooldown)
	}
	// Untouched values keep their defaults
	if cfg.Physics.GroundLine != 85 || cfg.Timing.WarmupDelay != 2*time.Second {
		t.Errorf("defaults lost: ground=%f warmup=%v", cfg.Physics.GroundLine, cfg.Timing.WarmupDelay)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  ground_line: 10\n  ceiling_line: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "ground_line") {
		t.Errorf("invalid config should fail validation, got %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should be rejected")
	}
}

func TestValidateRejectsEmptyKinds(t *testing.T) {
	cfg := DefaultFlapperConfig()
	cfg.Obstacles.Kinds = nil
	if err := cfg.Validate(); err == nil {
		t.Error("empty kinds should fail validation")
	}
}

func TestValidateRejectsNegativeNightScore(t *testing.T) {
	cfg := DefaultFlapperConfig()
	cfg.Display.NightScore = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative night_score should fail validation")
	}
}
