package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var blocks BlocksConfig
	if err := yaml.Unmarshal(GetDefaultYAML("blocks"), &blocks); err != nil {
		t.Fatalf("blocks yaml: %v", err)
	}
	if blocks != DefaultBlocksConfig() {
		t.Errorf("blocks.yaml = %+v, want %+v", blocks, DefaultBlocksConfig())
	}

	var pet PetConfig
	if err := yaml.Unmarshal(GetDefaultYAML("pet"), &pet); err != nil {
		t.Fatalf("pet yaml: %v", err)
	}
	if pet != DefaultPetConfig() {
		t.Errorf("pet.yaml = %+v, want %+v", pet, DefaultPetConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blocks.yaml")
	data := []byte("board:\n  width: 12\n  height: 24\ngravity:\n  base_ticks: 30\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlocks(path)
	if err != nil {
		t.Fatalf("LoadBlocks: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Board.Height != 24 {
		t.Errorf("board = %dx%d, want 12x24", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Gravity.BaseTicks != 30 {
		t.Errorf("base ticks = %d, want 30", cfg.Gravity.BaseTicks)
	}
	// Unset fields keep defaults
	if cfg.Gravity.MinTicks != DefaultBlocksConfig().Gravity.MinTicks {
		t.Errorf("min ticks = %d, want default", cfg.Gravity.MinTicks)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadPet(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("timers: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPet(path); err == nil {
		t.Error("expected parse error")
	}

	path = filepath.Join(t.TempDir(), "zero.yaml")
	if err := os.WriteFile(path, []byte("board:\n  width: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlocks(path); err == nil {
		t.Error("expected error for zero width board")
	}
}

func TestPetDurationsParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.yaml")
	if err := os.WriteFile(path, []byte("timers:\n  decay: 2m\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadPet(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timers.Decay != 2*time.Minute {
		t.Errorf("decay = %v, want 2m", cfg.Timers.Decay)
	}
	if cfg.Timers.Autosave != 30*time.Second {
		t.Errorf("autosave = %v, want default 30s", cfg.Timers.Autosave)
	}
}

func TestGravityTicks(t *testing.T) {
	g := DefaultBlocksConfig().Gravity
	tests := []struct {
		level int
		want  int
	}{
		{0, 48},
		{1, 48},
		{2, 44},
		{5, 32},
		{12, 4},
		{50, 4},
	}
	for _, tt := range tests {
		if got := g.GravityTicks(tt.level); got != tt.want {
			t.Errorf("GravityTicks(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestApplyBlocksPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		level  int
		want   int
	}{
		{DifficultyNormal, 1, 48},
		{DifficultyEasy, 1, 72},
		{DifficultyHard, 1, 28},
		{DifficultyFixed, 1, 48},
		{DifficultyFixed, 9, 48},
	}
	for _, tt := range tests {
		cfg := DefaultBlocksConfig()
		ApplyBlocksPreset(&cfg, tt.preset)
		if got := cfg.Gravity.GravityTicks(tt.level); got != tt.want {
			t.Errorf("%s level %d: ticks = %d, want %d", tt.preset, tt.level, got, tt.want)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, ok := ParseDifficulty(""); !ok || p != DifficultyNormal {
		t.Errorf("empty = %q,%v", p, ok)
	}
	if p, ok := ParseDifficulty("hard"); !ok || p != DifficultyHard {
		t.Errorf("hard = %q,%v", p, ok)
	}
	if _, ok := ParseDifficulty("nightmare"); ok {
		t.Error("unknown preset accepted")
	}
}
