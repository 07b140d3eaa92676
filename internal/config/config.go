// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import "time"

// BlocksConfig contains all configuration for the falling-block puzzle.
type BlocksConfig struct {
	Board   BlocksBoard   `yaml:"board"`
	Gravity BlocksGravity `yaml:"gravity"`
}

// BlocksBoard defines the well dimensions.
type BlocksBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BlocksGravity defines how fast pieces fall, in simulation ticks per row.
type BlocksGravity struct {
	BaseTicks     int     `yaml:"base_ticks"`      // ticks per row at level 1
	TicksPerLevel int     `yaml:"ticks_per_level"` // ticks removed per level
	MinTicks      int     `yaml:"min_ticks"`       // floor for high levels
	Multiplier    float64 `yaml:"multiplier"`      // set by difficulty presets
}

// GravityTicks returns the number of ticks between automatic drops at level.
func (g BlocksGravity) GravityTicks(level int) int {
	if level < 1 {
		level = 1
	}
	ticks := g.BaseTicks - (level-1)*g.TicksPerLevel
	mult := g.Multiplier
	if mult <= 0 {
		mult = 1
	}
	ticks = int(float64(ticks) * mult)
	if ticks < g.MinTicks {
		ticks = g.MinTicks
	}
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// PetConfig contains the timing and adoption defaults for the pet simulation.
type PetConfig struct {
	DefaultName    string       `yaml:"default_name"`
	DefaultSpecies string       `yaml:"default_species"`
	Timers         PetTimers    `yaml:"timers"`
	Notifications  PetNotifying `yaml:"notifications"`
}

// PetTimers defines the periodic loops.
type PetTimers struct {
	Decay            time.Duration `yaml:"decay"`
	Autosave         time.Duration `yaml:"autosave"`
	OfflineThreshold time.Duration `yaml:"offline_threshold"`
}

// PetNotifying defines the transient notification list.
type PetNotifying struct {
	Max int           `yaml:"max"`
	TTL time.Duration `yaml:"ttl"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// ApplyBlocksPreset adjusts gravity for a difficulty preset.
// Fixed keeps level-1 speed for the whole game.
func ApplyBlocksPreset(cfg *BlocksConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gravity.Multiplier = 1.5
	case DifficultyHard:
		cfg.Gravity.Multiplier = 0.6
	case DifficultyFixed:
		cfg.Gravity.Multiplier = 1
		cfg.Gravity.TicksPerLevel = 0
	default:
		cfg.Gravity.Multiplier = 1
	}
}
