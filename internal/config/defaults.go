package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

//go:embed defaults/pet.yaml
var defaultPetYAML []byte

// DefaultBlocksConfig returns the built-in puzzle configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BlocksBoard{
			Width:  10,
			Height: 20,
		},
		Gravity: BlocksGravity{
			BaseTicks:     48, // 0.8s per row at 60fps
			TicksPerLevel: 4,
			MinTicks:      4,
			Multiplier:    1,
		},
	}
}

// DefaultPetConfig returns the built-in pet configuration.
func DefaultPetConfig() PetConfig {
	return PetConfig{
		DefaultName:    "Mochi",
		DefaultSpecies: "cat",
		Timers: PetTimers{
			Decay:            time.Minute,
			Autosave:         30 * time.Second,
			OfflineThreshold: time.Minute,
		},
		Notifications: PetNotifying{
			Max: 5,
			TTL: 5 * time.Second,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blocks":
		return defaultBlocksYAML
	case "pet":
		return defaultPetYAML
	default:
		return nil
	}
}
