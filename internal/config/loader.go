package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlocks loads the falling-block puzzle configuration.
// Search order: customPath -> ~/.tetropet/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default
func LoadBlocks(customPath string) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	if err := load("blocks", customPath, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Board.Width <= 0 || cfg.Board.Height <= 0 {
		return cfg, fmt.Errorf("invalid board size %dx%d", cfg.Board.Width, cfg.Board.Height)
	}
	return cfg, nil
}

// LoadPet loads the virtual pet configuration.
// Search order: customPath -> ~/.tetropet/configs/pet.yaml -> ./configs/pet.yaml -> embedded default
func LoadPet(customPath string) (PetConfig, error) {
	cfg := DefaultPetConfig()
	if err := load("pet", customPath, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load decodes the first usable YAML source into out. Fields missing from
// the file keep the values already in out.
func load(gameID, customPath string, out any) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	filename := gameID + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Use embedded default YAML; the hardcoded defaults already in out are the fallback
	if data := GetDefaultYAML(gameID); data != nil {
		_ = yaml.Unmarshal(data, out)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetropet", "configs", filename)
}
