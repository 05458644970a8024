package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Keep the loaded values
)

// Presets lists every known preset.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficulty returns the preset named s. An empty string selects
// DifficultyFixed.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyFixed, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// SpawnIntervalForPreset returns the spawn interval for a difficulty preset,
// or 0 for DifficultyFixed.
func SpawnIntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 45
	case DifficultyNormal:
		return 30
	case DifficultyHard:
		return 15
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset leaves the config untouched.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		return
	}
	cfg.Sim.SpawnInterval = SpawnIntervalForPreset(preset)

	// Walls are sturdier on easy.
	switch preset {
	case DifficultyEasy:
		cfg.Sim.WallHP = 2
	default:
		cfg.Sim.WallHP = 1
	}
}
