package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Spawn interval never shrinks
)

// Presets lists the known presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset parses a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves it untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawner.Interval *= 1.4
		cfg.Spawner.MinInterval *= 1.5
		cfg.Spawner.PerRound = max(1, cfg.Spawner.PerRound-1)
		scaleJam(cfg, 0.5)
	case DifficultyHard:
		cfg.Spawner.Interval *= 0.7
		cfg.Spawner.Adjustment *= 1.5
		cfg.Spawner.PerRound++
		scaleJam(cfg, 1.5)
	case DifficultyFixed:
		cfg.Spawner.Adjustment = 0
	}
	if cfg.Spawner.MinInterval > cfg.Spawner.Interval {
		cfg.Spawner.MinInterval = cfg.Spawner.Interval
	}
}

func scaleJam(cfg *Config, k float64) {
	for i := range cfg.Weapons {
		j := cfg.Weapons[i].JamChance * k
		if j > 1 {
			j = 1
		}
		cfg.Weapons[i].JamChance = j
	}
}
