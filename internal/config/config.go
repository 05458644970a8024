// Package config provides YAML-based configuration loading and difficulty
// presets for the Firewall Defense simulator.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/firewall-defense/internal/core"
)

// Config contains all runtime configuration.
type Config struct {
	Sim     SimConfig     `yaml:"sim"`
	Rewards RewardsConfig `yaml:"rewards"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Replay  ReplayConfig  `yaml:"replay"`
}

// SimConfig defines the simulation rules.
type SimConfig struct {
	SpawnInterval     int `yaml:"spawn_interval"`
	MaxTicks          int `yaml:"max_ticks"`
	WallHP            int `yaml:"wall_hp"`
	GCDTicks          int `yaml:"gcd_ticks"`
	CellCooldownTicks int `yaml:"cell_cooldown_ticks"`
	EnemySpeedHalf    int `yaml:"enemy_speed_half"`
}

// RewardsConfig defines the reward scheme.
type RewardsConfig struct {
	EnemyKilled  float64 `yaml:"enemy_killed"`
	CoreBreach   float64 `yaml:"core_breach"`
	TickSurvived float64 `yaml:"tick_survived"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn" or "error"
	Format string `yaml:"format"` // "auto", "text", "json" or "logfmt"
}

// StorageConfig defines where episode results are persisted.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ReplayConfig defines replay recording.
type ReplayConfig struct {
	Dir             string `yaml:"dir"`
	CheckpointEvery int    `yaml:"checkpoint_every"` // Ticks between checkpoint hashes, 0 disables
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"auto", "text", "json", "logfmt"}
)

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	s := c.Sim
	switch {
	case s.MaxTicks <= 0:
		return fmt.Errorf("sim.max_ticks must be positive, got %d", s.MaxTicks)
	case s.WallHP < 1 || s.WallHP > core.MaxWallHP:
		return fmt.Errorf("sim.wall_hp must be in [1, %d], got %d", core.MaxWallHP, s.WallHP)
	case s.GCDTicks < 0 || s.GCDTicks > core.MaxCooldown:
		return fmt.Errorf("sim.gcd_ticks must be in [0, %d], got %d", core.MaxCooldown, s.GCDTicks)
	case s.CellCooldownTicks < 0 || s.CellCooldownTicks > core.MaxCooldown:
		return fmt.Errorf("sim.cell_cooldown_ticks must be in [0, %d], got %d", core.MaxCooldown, s.CellCooldownTicks)
	case s.EnemySpeedHalf < 1 || s.EnemySpeedHalf > core.HalfCellsPerCell*core.Height:
		return fmt.Errorf("sim.enemy_speed_half must be in [1, %d], got %d",
			core.HalfCellsPerCell*core.Height, s.EnemySpeedHalf)
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level %q is not one of %v", c.Log.Level, logLevels)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format %q is not one of %v", c.Log.Format, logFormats)
	}
	if c.Replay.CheckpointEvery < 0 {
		return errors.New("replay.checkpoint_every must not be negative")
	}
	return nil
}

// Params converts the simulation settings into core rules. The config must
// have passed Validate.
func (c Config) Params() core.Params {
	return core.Params{
		SpawnInterval:     c.Sim.SpawnInterval,
		MaxTicks:          c.Sim.MaxTicks,
		WallHP:            uint8(c.Sim.WallHP),
		GCDTicks:          uint16(c.Sim.GCDTicks),
		CellCooldownTicks: uint16(c.Sim.CellCooldownTicks),
		EnemySpeedHalf:    int16(c.Sim.EnemySpeedHalf),
		Rewards: core.Rewards{
			EnemyKilled:  c.Rewards.EnemyKilled,
			CoreBreach:   c.Rewards.CoreBreach,
			TickSurvived: c.Rewards.TickSurvived,
		},
	}
}
