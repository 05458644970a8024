package config

import (
	_ "embed"

	"github.com/vovakirdan/firewall-defense/internal/core"
)

//go:embed defaults/firewall.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/firewall.yaml.
func Default() Config {
	return Config{
		Sim: SimConfig{
			SpawnInterval:     core.DefaultSpawnInterval,
			MaxTicks:          core.MaxEpisodeTicks,
			WallHP:            core.DefaultWallHP,
			GCDTicks:          core.GCDTicks,
			CellCooldownTicks: core.CellCooldownTicks,
			EnemySpeedHalf:    core.EnemySpeedHalf,
		},
		Rewards: RewardsConfig{
			EnemyKilled:  core.RewardEnemyKilled,
			CoreBreach:   core.RewardCoreBreach,
			TickSurvived: core.RewardTickSurvived,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Storage: StorageConfig{
			Path: "~/.firewall/episodes.db",
		},
		Replay: ReplayConfig{
			Dir:             "replays",
			CheckpointEvery: 50,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
