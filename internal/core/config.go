package core

import (
	"errors"
	"fmt"
)

// Rewards is the per-event reward scheme.
type Rewards struct {
	EnemyKilled  float64 // Added once per enemy killed this tick
	CoreBreach   float64 // Added when a breach occurs this tick
	TickSurvived float64 // Added every tick
}

// Params contains the tunable rules of one simulation instance.
// Grid dimensions and enemy capacity are compile-time constants.
type Params struct {
	SpawnInterval     int     // Ticks between spawns; <= 0 disables spawning
	MaxTicks          int     // Tick count at which an episode is truncated
	WallHP            uint8   // Hit points of a freshly placed wall
	GCDTicks          uint16  // Global cooldown applied after a placement
	CellCooldownTicks uint16  // Per-cell cooldown applied after a placement
	EnemySpeedHalf    int16   // Half-cells moved per tick by alive enemies
	Rewards           Rewards // Reward scheme
}

// DefaultParams returns the standard rule set.
func DefaultParams() Params {
	return Params{
		SpawnInterval:     DefaultSpawnInterval,
		MaxTicks:          MaxEpisodeTicks,
		WallHP:            DefaultWallHP,
		GCDTicks:          GCDTicks,
		CellCooldownTicks: CellCooldownTicks,
		EnemySpeedHalf:    EnemySpeedHalf,
		Rewards: Rewards{
			EnemyKilled:  RewardEnemyKilled,
			CoreBreach:   RewardCoreBreach,
			TickSurvived: RewardTickSurvived,
		},
	}
}

// Validate reports the first rule that cannot drive a simulation.
func (p Params) Validate() error {
	if p.MaxTicks <= 0 {
		return fmt.Errorf("core: max ticks must be positive, got %d", p.MaxTicks)
	}
	if p.WallHP == 0 {
		return errors.New("core: wall hp must be positive")
	}
	if p.EnemySpeedHalf <= 0 {
		return fmt.Errorf("core: enemy speed must be positive, got %d", p.EnemySpeedHalf)
	}
	return nil
}
