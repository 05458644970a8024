// Package replay records and verifies seeded episode logs.
//
// A replay holds everything needed to reproduce an episode bit for bit: the
// seed, the rules and the action taken on every tick. Snapshot hashes taken
// at checkpoints and at the end let Verify report the first diverging tick.
package replay

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/firewall-defense/internal/core"
)

// FormatVersion is written to every replay file.
const FormatVersion = 1

// Replay is one recorded episode.
type Replay struct {
	Version     int          `yaml:"version"`
	ID          string       `yaml:"id,omitempty"`
	Policy      string       `yaml:"policy,omitempty"`
	Seed        int64        `yaml:"seed"`
	Params      Params       `yaml:"params"`
	Actions     []int        `yaml:"actions,flow"`
	Checkpoints []Checkpoint `yaml:"checkpoints,omitempty"`
	FinalTick   uint32       `yaml:"final_tick"`
	FinalHash   Hash         `yaml:"final_hash"`
	TotalReward float64      `yaml:"total_reward"`
}

// Checkpoint is the snapshot hash after a given tick.
type Checkpoint struct {
	Tick uint32 `yaml:"tick"`
	Hash Hash   `yaml:"hash"`
}

// Params mirrors core.Params with stable YAML keys.
type Params struct {
	SpawnInterval     int     `yaml:"spawn_interval"`
	MaxTicks          int     `yaml:"max_ticks"`
	WallHP            uint8   `yaml:"wall_hp"`
	GCDTicks          uint16  `yaml:"gcd_ticks"`
	CellCooldownTicks uint16  `yaml:"cell_cooldown_ticks"`
	EnemySpeedHalf    int16   `yaml:"enemy_speed_half"`
	RewardKill        float64 `yaml:"reward_enemy_killed"`
	RewardBreach      float64 `yaml:"reward_core_breach"`
	RewardTick        float64 `yaml:"reward_tick_survived"`
}

// FromCore converts core rules into their YAML form.
func FromCore(p core.Params) Params {
	return Params{
		SpawnInterval:     p.SpawnInterval,
		MaxTicks:          p.MaxTicks,
		WallHP:            p.WallHP,
		GCDTicks:          p.GCDTicks,
		CellCooldownTicks: p.CellCooldownTicks,
		EnemySpeedHalf:    p.EnemySpeedHalf,
		RewardKill:        p.Rewards.EnemyKilled,
		RewardBreach:      p.Rewards.CoreBreach,
		RewardTick:        p.Rewards.TickSurvived,
	}
}

// Core converts the YAML form back into core rules.
func (p Params) Core() core.Params {
	return core.Params{
		SpawnInterval:     p.SpawnInterval,
		MaxTicks:          p.MaxTicks,
		WallHP:            p.WallHP,
		GCDTicks:          p.GCDTicks,
		CellCooldownTicks: p.CellCooldownTicks,
		EnemySpeedHalf:    p.EnemySpeedHalf,
		Rewards: core.Rewards{
			EnemyKilled:  p.RewardKill,
			CoreBreach:   p.RewardBreach,
			TickSurvived: p.RewardTick,
		},
	}
}

// Hash is a snapshot hash, written as 16 hex digits.
type Hash uint64

// String returns the hex form of h.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// MarshalYAML implements yaml.Marshaler.
func (h Hash) MarshalYAML() (any, error) {
	return h.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *Hash) UnmarshalYAML(node *yaml.Node) error {
	v, err := strconv.ParseUint(node.Value, 16, 64)
	if err != nil {
		return fmt.Errorf("line %d: bad hash %q", node.Line, node.Value)
	}
	*h = Hash(v)
	return nil
}

// Marshal encodes a replay as YAML.
func Marshal(rep *Replay) ([]byte, error) {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// Parse decodes a YAML replay and checks that it can drive a simulation.
func Parse(data []byte) (*Replay, error) {
	var rep Replay
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if rep.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported replay version %d", rep.Version)
	}
	if err := rep.Params.Core().Validate(); err != nil {
		return nil, err
	}
	for i, a := range rep.Actions {
		if a < 0 || a >= core.NumActions {
			return nil, fmt.Errorf("action %d at tick %d out of range", a, i+1)
		}
	}
	return &rep, nil
}
