package core

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// StepResult describes what happened during one tick.
type StepResult struct {
	Tick           uint32 // Tick counter after the step
	Reward         float64
	Terminated     bool // A breach occurred this tick
	Truncated      bool // The tick counter reached the episode limit
	Placed         bool // The action placed a wall
	Spawned        bool // An enemy spawned this tick
	Breached       bool
	EnemiesKilled  int
	WallsDestroyed int
	BreachSlots    []int // Slots at or past the core before compaction
}

// Done returns true if the episode is over.
func (r StepResult) Done() bool {
	return r.Terminated || r.Truncated
}

// Simulation is one episode of Firewall Defense. It owns its grid, enemy
// table and random source exclusively; instances share no state.
type Simulation struct {
	params  Params
	seed    int64
	tick    uint32
	rng     *rand.Rand
	grid    GridState
	enemies EnemyState
}

// New creates a simulation reset with seed. It panics if params are invalid.
func New(params Params, seed int64) *Simulation {
	if err := params.Validate(); err != nil {
		panic(err)
	}
	s := &Simulation{params: params}
	s.grid = *newGridState(params)
	s.Reset(seed)
	return s
}

// Reset starts a fresh episode: zeroed grid and enemies, tick 0 and a new
// random source seeded with seed.
func (s *Simulation) Reset(seed int64) Snapshot {
	s.seed = seed
	s.tick = 0
	s.rng = rand.New(rand.NewSource(uint64(seed)))
	s.grid.reset()
	s.enemies.reset()
	return s.Snapshot()
}

// Step advances the simulation by one tick.
//
// Phase order:
//  1. Decrement cooldowns
//  2. Arm walls placed on a previous tick
//  3. Apply the action (placement + cooldowns on success)
//  4. Move enemies
//  5. Detect and resolve collisions
//  6. Detect core breach
//  7. Spawn when due and capacity allows
//  8. Compact the enemy table
//  9. Compute reward, advance the tick counter, decide termination
//
// Arming runs before placement so a wall placed this tick cannot collide
// until the next one. Step panics if action is outside [0, NumActions).
func (s *Simulation) Step(action int) StepResult {
	if action < 0 || action >= NumActions {
		panic(fmt.Sprintf("core: action %d out of range [0, %d)", action, NumActions))
	}

	var result StepResult

	s.grid.TickCooldowns()
	s.grid.ArmPendingWalls()

	if row, col, ok := DecodeAction(action); ok {
		if s.grid.PlaceWall(row, col) {
			s.grid.ApplyCooldowns(row, col)
			result.Placed = true
		}
	}

	s.enemies.MoveEnemies(s.params.EnemySpeedHalf)

	mask := DetectCollisions(&s.grid, &s.enemies)
	result.EnemiesKilled, result.WallsDestroyed = ResolveCollisions(&s.grid, &s.enemies, mask)

	result.BreachSlots = BreachingSlots(&s.enemies)
	result.Breached = len(result.BreachSlots) > 0

	if s.spawnDue() {
		result.Spawned = s.enemies.SpawnEnemy(s.tick, s.rng)
	}

	s.enemies.CompactEnemies()

	rw := s.params.Rewards
	result.Reward = float64(result.EnemiesKilled)*rw.EnemyKilled + rw.TickSurvived
	if result.Breached {
		result.Reward += rw.CoreBreach
	}

	s.tick++
	result.Tick = s.tick
	result.Terminated = result.Breached
	result.Truncated = int(s.tick) >= s.params.MaxTicks

	return result
}

func (s *Simulation) spawnDue() bool {
	interval := s.params.SpawnInterval
	return interval > 0 && int(s.tick)%interval == 0
}

// Tick returns the number of completed steps since the last reset.
func (s *Simulation) Tick() uint32 {
	return s.tick
}

// Seed returns the seed of the current episode.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Params returns the rules this simulation runs with.
func (s *Simulation) Params() Params {
	return s.params
}

// Grid returns read access to the live grid.
func (s *Simulation) Grid() GridView {
	return &s.grid
}

// Enemies returns read access to the live enemy table.
func (s *Simulation) Enemies() EnemyView {
	return &s.enemies
}

// Snapshot returns a value copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	return takeSnapshot(s.tick, &s.grid, &s.enemies)
}
