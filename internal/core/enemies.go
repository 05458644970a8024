package core

import (
	"math"
	"slices"
)

// Intner is the random source consulted when spawning. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Intner interface {
	Intn(n int) int
}

// EnemyState holds up to MaxEnemies threats as parallel fixed-length arrays.
//
// Dead slots are zero-valued. Immediately after CompactEnemies the alive
// slots are contiguous at the front in ascending spawn tick order.
type EnemyState struct {
	yHalf     [MaxEnemies]int16
	x         [MaxEnemies]int16
	alive     [MaxEnemies]bool
	typeID    [MaxEnemies]EnemyType
	spawnTick [MaxEnemies]uint32
}

// Enemy is a read-only copy of one slot.
type Enemy struct {
	Slot      int
	YHalf     int16
	X         int16
	Alive     bool
	Type      EnemyType
	SpawnTick uint32
}

// Row returns the grid row the enemy occupies.
func (e Enemy) Row() int {
	return int(e.YHalf) / HalfCellsPerCell
}

// NewEnemyState returns an enemy table with every slot dead.
func NewEnemyState() *EnemyState {
	return &EnemyState{}
}

func (e *EnemyState) reset() {
	*e = EnemyState{}
}

// Slot returns a copy of slot i. It panics if i is outside [0, MaxEnemies).
func (e *EnemyState) Slot(i int) Enemy {
	return Enemy{
		Slot:      i,
		YHalf:     e.yHalf[i],
		X:         e.x[i],
		Alive:     e.alive[i],
		Type:      e.typeID[i],
		SpawnTick: e.spawnTick[i],
	}
}

// AliveEnemies returns copies of the alive slots in slot order.
func (e *EnemyState) AliveEnemies() []Enemy {
	out := make([]Enemy, 0, MaxEnemies)
	for i := range e.alive {
		if e.alive[i] {
			out = append(out, e.Slot(i))
		}
	}
	return out
}

// AliveCount returns the number of alive slots.
func (e *EnemyState) AliveCount() int {
	n := 0
	for _, a := range e.alive {
		if a {
			n++
		}
	}
	return n
}

// YHalfs returns a copy of the vertical positions.
func (e *EnemyState) YHalfs() [MaxEnemies]int16 { return e.yHalf }

// Xs returns a copy of the columns.
func (e *EnemyState) Xs() [MaxEnemies]int16 { return e.x }

// AliveMask returns a copy of the liveness mask.
func (e *EnemyState) AliveMask() [MaxEnemies]bool { return e.alive }

// Types returns a copy of the type tags.
func (e *EnemyState) Types() [MaxEnemies]EnemyType { return e.typeID }

// SpawnTicks returns a copy of the spawn ticks.
func (e *EnemyState) SpawnTicks() [MaxEnemies]uint32 { return e.spawnTick }

// FirstFreeSlot returns the lowest dead slot index, or -1 if every slot is alive.
func (e *EnemyState) FirstFreeSlot() int {
	for i, a := range e.alive {
		if !a {
			return i
		}
	}
	return -1
}

// SpawnEnemy fills the first dead slot with a Drop enemy at the top of a
// column drawn from rng. It returns false, with no mutation and no draw from
// rng, when all slots are alive.
func (e *EnemyState) SpawnEnemy(tick uint32, rng Intner) bool {
	slot := e.FirstFreeSlot()
	if slot < 0 {
		return false
	}

	e.yHalf[slot] = 0
	e.x[slot] = int16(rng.Intn(Width))
	e.alive[slot] = true
	e.typeID[slot] = EnemyDrop
	e.spawnTick[slot] = tick
	return true
}

// MoveEnemies advances every alive enemy by speedHalf half-cells.
// Positions are not clamped; breach detection decides when a position is
// terminal.
func (e *EnemyState) MoveEnemies(speedHalf int16) {
	for i := range e.alive {
		if e.alive[i] {
			e.yHalf[i] += speedHalf
		}
	}
}

// deadSortKey sorts dead slots after every alive one.
const deadSortKey = math.MaxUint64

// CompactEnemies stably reorders the slots so alive enemies come first in
// ascending spawn tick order, then zeroes every slot past the alive count.
func (e *EnemyState) CompactEnemies() {
	var keys [MaxEnemies]uint64
	var order [MaxEnemies]int
	for i := range order {
		order[i] = i
		if e.alive[i] {
			keys[i] = uint64(e.spawnTick[i])
		} else {
			keys[i] = deadSortKey
		}
	}

	slices.SortStableFunc(order[:], func(a, b int) int {
		switch {
		case keys[a] < keys[b]:
			return -1
		case keys[a] > keys[b]:
			return 1
		default:
			return 0
		}
	})

	var out EnemyState
	n := 0
	for _, src := range order {
		if !e.alive[src] {
			break
		}
		out.yHalf[n] = e.yHalf[src]
		out.x[n] = e.x[src]
		out.alive[n] = true
		out.typeID[n] = e.typeID[src]
		out.spawnTick[n] = e.spawnTick[src]
		n++
	}
	*e = out
}
