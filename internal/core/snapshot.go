package core

import (
	"encoding/binary"
	"hash/fnv"
)

// Snapshot is a value copy of the complete simulation state after a tick.
// Snapshots are comparable with ==, which compares every array bit for bit.
type Snapshot struct {
	Tick uint32

	Occupancy      [Height][Width]Cell
	WallHP         [Height][Width]uint8
	WallArmed      [Height][Width]bool
	WallPending    [Height][Width]bool
	CellCooldown   [Height][Width]uint16
	GlobalCooldown uint16

	EnemyYHalf     [MaxEnemies]int16
	EnemyX         [MaxEnemies]int16
	EnemyAlive     [MaxEnemies]bool
	EnemyType      [MaxEnemies]EnemyType
	EnemySpawnTick [MaxEnemies]uint32
}

func takeSnapshot(tick uint32, g *GridState, e *EnemyState) Snapshot {
	return Snapshot{
		Tick:           tick,
		Occupancy:      g.occupancy,
		WallHP:         g.wallHP,
		WallArmed:      g.wallArmed,
		WallPending:    g.wallPending,
		CellCooldown:   g.cellCooldown,
		GlobalCooldown: g.globalCooldown,
		EnemyYHalf:     e.yHalf,
		EnemyX:         e.x,
		EnemyAlive:     e.alive,
		EnemyType:      e.typeID,
		EnemySpawnTick: e.spawnTick,
	}
}

// AliveCount returns the number of alive enemy slots.
func (s *Snapshot) AliveCount() int {
	n := 0
	for _, a := range s.EnemyAlive {
		if a {
			n++
		}
	}
	return n
}

// Hash returns an FNV-1a digest of the snapshot, used to compare
// trajectories across runs and replay files.
func (s *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	w := func(v any) {
		// binary.Write to a hash never fails for fixed-size values.
		_ = binary.Write(h, binary.LittleEndian, v)
	}

	w(s.Tick)
	w(s.Occupancy)
	w(s.WallHP)
	w(s.WallArmed)
	w(s.WallPending)
	w(s.CellCooldown)
	w(s.GlobalCooldown)
	w(s.EnemyYHalf)
	w(s.EnemyX)
	w(s.EnemyAlive)
	w(s.EnemyType)
	w(s.EnemySpawnTick)

	return h.Sum64()
}
