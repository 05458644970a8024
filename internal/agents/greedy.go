package agents

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/firewall-defense/internal/core"
	"github.com/vovakirdan/firewall-defense/internal/registry"
)

// leadRows is how far below an enemy the greedy policy tries to build.
// Must leave the wall at least one tick to arm.
const leadRows = 2

// Greedy blocks the enemy closest to the core by building in its column a
// couple of rows ahead of it. Columns that already hold a wall below the
// enemy are considered covered.
type Greedy struct{}

func (Greedy) ID() string       { return "greedy" }
func (Greedy) Title() string    { return "Greedy blocker" }
func (Greedy) Reset(seed int64) {}

func (Greedy) Act(snap *core.Snapshot, mask *[core.NumActions]bool) int {
	threats := make([]int, 0, core.MaxEnemies)
	for i, alive := range snap.EnemyAlive {
		if alive {
			threats = append(threats, i)
		}
	}
	// Deepest first; ties keep slot order.
	slices.SortStableFunc(threats, func(a, b int) int {
		return cmp.Compare(snap.EnemyYHalf[b], snap.EnemyYHalf[a])
	})

	for _, i := range threats {
		row := int(snap.EnemyYHalf[i]) / core.HalfCellsPerCell
		col := int(snap.EnemyX[i])
		if col < 0 || col >= core.Width || row >= core.Height-1 {
			continue
		}
		if covered(snap, row+1, col) {
			continue
		}
		for r := min(row+leadRows, core.Height-1); r > row; r-- {
			if a := core.EncodeAction(r, col); mask[a] {
				return a
			}
		}
	}
	return core.NoOpAction
}

// covered reports whether any wall sits in col at or below fromRow.
func covered(snap *core.Snapshot, fromRow, col int) bool {
	for r := max(fromRow, 0); r < core.Height; r++ {
		if snap.Occupancy[r][col] == core.CellWall {
			return true
		}
	}
	return false
}

func init() {
	registry.Register("greedy", func() registry.Policy {
		return Greedy{}
	})
}
