// Package observe flattens simulation snapshots into the fixed-size feature
// vectors and action masks consumed by learning agents.
package observe

import "github.com/vovakirdan/firewall-defense/internal/core"

// Feature block sizes, in vector order.
const (
	OccupancySize    = core.TotalCells
	WallHPSize       = core.TotalCells
	WallArmedSize    = core.TotalCells
	CellCooldownSize = core.TotalCells
	GCDSize          = 1
	ActionMaskSize   = core.NumActions
	EnemyPosSize     = core.MaxEnemies * 2 // y_half, x pairs
	EnemyAliveSize   = core.MaxEnemies
	EnemyTypeSize    = core.MaxEnemies
)

// ObservationSize is the length of a vector produced by Build.
const ObservationSize = OccupancySize + WallHPSize + WallArmedSize + CellCooldownSize +
	GCDSize + ActionMaskSize + EnemyPosSize + EnemyAliveSize + EnemyTypeSize

// ActionMask reports which actions would be accepted on the next step.
// The no-op is always valid; a placement is valid when no cooldown blocks it
// and the cell is empty.
func ActionMask(snap *core.Snapshot) [core.NumActions]bool {
	var mask [core.NumActions]bool
	mask[core.NoOpAction] = true
	if snap.GlobalCooldown != 0 {
		return mask
	}
	for r := 0; r < core.Height; r++ {
		for c := 0; c < core.Width; c++ {
			if snap.CellCooldown[r][c] == 0 && snap.Occupancy[r][c] != core.CellWall {
				mask[core.EncodeAction(r, c)] = true
			}
		}
	}
	return mask
}

// ValidActions returns the indices set in mask, in ascending order.
func ValidActions(mask *[core.NumActions]bool) []int {
	out := make([]int, 0, core.NumActions)
	for a, ok := range mask {
		if ok {
			out = append(out, a)
		}
	}
	return out
}

// Build returns the observation vector for snap. Values are raw, not
// normalised.
func Build(snap *core.Snapshot) []float32 {
	obs := make([]float32, 0, ObservationSize)

	for r := range snap.Occupancy {
		for _, cell := range snap.Occupancy[r] {
			obs = append(obs, float32(cell))
		}
	}
	for r := range snap.WallHP {
		for _, hp := range snap.WallHP[r] {
			obs = append(obs, float32(hp))
		}
	}
	for r := range snap.WallArmed {
		for _, armed := range snap.WallArmed[r] {
			obs = append(obs, boolF(armed))
		}
	}
	for r := range snap.CellCooldown {
		for _, cd := range snap.CellCooldown[r] {
			obs = append(obs, float32(cd))
		}
	}

	obs = append(obs, float32(snap.GlobalCooldown))

	mask := ActionMask(snap)
	for _, ok := range mask {
		obs = append(obs, boolF(ok))
	}

	for i := 0; i < core.MaxEnemies; i++ {
		obs = append(obs, float32(snap.EnemyYHalf[i]), float32(snap.EnemyX[i]))
	}
	for _, alive := range snap.EnemyAlive {
		obs = append(obs, boolF(alive))
	}
	for _, typ := range snap.EnemyType {
		obs = append(obs, float32(typ))
	}

	return obs
}

func boolF(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
