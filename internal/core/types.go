// Package core implements the headless tick simulation for Firewall Defense.
// It performs no I/O and is fully deterministic for a given seed and action
// sequence.
package core

// Cell is the content of one grid cell.
type Cell int8

const (
	CellEmpty Cell = iota
	CellWall
)

// String returns the string representation of a cell.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "Empty"
	case CellWall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// EnemyType tags the movement archetype of an enemy slot.
type EnemyType uint8

const (
	EnemyDrop EnemyType = iota // Falls straight down one half-cell per tick

	// Reserved for future archetypes; never spawned.
	EnemyDrifter
	EnemySeeker
	EnemyFlood
)

// String returns the string representation of an enemy type.
func (t EnemyType) String() string {
	switch t {
	case EnemyDrop:
		return "Drop"
	case EnemyDrifter:
		return "Drifter"
	case EnemySeeker:
		return "Seeker"
	case EnemyFlood:
		return "Flood"
	default:
		return "Unknown"
	}
}

// Pos is a grid cell coordinate.
type Pos struct {
	Row int
	Col int
}

// InBounds returns true if the position lies on the grid.
func (p Pos) InBounds() bool {
	return p.Row >= 0 && p.Row < Height && p.Col >= 0 && p.Col < Width
}

// EncodeAction returns the action index that places a wall at (row, col).
// The position must be in bounds.
func EncodeAction(row, col int) int {
	return row*Width + col + 1
}

// DecodeAction splits an action into the target cell.
// ok is false for the no-op and for any index outside the action space.
func DecodeAction(action int) (row, col int, ok bool) {
	if action <= NoOpAction || action >= NumActions {
		return 0, 0, false
	}
	idx := action - 1
	return idx / Width, idx % Width, true
}
