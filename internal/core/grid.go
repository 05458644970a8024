package core

// GridState holds the battlefield for one episode.
//
// A cell whose occupancy is CellWall has exactly one of armed/pending set
// until it is destroyed; a destroyed cell is empty with zero HP and both
// flags cleared. Mutation goes through the wall and cooldown operations only.
type GridState struct {
	occupancy      [Height][Width]Cell
	wallHP         [Height][Width]uint8
	wallArmed      [Height][Width]bool
	wallPending    [Height][Width]bool
	cellCooldown   [Height][Width]uint16
	globalCooldown uint16

	rules wallRules
}

// wallRules are the placement constants a grid applies.
type wallRules struct {
	hp     uint8
	gcd    uint16
	cellCD uint16
}

// NewGridState returns an empty grid using the default wall rules.
func NewGridState() *GridState {
	return newGridState(DefaultParams())
}

func newGridState(p Params) *GridState {
	return &GridState{
		rules: wallRules{
			hp:     p.WallHP,
			gcd:    p.GCDTicks,
			cellCD: p.CellCooldownTicks,
		},
	}
}

// reset zeroes every array and the global cooldown, keeping the rules.
func (g *GridState) reset() {
	rules := g.rules
	*g = GridState{rules: rules}
}

// effectiveRules returns the configured rules, or the defaults for a zero
// GridState (a configured grid never has zero wall HP).
func (g *GridState) effectiveRules() wallRules {
	if g.rules.hp != 0 {
		return g.rules
	}
	return wallRules{hp: DefaultWallHP, gcd: GCDTicks, cellCD: CellCooldownTicks}
}

func inGrid(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

// Cell returns the occupancy at (row, col), or CellEmpty when out of bounds.
func (g *GridState) Cell(row, col int) Cell {
	if !inGrid(row, col) {
		return CellEmpty
	}
	return g.occupancy[row][col]
}

// WallHP returns the hit points at (row, col), 0 when there is no wall.
func (g *GridState) WallHP(row, col int) uint8 {
	if !inGrid(row, col) {
		return 0
	}
	return g.wallHP[row][col]
}

// Armed returns true if the wall at (row, col) can collide with enemies.
func (g *GridState) Armed(row, col int) bool {
	return inGrid(row, col) && g.wallArmed[row][col]
}

// Pending returns true if the wall at (row, col) was placed and is not yet armed.
func (g *GridState) Pending(row, col int) bool {
	return inGrid(row, col) && g.wallPending[row][col]
}

// CellCooldown returns the ticks remaining before (row, col) accepts a placement.
func (g *GridState) CellCooldown(row, col int) uint16 {
	if !inGrid(row, col) {
		return 0
	}
	return g.cellCooldown[row][col]
}

// GlobalCooldown returns the ticks remaining before any placement is accepted.
func (g *GridState) GlobalCooldown() uint16 {
	return g.globalCooldown
}

// Occupancy returns a copy of the occupancy grid.
func (g *GridState) Occupancy() [Height][Width]Cell {
	return g.occupancy
}

// WallHPs returns a copy of the wall hit point grid.
func (g *GridState) WallHPs() [Height][Width]uint8 {
	return g.wallHP
}

// ArmedMask returns a copy of the armed flags.
func (g *GridState) ArmedMask() [Height][Width]bool {
	return g.wallArmed
}

// PendingMask returns a copy of the pending flags.
func (g *GridState) PendingMask() [Height][Width]bool {
	return g.wallPending
}

// CellCooldowns returns a copy of the per-cell cooldowns.
func (g *GridState) CellCooldowns() [Height][Width]uint16 {
	return g.cellCooldown
}

// WallCount returns the number of cells holding a wall.
func (g *GridState) WallCount() int {
	count := 0
	for r := range g.occupancy {
		for c := range g.occupancy[r] {
			if g.occupancy[r][c] == CellWall {
				count++
			}
		}
	}
	return count
}

// CanPlace returns true if PlaceWall(row, col) would succeed.
func (g *GridState) CanPlace(row, col int) bool {
	if !inGrid(row, col) {
		return false
	}
	return g.globalCooldown == 0 &&
		g.cellCooldown[row][col] == 0 &&
		g.occupancy[row][col] != CellWall
}
