package core

// PlaceWall puts a pending wall at (row, col).
//
// Placement fails, with no mutation, when the cell is out of bounds, the
// global cooldown or the cell cooldown is running, or the cell already holds
// a wall. PlaceWall never applies cooldowns; see ApplyCooldowns.
func (g *GridState) PlaceWall(row, col int) bool {
	if !g.CanPlace(row, col) {
		return false
	}

	g.occupancy[row][col] = CellWall
	g.wallHP[row][col] = g.effectiveRules().hp
	g.wallPending[row][col] = true
	g.wallArmed[row][col] = false
	return true
}

// ArmPendingWalls arms every pending wall and clears all pending flags.
// A wall placed on tick T therefore first collides on tick T+1.
func (g *GridState) ArmPendingWalls() {
	for r := range g.wallPending {
		for c := range g.wallPending[r] {
			g.wallArmed[r][c] = g.wallArmed[r][c] || g.wallPending[r][c]
			g.wallPending[r][c] = false
		}
	}
}

// destroyWall resets a cell to its empty state.
func (g *GridState) destroyWall(row, col int) {
	g.occupancy[row][col] = CellEmpty
	g.wallHP[row][col] = 0
	g.wallArmed[row][col] = false
	g.wallPending[row][col] = false
}
