package core

// ApplyCooldowns starts the global cooldown and the cooldown of the placed
// cell. Call it once, right after a successful PlaceWall at the same cell.
// It performs no validation.
func (g *GridState) ApplyCooldowns(row, col int) {
	if !inGrid(row, col) {
		return
	}
	rules := g.effectiveRules()
	g.globalCooldown = rules.gcd
	g.cellCooldown[row][col] = rules.cellCD
}

// TickCooldowns decrements the global cooldown and every cell cooldown by
// one, flooring at zero.
func (g *GridState) TickCooldowns() {
	if g.globalCooldown > 0 {
		g.globalCooldown--
	}
	for r := range g.cellCooldown {
		row := &g.cellCooldown[r]
		for c := range row {
			if row[c] > 0 {
				row[c]--
			}
		}
	}
}
