package core

// CollisionMask flags the enemy slots that stand on an armed wall.
type CollisionMask [MaxEnemies]bool

// Count returns the number of colliding slots.
func (m CollisionMask) Count() int {
	n := 0
	for _, hit := range m {
		if hit {
			n++
		}
	}
	return n
}

// DetectCollisions flags every alive slot whose cell holds an armed wall.
// Several slots may reference the same cell; each is flagged independently.
// Cells outside the grid never collide.
func DetectCollisions(g *GridState, e *EnemyState) CollisionMask {
	var mask CollisionMask
	for i := range e.alive {
		row := int(e.yHalf[i]) / HalfCellsPerCell
		col := int(e.x[i])
		if !inGrid(row, col) {
			continue
		}
		onArmedWall := g.occupancy[row][col] == CellWall && g.wallArmed[row][col]
		mask[i] = e.alive[i] && onArmedWall
	}
	return mask
}

// ResolveCollisions applies stacked damage from the colliding slots.
//
// Damage per cell is the number of colliding enemies on it. A cell is
// destroyed when damage >= hp; HP is reduced through a signed intermediate
// and floored at zero so stacked hits never wrap. Every colliding enemy dies
// whether or not its wall survived.
func ResolveCollisions(g *GridState, e *EnemyState, mask CollisionMask) (enemiesKilled, wallsDestroyed int) {
	var damage [Height][Width]int16
	for i, hit := range mask {
		if !hit {
			continue
		}
		row := int(e.yHalf[i]) / HalfCellsPerCell
		col := int(e.x[i])
		if inGrid(row, col) {
			damage[row][col]++
		}
		e.alive[i] = false
		enemiesKilled++
	}
	if enemiesKilled == 0 {
		return 0, 0
	}

	for r := range damage {
		for c, d := range damage[r] {
			if d == 0 {
				continue
			}
			hp := int16(g.wallHP[r][c])
			if d >= hp {
				g.destroyWall(r, c)
				wallsDestroyed++
				continue
			}
			g.wallHP[r][c] = uint8(max(hp-d, 0))
		}
	}
	return enemiesKilled, wallsDestroyed
}

// DetectCoreBreach returns true if any alive enemy has reached CoreYHalf.
func DetectCoreBreach(e *EnemyState) bool {
	for i := range e.alive {
		if e.alive[i] && e.yHalf[i] >= CoreYHalf {
			return true
		}
	}
	return false
}

// BreachingSlots returns the alive slots at or past CoreYHalf.
func BreachingSlots(e *EnemyState) []int {
	var slots []int
	for i := range e.alive {
		if e.alive[i] && e.yHalf[i] >= CoreYHalf {
			slots = append(slots, i)
		}
	}
	return slots
}
