package core

// GridView is the read-only surface of a GridState.
type GridView interface {
	Cell(row, col int) Cell
	WallHP(row, col int) uint8
	Armed(row, col int) bool
	Pending(row, col int) bool
	CellCooldown(row, col int) uint16
	GlobalCooldown() uint16
	CanPlace(row, col int) bool
	WallCount() int

	Occupancy() [Height][Width]Cell
	WallHPs() [Height][Width]uint8
	ArmedMask() [Height][Width]bool
	PendingMask() [Height][Width]bool
	CellCooldowns() [Height][Width]uint16
}

// EnemyView is the read-only surface of an EnemyState.
type EnemyView interface {
	Slot(i int) Enemy
	AliveEnemies() []Enemy
	AliveCount() int
	FirstFreeSlot() int

	YHalfs() [MaxEnemies]int16
	Xs() [MaxEnemies]int16
	AliveMask() [MaxEnemies]bool
	Types() [MaxEnemies]EnemyType
	SpawnTicks() [MaxEnemies]uint32
}

var (
	_ GridView  = (*GridState)(nil)
	_ EnemyView = (*EnemyState)(nil)
)
