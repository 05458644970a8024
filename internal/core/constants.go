package core

// Grid dimensions. All grid arrays are indexed [row][col].
const (
	Width      = 13
	Height     = 9
	TotalCells = Width * Height
)

// Action space: 0 is the no-op, 1..TotalCells place a wall at
// row, col = divmod(action-1, Width).
const (
	NoOpAction = 0
	NumActions = TotalCells + 1
)

// Positions are stored in half-cell units. An alive enemy at or past
// CoreYHalf has reached the last row and breached the core.
const (
	HalfCellsPerCell = 2
	CoreYHalf        = HalfCellsPerCell * (Height - 1)
)

// Enemy capacity and movement.
const (
	MaxEnemies     = 20
	EnemySpeedHalf = 1
)

// Cooldowns, in ticks.
const (
	GCDTicks          = 10
	CellCooldownTicks = 150
)

// Episode pacing.
const (
	DefaultSpawnInterval = 30
	MaxEpisodeTicks      = 1000
)

// DefaultWallHP is the hit points of a freshly placed wall.
const DefaultWallHP = 1

// Reward scheme.
const (
	RewardEnemyKilled  = 1.0
	RewardCoreBreach   = -1.0
	RewardTickSurvived = 0.0
)

// Storage limits implied by the field widths.
const (
	MaxWallHP   = 255
	MaxCooldown = 65535
)
