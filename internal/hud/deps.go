package hud

import "github.com/vovakirdan/tui-towerdefense/internal/sim"

// GameManager is the part of the game manager the HUD drives.
type GameManager interface {
	Resources() int
	Lives() int
	GameSpeed() float64
	SpendResources(amount int) bool
	SetTimeScale(scale float64)
	SetGameSpeed(multiplier float64) error
}

// Spawner is the part of the wave spawner the HUD drives.
type Spawner interface {
	EnableEndlessMode()
}

// LevelManager loads levels. LoadLevel tears the calling screen down.
type LevelManager interface {
	CurrentLevel() sim.Level
	Levels() []sim.Level
	LoadLevel(level sim.Level)
}

// Platform is a build slot as seen from the tower shop.
type Platform interface {
	Occupied() bool
	PlaceTower(t sim.Tower)
}

// Navigator switches between top-level screens.
type Navigator interface {
	ShowMainMenu()
	Quit()
}

// TowerCard is a selectable entry in the tower shop.
type TowerCard struct {
	Tower sim.Tower
}

// Initialize binds the card to a tower definition.
func (c *TowerCard) Initialize(t sim.Tower) {
	c.Tower = t
}
