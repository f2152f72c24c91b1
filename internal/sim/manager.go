package sim

import (
	"github.com/vovakirdan/tui-towerdefense/internal/event"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
)

// GameManager owns the player's resources and lives and the simulation
// time scale. The chosen speed multiplier lives in the session selection so
// it survives level reloads.
type GameManager struct {
	bus       *event.Bus
	sel       *selection.State
	resources int
	lives     int
	timeScale float64
}

// NewGameManager creates a manager running at the selected speed.
func NewGameManager(bus *event.Bus, sel *selection.State, lives, resources int) *GameManager {
	return &GameManager{
		bus:       bus,
		sel:       sel,
		resources: resources,
		lives:     lives,
		timeScale: sel.Speed(),
	}
}

// Start publishes the initial counters so freshly bound views can fill in.
func (g *GameManager) Start() {
	g.bus.Emit(event.ResourcesChanged, g.resources)
	g.bus.Emit(event.LivesChanged, g.lives)
}

// Resources returns the current balance.
func (g *GameManager) Resources() int {
	return g.resources
}

// Lives returns the remaining lives.
func (g *GameManager) Lives() int {
	return g.lives
}

// GameSpeed returns the selected speed multiplier.
func (g *GameManager) GameSpeed() float64 {
	return g.sel.Speed()
}

// TimeScale returns the multiplier applied to simulated time. Zero is paused.
func (g *GameManager) TimeScale() float64 {
	return g.timeScale
}

// SpendResources deducts amount if the balance covers it.
func (g *GameManager) SpendResources(amount int) bool {
	if amount < 0 || amount > g.resources {
		return false
	}
	g.resources -= amount
	g.bus.Emit(event.ResourcesChanged, g.resources)
	return true
}

// AddResources credits amount.
func (g *GameManager) AddResources(amount int) {
	if amount <= 0 {
		return
	}
	g.resources += amount
	g.bus.Emit(event.ResourcesChanged, g.resources)
}

// LoseLives removes n lives, stopping at zero.
func (g *GameManager) LoseLives(n int) {
	if n <= 0 || g.lives <= 0 {
		return
	}
	g.lives -= n
	if g.lives < 0 {
		g.lives = 0
	}
	g.bus.Emit(event.LivesChanged, g.lives)
}

// SetTimeScale sets the simulated time multiplier. Negative values clamp to 0.
func (g *GameManager) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	g.timeScale = scale
}

// SetGameSpeed selects a speed multiplier. While the simulation is running the
// new speed applies immediately; while frozen it applies on resume.
func (g *GameManager) SetGameSpeed(multiplier float64) error {
	if err := g.sel.SetSpeed(multiplier); err != nil {
		return err
	}
	if g.timeScale != 0 {
		g.timeScale = multiplier
	}
	return nil
}
