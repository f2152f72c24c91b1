package sim

import (
	"math"

	"github.com/vovakirdan/tui-towerdefense/internal/config"
	"github.com/vovakirdan/tui-towerdefense/internal/event"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
)

// World is one running level: its manager, spawner and platforms.
type World struct {
	Level     Level
	Manager   *GameManager
	Spawner   *Spawner
	Platforms []*Platform
	Towers    []Tower
}

// NewWorld builds a level scaled for the selected difficulty.
func NewWorld(cfg config.Config, level Level, bus *event.Bus, sel *selection.State) *World {
	diff := cfg.Difficulty.For(sel.Difficulty())

	lives := scale(level.StartingLives, diff.LivesMultiplier)
	resources := scale(level.StartingResources, diff.ResourcesMultiplier)

	gm := NewGameManager(bus, sel, lives, resources)

	platforms := make([]*Platform, level.Platforms)
	for i := range platforms {
		platforms[i] = NewPlatform(bus, i)
	}

	return &World{
		Level:     level,
		Manager:   gm,
		Spawner:   NewSpawner(bus, gm, level, cfg.Waves, diff, platforms),
		Platforms: platforms,
		Towers:    TowersFromConfig(cfg.Towers),
	}
}

// Start publishes the initial counters.
func (w *World) Start() {
	w.Manager.Start()
	w.Spawner.Start()
}

// Step advances the world by realDt wall-clock seconds, scaled by the time scale.
func (w *World) Step(realDt float64) {
	w.Spawner.Step(realDt * w.Manager.TimeScale())
}

// Platform returns the platform at index i.
func (w *World) Platform(i int) (*Platform, bool) {
	if i < 0 || i >= len(w.Platforms) {
		return nil, false
	}
	return w.Platforms[i], true
}

// TowerCount returns the number of occupied platforms.
func (w *World) TowerCount() int {
	n := 0
	for _, p := range w.Platforms {
		if p.Occupied() {
			n++
		}
	}
	return n
}

// scale applies a multiplier, keeping at least 1 for positive inputs.
func scale(v int, mult float64) int {
	if mult <= 0 {
		mult = 1
	}
	out := int(math.Round(float64(v) * mult))
	if v > 0 && out < 1 {
		out = 1
	}
	return out
}
