package hud

import (
	"time"

	"github.com/vovakirdan/tui-towerdefense/internal/selection"
	"github.com/vovakirdan/tui-towerdefense/internal/sim"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeGame struct {
	resources  int
	lives      int
	speed      float64
	timeScale  float64
	spent      []int
	timeScales []float64
}

func newFakeGame(resources int) *fakeGame {
	return &fakeGame{resources: resources, lives: 10, speed: 1, timeScale: 1}
}

func (g *fakeGame) Resources() int     { return g.resources }
func (g *fakeGame) Lives() int         { return g.lives }
func (g *fakeGame) GameSpeed() float64 { return g.speed }

func (g *fakeGame) SpendResources(amount int) bool {
	if amount > g.resources {
		return false
	}
	g.resources -= amount
	g.spent = append(g.spent, amount)
	return true
}

func (g *fakeGame) SetTimeScale(scale float64) {
	g.timeScale = scale
	g.timeScales = append(g.timeScales, scale)
}

func (g *fakeGame) SetGameSpeed(multiplier float64) error {
	if !selection.IsSpeed(multiplier) {
		return selection.ErrUnknownSpeed
	}
	g.speed = multiplier
	if g.timeScale != 0 {
		g.timeScale = multiplier
	}
	return nil
}

type fakeSpawner struct {
	endless int
}

func (s *fakeSpawner) EnableEndlessMode() { s.endless++ }

type fakeLevels struct {
	levels  []sim.Level
	current sim.Level
	loads   []sim.Level
}

func newFakeLevels() *fakeLevels {
	levels := []sim.Level{
		{Index: 0, ID: "meadow", Name: "Meadow", WavesToWin: 5},
		{Index: 1, ID: "canyon", Name: "Canyon", WavesToWin: 8},
	}
	return &fakeLevels{levels: levels, current: levels[1]}
}

func (l *fakeLevels) CurrentLevel() sim.Level { return l.current }
func (l *fakeLevels) Levels() []sim.Level     { return l.levels }
func (l *fakeLevels) LoadLevel(level sim.Level) {
	l.current = level
	l.loads = append(l.loads, level)
}

type fakeNav struct {
	menu  int
	quits int
}

func (n *fakeNav) ShowMainMenu() { n.menu++ }
func (n *fakeNav) Quit()         { n.quits++ }

type fakePlatform struct {
	occupied bool
	placed   []sim.Tower
}

func (p *fakePlatform) Occupied() bool { return p.occupied }
func (p *fakePlatform) PlaceTower(t sim.Tower) {
	p.placed = append(p.placed, t)
	p.occupied = true
}
