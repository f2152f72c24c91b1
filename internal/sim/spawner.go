package sim

import (
	"math"

	"github.com/vovakirdan/tui-towerdefense/internal/config"
	"github.com/vovakirdan/tui-towerdefense/internal/event"
)

// WaveResult summarises one resolved wave.
type WaveResult struct {
	Wave     int // Zero-based
	Enemies  int
	Defeated int
	Leaked   int
}

// Spawner sends waves on a simulated-time schedule and resolves them against
// the towers standing on the platforms.
type Spawner struct {
	bus       *event.Bus
	gm        *GameManager
	waves     config.WaveConfig
	enemyMult float64
	level     Level
	platforms []*Platform

	countdown float64 // Simulated seconds until the next wave
	wave      int     // Index of the next wave to send
	endless   bool
	completed bool
	last      *WaveResult
}

// NewSpawner creates a spawner for level.
func NewSpawner(bus *event.Bus, gm *GameManager, level Level, waves config.WaveConfig, diff config.DifficultyConfig, platforms []*Platform) *Spawner {
	mult := diff.EnemyMultiplier
	if mult <= 0 {
		mult = 1
	}
	return &Spawner{
		bus:       bus,
		gm:        gm,
		waves:     waves,
		enemyMult: mult,
		level:     level,
		platforms: platforms,
		countdown: waves.FirstDelay,
	}
}

// Start announces the first wave.
func (s *Spawner) Start() {
	s.bus.Emit(event.WaveChanged, s.wave)
}

// Step advances simulated time by dt seconds.
func (s *Spawner) Step(dt float64) {
	if dt <= 0 || !s.active() {
		return
	}
	s.countdown -= dt
	for s.countdown <= 0 && s.active() {
		s.sendWave()
		s.countdown += s.waves.Interval
	}
}

func (s *Spawner) active() bool {
	if s.gm.Lives() <= 0 {
		return false
	}
	return !s.completed || s.endless
}

func (s *Spawner) sendWave() {
	idx := s.wave
	s.bus.Emit(event.WaveChanged, idx)

	enemies := s.EnemiesFor(idx)
	defense := 0
	for _, p := range s.platforms {
		if t, ok := p.Tower(); ok {
			defense += t.Damage
		}
	}
	defeated := min(enemies, defense)
	leaked := enemies - defeated
	s.last = &WaveResult{Wave: idx, Enemies: enemies, Defeated: defeated, Leaked: leaked}

	s.gm.AddResources(defeated * s.waves.RewardPerKill)
	s.gm.LoseLives(leaked * s.waves.LivesPerLeak)
	s.wave++

	if !s.completed && !s.endless && s.wave >= s.level.WavesToWin && s.gm.Lives() > 0 {
		s.completed = true
		s.bus.Emit(event.MissionComplete, nil)
	}
}

// EnemiesFor returns the enemy count of wave idx at this difficulty.
func (s *Spawner) EnemiesFor(idx int) int {
	base := float64(s.waves.BaseEnemies + s.waves.EnemiesPerWave*idx)
	return int(math.Round(base * s.enemyMult))
}

// EnableEndlessMode keeps waves coming after the win condition.
func (s *Spawner) EnableEndlessMode() {
	s.endless = true
}

// Endless reports whether endless mode is on.
func (s *Spawner) Endless() bool {
	return s.endless
}

// Completed reports whether the mission has been won.
func (s *Spawner) Completed() bool {
	return s.completed
}

// WavesSent returns how many waves have been resolved.
func (s *Spawner) WavesSent() int {
	return s.wave
}

// Countdown returns simulated seconds until the next wave.
func (s *Spawner) Countdown() float64 {
	return math.Max(0, s.countdown)
}

// LastWave returns the most recent wave result.
func (s *Spawner) LastWave() (WaveResult, bool) {
	if s.last == nil {
		return WaveResult{}, false
	}
	return *s.last, true
}
