package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-towerdefense/internal/config"
	"github.com/vovakirdan/tui-towerdefense/internal/event"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
)

type recorder struct {
	events []event.Event
}

func record(bus *event.Bus, types ...event.Type) *recorder {
	r := &recorder{}
	for _, t := range types {
		bus.Subscribe(t, func(e event.Event) { r.events = append(r.events, e) })
	}
	return r
}

func (r *recorder) ints(t event.Type) []int {
	var out []int
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e.Data.(int))
		}
	}
	return out
}

func (r *recorder) count(t event.Type) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Waves = config.WaveConfig{
		FirstDelay:     1,
		Interval:       2,
		BaseEnemies:    4,
		EnemiesPerWave: 2,
		RewardPerKill:  5,
		LivesPerLeak:   1,
	}
	cfg.Levels = []config.LevelConfig{
		{ID: "test", Name: "Test", WavesToWin: 2, StartingLives: 10, StartingResources: 100, Platforms: 4, Columns: 2},
	}
	return cfg
}

func newTestWorld(t *testing.T, d selection.Difficulty) (*World, *event.Bus, *selection.State) {
	t.Helper()
	cfg := testConfig()
	bus := event.NewBus()
	sel := selection.New()
	sel.SetDifficulty(d)
	levels := LevelsFromConfig(cfg.Levels)
	require.Len(t, levels, 1)
	return NewWorld(cfg, levels[0], bus, sel), bus, sel
}

func TestNewWorldAppliesDifficulty(t *testing.T) {
	tests := []struct {
		d         selection.Difficulty
		lives     int
		resources int
	}{
		{selection.Easy, 15, 150},
		{selection.Normal, 10, 100},
		{selection.Hard, 5, 80},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			w, _, _ := newTestWorld(t, tt.d)
			assert.Equal(t, tt.lives, w.Manager.Lives())
			assert.Equal(t, tt.resources, w.Manager.Resources())
			assert.Len(t, w.Platforms, 4)
		})
	}
}

func TestStartPublishesCounters(t *testing.T) {
	w, bus, _ := newTestWorld(t, selection.Normal)
	rec := record(bus, event.ResourcesChanged, event.LivesChanged, event.WaveChanged)

	w.Start()

	assert.Equal(t, []int{100}, rec.ints(event.ResourcesChanged))
	assert.Equal(t, []int{10}, rec.ints(event.LivesChanged))
	assert.Equal(t, []int{0}, rec.ints(event.WaveChanged))
}

func TestSpendResources(t *testing.T) {
	w, bus, _ := newTestWorld(t, selection.Normal)
	rec := record(bus, event.ResourcesChanged)
	gm := w.Manager

	assert.False(t, gm.SpendResources(101))
	assert.True(t, gm.SpendResources(40))
	assert.Equal(t, 60, gm.Resources())
	assert.Equal(t, []int{60}, rec.ints(event.ResourcesChanged))
}

func TestSetGameSpeedWhileFrozen(t *testing.T) {
	w, _, sel := newTestWorld(t, selection.Normal)
	gm := w.Manager

	gm.SetTimeScale(0)
	require.NoError(t, gm.SetGameSpeed(selection.SpeedFast))
	assert.Equal(t, 0.0, gm.TimeScale(), "frozen simulation stays frozen")
	assert.Equal(t, selection.SpeedFast, sel.Speed())

	gm.SetTimeScale(gm.GameSpeed())
	require.NoError(t, gm.SetGameSpeed(selection.SpeedSlow))
	assert.Equal(t, selection.SpeedSlow, gm.TimeScale())

	assert.ErrorIs(t, gm.SetGameSpeed(7), selection.ErrUnknownSpeed)
}

func TestPlatformPlaceTowerOnce(t *testing.T) {
	bus := event.NewBus()
	p := NewPlatform(bus, 0)
	assert.False(t, p.Occupied())

	p.PlaceTower(Tower{ID: "archer", Damage: 3})
	p.PlaceTower(Tower{ID: "cannon", Damage: 7})

	got, ok := p.Tower()
	require.True(t, ok)
	assert.Equal(t, "archer", got.ID)
}

func TestPlatformClickPublishesSelf(t *testing.T) {
	bus := event.NewBus()
	p := NewPlatform(bus, 3)
	var got *Platform
	bus.Subscribe(event.PlatformClicked, func(e event.Event) { got = e.Data.(*Platform) })

	p.Click()
	assert.Same(t, p, got)
}

func TestWavesLeakWithoutTowers(t *testing.T) {
	w, bus, _ := newTestWorld(t, selection.Normal)
	rec := record(bus, event.WaveChanged, event.LivesChanged)

	w.Step(1) // first wave: 4 enemies, no defense
	assert.Equal(t, []int{0}, rec.ints(event.WaveChanged))
	assert.Equal(t, 6, w.Manager.Lives())

	res, ok := w.Spawner.LastWave()
	require.True(t, ok)
	assert.Equal(t, WaveResult{Wave: 0, Enemies: 4, Defeated: 0, Leaked: 4}, res)
}

func TestTowersDefeatEnemiesAndEarnRewards(t *testing.T) {
	w, _, _ := newTestWorld(t, selection.Normal)
	w.Platforms[0].PlaceTower(Tower{ID: "cannon", Damage: 7})

	w.Step(1)
	assert.Equal(t, 10, w.Manager.Lives())
	assert.Equal(t, 100+4*5, w.Manager.Resources())
}

func TestPausedWorldDoesNotAdvance(t *testing.T) {
	w, bus, _ := newTestWorld(t, selection.Normal)
	rec := record(bus, event.WaveChanged)

	w.Manager.SetTimeScale(0)
	w.Step(100)
	assert.Empty(t, rec.ints(event.WaveChanged))
	assert.Equal(t, 1.0, w.Spawner.Countdown())
}

func TestSpeedMultiplierScalesTime(t *testing.T) {
	w, _, _ := newTestWorld(t, selection.Normal)
	require.NoError(t, w.Manager.SetGameSpeed(selection.SpeedFast))

	w.Step(0.5) // 1 simulated second
	assert.Equal(t, 1, w.Spawner.WavesSent())
}

func TestMissionCompleteOnceThenEndless(t *testing.T) {
	w, bus, _ := newTestWorld(t, selection.Normal)
	for _, p := range w.Platforms {
		p.PlaceTower(Tower{Damage: 10})
	}
	rec := record(bus, event.MissionComplete)

	w.Step(1) // wave 0
	w.Step(2) // wave 1 -> win
	assert.Equal(t, 1, rec.count(event.MissionComplete))
	assert.True(t, w.Spawner.Completed())

	w.Step(20)
	assert.Equal(t, 2, w.Spawner.WavesSent(), "no waves after the win until endless")

	w.Spawner.EnableEndlessMode()
	w.Step(2)
	assert.Equal(t, 3, w.Spawner.WavesSent())
	assert.Equal(t, 1, rec.count(event.MissionComplete))
}

func TestNoWavesAfterDefeat(t *testing.T) {
	w, _, _ := newTestWorld(t, selection.Hard)
	// Hard: 5 lives, first wave 6 enemies.
	w.Step(1)
	assert.Equal(t, 0, w.Manager.Lives())

	w.Step(50)
	assert.Equal(t, 1, w.Spawner.WavesSent())
}

func TestEnemiesScaleWithDifficulty(t *testing.T) {
	easy, _, _ := newTestWorld(t, selection.Easy)
	hard, _, _ := newTestWorld(t, selection.Hard)

	assert.Equal(t, 3, easy.Spawner.EnemiesFor(0))
	assert.Equal(t, 6, hard.Spawner.EnemiesFor(0))
	assert.Equal(t, 12, hard.Spawner.EnemiesFor(2))
}
