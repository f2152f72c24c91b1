package hud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-towerdefense/internal/config"
	"github.com/vovakirdan/tui-towerdefense/internal/event"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
	"github.com/vovakirdan/tui-towerdefense/internal/session"
	"github.com/vovakirdan/tui-towerdefense/internal/sim"
)

var testTowers = []sim.Tower{
	{ID: "archer", Name: "Archer", Cost: 50, Damage: 3, Glyph: "A"},
	{ID: "cannon", Name: "Cannon", Cost: 100, Damage: 7, Glyph: "C"},
}

type fixture struct {
	ctx     *session.Context
	hud     *HUD
	game    *fakeGame
	spawner *fakeSpawner
	levels  *fakeLevels
	nav     *fakeNav
}

func newFixture(t *testing.T, resources int) *fixture {
	t.Helper()
	f := &fixture{
		ctx:     session.New(config.Default()),
		game:    newFakeGame(resources),
		spawner: &fakeSpawner{},
		levels:  newFakeLevels(),
		nav:     &fakeNav{},
	}
	f.hud = New(f.ctx, Deps{
		Game:    f.game,
		Spawner: f.spawner,
		Levels:  f.levels,
		Nav:     f.nav,
		Towers:  testTowers,
	})
	f.hud.Activate(epoch)
	return f
}

func (f *fixture) click(p Platform) {
	f.ctx.Bus.Emit(event.PlatformClicked, p)
}

func TestLabels(t *testing.T) {
	f := newFixture(t, 0)

	f.ctx.Bus.Emit(event.WaveChanged, 0)
	f.ctx.Bus.Emit(event.LivesChanged, 7)
	f.ctx.Bus.Emit(event.ResourcesChanged, 120)

	assert.Equal(t, "Wave: 1", f.hud.WaveText())
	assert.Equal(t, "Lives: 7", f.hud.LivesText())
	assert.Equal(t, "Resources: 120", f.hud.ResourcesText())
}

func TestPlatformClickOpensShop(t *testing.T) {
	f := newFixture(t, 100)

	f.click(&fakePlatform{})

	assert.Equal(t, OverlayTowerShop, f.hud.Overlay())
	assert.Equal(t, 0.0, f.game.timeScale)
	require.Len(t, f.hud.Cards(), 2)
	assert.Equal(t, "archer", f.hud.Cards()[0].Tower.ID)
	assert.True(t, f.hud.Affordable(testTowers[1]))
}

func TestPurchaseSucceeds(t *testing.T) {
	f := newFixture(t, 100)
	p := &fakePlatform{}

	f.click(p)
	f.hud.SelectCard(0)

	assert.Equal(t, 50, f.game.resources)
	require.Len(t, p.placed, 1)
	assert.Equal(t, "archer", p.placed[0].ID)
	assert.Equal(t, OverlayNone, f.hud.Overlay())
	assert.Equal(t, 1.0, f.game.timeScale)
	assert.False(t, f.hud.Warning().Visible())
	assert.Empty(t, f.hud.Cards())
}

func TestPurchaseResumesAtSelectedSpeed(t *testing.T) {
	f := newFixture(t, 100)
	f.hud.SetGameSpeed(selection.SpeedFast)

	f.click(&fakePlatform{})
	f.hud.SelectCard(0)

	assert.Equal(t, selection.SpeedFast, f.game.timeScale)
}

func TestPurchaseNotEnoughResources(t *testing.T) {
	f := newFixture(t, 40)
	p := &fakePlatform{}

	f.click(p)
	f.hud.SelectCard(0)

	assert.Equal(t, 40, f.game.resources)
	assert.Empty(t, f.game.spent)
	assert.Empty(t, p.placed)
	assert.True(t, f.hud.Warning().Visible())
	assert.Equal(t, "Not enough resources!", f.hud.Warning().Text())
	assert.Equal(t, OverlayNone, f.hud.Overlay())
}

func TestPurchaseOccupiedPlatform(t *testing.T) {
	f := newFixture(t, 500)
	p := &fakePlatform{occupied: true}

	f.click(p)
	f.hud.SelectCard(0)

	assert.Empty(t, p.placed)
	assert.Equal(t, 500, f.game.resources)
	assert.Equal(t, "This platform already has a tower!", f.hud.Warning().Text())
	assert.Equal(t, OverlayNone, f.hud.Overlay())
}

func TestTowerSelectedWithoutPendingPlatform(t *testing.T) {
	f := newFixture(t, 100)

	f.ctx.Bus.Emit(event.TowerSelected, testTowers[0])

	assert.Empty(t, f.game.spent)
	assert.False(t, f.hud.Warning().Visible())
}

func TestCloseShopWithoutBuying(t *testing.T) {
	f := newFixture(t, 100)
	p := &fakePlatform{}

	f.click(p)
	f.hud.HideTowerPanel()

	assert.Equal(t, OverlayNone, f.hud.Overlay())
	assert.Equal(t, 1.0, f.game.timeScale)

	// A stray selection after closing must not place anything.
	f.ctx.Bus.Emit(event.TowerSelected, testTowers[0])
	assert.Empty(t, p.placed)
}

func TestClicksIgnoredUnderOverlay(t *testing.T) {
	f := newFixture(t, 100)
	f.hud.TogglePause()

	f.click(&fakePlatform{})

	assert.Equal(t, OverlayPause, f.hud.Overlay())
	assert.Empty(t, f.hud.Cards())
}

func TestGameOverOnce(t *testing.T) {
	f := newFixture(t, 100)

	f.ctx.Bus.Emit(event.LivesChanged, 0)
	f.ctx.Bus.Emit(event.LivesChanged, 0)

	assert.Equal(t, OverlayGameOver, f.hud.Overlay())
	assert.Equal(t, []float64{0}, f.game.timeScales)
	assert.Equal(t, "Lives: 0", f.hud.LivesText())
}

func TestNoGameOverWhileAlive(t *testing.T) {
	f := newFixture(t, 100)

	f.ctx.Bus.Emit(event.LivesChanged, 5)

	assert.Equal(t, OverlayNone, f.hud.Overlay())
	assert.Empty(t, f.game.timeScales)
}

func TestGameOverClosesShop(t *testing.T) {
	f := newFixture(t, 100)
	p := &fakePlatform{}
	f.click(p)

	f.ctx.Bus.Emit(event.LivesChanged, 0)
	f.ctx.Bus.Emit(event.TowerSelected, testTowers[0])

	assert.Equal(t, OverlayGameOver, f.hud.Overlay())
	assert.Empty(t, p.placed)
}

func TestTogglePause(t *testing.T) {
	f := newFixture(t, 100)
	f.game.speed = selection.SpeedSlow

	f.hud.TogglePause()
	assert.Equal(t, OverlayPause, f.hud.Overlay())
	assert.Equal(t, 0.0, f.game.timeScale)

	f.hud.TogglePause()
	assert.Equal(t, OverlayNone, f.hud.Overlay())
	assert.Equal(t, selection.SpeedSlow, f.game.timeScale)
}

func TestTogglePauseWithShopOpen(t *testing.T) {
	f := newFixture(t, 100)
	f.click(&fakePlatform{})
	before := len(f.game.timeScales)

	f.hud.TogglePause()

	assert.Equal(t, OverlayTowerShop, f.hud.Overlay())
	assert.Len(t, f.game.timeScales, before)
}

func TestTogglePauseOnEndPanels(t *testing.T) {
	f := newFixture(t, 100)
	f.ctx.Bus.Emit(event.MissionComplete, nil)

	f.hud.TogglePause()

	assert.Equal(t, OverlayMissionComplete, f.hud.Overlay())
}

func TestDifficultyPanel(t *testing.T) {
	f := newFixture(t, 100)

	f.hud.ShowDifficultyPanel()
	assert.Equal(t, OverlayNone, f.hud.Overlay(), "only reachable from pause")

	f.hud.TogglePause()
	f.hud.ShowDifficultyPanel()
	assert.Equal(t, OverlayPauseDifficulty, f.hud.Overlay())

	f.hud.HideDifficultyPanel()
	assert.Equal(t, OverlayPause, f.hud.Overlay())

	f.hud.ShowDifficultyPanel()
	f.hud.TogglePause()
	assert.Equal(t, OverlayNone, f.hud.Overlay())
}

func TestSelectDifficultyAndRestart(t *testing.T) {
	f := newFixture(t, 100)
	f.hud.TogglePause()
	f.hud.ShowDifficultyPanel()

	f.hud.SelectDifficultyAndRestart(selection.Hard)

	assert.Equal(t, selection.Hard, f.ctx.Selection.Difficulty())
	assert.Equal(t, 1.0, f.game.timeScale)
	require.Len(t, f.levels.loads, 1)
	assert.Equal(t, "canyon", f.levels.loads[0].ID)

	buttons := f.hud.DifficultyButtons()
	require.Len(t, buttons, 3)
	assert.True(t, buttons[2].Selected)
	assert.False(t, buttons[1].Selected)
}

func TestSelectDifficultyRequiresPanel(t *testing.T) {
	f := newFixture(t, 100)

	f.hud.SelectDifficultyAndRestart(selection.Easy)

	assert.Equal(t, selection.Normal, f.ctx.Selection.Difficulty())
	assert.Empty(t, f.levels.loads)
}

func TestDifficultyButtonsFollowSelection(t *testing.T) {
	ctx := session.New(config.Default(), session.WithDifficulty(selection.Easy))
	h := New(ctx, Deps{})
	h.Activate(epoch)

	buttons := h.DifficultyButtons()
	require.Len(t, buttons, 3)
	assert.Equal(t, []string{"Easy", "Normal", "Hard"}, []string{buttons[0].Label, buttons[1].Label, buttons[2].Label})
	assert.True(t, buttons[0].Selected)
	assert.Equal(t, ctx.Config.HUD.DifficultyPalette.Selected, buttons[0].Style.Fill)
	assert.Equal(t, ctx.Config.HUD.DifficultyPalette.Normal, buttons[1].Style.Fill)
}

func TestSetGameSpeed(t *testing.T) {
	f := newFixture(t, 100)

	f.hud.SetGameSpeed(selection.SpeedFast)

	assert.Equal(t, selection.SpeedFast, f.game.speed)
	buttons := f.hud.SpeedButtons()
	require.Len(t, buttons, 3)
	assert.Equal(t, "2x", buttons[2].Label)
	assert.True(t, buttons[2].Selected)
	assert.False(t, buttons[1].Selected)

	f.hud.SetGameSpeed(3)
	assert.Equal(t, selection.SpeedFast, f.game.speed)
	assert.True(t, f.hud.SpeedButtons()[2].Selected)
}

func TestMissionCompleteAndEndless(t *testing.T) {
	f := newFixture(t, 100)

	f.ctx.Bus.Emit(event.MissionComplete, nil)
	assert.Equal(t, OverlayMissionComplete, f.hud.Overlay())
	assert.Equal(t, 0.0, f.game.timeScale)

	f.hud.EnterEndlessMode()
	assert.Equal(t, OverlayNone, f.hud.Overlay())
	assert.Equal(t, 1.0, f.game.timeScale)
	assert.Equal(t, 1, f.spawner.endless)

	f.hud.EnterEndlessMode()
	assert.Equal(t, 1, f.spawner.endless)
}

func TestNavigation(t *testing.T) {
	f := newFixture(t, 100)
	f.ctx.Bus.Emit(event.LivesChanged, 0)

	f.hud.RestartLevel()
	f.hud.GoToMainMenu()
	f.hud.Quit()

	require.Len(t, f.levels.loads, 1)
	assert.Equal(t, f.levels.current, f.levels.loads[0])
	assert.Equal(t, 1.0, f.game.timeScale)
	assert.Equal(t, 1, f.nav.menu)
	assert.Equal(t, 1, f.nav.quits)
}

func TestObjectiveOnSceneLoaded(t *testing.T) {
	f := newFixture(t, 100)

	f.ctx.Bus.Emit(event.SceneLoaded, f.levels.levels[0])

	assert.True(t, f.hud.Objective().Visible())
	assert.Equal(t, "Survive 5 waves!", f.hud.Objective().Text())

	f.hud.Tick(epoch.Add(3 * time.Second))
	assert.False(t, f.hud.Objective().Visible())
}

func TestWarningHidesInRealTimeWhilePaused(t *testing.T) {
	f := newFixture(t, 10)
	f.click(&fakePlatform{})
	f.hud.SelectCard(0)
	f.hud.TogglePause()
	require.Equal(t, 0.0, f.game.timeScale)
	require.True(t, f.hud.Warning().Visible())

	f.hud.Tick(epoch.Add(2999 * time.Millisecond))
	assert.True(t, f.hud.Warning().Visible())

	f.hud.Tick(epoch.Add(3 * time.Second))
	assert.False(t, f.hud.Warning().Visible())
}

func TestSupersedingWarningRestartsWindow(t *testing.T) {
	f := newFixture(t, 10)
	f.click(&fakePlatform{})
	f.hud.SelectCard(0)

	f.hud.Tick(epoch.Add(2 * time.Second))
	f.click(&fakePlatform{occupied: true})
	f.hud.SelectCard(0)
	assert.Equal(t, "This platform already has a tower!", f.hud.Warning().Text())

	f.hud.Tick(epoch.Add(4 * time.Second))
	assert.True(t, f.hud.Warning().Visible(), "first hide must not cut the second message short")

	f.hud.Tick(epoch.Add(5 * time.Second))
	assert.False(t, f.hud.Warning().Visible())
}

func TestDeactivateStopsDelivery(t *testing.T) {
	f := newFixture(t, 100)
	f.ctx.Bus.Emit(event.WaveChanged, 1)

	f.hud.Deactivate()
	f.ctx.Bus.Emit(event.WaveChanged, 5)
	f.ctx.Bus.Emit(event.LivesChanged, 0)

	assert.Equal(t, "Wave: 2", f.hud.WaveText())
	assert.Equal(t, OverlayNone, f.hud.Overlay())
	for _, typ := range []event.Type{event.WaveChanged, event.LivesChanged, event.PlatformClicked, event.SceneLoaded} {
		assert.Zero(t, f.ctx.Bus.Count(typ), typ)
	}
}

func TestDeactivateCancelsPendingHides(t *testing.T) {
	f := newFixture(t, 10)
	f.ctx.Bus.Emit(event.SceneLoaded, f.levels.levels[0])
	f.click(&fakePlatform{})
	f.hud.SelectCard(0)
	require.Equal(t, 2, f.hud.PendingTimers())

	f.hud.Deactivate()

	assert.Zero(t, f.hud.PendingTimers())
	assert.False(t, f.hud.Warning().Visible())
	assert.False(t, f.hud.Objective().Visible())
	assert.NotPanics(t, func() { f.hud.Tick(epoch.Add(time.Minute)) })
}

func TestReactivatedHUDHidesWarnings(t *testing.T) {
	f := newFixture(t, 100)
	f.ctx.Bus.Emit(event.LivesChanged, 0)
	require.Equal(t, OverlayGameOver, f.hud.Overlay())

	f.hud.Deactivate()
	later := epoch.Add(time.Minute)
	f.hud.Activate(later)

	assert.Equal(t, OverlayNone, f.hud.Overlay())
	f.hud.Warning().Show(later, "x")
	require.Equal(t, 1, f.hud.PendingTimers())
	f.hud.Tick(later.Add(10 * time.Second))
	assert.False(t, f.hud.Warning().Visible())

	f.ctx.Bus.Emit(event.LivesChanged, 0)
	assert.Equal(t, OverlayGameOver, f.hud.Overlay(), "game over fires again after reactivation")
	assert.Equal(t, []float64{0, 0}, f.game.timeScales)
}

func TestOverlayExclusive(t *testing.T) {
	f := newFixture(t, 100)

	f.click(&fakePlatform{})
	f.ctx.Bus.Emit(event.MissionComplete, nil)
	assert.Equal(t, OverlayMissionComplete, f.hud.Overlay())
	assert.Empty(t, f.hud.Cards())

	f.ctx.Bus.Emit(event.LivesChanged, 0)
	assert.Equal(t, OverlayMissionComplete, f.hud.Overlay(), "finished levels cannot be lost")
}

func TestHUDWithRealSimulation(t *testing.T) {
	cfg := config.Default()
	ctx := session.New(cfg)
	level := sim.LevelsFromConfig(cfg.Levels)[0]
	world := sim.NewWorld(cfg, level, ctx.Bus, ctx.Selection)
	h := New(ctx, Deps{Game: world.Manager, Spawner: world.Spawner, Towers: world.Towers})
	h.Activate(epoch)
	world.Start()

	assert.Equal(t, "Wave: 1", h.WaveText())
	assert.Equal(t, "Lives: 20", h.LivesText())
	assert.Equal(t, "Resources: 150", h.ResourcesText())

	p, ok := world.Platform(0)
	require.True(t, ok)
	p.Click()
	require.Equal(t, OverlayTowerShop, h.Overlay())
	assert.Equal(t, 0.0, world.Manager.TimeScale())

	h.SelectCard(0)
	assert.True(t, p.Occupied())
	assert.Equal(t, "Resources: 100", h.ResourcesText())
	assert.Equal(t, 1.0, world.Manager.TimeScale())
}
