// Package app owns the screens of one session and switches between them.
//
// App is both the level manager and the navigator for the screens it
// creates: loading a level tears down the current screen, builds a new world
// and HUD, and announces the scene.
package app

import (
	"time"

	"github.com/vovakirdan/tui-towerdefense/internal/event"
	"github.com/vovakirdan/tui-towerdefense/internal/hud"
	"github.com/vovakirdan/tui-towerdefense/internal/session"
	"github.com/vovakirdan/tui-towerdefense/internal/sim"
	"github.com/vovakirdan/tui-towerdefense/internal/storage"
)

// maxStep caps a single frame's wall-clock delta so a stalled terminal does
// not resolve a burst of waves at once.
const maxStep = time.Second

// Screen identifies the active top-level screen.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenLevel
)

// RunRecorder persists finished runs. *storage.Store implements it.
type RunRecorder interface {
	SaveRun(r storage.Run) (int64, error)
	BestWave(levelID, difficulty string) (int, error)
}

// App is the per-session screen manager.
type App struct {
	ctx      *session.Context
	recorder RunRecorder
	levels   []sim.Level
	current  sim.Level

	screen Screen
	menu   *hud.MainMenu
	hud    *hud.HUD
	world  *sim.World

	runScope   *event.Scope
	difficulty string
	outcome    storage.Outcome
	recorded   bool

	now  time.Time
	quit bool
}

// New creates an app on the main menu. recorder may be nil.
func New(ctx *session.Context, recorder RunRecorder) *App {
	a := &App{
		ctx:      ctx,
		recorder: recorder,
		levels:   sim.LevelsFromConfig(ctx.Config.Levels),
	}
	if len(a.levels) > 0 {
		a.current = a.levels[0]
	}
	a.menu = hud.NewMainMenu(ctx, a, a)
	return a
}

// Start sets the wall clock and shows the main menu.
func (a *App) Start(now time.Time) {
	a.now = now
	a.screen = ScreenMenu
	a.menu.Activate()
}

// Tick advances the wall clock: the world steps by the elapsed time and the
// HUD runs its due hides.
func (a *App) Tick(now time.Time) {
	dt := now.Sub(a.now)
	if a.now.IsZero() || dt < 0 {
		dt = 0
	}
	dt = min(dt, maxStep)
	a.now = now

	if a.screen != ScreenLevel || a.world == nil {
		return
	}
	a.world.Step(dt.Seconds())
	if a.hud != nil {
		a.hud.Tick(now)
	}
}

// CurrentLevel returns the level being played, or the first level.
func (a *App) CurrentLevel() sim.Level {
	return a.current
}

// Levels returns all configured levels in order.
func (a *App) Levels() []sim.Level {
	return a.levels
}

// LoadLevel replaces the current screen with a fresh run of level.
func (a *App) LoadLevel(level sim.Level) {
	a.finishRun(storage.Abandoned)
	a.teardown()

	a.current = level
	a.world = sim.NewWorld(a.ctx.Config, level, a.ctx.Bus, a.ctx.Selection)
	a.hud = hud.New(a.ctx, hud.Deps{
		Game:    a.world.Manager,
		Spawner: a.world.Spawner,
		Levels:  a,
		Nav:     a,
		Towers:  a.world.Towers,
	})
	a.hud.Activate(a.now)

	a.difficulty = a.ctx.Selection.Difficulty().Key()
	a.outcome = ""
	a.recorded = false
	a.runScope = event.NewScope(a.ctx.Bus)
	a.runScope.On(event.LivesChanged, a.onLivesChanged)
	a.runScope.On(event.MissionComplete, a.onMissionComplete)

	a.screen = ScreenLevel
	a.ctx.Log.Info("level loaded",
		"level", level.ID,
		"difficulty", a.ctx.Selection.Difficulty(),
		"lives", a.world.Manager.Lives(),
		"resources", a.world.Manager.Resources())

	a.world.Start()
	a.ctx.Bus.Emit(event.SceneLoaded, level)
}

// ShowMainMenu leaves the level and returns to the title screen.
func (a *App) ShowMainMenu() {
	a.finishRun(storage.Abandoned)
	a.teardown()
	a.screen = ScreenMenu
	a.menu.Activate()
}

// Quit ends the session.
func (a *App) Quit() {
	a.finishRun(storage.Abandoned)
	a.teardown()
	a.quit = true
	a.ctx.Log.Info("quit")
}

// Done reports whether the session has quit.
func (a *App) Done() bool { return a.quit }

// Screen returns the active screen.
func (a *App) Screen() Screen { return a.screen }

// Menu returns the main menu mediator.
func (a *App) Menu() *hud.MainMenu { return a.menu }

// HUD returns the in-game mediator, or nil on the menu.
func (a *App) HUD() *hud.HUD { return a.hud }

// World returns the running world, or nil on the menu.
func (a *App) World() *sim.World { return a.world }

// Context returns the session.
func (a *App) Context() *session.Context { return a.ctx }

// BestWave returns the stored best for the current level at the selected
// difficulty. Errors are logged and reported as 0.
func (a *App) BestWave() int {
	if a.recorder == nil {
		return 0
	}
	best, err := a.recorder.BestWave(a.current.ID, a.ctx.Selection.Difficulty().Key())
	if err != nil {
		a.ctx.Log.Warn("best wave", "err", err)
		return 0
	}
	return best
}

func (a *App) teardown() {
	if a.runScope != nil {
		a.runScope.Close()
		a.runScope = nil
	}
	if a.hud != nil {
		a.hud.Deactivate()
		a.hud = nil
	}
	if a.screen == ScreenMenu {
		a.menu.Deactivate()
	}
	a.world = nil
}

func (a *App) onLivesChanged(e event.Event) {
	if n, ok := e.Data.(int); ok && n <= 0 {
		a.finishRun(storage.Defeat)
	}
}

func (a *App) onMissionComplete(event.Event) {
	if a.outcome == "" {
		a.outcome = storage.Victory
	}
}

// finishRun records the current run once. A won run stays a victory even if
// endless waves later overrun the base.
func (a *App) finishRun(fallback storage.Outcome) {
	if a.world == nil || a.recorded {
		return
	}
	a.recorded = true

	outcome := a.outcome
	if outcome == "" {
		outcome = fallback
	}
	run := storage.Run{
		Player:     a.ctx.User,
		LevelID:    a.world.Level.ID,
		Difficulty: a.difficulty,
		Waves:      a.world.Spawner.WavesSent(),
		Outcome:    outcome,
	}
	a.ctx.Log.Info("run finished", "level", run.LevelID, "outcome", run.Outcome, "waves", run.Waves)

	if a.recorder == nil {
		return
	}
	if _, err := a.recorder.SaveRun(run); err != nil {
		a.ctx.Log.Warn("save run", "err", err)
	}
}
