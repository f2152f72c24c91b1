package hud

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-towerdefense/internal/event"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
	"github.com/vovakirdan/tui-towerdefense/internal/session"
	"github.com/vovakirdan/tui-towerdefense/internal/sim"
	"github.com/vovakirdan/tui-towerdefense/internal/timer"
)

const (
	msgPlatformOccupied = "This platform already has a tower!"
	msgNotEnoughMoney   = "Not enough resources!"
)

// Deps are the collaborators of an in-game HUD. Nil members are skipped.
type Deps struct {
	Game    GameManager
	Spawner Spawner
	Levels  LevelManager
	Nav     Navigator
	Towers  []sim.Tower
}

// HUD mediates the in-game screen. It turns domain events into label text,
// overlays and banners, and forwards button presses to the collaborators.
//
// All methods must be called from the UI goroutine. Timed hides run from
// Tick, which receives wall-clock time, so they are independent of the
// simulation time scale.
type HUD struct {
	ctx  *session.Context
	deps Deps

	scope  *event.Scope
	timers *timer.Queue
	now    time.Time

	difficultyPalette Palette
	speedPalette      Palette

	waveText      string
	livesText     string
	resourcesText string

	warning   *Banner
	objective *Banner

	overlay  Overlay
	pending  Platform
	cards    []TowerCard
	gameOver bool

	difficultyButtons []OptionButton
	speedButtons      []OptionButton
}

// New builds an inactive HUD.
func New(ctx *session.Context, deps Deps) *HUD {
	h := &HUD{
		ctx:               ctx,
		deps:              deps,
		difficultyPalette: PaletteFrom(ctx.Config.HUD.DifficultyPalette),
		speedPalette:      PaletteFrom(ctx.Config.HUD.SpeedPalette),
	}
	h.resetTimers()
	return h
}

// resetTimers gives the HUD a fresh queue and banners. A queue stopped by
// Deactivate refuses new hides, so every activation needs its own.
func (h *HUD) resetTimers() {
	d := h.ctx.Config.HUD.MessageDuration()
	h.timers = timer.NewQueue()
	h.warning = NewBanner(h.timers, d)
	h.objective = NewBanner(h.timers, d)
}

// Activate subscribes to domain events and derives visuals from the session
// selection. now is the current wall-clock time. A deactivated HUD can be
// activated again and starts from a running, non-game-over state.
func (h *HUD) Activate(now time.Time) {
	h.now = now
	if h.scope != nil {
		h.scope.Close()
	}
	if h.timers.Stopped() {
		h.resetTimers()
	}
	h.gameOver = false
	h.pending = nil
	h.scope = event.NewScope(h.ctx.Bus)
	h.scope.On(event.WaveChanged, h.onWaveChanged)
	h.scope.On(event.LivesChanged, h.onLivesChanged)
	h.scope.On(event.ResourcesChanged, h.onResourcesChanged)
	h.scope.On(event.PlatformClicked, h.onPlatformClicked)
	h.scope.On(event.TowerSelected, h.onTowerSelected)
	h.scope.On(event.MissionComplete, h.onMissionComplete)
	h.scope.On(event.SceneLoaded, h.onSceneLoaded)

	h.setOverlay(OverlayNone)
	h.refreshDifficulty()
	speed := h.ctx.Selection.Speed()
	if h.deps.Game != nil {
		speed = h.deps.Game.GameSpeed()
	}
	h.speedButtons = speedButtons(speed, h.speedPalette)
}

// Deactivate unsubscribes every handler and cancels pending hides.
func (h *HUD) Deactivate() {
	if h.scope != nil {
		h.scope.Close()
		h.scope = nil
	}
	h.warning.Hide()
	h.objective.Hide()
	h.timers.Stop()
	h.pending = nil
}

// Tick advances wall-clock time and runs due hides.
func (h *HUD) Tick(now time.Time) {
	h.now = now
	h.timers.Fire(now)
}

// Overlay returns the visible overlay.
func (h *HUD) Overlay() Overlay { return h.overlay }

// WaveText returns the wave counter label.
func (h *HUD) WaveText() string { return h.waveText }

// LivesText returns the lives counter label.
func (h *HUD) LivesText() string { return h.livesText }

// ResourcesText returns the resources counter label.
func (h *HUD) ResourcesText() string { return h.resourcesText }

// Warning is the transient warning line.
func (h *HUD) Warning() *Banner { return h.warning }

// Objective is the transient objective line shown on level load.
func (h *HUD) Objective() *Banner { return h.objective }

// Cards returns the tower shop cards; empty unless the shop is open.
func (h *HUD) Cards() []TowerCard { return h.cards }

// DifficultyButtons returns the pause-menu difficulty buttons.
func (h *HUD) DifficultyButtons() []OptionButton { return h.difficultyButtons }

// SpeedButtons returns the speed buttons.
func (h *HUD) SpeedButtons() []OptionButton { return h.speedButtons }

// Affordable reports whether the player can pay for t right now.
func (h *HUD) Affordable(t sim.Tower) bool {
	return h.deps.Game != nil && h.deps.Game.Resources() >= t.Cost
}

// PendingTimers returns the number of scheduled hides.
func (h *HUD) PendingTimers() int { return h.timers.Len() }

func (h *HUD) setOverlay(o Overlay) {
	if h.overlay == o {
		return
	}
	h.ctx.Log.Debug("overlay", "from", h.overlay, "to", o)
	h.overlay = o
	if o != OverlayTowerShop {
		h.cards = nil
	}
}

func (h *HUD) setTimeScale(s float64) {
	if h.deps.Game != nil {
		h.deps.Game.SetTimeScale(s)
	}
}

func (h *HUD) resume() {
	if h.deps.Game != nil {
		h.deps.Game.SetTimeScale(h.deps.Game.GameSpeed())
	}
}

func (h *HUD) onWaveChanged(e event.Event) {
	if n, ok := e.Data.(int); ok {
		h.waveText = fmt.Sprintf("Wave: %d", n+1)
	}
}

func (h *HUD) onLivesChanged(e event.Event) {
	n, ok := e.Data.(int)
	if !ok {
		return
	}
	h.livesText = fmt.Sprintf("Lives: %d", n)
	if n <= 0 {
		h.showGameOver()
	}
}

func (h *HUD) onResourcesChanged(e event.Event) {
	if n, ok := e.Data.(int); ok {
		h.resourcesText = fmt.Sprintf("Resources: %d", n)
	}
}

func (h *HUD) showGameOver() {
	if h.gameOver || h.overlay == OverlayMissionComplete {
		return
	}
	h.gameOver = true
	h.pending = nil
	h.setOverlay(OverlayGameOver)
	h.setTimeScale(0)
	h.ctx.Log.Info("game over")
}

func (h *HUD) onMissionComplete(event.Event) {
	if h.gameOver {
		return
	}
	h.pending = nil
	h.setOverlay(OverlayMissionComplete)
	h.setTimeScale(0)
	h.ctx.Log.Info("mission complete")
}

func (h *HUD) onSceneLoaded(e event.Event) {
	level, ok := e.Data.(sim.Level)
	if !ok {
		if h.deps.Levels == nil {
			return
		}
		level = h.deps.Levels.CurrentLevel()
	}
	h.objective.Show(h.now, fmt.Sprintf("Survive %d waves!", level.WavesToWin))
}

func (h *HUD) onPlatformClicked(e event.Event) {
	p, ok := e.Data.(Platform)
	if !ok || h.overlay != OverlayNone {
		return
	}
	h.pending = p
	h.setOverlay(OverlayTowerShop)
	h.cards = make([]TowerCard, len(h.deps.Towers))
	for i, t := range h.deps.Towers {
		h.cards[i].Initialize(t)
	}
	h.setTimeScale(0)
}

// SelectCard chooses the i-th tower card in the open shop.
func (h *HUD) SelectCard(i int) {
	if h.overlay != OverlayTowerShop || i < 0 || i >= len(h.cards) {
		return
	}
	h.ctx.Bus.Emit(event.TowerSelected, h.cards[i].Tower)
}

func (h *HUD) onTowerSelected(e event.Event) {
	t, ok := e.Data.(sim.Tower)
	if !ok || h.pending == nil {
		return
	}
	p := h.pending

	if p.Occupied() {
		h.HideTowerPanel()
		h.warning.Show(h.now, msgPlatformOccupied)
		return
	}
	if h.deps.Game == nil || h.deps.Game.Resources() < t.Cost {
		h.ctx.Log.Info("purchase rejected", "tower", t.ID, "cost", t.Cost)
		h.warning.Show(h.now, msgNotEnoughMoney)
		h.HideTowerPanel()
		return
	}
	if !h.deps.Game.SpendResources(t.Cost) {
		h.warning.Show(h.now, msgNotEnoughMoney)
		h.HideTowerPanel()
		return
	}
	p.PlaceTower(t)
	h.ctx.Log.Info("tower placed", "tower", t.ID, "cost", t.Cost)
	h.HideTowerPanel()
}

// HideTowerPanel closes the shop and resumes at the selected speed.
func (h *HUD) HideTowerPanel() {
	if h.overlay != OverlayTowerShop {
		return
	}
	h.pending = nil
	h.setOverlay(OverlayNone)
	h.resume()
}

// TogglePause switches between running and the pause menu. It does nothing
// while the tower shop or an end-of-level panel is showing.
func (h *HUD) TogglePause() {
	switch h.overlay {
	case OverlayNone:
		h.setOverlay(OverlayPause)
		h.setTimeScale(0)
	case OverlayPause, OverlayPauseDifficulty:
		h.setOverlay(OverlayNone)
		h.resume()
	}
}

// ShowDifficultyPanel opens the difficulty chooser inside the pause menu.
func (h *HUD) ShowDifficultyPanel() {
	if h.overlay != OverlayPause {
		return
	}
	h.refreshDifficulty()
	h.setOverlay(OverlayPauseDifficulty)
}

// HideDifficultyPanel returns to the plain pause menu.
func (h *HUD) HideDifficultyPanel() {
	if h.overlay != OverlayPauseDifficulty {
		return
	}
	h.setOverlay(OverlayPause)
}

// SelectDifficultyAndRestart stores d and reloads the current level at
// normal time scale. The HUD is torn down by the reload.
func (h *HUD) SelectDifficultyAndRestart(d selection.Difficulty) {
	if h.overlay != OverlayPauseDifficulty {
		return
	}
	h.ctx.Selection.SetDifficulty(d)
	h.refreshDifficulty()
	h.setTimeScale(1)
	h.RestartLevel()
}

// SetGameSpeed highlights the chosen speed and forwards it to the game.
func (h *HUD) SetGameSpeed(v float64) {
	if !selection.IsSpeed(v) {
		h.ctx.Log.Warn("unknown speed", "speed", v)
		return
	}
	h.speedButtons = speedButtons(v, h.speedPalette)
	if h.deps.Game == nil {
		_ = h.ctx.Selection.SetSpeed(v)
		return
	}
	if err := h.deps.Game.SetGameSpeed(v); err != nil {
		h.ctx.Log.Warn("set speed", "err", err)
	}
}

// RestartLevel reloads the current level.
func (h *HUD) RestartLevel() {
	if h.deps.Levels == nil {
		return
	}
	h.deps.Levels.LoadLevel(h.deps.Levels.CurrentLevel())
}

// GoToMainMenu restores normal time and shows the main menu.
func (h *HUD) GoToMainMenu() {
	h.setTimeScale(1)
	if h.deps.Nav != nil {
		h.deps.Nav.ShowMainMenu()
	}
}

// Quit exits the program.
func (h *HUD) Quit() {
	if h.deps.Nav != nil {
		h.deps.Nav.Quit()
	}
}

// EnterEndlessMode dismisses the mission panel and keeps the waves coming.
func (h *HUD) EnterEndlessMode() {
	if h.overlay != OverlayMissionComplete {
		return
	}
	h.setOverlay(OverlayNone)
	h.resume()
	if h.deps.Spawner != nil {
		h.deps.Spawner.EnableEndlessMode()
	}
	h.ctx.Log.Info("endless mode")
}

func (h *HUD) refreshDifficulty() {
	h.difficultyButtons = difficultyButtons(h.ctx.Selection.Difficulty(), h.difficultyPalette)
}
