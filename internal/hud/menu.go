package hud

import (
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
	"github.com/vovakirdan/tui-towerdefense/internal/session"
)

// MainMenu mediates the title screen: new game, difficulty choice and quit.
type MainMenu struct {
	ctx     *session.Context
	levels  LevelManager
	nav     Navigator
	palette Palette

	difficultyPanel bool
	buttons         []OptionButton
}

// NewMainMenu builds the menu for a session.
func NewMainMenu(ctx *session.Context, levels LevelManager, nav Navigator) *MainMenu {
	return &MainMenu{
		ctx:     ctx,
		levels:  levels,
		nav:     nav,
		palette: PaletteFrom(ctx.Config.HUD.DifficultyPalette),
	}
}

// Activate resets the panel and derives button visuals from the selection.
func (m *MainMenu) Activate() {
	m.difficultyPanel = false
	m.refresh()
}

// Deactivate is called when the menu leaves the screen.
func (m *MainMenu) Deactivate() {
	m.difficultyPanel = false
}

// StartNewGame loads the first configured level.
func (m *MainMenu) StartNewGame() {
	if m.levels == nil {
		return
	}
	levels := m.levels.Levels()
	if len(levels) == 0 {
		m.ctx.Log.Warn("no levels to start")
		return
	}
	m.ctx.Log.Info("new game", "level", levels[0].ID, "difficulty", m.ctx.Selection.Difficulty())
	m.levels.LoadLevel(levels[0])
}

// ShowDifficultyPanel opens the difficulty chooser.
func (m *MainMenu) ShowDifficultyPanel() {
	m.difficultyPanel = true
	m.refresh()
}

// HideDifficultyPanel closes the difficulty chooser.
func (m *MainMenu) HideDifficultyPanel() {
	m.difficultyPanel = false
}

// SelectDifficulty stores d, updates the buttons and starts a new game.
func (m *MainMenu) SelectDifficulty(d selection.Difficulty) {
	m.ctx.Selection.SetDifficulty(d)
	m.refresh()
	m.StartNewGame()
}

// Quit exits the program.
func (m *MainMenu) Quit() {
	if m.nav != nil {
		m.nav.Quit()
	}
}

// DifficultyPanelVisible reports whether the chooser is open.
func (m *MainMenu) DifficultyPanelVisible() bool {
	return m.difficultyPanel
}

// DifficultyButtons returns the Easy/Normal/Hard buttons in order.
func (m *MainMenu) DifficultyButtons() []OptionButton {
	return m.buttons
}

func (m *MainMenu) refresh() {
	m.buttons = difficultyButtons(m.ctx.Selection.Difficulty(), m.palette)
}
