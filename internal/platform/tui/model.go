package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-towerdefense/internal/app"
	"github.com/vovakirdan/tui-towerdefense/internal/canvas"
	"github.com/vovakirdan/tui-towerdefense/internal/hud"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
)

// fieldTop is the row of the first field line in the level view: the HUD
// bar and the banner line come first.
const fieldTop = 2

// Options configure an AppModel.
type Options struct {
	FPS     int
	Width   int
	Height  int
	History RunLister // Enables the history menu entry when set
}

// item is one selectable line of a menu or panel.
type item struct {
	label   string
	button  *hud.OptionButton // Rendered with its derived style when set
	run     func()
	history bool // Opens the history screen instead of running
}

// AppModel is the Bubble Tea model for one session: main menu, levels and
// the embedded history screen.
type AppModel struct {
	app     *app.App
	runs    RunLister
	keys    KeyMap
	help    help.Model
	fps     int
	width   int
	height  int
	field   *canvas.Canvas
	history *HistoryModel

	cursor      int // Platform cursor
	panelCursor int // Cursor inside the menu or the visible overlay
	lastScreen  app.Screen
	lastOverlay hud.Overlay
	lastPanel   bool

	quitting bool
}

// NewAppModel creates a model for a and starts it on the main menu.
func NewAppModel(a *app.App, opts Options) AppModel {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	a.Start(time.Now())

	h := help.New()
	h.Width = opts.Width

	return AppModel{
		app:    a,
		runs:   opts.History,
		keys:   DefaultKeyMap(),
		help:   h,
		fps:    opts.FPS,
		width:  opts.Width,
		height: opts.Height,
		field:  canvas.New(0, 0),
	}
}

// Init starts the frame loop.
func (m AppModel) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.history != nil {
			return m.updateHistory(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.history != nil {
			return m.updateHistory(msg)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick advances the session by one frame.
func (m AppModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.app.Tick(now)
	m.sync()
	return m, tickCmd(m.fps)
}

// handleKey processes keyboard input.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.app.Quit()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.app.Screen() {
	case app.ScreenMenu:
		m = m.handleMenuKey(msg)
	case app.ScreenLevel:
		m = m.handleLevelKey(msg)
	}
	m.sync()

	if m.app.Done() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m AppModel) handleMenuKey(msg tea.KeyMsg) AppModel {
	menu := m.app.Menu()
	items := m.menuItems()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.panelCursor = max(m.panelCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.panelCursor = min(m.panelCursor+1, len(items)-1)
	case key.Matches(msg, m.keys.Back):
		menu.HideDifficultyPanel()
	case key.Matches(msg, m.keys.Select):
		if m.panelCursor < 0 || m.panelCursor >= len(items) {
			return m
		}
		it := items[m.panelCursor]
		if it.history {
			hm := NewHistoryModel(m.runs, m.width, m.height)
			hm.embedded = true
			m.history = &hm
			return m
		}
		it.run()
	}
	return m
}

func (m AppModel) handleLevelKey(msg tea.KeyMsg) AppModel {
	h := m.app.HUD()
	w := m.app.World()
	if h == nil || w == nil {
		return m
	}

	switch {
	case key.Matches(msg, m.keys.Slow):
		h.SetGameSpeed(selection.SpeedSlow)
		return m
	case key.Matches(msg, m.keys.Normal):
		h.SetGameSpeed(selection.SpeedNormal)
		return m
	case key.Matches(msg, m.keys.Fast):
		h.SetGameSpeed(selection.SpeedFast)
		return m
	case key.Matches(msg, m.keys.Pause):
		h.TogglePause()
		return m
	}

	if h.Overlay() == hud.OverlayNone {
		cols := w.Level.Columns
		n := len(w.Platforms)
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = moveCursor(m.cursor, n, cols, 0, -1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = moveCursor(m.cursor, n, cols, 0, 1)
		case key.Matches(msg, m.keys.Left):
			m.cursor = moveCursor(m.cursor, n, cols, -1, 0)
		case key.Matches(msg, m.keys.Right):
			m.cursor = moveCursor(m.cursor, n, cols, 1, 0)
		case key.Matches(msg, m.keys.Select):
			if p, ok := w.Platform(m.cursor); ok {
				p.Click()
			}
		case key.Matches(msg, m.keys.Back):
			h.TogglePause()
		}
		return m
	}

	items := m.panelItems()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.panelCursor = max(m.panelCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.panelCursor = min(m.panelCursor+1, len(items)-1)
	case key.Matches(msg, m.keys.Select):
		if m.panelCursor >= 0 && m.panelCursor < len(items) {
			items[m.panelCursor].run()
		}
	case key.Matches(msg, m.keys.Back):
		switch h.Overlay() {
		case hud.OverlayTowerShop:
			h.HideTowerPanel()
		case hud.OverlayPause:
			h.TogglePause()
		case hud.OverlayPauseDifficulty:
			h.HideDifficultyPanel()
		}
	}
	return m
}

// handleMouse clicks a platform under the pointer.
func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	h, w := m.app.HUD(), m.app.World()
	if m.history != nil || h == nil || w == nil || h.Overlay() != hud.OverlayNone {
		return m, nil
	}

	for i, r := range fieldLayout(w.Level, len(w.Platforms)) {
		if r.Contains(msg.X, msg.Y-fieldTop) {
			m.cursor = i
			w.Platforms[i].Click()
			break
		}
	}
	m.sync()
	return m, nil
}

func (m AppModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	hm, ok := next.(HistoryModel)
	if !ok {
		return m, cmd
	}
	if hm.IsQuitting() {
		m.app.Quit()
		m.quitting = true
		return m, tea.Quit
	}
	if hm.IsGoingBack() {
		m.history = nil
		return m, nil
	}
	m.history = &hm
	return m, cmd
}

// sync resets cursors when the screen, the menu panel or the overlay changes.
func (m *AppModel) sync() {
	screen := m.app.Screen()
	overlay := hud.OverlayNone
	if h := m.app.HUD(); h != nil {
		overlay = h.Overlay()
	}
	panel := m.app.Menu().DifficultyPanelVisible()

	if screen != m.lastScreen || overlay != m.lastOverlay || panel != m.lastPanel {
		m.panelCursor = 0
		if (screen == app.ScreenMenu && panel) || overlay == hud.OverlayPauseDifficulty {
			m.panelCursor = int(m.app.Context().Selection.Difficulty())
		}
	}
	if screen != m.lastScreen {
		m.cursor = 0
	}
	m.lastScreen, m.lastOverlay, m.lastPanel = screen, overlay, panel
}

// menuItems lists the entries of the title screen.
func (m AppModel) menuItems() []item {
	menu := m.app.Menu()
	if menu.DifficultyPanelVisible() {
		buttons := menu.DifficultyButtons()
		items := make([]item, len(buttons))
		for i := range buttons {
			d := selection.Difficulties[i]
			items[i] = item{label: buttons[i].Label, button: &buttons[i], run: func() { menu.SelectDifficulty(d) }}
		}
		return items
	}

	items := []item{
		{label: "New Game", run: menu.StartNewGame},
		{label: "Difficulty", run: menu.ShowDifficultyPanel},
	}
	if m.runs != nil {
		items = append(items, item{label: "History", history: true})
	}
	return append(items, item{label: "Quit", run: menu.Quit})
}

// panelItems lists the entries of the visible overlay.
func (m AppModel) panelItems() []item {
	h := m.app.HUD()
	if h == nil {
		return nil
	}

	restart := item{label: "Restart", run: h.RestartLevel}
	mainMenu := item{label: "Main Menu", run: h.GoToMainMenu}
	quit := item{label: "Quit", run: h.Quit}

	switch h.Overlay() {
	case hud.OverlayTowerShop:
		cards := h.Cards()
		items := make([]item, 0, len(cards)+1)
		for i, c := range cards {
			label := fmt.Sprintf("%s %-8s %4d  dmg %d", c.Tower.Glyph, c.Tower.Name, c.Tower.Cost, c.Tower.Damage)
			items = append(items, item{label: label, run: func() { h.SelectCard(i) }})
		}
		return append(items, item{label: "Cancel", run: h.HideTowerPanel})

	case hud.OverlayPause:
		return []item{
			{label: "Resume", run: h.TogglePause},
			{label: "Difficulty", run: h.ShowDifficultyPanel},
			restart, mainMenu, quit,
		}

	case hud.OverlayPauseDifficulty:
		buttons := h.DifficultyButtons()
		items := make([]item, 0, len(buttons)+1)
		for i := range buttons {
			d := selection.Difficulties[i]
			items = append(items, item{label: buttons[i].Label, button: &buttons[i], run: func() { h.SelectDifficultyAndRestart(d) }})
		}
		return append(items, item{label: "Back", run: h.HideDifficultyPanel})

	case hud.OverlayGameOver:
		return []item{restart, mainMenu, quit}

	case hud.OverlayMissionComplete:
		return []item{
			{label: "Endless Mode", run: h.EnterEndlessMode},
			restart, mainMenu, quit,
		}
	}
	return nil
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.history != nil {
		return m.history.View()
	}
	if m.app.Screen() == app.ScreenLevel && m.app.HUD() != nil {
		return m.levelView()
	}
	return m.menuView()
}

func (m AppModel) menuView() string {
	var b strings.Builder
	menu := m.app.Menu()
	level := m.app.CurrentLevel()
	difficulty := m.app.Context().Selection.Difficulty()

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("T O W E R   D E F E N S E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: %s", difficulty), m.width))
	b.WriteString("\n")
	if best := m.app.BestWave(); best > 0 {
		b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Best on %s: %d waves", level.Name, best)), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	items := m.menuItems()
	if menu.DifficultyPanelVisible() {
		b.WriteString(centerText("Choose difficulty", m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(renderButtons(menu.DifficultyButtons(), m.panelCursor), m.width))
		b.WriteString("\n")
	} else {
		for i, it := range items {
			b.WriteString(centerText(renderLine(it.label, i == m.panelCursor, true), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m AppModel) levelView() string {
	h := m.app.HUD()
	w := m.app.World()

	cursor := m.cursor
	if h.Overlay() != hud.OverlayNone {
		cursor = -1
	}
	drawField(m.field, w, cursor)

	lines := []string{
		m.hudBar(),
		m.bannerLine(),
		RenderCanvas(m.field),
		m.statusLine(),
	}
	if panel := m.renderPanel(); panel != "" {
		lines = append(lines, panel)
	}
	lines = append(lines, dimStyle.Render(m.help.View(m.keys)))
	return strings.Join(lines, "\n")
}

// hudBar renders counters, speed buttons and difficulty on one line.
func (m AppModel) hudBar() string {
	h := m.app.HUD()
	sep := dimStyle.Render(" │ ")
	parts := []string{
		h.WaveText(),
		warningStyle.UnsetBold().Render(h.LivesText()),
		goalStyle.Render(h.ResourcesText()),
		renderButtons(h.SpeedButtons(), -1),
		dimStyle.Render(m.app.Context().Selection.Difficulty().String()),
	}
	return strings.Join(parts, sep)
}

// bannerLine shows the warning when visible, else the objective.
func (m AppModel) bannerLine() string {
	h := m.app.HUD()
	switch {
	case h.Warning().Visible():
		return warningStyle.Render(h.Warning().Text())
	case h.Objective().Visible():
		return goalStyle.Render(h.Objective().Text())
	}
	return ""
}

func (m AppModel) statusLine() string {
	w := m.app.World()
	s := fmt.Sprintf("%s  next wave in %.1fs  towers %d/%d",
		w.Level.Name, w.Spawner.Countdown(), w.TowerCount(), len(w.Platforms))
	if last, ok := w.Spawner.LastWave(); ok {
		s += fmt.Sprintf("  last wave: %d enemies, %d defeated, %d leaked", last.Enemies, last.Defeated, last.Leaked)
	}
	if w.Spawner.Endless() {
		s += "  [endless]"
	}
	return dimStyle.Render(s)
}

// renderPanel renders the visible overlay, or "" when running.
func (m AppModel) renderPanel() string {
	h := m.app.HUD()
	var title string
	switch h.Overlay() {
	case hud.OverlayNone:
		return ""
	case hud.OverlayTowerShop:
		title = "Build a tower"
	case hud.OverlayPause:
		title = "Paused"
	case hud.OverlayPauseDifficulty:
		title = "Difficulty (restarts level)"
	case hud.OverlayGameOver:
		title = "GAME OVER"
	case hud.OverlayMissionComplete:
		title = "MISSION COMPLETE"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	items := m.panelItems()
	for i, it := range items {
		selected := i == m.panelCursor
		switch {
		case it.button != nil:
			b.WriteString(renderButtons([]hud.OptionButton{*it.button}, cursorIndex(selected)))
		case h.Overlay() == hud.OverlayTowerShop && i < len(h.Cards()):
			b.WriteString(renderLine(it.label, selected, h.Affordable(h.Cards()[i].Tower)))
		default:
			b.WriteString(renderLine(it.label, selected, true))
		}
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panelStyle.Render(b.String()))
}

func renderLine(label string, selected, enabled bool) string {
	switch {
	case selected:
		return cursorStyle.Render("> " + label)
	case !enabled:
		return dimStyle.Render("  " + label)
	default:
		return "  " + label
	}
}

func cursorIndex(selected bool) int {
	if selected {
		return 0
	}
	return -1
}

// App returns the underlying session app.
func (m AppModel) App() *app.App {
	return m.app
}

// Run starts the Bubble Tea program for a local session.
func Run(a *app.App, opts Options) error {
	p := tea.NewProgram(
		NewAppModel(a, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

// RunLevel starts the program directly in the level with the given ID.
func RunLevel(a *app.App, levelID string, opts Options) error {
	m := NewAppModel(a, opts)
	for _, l := range a.Levels() {
		if l.ID == levelID {
			a.LoadLevel(l)
			break
		}
	}
	m.sync()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
