package hud

// Overlay is the single modal layer shown above the HUD. Only one overlay
// can be visible at a time; the HUD changes it through one setter.
type Overlay int

const (
	OverlayNone            Overlay = iota // Running, nothing on top
	OverlayTowerShop                      // Tower purchase panel for a platform
	OverlayPause                          // Pause menu
	OverlayPauseDifficulty                // Pause menu showing the difficulty panel
	OverlayGameOver
	OverlayMissionComplete
)

// String returns a human-readable name for the overlay.
func (o Overlay) String() string {
	switch o {
	case OverlayNone:
		return "None"
	case OverlayTowerShop:
		return "TowerShop"
	case OverlayPause:
		return "Pause"
	case OverlayPauseDifficulty:
		return "PauseDifficulty"
	case OverlayGameOver:
		return "GameOver"
	case OverlayMissionComplete:
		return "MissionComplete"
	default:
		return "Unknown"
	}
}

// Paused reports whether the overlay is one of the pause states.
func (o Overlay) Paused() bool {
	return o == OverlayPause || o == OverlayPauseDifficulty
}

// Terminal reports whether the overlay ends the level.
func (o Overlay) Terminal() bool {
	return o == OverlayGameOver || o == OverlayMissionComplete
}
