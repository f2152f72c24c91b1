package hud

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-towerdefense/internal/config"
	"github.com/vovakirdan/tui-towerdefense/internal/selection"
)

// Style is the derived look of a button: fill and text colors as terminal
// color strings.
type Style struct {
	Fill string
	Text string
}

// Palette maps the selected flag to a Style.
type Palette struct {
	Normal   Style
	Selected Style
}

// PaletteFrom converts a configured palette.
func PaletteFrom(p config.ButtonPalette) Palette {
	return Palette{
		Normal:   Style{Fill: p.Normal, Text: p.NormalText},
		Selected: Style{Fill: p.Selected, Text: p.SelectedText},
	}
}

// For returns the style for a button in the given selection state.
func (p Palette) For(selected bool) Style {
	if selected {
		return p.Selected
	}
	return p.Normal
}

// OptionButton is one button of a mutually exclusive option group. Selected
// and Style are derived from the session selection and never stored elsewhere.
type OptionButton struct {
	Label    string
	Selected bool
	Style    Style
}

func difficultyButtons(current selection.Difficulty, p Palette) []OptionButton {
	buttons := make([]OptionButton, 0, len(selection.Difficulties))
	for _, d := range selection.Difficulties {
		selected := d == current
		buttons = append(buttons, OptionButton{
			Label:    d.String(),
			Selected: selected,
			Style:    p.For(selected),
		})
	}
	return buttons
}

func speedButtons(current float64, p Palette) []OptionButton {
	buttons := make([]OptionButton, 0, len(selection.Speeds))
	for _, s := range selection.Speeds {
		selected := s == current
		buttons = append(buttons, OptionButton{
			Label:    SpeedLabel(s),
			Selected: selected,
			Style:    p.For(selected),
		})
	}
	return buttons
}

// SpeedLabel formats a speed multiplier for a button, e.g. "0.2x" or "2x".
func SpeedLabel(v float64) string {
	return fmt.Sprintf("%sx", strconv.FormatFloat(v, 'f', -1, 64))
}
