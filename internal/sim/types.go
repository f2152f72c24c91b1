// Package sim contains the collaborators the HUD talks to: the game manager,
// the wave spawner, build platforms and the level catalog.
//
// The simulation is deliberately small. It advances in scaled simulated time,
// publishes domain events on the session bus, and never touches rendering.
package sim

import (
	"github.com/vovakirdan/tui-towerdefense/internal/config"
)

// Tower is a purchasable tower type.
type Tower struct {
	ID     string
	Name   string
	Cost   int
	Damage int
	Glyph  string
}

// Level is one playable level.
type Level struct {
	Index             int // Position in the level list
	ID                string
	Name              string
	WavesToWin        int
	StartingLives     int
	StartingResources int
	Platforms         int
	Columns           int
}

// TowersFromConfig converts the configured tower catalog.
func TowersFromConfig(cfg []config.TowerConfig) []Tower {
	towers := make([]Tower, 0, len(cfg))
	for _, t := range cfg {
		towers = append(towers, Tower{
			ID:     t.ID,
			Name:   t.Name,
			Cost:   t.Cost,
			Damage: t.Damage,
			Glyph:  t.Glyph,
		})
	}
	return towers
}

// LevelsFromConfig converts the configured levels, preserving order.
func LevelsFromConfig(cfg []config.LevelConfig) []Level {
	levels := make([]Level, 0, len(cfg))
	for i, l := range cfg {
		cols := l.Columns
		if cols <= 0 {
			cols = l.Platforms
		}
		levels = append(levels, Level{
			Index:             i,
			ID:                l.ID,
			Name:              l.Name,
			WavesToWin:        l.WavesToWin,
			StartingLives:     l.StartingLives,
			StartingResources: l.StartingResources,
			Platforms:         l.Platforms,
			Columns:           cols,
		})
	}
	return levels
}
