package config

import (
	_ "embed"
)

//go:embed defaults/towerdef.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/towerdef.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Levels: []LevelConfig{
			{ID: "meadow", Name: "Meadow", WavesToWin: 5, StartingLives: 20, StartingResources: 150, Platforms: 8, Columns: 4},
			{ID: "canyon", Name: "Canyon", WavesToWin: 8, StartingLives: 15, StartingResources: 120, Platforms: 10, Columns: 5},
			{ID: "citadel", Name: "Citadel", WavesToWin: 12, StartingLives: 10, StartingResources: 100, Platforms: 12, Columns: 6},
		},
		Towers: []TowerConfig{
			{ID: "archer", Name: "Archer", Cost: 50, Damage: 3, Glyph: "A"},
			{ID: "cannon", Name: "Cannon", Cost: 100, Damage: 7, Glyph: "C"},
			{ID: "mage", Name: "Mage", Cost: 150, Damage: 11, Glyph: "M"},
		},
		Difficulty: DifficultyPresets{
			Easy:   DifficultyConfig{LivesMultiplier: 1.5, ResourcesMultiplier: 1.5, EnemyMultiplier: 0.75},
			Normal: DifficultyConfig{LivesMultiplier: 1.0, ResourcesMultiplier: 1.0, EnemyMultiplier: 1.0},
			Hard:   DifficultyConfig{LivesMultiplier: 0.5, ResourcesMultiplier: 0.8, EnemyMultiplier: 1.5},
		},
		Waves: WaveConfig{
			FirstDelay:     5,
			Interval:       10,
			BaseEnemies:    4,
			EnemiesPerWave: 2,
			RewardPerKill:  5,
			LivesPerLeak:   1,
		},
		HUD: HUDConfig{
			MessageSeconds: 3,
			DifficultyPalette: ButtonPalette{
				Normal:       "7",  // white
				Selected:     "6",  // cyan
				NormalText:   "15", // bright white
				SelectedText: "0",  // black
			},
			SpeedPalette: ButtonPalette{
				Normal:       "7",
				Selected:     "4", // blue
				NormalText:   "15",
				SelectedText: "0",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
