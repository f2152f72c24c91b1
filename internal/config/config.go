// Package config provides YAML-based configuration for levels, the tower
// catalog, difficulty presets, wave pacing and HUD presentation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-towerdefense/internal/selection"
)

// Config is the complete game configuration.
type Config struct {
	Levels     []LevelConfig     `yaml:"levels"`
	Towers     []TowerConfig     `yaml:"towers"`
	Difficulty DifficultyPresets `yaml:"difficulty"`
	Waves      WaveConfig        `yaml:"waves"`
	HUD        HUDConfig         `yaml:"hud"`
}

// LevelConfig describes one playable level.
type LevelConfig struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	WavesToWin        int    `yaml:"waves_to_win"`
	StartingLives     int    `yaml:"starting_lives"`
	StartingResources int    `yaml:"starting_resources"`
	Platforms         int    `yaml:"platforms"` // Number of build slots
	Columns           int    `yaml:"columns"`   // Slots per row on screen
}

// TowerConfig describes a purchasable tower.
type TowerConfig struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Cost   int    `yaml:"cost"`
	Damage int    `yaml:"damage"` // Enemies defeated per wave
	Glyph  string `yaml:"glyph"`
}

// DifficultyConfig scales a level for one difficulty.
type DifficultyConfig struct {
	LivesMultiplier     float64 `yaml:"lives_multiplier"`
	ResourcesMultiplier float64 `yaml:"resources_multiplier"`
	EnemyMultiplier     float64 `yaml:"enemy_multiplier"`
}

// DifficultyPresets holds one DifficultyConfig per difficulty.
type DifficultyPresets struct {
	Easy   DifficultyConfig `yaml:"easy"`
	Normal DifficultyConfig `yaml:"normal"`
	Hard   DifficultyConfig `yaml:"hard"`
}

// For returns the preset for d. Unknown values fall back to Normal.
func (p DifficultyPresets) For(d selection.Difficulty) DifficultyConfig {
	switch d {
	case selection.Easy:
		return p.Easy
	case selection.Hard:
		return p.Hard
	default:
		return p.Normal
	}
}

// WaveConfig controls how the spawner paces and sizes waves.
type WaveConfig struct {
	FirstDelay     float64 `yaml:"first_delay"` // Simulated seconds before wave 1
	Interval       float64 `yaml:"interval"`    // Simulated seconds between waves
	BaseEnemies    int     `yaml:"base_enemies"`
	EnemiesPerWave int     `yaml:"enemies_per_wave"`
	RewardPerKill  int     `yaml:"reward_per_kill"`
	LivesPerLeak   int     `yaml:"lives_per_leak"`
}

// HUDConfig controls HUD presentation.
type HUDConfig struct {
	MessageSeconds    float64       `yaml:"message_seconds"`
	DifficultyPalette ButtonPalette `yaml:"difficulty_palette"`
	SpeedPalette      ButtonPalette `yaml:"speed_palette"`
}

// MessageDuration returns how long transient messages stay on screen.
func (h HUDConfig) MessageDuration() time.Duration {
	return time.Duration(h.MessageSeconds * float64(time.Second))
}

// ButtonPalette holds terminal colors (ANSI codes or hex) for option buttons.
type ButtonPalette struct {
	Normal       string `yaml:"normal"`
	Selected     string `yaml:"selected"`
	NormalText   string `yaml:"normal_text"`
	SelectedText string `yaml:"selected_text"`
}

// ErrNoLevels is returned by Validate when no level is configured.
var ErrNoLevels = errors.New("config: no levels configured")

// Validate checks the invariants the game relies on.
func (c Config) Validate() error {
	if len(c.Levels) == 0 {
		return ErrNoLevels
	}
	for i, l := range c.Levels {
		if l.ID == "" {
			return fmt.Errorf("config: level %d has no id", i)
		}
		if l.WavesToWin <= 0 {
			return fmt.Errorf("config: level %q: waves_to_win must be positive", l.ID)
		}
		if l.Platforms <= 0 {
			return fmt.Errorf("config: level %q: platforms must be positive", l.ID)
		}
	}
	if len(c.Towers) == 0 {
		return errors.New("config: no towers configured")
	}
	for _, t := range c.Towers {
		if t.Cost <= 0 {
			return fmt.Errorf("config: tower %q: cost must be positive", t.ID)
		}
	}
	if c.Waves.Interval <= 0 {
		return errors.New("config: waves.interval must be positive")
	}
	if c.HUD.MessageSeconds <= 0 {
		return errors.New("config: hud.message_seconds must be positive")
	}
	return nil
}

// Level returns the level with the given id.
func (c Config) Level(id string) (LevelConfig, bool) {
	for _, l := range c.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return LevelConfig{}, false
}
