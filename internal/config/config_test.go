package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-towerdefense/internal/selection"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	var embedded Config
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &embedded))
	assert.Equal(t, Default(), embedded)
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
levels:
  - id: tiny
    name: Tiny
    waves_to_win: 2
    starting_lives: 3
    starting_resources: 60
    platforms: 2
    columns: 2
hud:
  message_seconds: 1.5
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Len(t, cfg.Levels, 1)
	assert.Equal(t, "tiny", cfg.Levels[0].ID)
	assert.Equal(t, 1500*time.Millisecond, cfg.HUD.MessageDuration())
	// Keys not present in the file keep their defaults.
	assert.Equal(t, Default().Towers, cfg.Towers)
	assert.Equal(t, "6", cfg.HUD.DifficultyPalette.Selected)
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "towerdef.yaml"), []byte("waves:\n  interval: 4\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Waves.Interval)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no levels", "levels: []\n"},
		{"zero cost tower", "towers:\n  - id: free\n    cost: 0\n"},
		{"zero waves", "levels:\n  - id: x\n    waves_to_win: 0\n    platforms: 1\n"},
		{"bad yaml", "levels: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("levels: []\n"))
	assert.ErrorIs(t, err, ErrNoLevels)
}

func TestDifficultyPresetsFor(t *testing.T) {
	p := Default().Difficulty
	assert.Equal(t, 1.5, p.For(selection.Easy).LivesMultiplier)
	assert.Equal(t, 1.0, p.For(selection.Normal).EnemyMultiplier)
	assert.Equal(t, 1.5, p.For(selection.Hard).EnemyMultiplier)
	assert.Equal(t, p.Normal, p.For(selection.Difficulty(9)))
}

func TestLevelLookup(t *testing.T) {
	cfg := Default()
	l, ok := cfg.Level("canyon")
	require.True(t, ok)
	assert.Equal(t, 8, l.WavesToWin)

	_, ok = cfg.Level("moon")
	assert.False(t, ok)
}
