package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-towerdefense/internal/app"
	"github.com/vovakirdan/tui-towerdefense/internal/platform/tui"
	"github.com/vovakirdan/tui-towerdefense/internal/session"
	"github.com/vovakirdan/tui-towerdefense/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the game",
	Long: `Open the main menu, or start a level directly when its ID is given.

Controls:
  Arrows/WASD  - Move between platforms and menu entries
  Enter/Space  - Select (on a platform: open the tower shop)
  Esc          - Back / pause
  P            - Pause
  1 / 2 / 3    - Game speed 0.2x / 1x / 2x
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  towerdef play
  towerdef play canyon
  towerdef play --difficulty easy
  towerdef play --config ./my-levels.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, difficulty, err := loadGameConfig(flagDifficulty)
	if err != nil {
		return err
	}

	var levelID string
	if len(args) > 0 {
		levelID = args[0]
		if _, ok := cfg.Level(levelID); !ok {
			return fmt.Errorf("unknown level %q (run 'towerdef levels')", levelID)
		}
	}

	logger, closer, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := session.New(cfg,
		session.WithLogger(logger),
		session.WithDifficulty(difficulty),
	)

	width, height := terminalSize()
	opts := tui.Options{FPS: flagFPS, Width: width, Height: height}

	// Run history is best-effort: the game works without it.
	var recorder app.RunRecorder
	store, err := storage.Open(flagDBPath)
	if err != nil {
		ctx.Log.Warn("run history disabled", "err", err)
	} else {
		defer store.Close()
		recorder = store
		opts.History = store
	}

	a := app.New(ctx, recorder)
	if levelID != "" {
		return tui.RunLevel(a, levelID, opts)
	}
	return tui.Run(a, opts)
}
