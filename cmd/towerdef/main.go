// towerdef is a tower defense game for the terminal.
//
// Usage:
//
//	towerdef                 - Open the main menu
//	towerdef play [level]    - Open the menu, or jump straight into a level
//	towerdef levels          - List configured levels
//	towerdef history         - Show recent runs
//	towerdef serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Frame rate (default: 30)
//	--db <path>      - Run history database (default: ~/.towerdef/runs.db)
//	--config <path>  - Game config YAML
//	--log <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "towerdef",
	Short: "Terminal tower defense",
	Long: `towerdef is a tower defense game played in the terminal.

Build towers on platforms, survive every wave, and pick how hard the
enemies hit. Runs are recorded in a local SQLite database.

Available commands:
  play     - Start the game (default)
  levels   - List configured levels
  history  - View recent runs
  serve    - Start SSH server for remote play

Examples:
  towerdef
  towerdef play canyon --difficulty hard
  towerdef history
  towerdef serve --ssh :2222`,
	RunE: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.towerdef/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
