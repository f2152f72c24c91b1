package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-towerdefense/internal/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List configured levels",
	Long:  `Shows the levels of the active config in play order.`,
	RunE:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	maxIDLen := 2 // "ID" header
	for _, l := range cfg.Levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Levels:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %-12s  %5s  %5s  %9s  %9s\n", maxIDLen, "ID", "Name", "Waves", "Lives", "Resources", "Platforms")
	fmt.Fprintf(out, "  %-*s  %-12s  %5s  %5s  %9s  %9s\n", maxIDLen, "--", "----", "-----", "-----", "---------", "---------")
	for _, l := range cfg.Levels {
		fmt.Fprintf(out, "  %-*s  %-12s  %5d  %5d  %9d  %9d\n",
			maxIDLen, l.ID, l.Name, l.WavesToWin, l.StartingLives, l.StartingResources, l.Platforms)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'towerdef play <id>' to start a level.")
	return nil
}
