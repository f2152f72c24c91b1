package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-towerdefense/internal/platform/tui"
	"github.com/vovakirdan/tui-towerdefense/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryPlain bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent runs",
	Long: `Display recently finished runs with their outcome.

By default an interactive table is shown; --plain prints text instead.
--clear deletes every recorded run.

Examples:
  towerdef history
  towerdef history --plain --limit 5
  towerdef history --clear`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to print with --plain")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print a plain text table")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open run history: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagHistoryClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Run history cleared.")
		return nil
	}

	if !flagHistoryPlain {
		width, height := terminalSize()
		return tui.RunHistory(store, width, height)
	}

	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'towerdef' to play your first level!")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %-6s  %5s  %s\n", "Date", "Player", "Level", "Diff", "Waves", "Outcome")
	fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %-6s  %5s  %s\n", "----", "------", "-----", "----", "-----", "-------")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-16s  %-10s  %-10s  %-6s  %5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Player, r.LevelID, r.Difficulty, r.Waves, r.Outcome)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	for _, id := range slices.Sorted(maps.Keys(stats)) {
		s := stats[id]
		fmt.Fprintf(out, "%s: %d runs, %d won, best %d waves\n", id, s.Runs, s.Victories, s.BestWave)
	}
	return nil
}
