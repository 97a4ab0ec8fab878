package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best and most recent runs with overall stats.

Examples:
  flapper scores
  flapper scores --limit 20
  flapper scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show per list")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (the high score is kept)")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	err = printScores(store)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store) error {
	if flagClear {
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	best, err := store.LoadHighScore()
	if err != nil {
		return err
	}
	top, err := store.TopScores(flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Flapper")
	fmt.Println()

	if len(top) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flapper play' to set the first high score!")
		return nil
	}

	printRuns(top)

	recent, err := store.RecentScores(flagLimit)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	printRuns(recent)

	stats, err := store.GetStats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d\n", best)
	fmt.Printf("Runs: %d  |  Average: %.1f  |  Total: %d\n", stats.Runs, stats.AvgScore, stats.TotalScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printRuns(runs []storage.ScoreEntry) {
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range runs {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}
}
