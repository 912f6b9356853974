package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minigames/internal/registry"
	"github.com/vovakirdan/tui-minigames/internal/storage"
)

var (
	flagCSV   bool
	flagClear bool
	flagTop   int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top scores for the specified game and a summary of every
recorded run.

Examples:
  minigames scores flappy
  minigames scores ants --top 20
  minigames scores flappy --csv > flappy.csv
  minigames scores ants --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagCSV, "csv", false, "Write every run as CSV to stdout")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs and the high score")
	scoresCmd.Flags().IntVar(&flagTop, "top", 10, "Number of top scores to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'minigames list' to see available games.")
		os.Exit(1)
	}
	title := registry.Title(gameID)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all scores for %s.\n", title)
		return

	case flagCSV:
		all, err := store.AllScores(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
		if err := storage.ExportCSV(os.Stdout, all); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(gameID, flagTop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'minigames play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if st, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Played: %d  Last played: %s\n",
			st.HighScore, st.GamesCount, st.LastPlayed.Format("2006-01-02 15:04"))
	}

	if all, err := store.AllScores(gameID); err == nil {
		sm := storage.Summarize(all)
		fmt.Printf("Runs: %d  mean %.1f  sd %.1f  median %.0f  p90 %.0f\n",
			sm.Count, sm.Mean, sm.StdDev, sm.Median, sm.P90)
	}
}
