package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagScoresClass  string
	flagScoresLimit  int
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs, optionally for one class,
followed by per-class statistics.

Examples:
  tanks scores
  tanks scores --class samurai
  tanks scores --recent --limit 20`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresClass, "class", "", "Only show runs of this class")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
}

func runScores(_ *cobra.Command, _ []string) {
	variant := ""
	if flagScoresClass != "" {
		class, err := tanks.ParseClass(flagScoresClass)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		variant = class.String()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runs []storage.RunRecord
	title := "Best runs"
	if flagScoresRecent {
		title = "Recent runs"
		runs, err = store.RecentRuns(flagScoresLimit)
	} else {
		runs, err = store.TopRuns(tanks.GameID, variant, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	if variant != "" && !flagScoresRecent {
		title += " - " + variant
	}
	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tanks play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-8s  %-8s  %-6s  %-12s  %s\n", "Rank", "Score", "Class", "Result", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-8s  %-8s  %-6s  %-12s  %s\n", "----", "-----", "-----", "------", "----", "------", "----")
	for i, r := range runs {
		secs := int(r.Duration.Seconds())
		fmt.Printf("  %-4d  %-7d  %-8s  %-8s  %-6s  %-12s  %s\n",
			i+1, r.Score, r.Variant, r.Outcome, fmt.Sprintf("%d:%02d", secs/60, secs%60),
			r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.VariantStats(tanks.GameID)
	if err != nil || len(stats) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-8s  %-5s  %-8s  %-6s  %s\n", "Class", "Runs", "Win rate", "Best", "Average")
	fmt.Printf("  %-8s  %-5s  %-8s  %-6s  %s\n", "-----", "----", "--------", "----", "-------")
	for _, s := range stats {
		fmt.Printf("  %-8s  %-5d  %-8s  %-6d  %.0f\n",
			s.Variant, s.Runs, fmt.Sprintf("%.0f%%", s.WinRate()*100), s.HighScore, s.AvgScore)
	}
}
