package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adforge/playable/internal/registry"
	"github.com/adforge/playable/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <template>",
	Short: "Show recorded scores for a template",
	Long: `Display the top 10 recorded scores for the specified template.

Examples:
  playable scores catcher
  playable scores match3`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	templateID := args[0]

	tmpl, err := registry.Lookup(templateID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown template %q\n", templateID)
		fmt.Fprintln(os.Stderr, "Run 'playable list' to see available templates.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(templateID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scores - %s\n", tmpl.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'playable play %s' to record the first one!\n", templateID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if best, err := store.HighScore(templateID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
