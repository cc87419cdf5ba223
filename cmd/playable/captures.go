package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/adforge/playable/internal/storage"
)

var capturesCmd = &cobra.Command{
	Use:   "captures",
	Short: "Show persisted first-party data",
	Long: `Display every first-party-data capture in the database, newest first.

Each entry is keyed by template and placement; re-captures replace the
previous blob for the same key.

Examples:
  playable captures
  playable captures --db ./playable.db`,
	Run: runCaptures,
}

func runCaptures(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.AllCaptures()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving captures: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No captures recorded yet.")
		return
	}

	fmt.Printf("Captures (%d)\n", len(entries))
	fmt.Println()
	for _, e := range entries {
		fmt.Printf("  %s / %s  (%s)\n", e.Template, e.Placement, e.CreatedAt.Format("2006-01-02 15:04"))

		fields := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			fields = append(fields, k)
		}
		sort.Strings(fields)
		for _, k := range fields {
			fmt.Printf("    %-8s %s\n", k+":", e.Fields[k])
		}
		fmt.Println()
	}
}
