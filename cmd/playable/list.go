package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adforge/playable/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available templates",
	Long:  `Shows a list of all registered playable templates.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	templates := registry.List()

	if len(templates) == 0 {
		fmt.Println("No templates available.")
		return
	}

	fmt.Println("Available templates:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, t := range templates {
		if len(t.ID) > maxIDLen {
			maxIDLen = len(t.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, t := range templates {
		fmt.Printf("  %-*s  %s\n", maxIDLen, t.ID, t.Title)
	}

	fmt.Println()
	fmt.Println("Run 'playable play <id>' to start one.")
}
