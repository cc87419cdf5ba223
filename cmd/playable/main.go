// playable runs HTML5-style playable-ad mini-games in the terminal.
//
// Usage:
//
//	playable list                - List available templates
//	playable play <template>     - Run a playable
//	playable serve               - Start SSH preview server
//	playable scores <template>   - Show recorded scores
//	playable captures            - Show persisted first-party data
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.playable/playable.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import templates to register them
	_ "github.com/adforge/playable/internal/games/catcher"
	_ "github.com/adforge/playable/internal/games/match3"
	_ "github.com/adforge/playable/internal/games/racer"
	_ "github.com/adforge/playable/internal/games/slider"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "playable",
	Short: "Playable - run playable-ad mini-games in your terminal",
	Long: `Playable is a terminal runtime for playable-ad mini-games: small
self-contained game templates driven by a live-editable configuration.

Available commands:
  list      - Show all available templates
  play      - Run a template directly
  serve     - Start SSH server for remote previews
  scores    - View recorded scores
  captures  - View persisted first-party data

Examples:
  playable list
  playable play catcher
  playable play match3 --config ./my-match3.yaml
  playable play racer --editor :8089
  playable serve --template catcher --ssh :2222
  playable scores catcher`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.playable/playable.db", "Path to database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(capturesCmd)
}
