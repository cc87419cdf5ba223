package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/adforge/playable/internal/core"
	"github.com/adforge/playable/internal/editor"
	"github.com/adforge/playable/internal/platform/tui"
	"github.com/adforge/playable/internal/registry"
	"github.com/adforge/playable/internal/runtime"
	"github.com/adforge/playable/internal/storage"
)

var (
	flagConfig     string
	flagEditorAddr string
)

var playCmd = &cobra.Command{
	Use:   "play <template>",
	Short: "Run a playable template",
	Long: `Start the specified playable template.

Controls:
  A/D, Arrows - Move / steer / cursor
  Enter/Space - Confirm, select, swap
  Esc         - Skip data capture
  R           - Play again (end card)
  Q/Ctrl+C    - Quit

With --editor, a websocket endpoint accepts live configuration patches
while the playable runs and mirrors scene changes back.

Examples:
  playable play catcher
  playable play match3 --config ./my-match3.yaml
  playable play racer --editor :8089
  playable play slider --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagEditorAddr, "editor", "", "Editor websocket listen address (e.g. :8089)")
}

func runPlay(cmd *cobra.Command, args []string) {
	templateID := args[0]

	if !registry.Exists(templateID) {
		fmt.Fprintf(os.Stderr, "Error: unknown template %q\n", templateID)
		fmt.Fprintln(os.Stderr, "Run 'playable list' to see available templates.")
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without persistence
		store = nil
	}

	rt, err := runtime.New(runtime.Options{
		TemplateID: templateID,
		ConfigPath: flagConfig,
		DB:         store,
		Runtime: core.RuntimeConfig{
			CanvasW:  width,
			CanvasH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error assembling runtime: %v\n", err)
		os.Exit(1)
	}

	var editorSrv *editor.Server
	if flagEditorAddr != "" {
		editorSrv = editor.NewServer(flagEditorAddr, templateID, nil)
		go func() {
			if serveErr := editorSrv.ListenAndServe(); serveErr != nil {
				fmt.Fprintf(os.Stderr, "Editor endpoint error: %v\n", serveErr)
			}
		}()
	}

	runErr := tui.Run(rt, editorSrv)

	if editorSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		editorSrv.Shutdown(ctx)
		cancel()
	}
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running playable: %v\n", runErr)
		os.Exit(1)
	}
}
