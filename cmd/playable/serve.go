package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adforge/playable/internal/platform/tui"
	"github.com/adforge/playable/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagTemplate    string
	flagServeConfig string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH preview server",
	Long: `Start an SSH server that lets reviewers preview a playable remotely.

Each SSH connection gets its own isolated session of the selected template.
Captures and scores persist in the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.playable/host_key

Examples:
  playable serve --template catcher
  playable serve --template match3 --ssh :2222
  playable serve --template racer --host-key ./my_host_key

Reviewers connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagTemplate, "template", "", "Template to preview (required)")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom config YAML")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagTemplate == "" || !registry.Exists(flagTemplate) {
		fmt.Fprintln(os.Stderr, "Error: --template is required and must name a registered template.")
		fmt.Fprintln(os.Stderr, "Run 'playable list' to see available templates.")
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		TemplateID:  flagTemplate,
		ConfigPath:  flagServeConfig,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting playable SSH server on %s (template %s)\n", cfg.Address, cfg.TemplateID)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
