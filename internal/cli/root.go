package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "whosaid",
		Short: "CLI tool for the Who Said It? session API",
		Long: `whosaid is a CLI tool for playing Who Said It? over the JSON API.

Create or join a session, then respond to prompts, guess who wrote what,
and stream session events in real time. Your player identity is saved
after create/join so later commands know which session you are in.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: WHOSAID_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Saved identity path (env: WHOSAID_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newRoundCmd())
	rootCmd.AddCommand(newRespondCmd())
	rootCmd.AddCommand(newGuessCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newQRCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// requireIdentity loads the saved identity, failing with a hint if absent
func requireIdentity() (*Identity, error) {
	id, err := cfg.LoadIdentity()
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, fmt.Errorf("no saved session; run 'whosaid session create' or 'whosaid session join' first")
	}
	return id, nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
