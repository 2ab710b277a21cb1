// This is the main entrypoint for the danwatch watcher.
// It handles flag parsing, command wiring and process exit.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main wires the root command and its flags, then runs it.
func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "danwatch",
		Short: "Watch a Bilibili live room feed from the terminal",
		Long: `danwatch connects to a Bilibili live room and prints its real-time
feed: chat messages, gifts, super chats, guard purchases and room
lifecycle changes.

The watcher keeps a persistent socket open, sends keepalives, and
reconnects forever when the connection drops. An optional local admin
server exposes health, metrics and feed state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	rootCmd.Flags().Uint64VarP(&opts.room, "room", "r", 0, "Room number to watch")
	rootCmd.Flags().Uint64Var(&opts.uid, "uid", 0, "Viewer uid, 0 for anonymous")
	rootCmd.Flags().StringVar(&opts.sessData, "sessdata", "", "SESSDATA session cookie")
	rootCmd.Flags().IntVar(&opts.adminPort, "admin-port", 0, "Local admin server port, 0 to disable")
	rootCmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
