package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-floating/internal/debug"
)

const version = "0.1.0"

var debugPath string

var rootCmd = &cobra.Command{
	Use:   "floatctl",
	Short: "Replay focus scenarios against floating surfaces",
	Long: `floatctl - drive the floating focus engine from YAML scenarios.

A scenario declares a document, the floating surfaces anchored in it and a
list of user steps. floatctl replays the steps and prints where focus landed
after each one, checking any expectations along the way.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugPath == "" {
			return nil
		}
		return debug.Init(debugPath)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		debug.Close()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&debugPath, "debug", "", "write a debug log to this file")
	rootCmd.AddCommand(runCmd, checkCmd, versionCmd)
}
