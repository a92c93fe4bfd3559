package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-floating/internal/scenario"
)

var errExpectations = errors.New("expectations failed")

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>...",
	Short: "Replay scenarios and print the focus trace",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			s, err := scenario.Load(path)
			if err != nil {
				return err
			}
			report, err := scenario.Run(s)
			if report != nil {
				if rerr := scenario.Render(cmd.OutOrStdout(), report); rerr != nil {
					return rerr
				}
			}
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			failed += report.Failures()
		}
		if failed > 0 {
			return fmt.Errorf("%w: %d", errExpectations, failed)
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <scenario.yaml>...",
	Short: "Validate scenarios without running them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			s, err := scenario.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d surfaces, %d steps)\n", path, len(s.Surfaces), len(s.Steps))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "floatctl version %s\n", version)
	},
}
