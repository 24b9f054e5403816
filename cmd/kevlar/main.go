package main

import (
	"errors"
	"fmt"
	"os"

	"kevlar/internal/cli"
	"kevlar/internal/cli/commands"
	"kevlar/internal/harness"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	harness.Version = version

	// Create root command
	rootCmd := &cobra.Command{
		Use:           "kevlar",
		Short:         "Light-weight test harness",
		Long:          `Kevlar runs a test inside a uniquely named workspace, logs to that workspace and aggregates every reported event into a single PASSED, KNOWNFAIL, FAILED or SKIPPED result.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies and register them
	cmds := commands.NewCommands(&flags)
	cmds.Register(rootCmd, &flags)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		var statusErr *commands.StatusError
		if !errors.As(err, &statusErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
