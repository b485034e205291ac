// Package main is the entry point for the remap CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Gate88/adventofcode2023/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "remap",
		Short:         "Translate values through a chain of range tables",
		Long:          `remap reads an almanac of named range tables and walks values or value intervals through the chain of tables, from the start stage to the terminal stage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(solveCmd())
	cmd.AddCommand(chainCmd())
	cmd.AddCommand(convertCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from a .env file and environment variables.
func loadConfig(envFile string) (config.Config, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "load config")
	}

	return cfg, nil
}
