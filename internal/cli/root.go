// Package cli implements the optifactory command-line interface.
//
// This package provides commands for synthesizing balancer networks from
// flow lists or TOML manifests, rendering them as DOT, SVG, PNG, or JSON,
// and managing the local render cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - design: Synthesize a balancer network and write it in one or more formats
//   - cache: Manage the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/coder0xff/optifactory/pkg/buildinfo"
)

// Execute runs the optifactory CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "optifactory",
		Short:        "Optifactory designs balancer networks from splitters and mergers",
		Long:         `Optifactory synthesizes minimal balancer networks: given input and output flow rates that sum equally, it designs the network of binary/ternary splitter and merger devices that redistributes the inputs into exactly the requested outputs, and renders it as a labeled directed graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDesignCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
