package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/osse101/AssignmentSync_Go/internal/bootstrap"
	"github.com/osse101/AssignmentSync_Go/internal/config"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	EnvFile string
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats
var ValidFormats = []string{formatText, formatJSON}

// NewRootCommand creates the assignsync command tree
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "assignsync",
		Short: "Sync Canvas and Google Calendar assignments into Notion",
		Long: `assignsync reads assignments from Canvas and Google Calendar and
creates or updates one Notion database row per assignment. Runs are
idempotent and adapt to whatever properties the database has.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "read settings from this .env file (default ./.env when present)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", formatText, "output format (json|text)")

	cmd.AddCommand(NewSyncCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}

// loadConfig reads the configuration and installs the logger. The closer
// flushes the log file.
func (o *RootOptions) loadConfig() (*config.Config, io.Closer, error) {
	cfg, err := config.Load(o.EnvFile)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, ErrMsgLoadConfig, err)
	}
	closer := bootstrap.SetupLogger(cfg)
	if warnings, err := config.ValidateEnvWithWarnings(); err == nil {
		for _, w := range warnings {
			slog.Warn(LogMsgConfigWarning, "warning", w)
		}
	}
	return cfg, closer, nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}
