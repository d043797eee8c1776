package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/AssignmentSync_Go/internal/bootstrap"
	"github.com/osse101/AssignmentSync_Go/internal/domain"
)

// NewSyncCommand creates the sync command
func NewSyncCommand(rootOpts *RootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync pass",
		Long: `Run one sync pass over every configured source.

Record failures are reported in the summary and do not fail the command.
The command exits 1 only when the run is aborted, e.g. on a rejected token
or a missing database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, rootOpts, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "look up rows but write nothing")

	return cmd
}

func runSync(cmd *cobra.Command, opts *RootOptions, dryRun bool) error {
	cfg, logCloser, err := opts.loadConfig()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{DryRun: dryRun, WithHistory: true, WithNotifier: true})
	if err != nil {
		return WrapExitError(ExitCommandError, ErrMsgWire, err)
	}
	defer app.Close()

	summary, runErr := app.Driver.Run(ctx)

	out := opts.formatter(cmd)
	if out.JSON() {
		if err := out.WriteJSON(summary); err != nil {
			return err
		}
	} else {
		printSummary(out, summary, runErr)
	}

	if runErr != nil {
		return WrapExitError(ExitFailure, ErrMsgSyncAborted, runErr)
	}
	return nil
}

func printSummary(out *OutputFormatter, s *domain.RunSummary, runErr error) {
	mode := ""
	if s.DryRun {
		mode = styleWarn.Render(" (dry run)")
	}
	out.Printf("%s %s%s\n", styleTitle.Render("Run"), s.RunID, mode)
	out.Printf("  sources:   %s\n", strings.Join(s.Sources, ", "))
	out.Printf("  duration:  %s\n", s.Duration().Round(time.Millisecond))
	out.Printf("  processed: %d  created: %d  updated: %d  skipped: %d  failed: %d\n",
		s.Processed, s.Created, s.Updated, s.Skipped, s.Failed)

	if len(s.Failures) > 0 {
		out.Println(styleWarn.Render("  failures:"))
		for _, f := range s.Failures {
			out.Printf("    %s/%s %q: %s\n", f.Source, f.SourceID, f.Title, f.Error)
		}
	}
	if !s.Succeeded() {
		out.Printf("  %s %s\n", styleFail.Render("aborted:"), s.Err)
		if hint := bootstrap.Remediation(runErr); hint != "" {
			out.Printf("  %s\n", styleDim.Render(hint))
		}
	}
}
