package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/osse101/AssignmentSync_Go/internal/bootstrap"
	"github.com/osse101/AssignmentSync_Go/internal/repository"
	"github.com/osse101/AssignmentSync_Go/internal/runlog"
)

type runsOptions struct {
	limit  int
	failed bool
	since  time.Duration
}

// NewRunsCommand creates the runs command
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &runsOptions{}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded sync runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().IntVar(&opts.limit, "limit", runlog.DefaultListLimit, "maximum number of runs to show")
	cmd.Flags().BoolVar(&opts.failed, "failed", false, "only runs that aborted or had record failures")
	cmd.Flags().DurationVar(&opts.since, "since", 0, "only runs started within this duration, e.g. 24h")

	return cmd
}

func (o *runsOptions) filter(now time.Time) repository.RunLogFilter {
	f := repository.RunLogFilter{Limit: o.limit, OnlyFailed: o.failed}
	if o.since > 0 {
		since := now.Add(-o.since)
		f.Since = &since
	}
	return f
}

func runRuns(cmd *cobra.Command, rootOpts *RootOptions, opts *runsOptions) error {
	if opts.limit <= 0 {
		return NewExitError(ExitCommandError, ErrMsgBadLimit)
	}

	cfg, logCloser, err := rootOpts.loadConfig()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx := cmd.Context()
	pool, history, err := bootstrap.OpenHistory(ctx, cfg)
	if err != nil {
		return WrapExitError(ExitFailure, ErrMsgListRuns, err)
	}
	if history == nil {
		return NewExitError(ExitCommandError, ErrMsgNoHistory)
	}
	defer pool.Close()

	entries, err := history.ListRuns(ctx, opts.filter(time.Now()))
	if err != nil {
		return WrapExitError(ExitFailure, ErrMsgListRuns, err)
	}

	out := rootOpts.formatter(cmd)
	if out.JSON() {
		if entries == nil {
			entries = []repository.RunLogEntry{}
		}
		return out.WriteJSON(entries)
	}
	printRuns(out, entries)
	return nil
}

func printRuns(out *OutputFormatter, entries []repository.RunLogEntry) {
	if len(entries) == 0 {
		out.Println(styleDim.Render("no runs recorded"))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("STARTED", "RUN", "SOURCES", "CREATED", "UPDATED", "SKIPPED", "FAILED", "RESULT")
	for _, e := range entries {
		t.Row(
			e.StartedAt.Local().Format(time.DateTime),
			shortID(e.RunID),
			strings.Join(e.Sources, ","),
			strconv.Itoa(e.Created),
			strconv.Itoa(e.Updated),
			strconv.Itoa(e.Skipped),
			strconv.Itoa(e.Failed),
			runResult(e),
		)
	}
	out.Println(t.Render())
}

func runResult(e repository.RunLogEntry) string {
	switch {
	case e.Error != "":
		return fmt.Sprintf("aborted: %s", e.Error)
	case e.Failed > 0:
		return "partial"
	case e.DryRun:
		return "dry run"
	default:
		return "ok"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
