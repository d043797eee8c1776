package main

import (
	"github.com/spf13/cobra"

	"github.com/osse101/AssignmentSync_Go/internal/bootstrap"
	"github.com/osse101/AssignmentSync_Go/internal/database"
)

type checkView struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Warning bool   `json:"warning,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Error   string `json:"error,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// NewVerifyCommand creates the verify command
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check credentials and ids without writing anything",
		Long: `Check the configuration, the Notion token and database, the field map
bindings, every configured source and the run history database.

Every problem is reported with a remediation hint. The command exits 1
when any blocking check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, rootOpts)
		},
	}
}

func runVerify(cmd *cobra.Command, opts *RootOptions) error {
	out := opts.formatter(cmd)

	cfg, logCloser, err := opts.loadConfig()
	if err != nil {
		return reportVerify(out, configFailure(err))
	}
	defer logCloser.Close()

	ctx := cmd.Context()
	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return reportVerify(out, configFailure(err))
	}
	defer app.Close()

	target := app.Target()
	var dbErr error
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, 1, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			dbErr = err
		} else {
			defer pool.Close()
			target.DB = pool
		}
	}

	report := bootstrap.Verify(ctx, target)
	if dbErr != nil {
		report.Checks = append(report.Checks, bootstrap.Check{
			Name: bootstrap.CheckHistory,
			Err:  dbErr,
			Hint: bootstrap.Remediation(dbErr),
		})
	}
	return reportVerify(out, report)
}

func configFailure(err error) *bootstrap.Report {
	return &bootstrap.Report{Checks: []bootstrap.Check{{
		Name: bootstrap.CheckConfig,
		Err:  err,
		Hint: bootstrap.Remediation(err),
	}}}
}

func reportVerify(out *OutputFormatter, r *bootstrap.Report) error {
	if out.JSON() {
		views := make([]checkView, 0, len(r.Checks))
		for _, c := range r.Checks {
			v := checkView{Name: c.Name, OK: c.OK(), Warning: c.Warning, Detail: c.Detail, Hint: c.Hint}
			if c.Err != nil && !c.Warning {
				v.Error = c.Err.Error()
			}
			views = append(views, v)
		}
		if err := out.WriteJSON(views); err != nil {
			return err
		}
	} else {
		printChecks(out, r)
	}

	if !r.OK() {
		return NewExitError(ExitFailure, ErrMsgVerifyFailed)
	}
	return nil
}

func printChecks(out *OutputFormatter, r *bootstrap.Report) {
	for _, c := range r.Checks {
		switch {
		case c.OK():
			out.Printf("%s %-22s %s\n", styleOK.Render("ok  "), c.Name, c.Detail)
		case c.Warning:
			out.Printf("%s %-22s %s\n", styleWarn.Render("warn"), c.Name, c.Detail)
		default:
			out.Printf("%s %-22s %v\n", styleFail.Render("FAIL"), c.Name, c.Err)
		}
		if !c.OK() && c.Hint != "" {
			out.Printf("     %s\n", styleDim.Render(c.Hint))
		}
	}
}

