package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/polyglot-hello/polyglot/internal/common/apperrors"
	"github.com/polyglot-hello/polyglot/internal/config"
	"github.com/polyglot-hello/polyglot/internal/executor"
)

type runAllOptions struct {
	commonOptions
	verbose bool
	report  string
	timeout string
}

// NewRunAllCmd returns the root command of the run_all tool.
func NewRunAllCmd() *cobra.Command {
	opts := &runAllOptions{}
	cmd := &cobra.Command{
		Use:   "run_all [flags] [name ...]",
		Short: "Run the launcher of every generated language directory",
		Long: `Run_all invokes the launcher script of each language directory in turn
and reports which ones passed, failed or were skipped. With names, only the
directories with exactly those names are run. The exit status is zero only
when no launcher failed.

Examples:
  # Run everything
  run_all

  # Run two languages and stream their output
  run_all -v python go

  # Save the results
  run_all --report results.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runAll(cmd, args, opts); err != nil {
				return err
			}
			return nil
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Stream launcher output to the terminal")
	cmd.Flags().StringVarP(&opts.report, "report", "", "", "Write a YAML (.yaml, .yml) or JSON report to this file")
	cmd.Flags().StringVarP(&opts.timeout, "timeout", "", "", "Per launcher timeout, e.g. 90s or 10m (default none)")
	return cmd
}

func runAll(cmd *cobra.Command, names []string, opts *runAllOptions) apperrors.Error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	if opts.timeout != "" {
		if _, perr := config.ParseDuration(opts.timeout); perr != nil {
			return ErrUsage.Msg("invalid --timeout").Err(perr)
		}
		cfg.Executor.Timeout = opts.timeout
	}

	xopts, oerr := executor.OptionsFromConfig(cfg)
	if oerr != nil {
		return ErrConfig.Err(oerr)
	}
	xopts.Filters = names
	xopts.Verbose = opts.verbose

	x := executor.New(xopts, &executor.IOWriters{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}, log.Logger)
	summary, err := x.Run(cmd.Context())
	if summary != nil && opts.report != "" {
		rerr := executor.WriteReport(opts.report, summary)
		if rerr != nil && err == nil {
			return rerr
		}
		if rerr == nil {
			log.Debug().Str("report", opts.report).Msg("report written")
		}
	}
	if err != nil {
		return err
	}
	if !summary.OK() {
		return ErrEntriesFailed
	}
	return nil
}
