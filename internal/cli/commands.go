// Package cli builds the scaffold and run_all commands and maps their errors
// to process exit codes.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/polyglot-hello/polyglot/internal/common/apperrors"
	"github.com/polyglot-hello/polyglot/internal/common/logtrace"
	"github.com/polyglot-hello/polyglot/internal/config"
)

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// commonOptions are the flags every command accepts.
type commonOptions struct {
	configFile string
	logLevel   string
}

func (o *commonOptions) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.configFile, "config", "", "", "Path to configuration file (default ./"+config.DefaultConfigFile+" if present)")
	cmd.PersistentFlags().StringVarP(&o.logLevel, "log-level", "", "", "Log level: debug, info, warn or error")
}

// load reads the configuration and initialises logging on the command's
// stderr.
func (o *commonOptions) load(cmd *cobra.Command) (*config.ConfigParam, apperrors.Error) {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		return nil, ErrConfig.Err(err)
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	logtrace.InitLogger(cfg.LogLevel, cmd.ErrOrStderr())
	log.Debug().Str("languages_dir", cfg.LanguagesDir).Msg("configuration loaded")
	return cfg, nil
}

// Execute runs cmd with the process arguments and exits with the code its
// outcome maps to. SIGINT and SIGTERM cancel the command's context.
func Execute(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, cmd, os.Args[1:])
	stop()
	os.Exit(code)
}

// Run executes cmd with args and returns the process exit code. Errors that
// are not application errors come from argument or flag parsing and are
// reported as usage errors. A panic inside the command is reported as an
// internal error.
func Run(ctx context.Context, cmd *cobra.Command, args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			errorLabel.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", ErrInternal.Error(), r)
			code = ErrInternal.ExitCode()
		}
	}()

	cmd.SilenceErrors = true // Prevent Cobra from printing the error
	cmd.SilenceUsage = true  // Prevent Cobra from printing usage on error
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var appErr apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = ErrUsage.Err(err)
	}
	if !errors.Is(appErr, ErrAlreadyHandled) {
		errorLabel.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", appErr.ErrorAll())
		if errors.Is(appErr, ErrUsage) {
			cmd.PrintErrf("Run '%s --help' for usage.\n", cmd.CommandPath())
		}
	}
	return appErr.ExitCode()
}
