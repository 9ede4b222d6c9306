// Package executor runs the launcher of every generated language directory,
// one at a time, and classifies each entry as passed, failed or skipped.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/polyglot-hello/polyglot/internal/common/apperrors"
	"github.com/polyglot-hello/polyglot/internal/common/uuid"
	"github.com/polyglot-hello/polyglot/internal/config"
)

// waitDelay bounds how long Wait keeps reading output after a timed-out
// launcher was killed while its children still hold the pipes.
const waitDelay = 2 * time.Second

// Options configures an Executor.
type Options struct {
	Root     string        // languages directory
	Launcher string        // launcher file name inside each entry
	Filters  []string      // exact slugs to run; empty runs everything
	Verbose  bool          // stream launcher output to the terminal
	Timeout  time.Duration // per-launcher limit, zero for none
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.ConfigParam) (Options, error) {
	timeout, err := cfg.GetTimeout()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Root:     cfg.LanguagesDir,
		Launcher: cfg.Launcher.FileName,
		Timeout:  timeout,
	}, nil
}

// Executor drives a batch run.
type Executor struct {
	opts   Options
	term   *IOWriters
	files  *IOWriters // term when both streams are files, for verbose runs
	logger zerolog.Logger
}

// New returns an Executor printing to term. Both streams of term must be
// set. In verbose mode launchers write straight to term when both streams
// are files, so they see the real terminal; otherwise their output is
// copied there as well as captured.
func New(opts Options, term *IOWriters, logger zerolog.Logger) *Executor {
	if term == nil {
		term = &IOWriters{Out: io.Discard, Err: io.Discard}
	}
	x := &Executor{opts: opts, term: syncWriters(term), logger: logger}
	outFile, outOK := term.Out.(*os.File)
	errFile, errOK := term.Err.(*os.File)
	if outOK && errOK {
		x.files = &IOWriters{Out: outFile, Err: errFile}
	}
	return x
}

// Entries lists the entry directories to run, in directory order, narrowed
// to the configured filters.
func (x *Executor) Entries() ([]string, apperrors.Error) {
	dirents, err := os.ReadDir(x.opts.Root)
	if err != nil {
		return nil, ErrRootUnreadable.Msg(fmt.Sprintf("cannot list %s", x.opts.Root)).Err(err)
	}

	var all []string
	for _, d := range dirents {
		if !d.IsDir() {
			if d.Type()&os.ModeSymlink == 0 {
				continue
			}
			fi, err := os.Stat(filepath.Join(x.opts.Root, d.Name()))
			if err != nil || !fi.IsDir() {
				continue
			}
		}
		all = append(all, d.Name())
	}
	if len(x.opts.Filters) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(x.opts.Filters))
	for _, f := range x.opts.Filters {
		wanted[f] = true
	}
	var entries []string
	for _, name := range all {
		if wanted[name] {
			entries = append(entries, name)
			delete(wanted, name)
		}
	}
	for _, f := range x.opts.Filters {
		if wanted[f] {
			x.logger.Warn().Str("slug", f).Msg("no such entry")
		}
	}
	return entries, nil
}

// Run processes every entry sequentially and prints a line per entry
// followed by the summary. The returned summary is non-nil whenever the
// languages root could be listed, even if the run was interrupted.
func (x *Executor) Run(ctx context.Context) (*Summary, apperrors.Error) {
	entries, err := x.Entries()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:     uuid.NewRunID(),
		Root:      x.opts.Root,
		StartedAt: time.Now(),
	}
	log := x.logger.With().Str("run_id", summary.RunID).Logger()
	log.Debug().Int("entries", len(entries)).Msg("starting batch")

	for _, slug := range entries {
		if err := ctx.Err(); err != nil {
			return summary, ErrInterrupted.Err(err)
		}
		o := x.runEntry(ctx, slug, log)
		summary.add(o)
		printOutcome(x.term.Out, o)
	}

	PrintSummary(x.term.Out, summary)
	log.Debug().Int("passed", len(summary.Passed)).Int("failed", len(summary.Failed)).
		Int("skipped", len(summary.Skipped)).Msg("batch finished")
	return summary, nil
}

func (x *Executor) runEntry(ctx context.Context, slug string, log zerolog.Logger) Outcome {
	log = log.With().Str("slug", slug).Logger()
	dir := filepath.Join(x.opts.Root, slug)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	launcher := filepath.Join(dir, x.opts.Launcher)

	if reason := checkLauncher(launcher); reason != "" {
		log.Debug().Str("reason", reason).Msg("skipping entry")
		return Outcome{Slug: slug, Status: StatusSkip, Reason: reason}
	}

	runCtx := ctx
	if x.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, x.opts.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	captured := &IOWriters{Out: &stdout, Err: &stderr}
	writers := []*IOWriters{captured}
	if x.opts.Verbose {
		fmt.Fprintf(x.term.Out, "==> %s\n", slug)
		writers = append(writers, x.term)
	}

	cmd := exec.CommandContext(runCtx, launcher)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	if x.opts.Verbose && x.files != nil {
		// inherited terminal, nothing is captured
		cmd.Stdout = x.files.Out
		cmd.Stderr = x.files.Err
	} else {
		cmd.Stdout = newStreamWriter(stdoutStream, writers...)
		cmd.Stderr = newStreamWriter(stderrStream, writers...)
	}

	start := time.Now()
	runErr := cmd.Run()
	o := Outcome{Slug: slug, Duration: time.Since(start)}
	log.Debug().Dur("duration", o.Duration).Msg("launcher finished")

	if runErr == nil {
		o.Status = StatusPass
		o.Output = displayOutput(stdout.String(), stderr.String())
		return o
	}

	o.Status = StatusFail
	o.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		o.ExitCode = exitErr.ExitCode()
	}
	switch {
	case x.opts.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded):
		o.Hint = fmt.Sprintf("timed out after %s", x.opts.Timeout)
	case exitErr == nil:
		o.Hint = runErr.Error()
	default:
		o.Hint = failureHint(stdout.String(), stderr.String())
	}
	log.Debug().Int("exit_code", o.ExitCode).Str("hint", o.Hint).Msg("entry failed")
	return o
}
