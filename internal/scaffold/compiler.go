// Package scaffold compiles the language manifest into one directory per
// entry holding the source file, the build recipe, the launcher script and
// the build context ignore list. Runs are idempotent: artifacts are only
// written when their content changes, except for the source file, which is
// always rewritten with identical bytes.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/polyglot-hello/polyglot/internal/common/apperrors"
	"github.com/polyglot-hello/polyglot/internal/config"
	"github.com/polyglot-hello/polyglot/internal/manifest"
)

// Options configures a Compiler.
type Options struct {
	Root     string // languages directory, one subdirectory per slug
	Force    bool   // rewrite every artifact even when unchanged
	Recipe   config.RecipeConfig
	Launcher config.LauncherConfig
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.ConfigParam, force bool) Options {
	return Options{
		Root:     cfg.LanguagesDir,
		Force:    force,
		Recipe:   cfg.Recipe,
		Launcher: cfg.Launcher,
	}
}

// Result summarises one compile pass.
type Result struct {
	Rows           int      // data rows seen, malformed ones included
	Scaffolded     []string // slugs in manifest order
	Skipped        int      // malformed rows
	Changed        []string // recipe, launcher and ignore-list paths written
	SourcesWritten int
}

// Compiler turns manifest entries into artifact directories.
type Compiler struct {
	opts   Options
	out    io.Writer
	logger zerolog.Logger
}

// New returns a Compiler that reports scaffolded entries on out.
func New(opts Options, out io.Writer, logger zerolog.Logger) *Compiler {
	if out == nil {
		out = io.Discard
	}
	return &Compiler{opts: opts, out: out, logger: logger}
}

// CompileFile compiles the manifest at path.
func (c *Compiler) CompileFile(ctx context.Context, path string) (*Result, apperrors.Error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrManifestUnreadable.Msg(fmt.Sprintf("cannot open manifest %s", path)).Err(err)
	}
	defer f.Close()
	return c.Compile(ctx, f)
}

// Compile processes every row of the manifest read from r, in order. A
// malformed row is reported and skipped; a write failure aborts the run and
// leaves whatever was already written in place.
func (c *Compiler) Compile(ctx context.Context, r io.Reader) (*Result, apperrors.Error) {
	fw := &fileWriter{force: c.opts.Force}
	if err := fw.mkdir(c.opts.Root); err != nil {
		return nil, err
	}

	res := &Result{}
	defer func() { res.Changed = fw.changed }()

	rd := manifest.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return res, ErrScaffold.Msg("compile interrupted").Err(err)
		}

		e, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, manifest.ErrMalformedRow) {
			res.Rows++
			res.Skipped++
			c.logger.Warn().Int("line", e.Line).Str("row", e.Raw).Str("reason", err.Error()).
				Msg("Skipping malformed line")
			continue
		}
		if err != nil {
			return res, ErrManifestUnreadable.Err(err)
		}

		res.Rows++
		manifest.ApplyFixups(e)
		sourceFile := e.SourceFileName()
		if sourceFile == "" || sourceFile == "." || sourceFile == ".." {
			res.Skipped++
			c.logger.Warn().Int("line", e.Line).Str("row", e.Raw).Str("reason", "no usable source file name").
				Msg("Skipping malformed line")
			continue
		}
		if err := c.scaffoldEntry(fw, e, sourceFile); err != nil {
			return res, err
		}
		res.SourcesWritten++
		res.Scaffolded = append(res.Scaffolded, e.Slug)
		fmt.Fprintf(c.out, "Scaffolded: %s\n", e.Slug)
	}

	c.logger.Debug().Bool("header", rd.HasHeader()).Int("rows", res.Rows).Int("scaffolded", len(res.Scaffolded)).
		Int("skipped", res.Skipped).Int("changed", len(fw.changed)).Msg("compile finished")
	return res, nil
}

func (c *Compiler) scaffoldEntry(fw *fileWriter, e *manifest.Entry, sourceFile string) apperrors.Error {
	log := c.logger.With().Str("slug", e.Slug).Int("line", e.Line).Logger()
	log.Debug().Str("source", sourceFile).Bool("fixup", manifest.HasFixup(e.Slug)).Msg("scaffolding entry")

	dir := filepath.Join(c.opts.Root, e.Slug)
	if err := fw.mkdir(dir); err != nil {
		return err
	}

	if err := fw.write(filepath.Join(dir, c.opts.Recipe.IgnoreFile), []byte(ignoreList)); err != nil {
		return err
	}

	removeCaseConflicts(dir, sourceFile)
	hello := e.Hello
	if !strings.HasSuffix(hello, "\n") {
		hello += "\n"
	}
	if err := fw.writeAlways(filepath.Join(dir, sourceFile), []byte(hello)); err != nil {
		return err
	}

	recipe := ComposeRecipe(e, sourceFile, c.opts.Recipe)
	if err := fw.write(filepath.Join(dir, c.opts.Recipe.FileName), []byte(recipe)); err != nil {
		return err
	}

	launcherPath := filepath.Join(dir, c.opts.Launcher.FileName)
	launcher := ComposeLauncher(e.Slug, c.opts.Recipe, c.opts.Launcher)
	if err := fw.write(launcherPath, []byte(launcher)); err != nil {
		return err
	}
	return makeExecutable(launcherPath)
}
