package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/polyglot-hello/polyglot/internal/common/apperrors"
	"github.com/polyglot-hello/polyglot/internal/scaffold"
)

type scaffoldOptions struct {
	commonOptions
	force bool
	watch bool
}

// NewScaffoldCmd returns the root command of the scaffold tool.
func NewScaffoldCmd() *cobra.Command {
	opts := &scaffoldOptions{}
	cmd := &cobra.Command{
		Use:   "scaffold [flags] <manifest.tsv>",
		Short: "Generate one build directory per language from a TSV manifest",
		Long: `Scaffold reads a tab separated manifest with one row per language and
writes, for every valid row, a directory holding the hello-world source, a
container build recipe, a build context ignore list and an executable
launcher script. Unchanged artifacts are left alone, so running it twice
produces the same tree.

Examples:
  # Generate languages/ from the manifest
  scaffold languages.tsv

  # Rewrite every artifact even if unchanged
  scaffold --force languages.tsv

  # Regenerate on every save
  scaffold --watch languages.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runScaffold(cmd, args[0], opts); err != nil {
				return err
			}
			return nil
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Rewrite every artifact even when its content is unchanged")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Recompile whenever the manifest changes")
	return cmd
}

func runScaffold(cmd *cobra.Command, manifestPath string, opts *scaffoldOptions) apperrors.Error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}

	c := scaffold.New(scaffold.OptionsFromConfig(cfg, opts.force), cmd.OutOrStdout(), log.Logger)
	res, err := c.CompileFile(cmd.Context(), manifestPath)
	if err != nil {
		return err
	}
	reportPass(res)

	if !opts.watch {
		return nil
	}
	return c.Watch(cmd.Context(), manifestPath, func(res *scaffold.Result, err apperrors.Error) {
		if err != nil {
			errorLabel.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.ErrorAll())
			return
		}
		okLabel.Fprintf(cmd.OutOrStdout(), "Recompiled %s: %d scaffolded, %d skipped, %d changed\n",
			manifestPath, len(res.Scaffolded), res.Skipped, len(res.Changed))
	})
}

func reportPass(res *scaffold.Result) {
	log.Info().Int("rows", res.Rows).Int("scaffolded", len(res.Scaffolded)).
		Int("skipped", res.Skipped).Int("changed", len(res.Changed)).Msg("manifest compiled")
}
