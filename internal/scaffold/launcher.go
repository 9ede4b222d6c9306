package scaffold

import (
	"fmt"
	"strings"

	"github.com/polyglot-hello/polyglot/internal/config"
)

// ImageName returns the image tag used for slug. Image references must be
// lower case.
func ImageName(slug string, lc config.LauncherConfig) string {
	return strings.ToLower(lc.ImagePrefix + slug)
}

// ComposeLauncher renders the run.sh script that builds and runs the image
// for slug. The platform variable named by lc.PlatformEnv is read when the
// script runs, not when it is generated.
func ComposeLauncher(slug string, rc config.RecipeConfig, lc config.LauncherConfig) string {
	file := ""
	if rc.FileName != "Dockerfile" {
		file = fmt.Sprintf(" -f %q", rc.FileName)
	}

	var b strings.Builder
	b.WriteString("#!/usr/bin/env bash\n")
	b.WriteString("set -euo pipefail\n")
	fmt.Fprintf(&b, "IMG=\"%s\"\n", ImageName(slug, lc))
	fmt.Fprintf(&b, "PLATFORM=\"${%s:-}\"\n", lc.PlatformEnv)
	b.WriteString("if [ -n \"$PLATFORM\" ]; then\n")
	fmt.Fprintf(&b, "  %s build%s --platform \"$PLATFORM\" -t \"$IMG\" .\n", lc.Engine, file)
	fmt.Fprintf(&b, "  %s run --rm --platform \"$PLATFORM\" \"$IMG\"\n", lc.Engine)
	b.WriteString("else\n")
	fmt.Fprintf(&b, "  %s build%s -t \"$IMG\" .\n", lc.Engine, file)
	fmt.Fprintf(&b, "  %s run --rm \"$IMG\"\n", lc.Engine)
	b.WriteString("fi\n")
	return b.String()
}
