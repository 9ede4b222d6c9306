package scaffold

import (
	"fmt"
	"strings"

	"github.com/polyglot-hello/polyglot/internal/config"
	"github.com/polyglot-hello/polyglot/internal/manifest"
)

// ignoreList keeps OS metadata and version control files out of the build
// context.
const ignoreList = ".DS_Store\n.git\n.gitignore\n"

// ComposeRecipe renders the Dockerfile for e. sourceFile is the resolved
// source file name.
func ComposeRecipe(e *manifest.Entry, sourceFile string, rc config.RecipeConfig) string {
	var b strings.Builder
	b.WriteString("# syntax=docker/dockerfile:1\n")
	fmt.Fprintf(&b, "FROM %s\n", e.BaseImage)
	fmt.Fprintf(&b, "WORKDIR %s\n", rc.WorkDir)

	if e.InstallCmd != "" {
		install := e.InstallCmd
		if trimmed := strings.TrimSpace(install); strings.HasPrefix(trimmed, "<<") {
			install = trimmed
		}
		fmt.Fprintf(&b, "RUN %s\n", install)
	}
	if e.EnvPath != "" {
		fmt.Fprintf(&b, "ENV PATH=\"%s:$PATH\"\n", e.EnvPath)
	}
	fmt.Fprintf(&b, "COPY %s .\n", sourceFile)
	if e.BuildCmd != "" {
		fmt.Fprintf(&b, "RUN %s\n", e.BuildCmd)
	}
	fmt.Fprintf(&b, "CMD [\"sh\", \"-c\", \"%s\"]\n", JSONEscape(e.RunCmd))
	return b.String()
}

const hexDigits = "0123456789ABCDEF"

// JSONEscape escapes s for use inside a JSON string literal. Only the
// backslash, the double quote and control characters are escaped; every
// other byte is copied through.
func JSONEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xF])
				continue
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}
