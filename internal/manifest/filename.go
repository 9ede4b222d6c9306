package manifest

import (
	"strings"
	"unicode"
)

// ResolveFileName decides which file name the source is written under. It
// starts from the last path component of file; if the build command (or,
// failing that, the run command) references a file with the same extension,
// the last such reference wins. This keeps "gcc foo.c -o out && ./out"
// pointing at foo.c even when the manifest's file column says otherwise.
//
// When neither command mentions that extension, a script the run command
// executes directly ("run ./main.py") names the file.
func ResolveFileName(file, buildCmd, runCmd string) string {
	name := baseName(file)
	ext := fileExt(name)
	if ref := lastFileRef(buildCmd, ext); ref != "" {
		return ref
	}
	if ref := lastFileRef(runCmd, ext); ref != "" {
		return ref
	}
	if ref := lastLocalScript(runCmd); ref != "" {
		return ref
	}
	return name
}

// SourceFileName returns the resolved source file name for e.
func (e *Entry) SourceFileName() string {
	return ResolveFileName(e.File, e.BuildCmd, e.RunCmd)
}

func baseName(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	return strings.TrimPrefix(p, "./")
}

// fileExt returns the extension including the dot, or "" when there is none.
func fileExt(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}

func lastFileRef(cmd, ext string) string {
	if cmd == "" || ext == "" {
		return ""
	}
	var last string
	for _, tok := range splitShellWords(cmd) {
		tok = baseName(strings.TrimRight(tok, ";,)]\r\n"))
		if strings.HasSuffix(tok, ext) {
			last = tok
		}
	}
	return last
}

// lastLocalScript returns the last "./name.ext" token of cmd.
func lastLocalScript(cmd string) string {
	var last string
	for _, tok := range splitShellWords(cmd) {
		tok = strings.TrimRight(tok, ";,)]\r\n")
		if !strings.HasPrefix(tok, "./") {
			continue
		}
		if leaf := baseName(tok); len(fileExt(leaf)) > 1 {
			last = leaf
		}
	}
	return last
}

// splitShellWords splits on unquoted whitespace. Quotes group words and are
// dropped; no other shell syntax is interpreted.
func splitShellWords(s string) []string {
	var (
		words          []string
		cur            strings.Builder
		single, double bool
	)
	for _, c := range s {
		switch {
		case c == '\'' && !double:
			single = !single
		case c == '"' && !single:
			double = !double
		case !single && !double && unicode.IsSpace(c):
			if cur.Len() > 0 {
				words = append(words, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(c)
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}
