package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const manifest = "slug\tfile\tbase_image\trun_cmd\thello\n" +
	"python\thello.py\tpython:3.12-slim\tpython3 hello.py\tprint(\"Hello, World!\")\n" +
	"broken\tbroken.txt\talpine\t\thello\n"

type session struct {
	dir  string
	root string
	out  *bytes.Buffer
	err  *bytes.Buffer
}

func newSession(t *testing.T) *session {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "languages")
	t.Setenv("POLYGLOT_LANGUAGES_DIR", root)
	t.Setenv("POLYGLOT_TIMEOUT", "")
	return &session{dir: dir, root: root}
}

func (s *session) run(cmd *cobra.Command, args ...string) int {
	s.out, s.err = &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)
	return Run(context.Background(), cmd, args)
}

func (s *session) file(t *testing.T, rel, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(s.dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestScaffoldCommand(t *testing.T) {
	s := newSession(t)
	m := s.file(t, "languages.tsv", manifest, 0644)

	code := s.run(NewScaffoldCmd(), m)
	assert.Equal(t, 0, code)
	assert.Equal(t, "Scaffolded: python\n", s.out.String())
	assert.Contains(t, s.err.String(), "Skipping malformed line")
	assert.FileExists(t, filepath.Join(s.root, "python", "hello.py"))
	assert.FileExists(t, filepath.Join(s.root, "python", "run.sh"))
	assert.NoDirExists(t, filepath.Join(s.root, "broken"))
}

func TestScaffoldCommandExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args func(s *session, t *testing.T) []string
		want int
	}{
		{
			name: "no arguments",
			args: func(s *session, t *testing.T) []string { return nil },
			want: 2,
		},
		{
			name: "too many arguments",
			args: func(s *session, t *testing.T) []string { return []string{"a.tsv", "b.tsv"} },
			want: 2,
		},
		{
			name: "unknown flag",
			args: func(s *session, t *testing.T) []string { return []string{"--nope", "a.tsv"} },
			want: 2,
		},
		{
			name: "missing manifest",
			args: func(s *session, t *testing.T) []string {
				return []string{filepath.Join(s.dir, "missing.tsv")}
			},
			want: 2,
		},
		{
			name: "missing config file",
			args: func(s *session, t *testing.T) []string {
				m := s.file(t, "m.tsv", manifest, 0644)
				return []string{"--config", filepath.Join(s.dir, "nope.toml"), m}
			},
			want: 2,
		},
		{
			name: "languages root is a file",
			args: func(s *session, t *testing.T) []string {
				s.file(t, "languages", "not a directory", 0644)
				return []string{s.file(t, "m.tsv", manifest, 0644)}
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			code := s.run(NewScaffoldCmd(), tt.args(s, t)...)
			assert.Equal(t, tt.want, code)
			assert.Contains(t, s.err.String(), "Error: ")
		})
	}
}

func TestScaffoldCommandReadsConfigFile(t *testing.T) {
	s := newSession(t)
	t.Setenv("POLYGLOT_LANGUAGES_DIR", "")
	out := filepath.Join(s.dir, "generated")
	cfg := s.file(t, "polyglot.toml", "languages_dir = \""+out+"\"\n\n[launcher]\nfile_name = \"go.sh\"\nengine = \"podman\"\n", 0644)
	m := s.file(t, "m.tsv", manifest, 0644)

	code := s.run(NewScaffoldCmd(), "--config", cfg, m)
	require.Equal(t, 0, code, s.err.String())
	launcher, err := os.ReadFile(filepath.Join(out, "python", "go.sh"))
	require.NoError(t, err)
	assert.Contains(t, string(launcher), "podman build")
}

func (s *session) language(t *testing.T, slug, script string) {
	t.Helper()
	s.file(t, filepath.Join("languages", slug, "run.sh"), script, 0755)
}

func TestRunAllCommand(t *testing.T) {
	s := newSession(t)
	s.language(t, "a", "#!/bin/sh\necho 'Hello from a'\n")
	s.language(t, "b", "#!/bin/sh\necho bad >&2\nexit 3\n")
	s.language(t, "c", "#!/bin/sh\necho 'Hello from c'\n")

	code := s.run(NewRunAllCmd())
	assert.Equal(t, 1, code)
	assert.Contains(t, s.out.String(), "Hello from a")
	assert.Contains(t, s.out.String(), "exit 3: bad")
	assert.NotContains(t, s.err.String(), "Error: ")

	code = s.run(NewRunAllCmd(), "a", "c")
	assert.Equal(t, 0, code)
	assert.Contains(t, s.out.String(), "Passed  (2): a c")
	assert.NotContains(t, s.out.String(), "exit 3")
}

func TestRunAllCommandReport(t *testing.T) {
	s := newSession(t)
	s.language(t, "a", "#!/bin/sh\necho hi\n")
	report := filepath.Join(s.dir, "report.json")

	code := s.run(NewRunAllCmd(), "--report", report)
	require.Equal(t, 0, code)
	raw, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, "pass", gjson.GetBytes(raw, "outcomes.0.status").String())
	assert.Equal(t, "hi", gjson.GetBytes(raw, "outcomes.0.output").String())
	assert.NotEmpty(t, gjson.GetBytes(raw, "run_id").String())
}

func TestRunAllCommandVerbose(t *testing.T) {
	s := newSession(t)
	s.language(t, "a", "#!/bin/sh\necho streamed\n")

	code := s.run(NewRunAllCmd(), "--verbose")
	require.Equal(t, 0, code)
	assert.Contains(t, s.out.String(), "==> a\nstreamed\n")
}

func TestRunAllCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unreadable root", nil, 2},
		{"bad timeout", []string{"--timeout", "soon"}, 2},
		{"negative timeout", []string{"--timeout=-5s"}, 2},
		{"negative go duration", []string{"--timeout=-1m30s"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)
			code := s.run(NewRunAllCmd(), tt.args...)
			assert.Equal(t, tt.want, code)
			assert.Contains(t, s.err.String(), "Error: ")
		})
	}
}

func TestRunRecoversFromPanic(t *testing.T) {
	cmd := &cobra.Command{
		Use: "broken",
		RunE: func(cmd *cobra.Command, args []string) error {
			panic("boom")
		},
	}
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	code := Run(context.Background(), cmd, nil)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: internal error: boom")
}
