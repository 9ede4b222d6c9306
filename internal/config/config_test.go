package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "polyglot.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *ConfigParam)
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			check: func(t *testing.T, cfg *ConfigParam) {
				assert.Equal(t, "languages", cfg.LanguagesDir)
				assert.Equal(t, "Dockerfile", cfg.Recipe.FileName)
				assert.Equal(t, ".dockerignore", cfg.Recipe.IgnoreFile)
				assert.Equal(t, "run.sh", cfg.Launcher.FileName)
				assert.Equal(t, "POLYGLOT_PLATFORM", cfg.Launcher.PlatformEnv)
				d, err := cfg.GetTimeout()
				require.NoError(t, err)
				assert.Zero(t, d)
			},
		},
		{
			name: "file values override defaults",
			content: `
format_version = "0.1.0"
languages_dir = "out"
log_level = "debug"

[launcher]
engine = "podman"
image_prefix = "poly-"

[executor]
timeout = "10m"
`,
			check: func(t *testing.T, cfg *ConfigParam) {
				assert.Equal(t, "out", cfg.LanguagesDir)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "podman", cfg.Launcher.Engine)
				assert.Equal(t, "poly-", cfg.Launcher.ImagePrefix)
				assert.Equal(t, "run.sh", cfg.Launcher.FileName)
				d, err := cfg.GetTimeout()
				require.NoError(t, err)
				assert.Equal(t, 10*time.Minute, d)
			},
		},
		{
			name:    "environment overrides file",
			content: `languages_dir = "out"`,
			env: map[string]string{
				"POLYGLOT_LANGUAGES_DIR": "env-out",
				"POLYGLOT_TIMEOUT":       "90s",
			},
			check: func(t *testing.T, cfg *ConfigParam) {
				assert.Equal(t, "env-out", cfg.LanguagesDir)
				d, err := cfg.GetTimeout()
				require.NoError(t, err)
				assert.Equal(t, 90*time.Second, d)
			},
		},
		{
			name:    "incompatible format version",
			content: `format_version = "1.0.0"`,
			wantErr: true,
		},
		{
			name:    "invalid timeout",
			content: "[executor]\ntimeout = \"soon\"\n",
			wantErr: true,
		},
		{
			name:    "empty required value",
			content: "[recipe]\nfile_name = \"\"\n",
			wantErr: true,
		},
		{
			name:    "malformed toml",
			content: "languages_dir = ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestApplyEnvIgnoresUnrelated(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(cfg, []string{"HOME=/root", "POLYGLOT_PLATFORM=linux/amd64", "POLYGLOT_ENGINE=podman"})
	require.NoError(t, err)
	assert.Equal(t, "podman", cfg.Launcher.Engine)
	assert.Equal(t, "languages", cfg.LanguagesDir)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30s", 30 * time.Second, false},
		{"5m", 5 * time.Minute, false},
		{"2h", 2 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"1h30m", 90 * time.Minute, false},
		{"5", 0, true},
		{"5w", 0, true},
		{"-5m", 0, true},
		{"-1m30s", 0, true},
		{"0h0m", 0, false},
		{"200000d", 0, true},
		{"106751d", 106751 * 24 * time.Hour, false},
		{"99999999999999999999s", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsVersionCompatible(t *testing.T) {
	assert.True(t, IsVersionCompatible("0.1.0"))
	assert.True(t, IsVersionCompatible("0.1.7"))
	assert.False(t, IsVersionCompatible("0.2.0"))
	assert.False(t, IsVersionCompatible("not-a-version"))
}
