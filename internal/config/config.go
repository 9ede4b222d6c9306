// Package config holds the settings shared by the scaffold and run_all
// commands. Values are layered: built-in defaults, an optional TOML file, a
// .env file in the working directory and finally POLYGLOT_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// config file is given.
const DefaultConfigFile = "polyglot.toml"

// ConfigFormatVersion is the current version of the configuration file format.
const ConfigFormatVersion = "0.1.0"

// RecipeConfig controls the generated build recipe.
type RecipeConfig struct {
	FileName   string `toml:"file_name" validate:"required"`   // build recipe file name
	IgnoreFile string `toml:"ignore_file" validate:"required"` // build context ignore list
	WorkDir    string `toml:"workdir" validate:"required"`     // working directory inside the image
}

// LauncherConfig controls the generated launcher script.
type LauncherConfig struct {
	FileName    string `toml:"file_name" validate:"required"`    // launcher script name
	ImagePrefix string `toml:"image_prefix"`                     // prepended to the slug to form the image name
	Engine      string `toml:"engine" validate:"required"`       // container engine binary
	PlatformEnv string `toml:"platform_env" validate:"required"` // variable that pins the build platform
}

// ExecutorConfig controls run_all.
type ExecutorConfig struct {
	Timeout string `toml:"timeout"` // per launcher timeout, empty for none
}

// ConfigParam holds all configuration parameters.
type ConfigParam struct {
	FormatVersion string `toml:"format_version"`
	LogLevel      string `toml:"log_level"`
	LanguagesDir  string `toml:"languages_dir" validate:"required"`

	Recipe   RecipeConfig   `toml:"recipe"`
	Launcher LauncherConfig `toml:"launcher"`
	Executor ExecutorConfig `toml:"executor"`
}

// GetTimeout returns the executor timeout, zero when none is configured.
func (c *ConfigParam) GetTimeout() (time.Duration, error) {
	if c.Executor.Timeout == "" {
		return 0, nil
	}
	return ParseDuration(c.Executor.Timeout)
}

// Default returns the built-in configuration. It reproduces the layout the
// generated tree has always used: languages/<slug>/{Dockerfile,run.sh}.
func Default() *ConfigParam {
	return &ConfigParam{
		FormatVersion: ConfigFormatVersion,
		LogLevel:      "info",
		LanguagesDir:  "languages",
		Recipe: RecipeConfig{
			FileName:   "Dockerfile",
			IgnoreFile: ".dockerignore",
			WorkDir:    "/app",
		},
		Launcher: LauncherConfig{
			FileName:    "run.sh",
			ImagePrefix: "hello-",
			Engine:      "docker",
			PlatformEnv: "POLYGLOT_PLATFORM",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig checks that all required values are present and valid.
func ValidateConfig(cfg *ConfigParam) error {
	if !IsVersionCompatible(cfg.FormatVersion) {
		return fmt.Errorf("unsupported config file format version: %s", cfg.FormatVersion)
	}
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if _, err := cfg.GetTimeout(); err != nil {
		return fmt.Errorf("invalid executor.timeout: %v", err)
	}
	return nil
}

// LoadConfig builds the configuration. filename may be empty, in which case
// DefaultConfigFile is read from the working directory if it exists.
func LoadConfig(filename string) (*ConfigParam, error) {
	cfg := Default()

	explicit := filename != ""
	if !explicit {
		filename = DefaultConfigFile
	}
	content, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %v", err)
		}
	case explicit || !os.IsNotExist(err):
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	// .env never overrides variables that are already set
	if cwd, err := os.Getwd(); err == nil {
		_ = godotenv.Load(filepath.Join(cwd, ".env"))
	}

	if err := ApplyEnv(cfg, os.Environ()); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return cfg, nil
}
