package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// EnvPrefix marks environment variables that override configuration values.
const EnvPrefix = "POLYGLOT_"

type envOverrides struct {
	LanguagesDir *string `mapstructure:"POLYGLOT_LANGUAGES_DIR"`
	LogLevel     *string `mapstructure:"POLYGLOT_LOG_LEVEL"`
	Timeout      *string `mapstructure:"POLYGLOT_TIMEOUT"`
	Engine       *string `mapstructure:"POLYGLOT_ENGINE"`
}

// ApplyEnv overlays POLYGLOT_* variables from environ (KEY=VALUE pairs) onto
// cfg. POLYGLOT_PLATFORM is not a setting: it is read by the generated
// launchers at run time.
func ApplyEnv(cfg *ConfigParam, environ []string) error {
	vars := map[string]any{}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		vars[k] = v
	}
	if len(vars) == 0 {
		return nil
	}

	var o envOverrides
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &o,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(vars); err != nil {
		return fmt.Errorf("error decoding environment overrides: %v", err)
	}

	if o.LanguagesDir != nil && *o.LanguagesDir != "" {
		cfg.LanguagesDir = *o.LanguagesDir
	}
	if o.LogLevel != nil && *o.LogLevel != "" {
		cfg.LogLevel = *o.LogLevel
	}
	if o.Timeout != nil {
		cfg.Executor.Timeout = *o.Timeout
	}
	if o.Engine != nil && *o.Engine != "" {
		cfg.Launcher.Engine = *o.Engine
	}
	return nil
}
