// Package config loads targetpath settings from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// UI modes.
const (
	UIModeAuto  = "auto"
	UIModeTTY   = "tty"
	UIModePlain = "plain"
)

// EnvPrefix prefixes every environment override, e.g. TARGETPATH_LOG_LEVEL.
const EnvPrefix = "TARGETPATH"

// Config holds the resolved settings.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
	UI     UIConfig     `mapstructure:"ui"`
	Check  CheckConfig  `mapstructure:"check"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig configures saved target documents.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// UIConfig selects the front end.
type UIConfig struct {
	Mode string `mapstructure:"mode"`
}

// CheckConfig configures the check command.
type CheckConfig struct {
	Parallel int `mapstructure:"parallel"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Log:    LogConfig{Level: "warn", Format: "text"},
		Output: OutputConfig{Format: "json"},
		UI:     UIConfig{Mode: UIModeAuto},
		Check:  CheckConfig{Parallel: 4},
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("ui.mode", def.UI.Mode)
	v.SetDefault("check.parallel", def.Check.Parallel)
}

// flagKeys maps config keys to the command-line flags that override them.
var flagKeys = map[string]string{
	"log.level":      "log-level",
	"log.format":     "log-format",
	"output.format":  "format",
	"ui.mode":        "ui",
	"check.parallel": "parallel",
}

// Load reads the config file at path, or .targetpath.{yaml,json,toml} from the
// working directory when path is empty. A missing default file is not an error.
// Flags in flags that were set on the command line take precedence over
// environment, file and defaults; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if flags != nil {
		for key, name := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".targetpath")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unsupported value %q", c.Log.Format))
	}

	switch strings.ToLower(c.Output.Format) {
	case "json", "yaml", "yml":
	default:
		errs = append(errs, fmt.Errorf("output.format: unsupported value %q", c.Output.Format))
	}

	switch c.UI.Mode {
	case UIModeAuto, UIModeTTY, UIModePlain:
	default:
		errs = append(errs, fmt.Errorf("ui.mode: unsupported value %q", c.UI.Mode))
	}

	if c.Check.Parallel < 1 {
		errs = append(errs, fmt.Errorf("check.parallel: must be at least 1, got %d", c.Check.Parallel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}

// UseTTY resolves the UI mode against whether the output is a terminal.
func (c *Config) UseTTY(isTTY bool) bool {
	switch c.UI.Mode {
	case UIModeTTY:
		return true
	case UIModePlain:
		return false
	}

	return isTTY
}
