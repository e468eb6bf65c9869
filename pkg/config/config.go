package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rg0now/c-comment-ratio/pkg/models"
)

// Defaults.
const (
	DefaultMinCommentRatio        = 0.25
	DefaultAutoInsertCommentValue = "TODO: add comment"
	DefaultLogLevel               = "warn"

	// MaxCommentValueLength bounds auto_insert_comment_value, in runes.
	MaxCommentValueLength = 60

	EnvPrefix      = "COMMENTRATIO"
	ConfigFileName = ".commentratio"
)

// ErrInvalidConfiguration wraps every validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config holds the settings read for one command invocation.
type Config struct {
	MinCommentRatio        float64 `mapstructure:"min_comment_ratio" yaml:"min_comment_ratio"`
	AutoInsertCommentValue string  `mapstructure:"auto_insert_comment_value" yaml:"auto_insert_comment_value"`
	Policy                 string  `mapstructure:"policy" yaml:"policy"`           // first-pass, two-phase
	InsertMode             string  `mapstructure:"insert_mode" yaml:"insert_mode"` // single, iterative
	LogLevel               string  `mapstructure:"log_level" yaml:"log_level"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"min-ratio":     "min_comment_ratio",
	"comment-value": "auto_insert_comment_value",
	"policy":        "policy",
	"mode":          "insert_mode",
	"log-level":     "log_level",
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		MinCommentRatio:        DefaultMinCommentRatio,
		AutoInsertCommentValue: DefaultAutoInsertCommentValue,
		Policy:                 models.PolicyFirstPass,
		InsertMode:             models.InsertSingle,
		LogLevel:               DefaultLogLevel,
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// COMMENTRATIO_* environment variables and flags, in increasing precedence.
// Only flags the user actually set override the other sources.
// The result is normalized and validated.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("min_comment_ratio", def.MinCommentRatio)
	v.SetDefault("auto_insert_comment_value", def.AutoInsertCommentValue)
	v.SetDefault("policy", def.Policy)
	v.SetDefault("insert_mode", def.InsertMode)
	v.SetDefault("log_level", def.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "commentratio"))
		}
		v.AddConfigPath(".")
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file must exist; the searched default is optional.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Normalize trims and lower-cases enumerations and truncates the comment
// value to MaxCommentValueLength runes.
func (c *Config) Normalize() {
	c.Policy = strings.ToLower(strings.TrimSpace(c.Policy))
	c.InsertMode = strings.ToLower(strings.TrimSpace(c.InsertMode))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if r := []rune(c.AutoInsertCommentValue); len(r) > MaxCommentValueLength {
		c.AutoInsertCommentValue = string(r[:MaxCommentValueLength])
	}
}
