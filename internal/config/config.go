// Package config provides configuration loading and validation for srcgraph.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jward/srcgraph/internal/discover"
	"github.com/jward/srcgraph/internal/logging"
)

// Sentinel validation errors.
var (
	ErrInvalidExtension = errors.New("extension must start with '.'")
	ErrNoExtensions     = errors.New("at least one extension is required")
	ErrInvalidDepth     = errors.New("max depth must not be negative")
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = ".srcgraph"

// DefaultDB is the snapshot database path, relative to the scan root.
const DefaultDB = ".srcgraph/graph.db"

// DefaultTargets are the conventional frontend and backend-function directories.
var DefaultTargets = []string{"src", "convex"}

// Config holds all srcgraph settings.
type Config struct {
	Targets       []string      `mapstructure:"targets" yaml:"targets"`
	Extensions    []string      `mapstructure:"extensions" yaml:"extensions"`
	Exclude       []string      `mapstructure:"exclude" yaml:"exclude"`
	PrivatePrefix string        `mapstructure:"private_prefix" yaml:"private_prefix"`
	MaxDepth      int           `mapstructure:"max_depth" yaml:"max_depth"`
	DB            string        `mapstructure:"db" yaml:"db"`
	Logging       LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Load reads configuration from defaults, an optional YAML file, and
// SRCGRAPH_* environment variables, in increasing order of precedence.
// With an empty configPath, .srcgraph.yaml in the working directory is used
// if present; an explicit configPath must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(DefaultFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SRCGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("targets", DefaultTargets)
	v.SetDefault("extensions", discover.DefaultExtensions)
	v.SetDefault("exclude", discover.DefaultExcludedDirs)
	v.SetDefault("private_prefix", discover.DefaultPrivatePrefix)
	v.SetDefault("max_depth", 0)
	v.SetDefault("db", DefaultDB)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", logging.FormatText)
}

// Validate checks the configuration for values the scanner cannot use.
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, c.MaxDepth)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: %q", logging.ErrInvalidFormat, c.Logging.Format)
	}
	return nil
}

// Rules converts the discovery settings into an immutable Rules value.
func (c *Config) Rules() discover.Rules {
	return discover.NewRules(c.Extensions, c.Exclude, c.PrivatePrefix, c.MaxDepth)
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}
