// Package config provides Viper-based configuration loading for the
// combat engine and its simulation binary.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// EngineConfig holds the combat engine's rule tunables.
type EngineConfig struct {
	// EscapeDC is the d20 difficulty class of the escape action.
	EscapeDC int `mapstructure:"escape_dc"`
	// StabilizeDC is the d20 difficulty class of the stabilize action.
	StabilizeDC int `mapstructure:"stabilize_dc"`
	// FactLimit caps the narration facts extracted from one patch.
	FactLimit int `mapstructure:"fact_limit"`
	// RobbedMaxTake caps the items lost to the "robbed" defeat outcome.
	RobbedMaxTake int `mapstructure:"robbed_max_take"`
}

// DataConfig points at optional catalog overrides on disk. Empty paths
// mean the compiled-in defaults.
type DataConfig struct {
	// ItemsDir is a directory of item definition YAML files.
	ItemsDir string `mapstructure:"items_dir"`
	// EnemyCatalog is a YAML file of enemy templates.
	EnemyCatalog string `mapstructure:"enemy_catalog"`
	// LootTables is a YAML file of loot table overrides.
	LootTables string `mapstructure:"loot_tables"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Data    DataConfig    `mapstructure:"data"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", c.Logging.Format))
	}

	if c.Engine.EscapeDC < 1 || c.Engine.EscapeDC > 30 {
		errs = append(errs, fmt.Sprintf("engine.escape_dc must be 1-30, got %d", c.Engine.EscapeDC))
	}
	if c.Engine.StabilizeDC < 1 || c.Engine.StabilizeDC > 30 {
		errs = append(errs, fmt.Sprintf("engine.stabilize_dc must be 1-30, got %d", c.Engine.StabilizeDC))
	}
	if c.Engine.FactLimit < 1 {
		errs = append(errs, fmt.Sprintf("engine.fact_limit must be >= 1, got %d", c.Engine.FactLimit))
	}
	if c.Engine.RobbedMaxTake < 0 {
		errs = append(errs, fmt.Sprintf("engine.robbed_max_take must be >= 0, got %d", c.Engine.RobbedMaxTake))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads a YAML configuration file, applies defaults and SKIRMISH_
// environment overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration, used when no config file
// is supplied.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: invalid built-in defaults: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("engine.escape_dc", 13)
	v.SetDefault("engine.stabilize_dc", 10)
	v.SetDefault("engine.fact_limit", 10)
	v.SetDefault("engine.robbed_max_take", 2)

	v.SetDefault("data.items_dir", "")
	v.SetDefault("data.enemy_catalog", "")
	v.SetDefault("data.loot_tables", "")
}
