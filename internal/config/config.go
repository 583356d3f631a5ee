// Package config provides Viper-based configuration loading for the build calculator.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/cory-johannsen/simu/internal/game/damage"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr" or a file path. Calculator reports own stdout.
	Output string `mapstructure:"output"`
}

// CalculatorConfig holds damage calculator defaults.
type CalculatorConfig struct {
	// AttackMode is used when a build does not name one: "melee", "ranged" or "magic".
	AttackMode string `mapstructure:"attack_mode"`
	// FerocityMode is "multiplicative" or "extra_hits".
	FerocityMode string `mapstructure:"ferocity_mode"`
	// Instrument logs every list and stat evaluation through the calculation recorder.
	Instrument bool `mapstructure:"instrument"`
	// RangedBaseShotsPerSecond is the bow shot rate before attack speed, as a decimal string.
	RangedBaseShotsPerSecond string `mapstructure:"ranged_base_shots_per_second"`
	// ShortbowShotsPerSecond is the shortbow shot rate before attack speed, as a decimal string.
	ShortbowShotsPerSecond string `mapstructure:"shortbow_shots_per_second"`
}

// Options converts the calculator settings into damage.Calculator options.
//
// Precondition: c has passed Validate.
// Postcondition: Returns the options or the first parse error.
func (c CalculatorConfig) Options() ([]damage.Option, error) {
	mode, err := damage.ParseAttackMode(c.AttackMode)
	if err != nil {
		return nil, err
	}
	ferocity, err := damage.ParseFerocityMode(c.FerocityMode)
	if err != nil {
		return nil, err
	}
	bow, err := decimal.NewFromString(c.RangedBaseShotsPerSecond)
	if err != nil {
		return nil, fmt.Errorf("calculator.ranged_base_shots_per_second: %w", err)
	}
	shortbow, err := decimal.NewFromString(c.ShortbowShotsPerSecond)
	if err != nil {
		return nil, fmt.Errorf("calculator.shortbow_shots_per_second: %w", err)
	}
	return []damage.Option{
		damage.WithAttackMode(mode),
		damage.WithFerocityMode(ferocity),
		damage.WithShotRates(bow, shortbow),
	}, nil
}

// ContentConfig locates the YAML content directories.
type ContentConfig struct {
	// WeaponsDir holds one weapon definition per *.yaml file.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// BuildsDir holds build documents.
	BuildsDir string `mapstructure:"builds_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Calculator CalculatorConfig `mapstructure:"calculator"`
	Content    ContentConfig    `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCalculator(c.Calculator); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Content.WeaponsDir == "" {
		errs = append(errs, "content.weapons_dir must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCalculator(c CalculatorConfig) error {
	var errs []string
	if _, err := damage.ParseAttackMode(c.AttackMode); err != nil {
		errs = append(errs, fmt.Sprintf("calculator.attack_mode must be one of [melee, ranged, magic], got %q", c.AttackMode))
	}
	if _, err := damage.ParseFerocityMode(c.FerocityMode); err != nil {
		errs = append(errs, fmt.Sprintf("calculator.ferocity_mode must be one of [multiplicative, extra_hits], got %q", c.FerocityMode))
	}
	for key, raw := range map[string]string{
		"calculator.ranged_base_shots_per_second": c.RangedBaseShotsPerSecond,
		"calculator.shortbow_shots_per_second":    c.ShortbowShotsPerSecond,
	} {
		d, err := decimal.NewFromString(raw)
		if err != nil || !d.IsPositive() {
			errs = append(errs, fmt.Sprintf("%s must be a positive decimal, got %q", key, raw))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	switch l.Output {
	case "":
		return fmt.Errorf("logging.output must not be empty")
	case "stdout":
		return fmt.Errorf("logging.output must not be stdout")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and environment only.
//
// Precondition: path is empty or names a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with SIMU_ prefix
	v.SetEnvPrefix("SIMU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
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

// NewViper returns a Viper instance carrying only the defaults.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("calculator.attack_mode", "melee")
	v.SetDefault("calculator.ferocity_mode", "multiplicative")
	v.SetDefault("calculator.instrument", false)
	v.SetDefault("calculator.ranged_base_shots_per_second", damage.DefaultShotsPerSecond.String())
	v.SetDefault("calculator.shortbow_shots_per_second", damage.DefaultShortbowShotsPerSecond.String())

	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.builds_dir", "content/builds")
}
