// Package config loads the settings of the waci command.
//
// Settings are layered with priority: defaults -> TOML file -> .env file ->
// WACI_* environment variables -> command flags. A variable already set in
// the environment wins over the same variable in the .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/Rhymond/go-money"
	"github.com/etnz/waci"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "waci.toml"

// Environment variables overriding the configuration file.
const (
	EnvIDMapFile     = "WACI_IDMAP_FILE"
	EnvPortfolioFile = "WACI_PORTFOLIO_FILE"
	EnvBenchmarkFile = "WACI_BENCHMARK_FILE"
	EnvCarbonFile    = "WACI_CARBON_FILE"
	EnvCurrency      = "WACI_CURRENCY"
	EnvChartFile     = "WACI_CHART_FILE"
	EnvLogLevel      = "WACI_LOG_LEVEL"
	EnvVerbose       = "WACI_VERBOSE"
)

// Config is the application configuration.
type Config struct {
	Files    waci.Files    `toml:"files"`
	Currency string        `toml:"currency"` // currency of portfolio prices
	Chart    ChartConfig   `toml:"chart"`
	Logging  LoggingConfig `toml:"logging"`
}

// ChartConfig contains chart output settings.
type ChartConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns the configuration used when nothing is set.
func NewDefaultConfig() *Config {
	return &Config{
		Files:    waci.DefaultFiles,
		Currency: "USD",
		Chart:    ChartConfig{Path: "waci_breakdown.pdf"},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration file at path, then the .env file of the
// current directory and the environment.
//
// An empty path means DefaultFile, which may be missing. An explicit path
// must exist.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		log.WithField("path", path).Debug("Loaded config file")
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies WACI_* environment variable overrides to config.
func applyEnvOverrides(cfg *Config) error {
	for name, field := range map[string]*string{
		EnvIDMapFile:     &cfg.Files.IDMap,
		EnvPortfolioFile: &cfg.Files.Portfolio,
		EnvBenchmarkFile: &cfg.Files.Benchmark,
		EnvCarbonFile:    &cfg.Files.Carbon,
		EnvCurrency:      &cfg.Currency,
		EnvChartFile:     &cfg.Chart.Path,
		EnvLogLevel:      &cfg.Logging.Level,
	} {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvVerbose, v, err)
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
	}
	return nil
}

// ApplyFlagOverrides applies command-line flag overrides to config. Empty
// values leave the configuration unchanged.
func (c *Config) ApplyFlagOverrides(files waci.Files, currency string, verbose bool) {
	for _, o := range []struct {
		dst *string
		src string
	}{
		{&c.Files.IDMap, files.IDMap},
		{&c.Files.Portfolio, files.Portfolio},
		{&c.Files.Benchmark, files.Benchmark},
		{&c.Files.Carbon, files.Carbon},
		{&c.Currency, currency},
	} {
		if o.src != "" {
			*o.dst = o.src
		}
	}
	if verbose {
		c.Logging.Level = "debug"
	}
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	var errs []error
	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	for _, f := range []struct{ name, path string }{
		{"idmap", c.Files.IDMap},
		{"portfolio", c.Files.Portfolio},
		{"benchmark", c.Files.Benchmark},
		{"carbon", c.Files.Carbon},
		{"chart", c.Chart.Path},
	} {
		if f.path == "" {
			errs = append(errs, fmt.Errorf("no %s file configured", f.name))
		}
	}
	return errors.Join(errs...)
}

// Environ returns the configuration as WACI_* environment variables, in the
// "key=value" form of os.Environ.
func (c *Config) Environ() []string {
	return []string{
		EnvIDMapFile + "=" + c.Files.IDMap,
		EnvPortfolioFile + "=" + c.Files.Portfolio,
		EnvBenchmarkFile + "=" + c.Files.Benchmark,
		EnvCarbonFile + "=" + c.Files.Carbon,
		EnvCurrency + "=" + c.Currency,
		EnvChartFile + "=" + c.Chart.Path,
		EnvLogLevel + "=" + c.Logging.Level,
	}
}

// LogLevel returns the configured logrus level, Info when it is invalid.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
