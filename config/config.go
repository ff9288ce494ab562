// Package config holds the settings of a portfolio update run.
//
// Settings are resolved in order: Default, an optional YAML file, the
// environment (a .env file is loaded into it first), then command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration.
const (
	EnvDataFile  = "PFU_DATA_FILE"
	EnvEndpoint  = "PFU_ENDPOINT"
	EnvUserAgent = "PFU_USER_AGENT"
	EnvTimeout   = "PFU_TIMEOUT"
	EnvUTCOffset = "PFU_UTC_OFFSET"
	EnvCurrency  = "PFU_CURRENCY"
)

// Config is the complete run configuration.
type Config struct {
	DataFile  string `yaml:"data_file"`
	Quotes    Quotes `yaml:",inline"`
	UTCOffset string `yaml:"utc_offset"`
	Currency  string `yaml:"currency"`
}

// Quotes configures the quote endpoint.
type Quotes struct {
	Endpoint  string        `yaml:"endpoint"`
	Interval  string        `yaml:"interval"`
	Range     string        `yaml:"range"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		DataFile: "data.json",
		Quotes: Quotes{
			Endpoint:  "https://query1.finance.yahoo.com/v8/finance/chart",
			Interval:  "1d",
			Range:     "5d",
			UserAgent: "Mozilla/5.0",
			Timeout:   15 * time.Second,
		},
		UTCOffset: "+08:00",
		Currency:  "HKD",
	}
}

// LoadFromFile reads a YAML configuration file. Keys missing from the file
// keep their Default value.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads the given .env files (".env" if none) into the environment.
// Missing files are ignored and variables already set are never overwritten.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides c with the PFU_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	for env, field := range map[string]*string{
		EnvDataFile:  &c.DataFile,
		EnvEndpoint:  &c.Quotes.Endpoint,
		EnvUserAgent: &c.Quotes.UserAgent,
		EnvUTCOffset: &c.UTCOffset,
		EnvCurrency:  &c.Currency,
	} {
		if v, ok := os.LookupEnv(env); ok {
			*field = v
		}
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Quotes.Timeout = d
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file is required")
	}
	u, err := url.Parse(c.Quotes.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint %q is not an absolute URL", c.Quotes.Endpoint)
	}
	if c.Quotes.Interval == "" {
		return fmt.Errorf("interval is required")
	}
	if c.Quotes.Range == "" {
		return fmt.Errorf("range is required")
	}
	if c.Quotes.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Quotes.Timeout)
	}
	if _, err := ParseOffset(c.UTCOffset); err != nil {
		return err
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("currency %q is not an ISO 4217 code", c.Currency)
	}
	return nil
}

// Location returns the fixed zone of the configured UTC offset.
func (c *Config) Location() (*time.Location, error) { return ParseOffset(c.UTCOffset) }

// ParseOffset turns an offset like "+08:00", "-05:30" or "Z" into a fixed zone.
func ParseOffset(offset string) (*time.Location, error) {
	t, err := time.Parse("Z07:00", offset)
	if err != nil {
		return nil, fmt.Errorf("invalid utc_offset %q, want a form like +08:00", offset)
	}
	_, secs := t.Zone()
	if secs == 0 {
		return time.UTC, nil
	}
	return time.FixedZone("UTC"+offset, secs), nil
}
