// Package config loads the client configuration from YAML.
//
//	provider:
//	  loader: !env AOJIA_LOADER:-ARegJ64.dll
//	  library: D:\tools\AoJia64.dll
//	clsid: "{4F27E588-5B1E-45B4-AD67-E32D45C4E9CA}"
//	resolve: cache
//	log_level: debug
//
// Scalars tagged !env are replaced by the named environment variable before
// decoding. NAME:-default supplies a fallback for an unset or empty variable.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/provider"
	"github.com/smnsjas/go-aojia/session"
)

// Defaults applied to fields left empty.
const (
	DefaultResolve  = "cache"
	DefaultLogLevel = "info"
)

// ErrInvalid is returned for a configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the on-disk configuration.
type Config struct {
	Provider provider.Paths `yaml:"provider"`
	CLSID    string         `yaml:"clsid"`
	Resolve  string         `yaml:"resolve"`
	LogLevel string         `yaml:"log_level"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes data, resolves custom tags, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, &tagProcessor{target: c}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.CLSID == "" {
		c.CLSID = session.DefaultCLSID
	}
	if c.Resolve == "" {
		c.Resolve = DefaultResolve
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if (c.Provider.Loader == "") != (c.Provider.Library == "") {
		return fmt.Errorf("%w: provider needs both loader and library", ErrInvalid)
	}
	if !strings.HasPrefix(c.CLSID, "{") || !strings.HasSuffix(c.CLSID, "}") {
		return fmt.Errorf("%w: clsid %q must be braced", ErrInvalid, c.CLSID)
	}
	if _, err := dispatch.ParseCachePolicy(c.Resolve); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return lvl, nil
}

// SessionConfig converts c into the options for session.Open.
func (c *Config) SessionConfig(logger *slog.Logger) (session.Config, error) {
	policy, err := dispatch.ParseCachePolicy(c.Resolve)
	if err != nil {
		return session.Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return session.Config{
		Provider:   c.Provider,
		CLSID:      c.CLSID,
		Resolution: policy,
		Logger:     logger,
	}, nil
}
