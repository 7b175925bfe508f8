// Package config loads suiup's layered configuration: embedded
// defaults, then suiup.toml from the config directory, then SUIUP_*
// environment variables, each layer overriding the last.
package config

import (
	_ "embed"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf's provider interface over embedded
// bytes.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Config is the resolved configuration.
type Config struct {
	// GitHubToken authenticates catalog requests to raise the rate
	// limit. GITHUB_TOKEN is honored as a fallback for compatibility
	// with CI environments.
	GitHubToken string `koanf:"github_token" toml:"github_token"`

	// DefaultNetworks overrides the built-in default network per tool.
	DefaultNetworks map[string]string `koanf:"default_networks" toml:"default_networks"`

	Cleanup CleanupConfig `koanf:"cleanup" toml:"cleanup"`
}

// CleanupConfig tunes "suiup cleanup".
type CleanupConfig struct {
	MaxArchiveAgeDays int `koanf:"max_archive_age_days" toml:"max_archive_age_days"`
}

// Load reads the configuration layers. configFile is the path of the
// optional suiup.toml; a missing file is not an error.
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot load built-in defaults")
	}

	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"cannot parse %s", configFile)
		}
	}

	// Only flat keys are reachable through the environment, which covers
	// github_token; the SUIUP_*_DIR variables land on keys nothing reads.
	if err := k.Load(env.Provider("SUIUP_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SUIUP_"))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot read environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"configuration does not match the expected schema")
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for tool, network := range c.DefaultNetworks {
		if _, err := types.ParseToolID(tool); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse,
				"default_networks names unknown tool %q", tool)
		}
		if _, err := types.ParseNetwork(network); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse,
				"default_networks.%s is not a valid network", tool)
		}
	}
	if c.Cleanup.MaxArchiveAgeDays < 0 {
		return errors.New(errors.ErrConfigParse,
			"cleanup.max_archive_age_days cannot be negative")
	}
	return nil
}

// NetworkOverrides converts the configured per-tool networks into the
// typed map the resolver consumes.
func (c *Config) NetworkOverrides() map[types.ToolID]types.Network {
	if len(c.DefaultNetworks) == 0 {
		return nil
	}
	overrides := make(map[types.ToolID]types.Network, len(c.DefaultNetworks))
	for tool, network := range c.DefaultNetworks {
		id, err := types.ParseToolID(tool)
		if err != nil {
			continue
		}
		n, err := types.ParseNetwork(network)
		if err != nil {
			continue
		}
		overrides[id] = n
	}
	return overrides
}
