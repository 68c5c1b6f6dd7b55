// Package config loads the optional TOML configuration file consulted by
// the runner. Command-line flags take precedence over a loaded value, which
// in turn takes precedence over the built-in default. The runner treats a
// flag still equal to its built-in default as unset, so a flag given
// explicitly with its default value does not override the file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config mirrors the five TOML tables the spec documents.
type Config struct {
	Output   OutputConfig   `toml:"output"`
	Provider ProviderConfig `toml:"provider"`
	Filter   FilterConfig   `toml:"filter"`
	Network  NetworkConfig  `toml:"network"`
	Testing  TestingConfig  `toml:"testing"`
}

type OutputConfig struct {
	Output        *string `toml:"output"`
	Format        *string `toml:"format"`
	MergeEndpoint *bool   `toml:"merge_endpoint"`
}

type ProviderConfig struct {
	Providers []string `toml:"providers"`
	Subs      *bool    `toml:"subs"`
	CCIndex   *string  `toml:"cc_index"`
}

type FilterConfig struct {
	Preset            []string `toml:"preset"`
	Extensions        []string `toml:"extensions"`
	ExcludeExtensions []string `toml:"exclude_extensions"`
	Patterns          []string `toml:"patterns"`
	ExcludePatterns   []string `toml:"exclude_patterns"`
	ShowOnlyHost      *bool    `toml:"show_only_host"`
	ShowOnlyPath      *bool    `toml:"show_only_path"`
	ShowOnlyParam     *bool    `toml:"show_only_param"`
	MinLength         *int     `toml:"min_length"`
	MaxLength         *int     `toml:"max_length"`
	NormalizeURL      *bool    `toml:"normalize_url"`
	Strict            *bool    `toml:"strict"`
}

type NetworkConfig struct {
	NetworkScope *string  `toml:"network_scope"`
	Proxy        *string  `toml:"proxy"`
	ProxyAuth    *string  `toml:"proxy_auth"`
	Insecure     *bool    `toml:"insecure"`
	RandomAgent  *bool    `toml:"random_agent"`
	Timeout      *int     `toml:"timeout"`
	Retries      *int     `toml:"retries"`
	Parallel     *int     `toml:"parallel"`
	RateLimit    *float64 `toml:"rate_limit"`
}

type TestingConfig struct {
	CheckStatus   *bool    `toml:"check_status"`
	IncludeStatus []string `toml:"include_status"`
	ExcludeStatus []string `toml:"exclude_status"`
	ExtractLinks  *bool    `toml:"extract_links"`
}

// FromFile parses the TOML document at path.
func FromFile(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Load resolves the configuration file per the priority rule in §6: an
// empty path loads nothing and the caller proceeds with built-in defaults;
// a non-empty path that cannot be read or parsed is an error.
func Load(explicitPath string) (*Config, error) {
	if explicitPath == "" {
		return &Config{}, nil
	}
	if _, err := os.Stat(explicitPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", explicitPath, err)
	}
	return FromFile(explicitPath)
}
