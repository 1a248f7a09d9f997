// Package config loads depsolve's optional TOML configuration file and
// implements a flag > env var > config file > default precedence rule
// for resolving a setting's effective value.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file path depsolve looks for when none is
// given with --config.
const DefaultFile = ".depsolve.toml"

// Defaults holds the [defaults] table.
type Defaults struct {
	Path    string `toml:"path"`
	Format  string `toml:"format"`
	DepFile string `toml:"dep_file"`
}

// GraphSettings holds the [graph] table.
type GraphSettings struct {
	Style string `toml:"style"`
}

// Config is the decoded shape of a depsolve TOML config file.
type Config struct {
	Defaults Defaults      `toml:"defaults"`
	Graph    GraphSettings `toml:"graph"`
}

// Load reads and decodes path. A missing file is not an error: Load
// returns a zero-value Config so every field falls through to the next
// precedence level.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// StringSetting resolves a single setting by flag > env var > config file
// > default precedence. An empty flagValue means "not set" (cobra string
// flags default to ""); envVar is looked up with os.Getenv.
func StringSetting(flagValue, envVar, configValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if envVar != "" {
		if v := os.Getenv(envVar); v != "" {
			return v
		}
	}
	if configValue != "" {
		return configValue
	}
	return fallback
}
