// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Fetch  FetchConfig  `toml:"fetch"`
	Report ReportConfig `toml:"report"`
}

// FetchConfig maps draw retrieval settings.
type FetchConfig struct {
	Endpoint *string `toml:"endpoint"`
	Limit    *int    `toml:"limit"`
	// Timeout is a Go duration string such as "15s".
	Timeout *string `toml:"timeout"`
}

// ReportConfig maps report output settings.
type ReportConfig struct {
	Format *string `toml:"format"`
	Width  *int    `toml:"width"`
	// LogFile receives dashboard logs; empty disables logging in the TUI.
	LogFile *string `toml:"log-file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
