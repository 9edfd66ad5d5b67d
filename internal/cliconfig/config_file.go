package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML tags for the user config file.
type FileConfig struct {
	Policy  string   `toml:"policy"`
	Release int      `toml:"release"`
	Version string   `toml:"version"`
	Gates   []string `toml:"gates"`
	Output  string   `toml:"output"`
	Verbose *bool    `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.sunset/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".sunset", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("policy", fc.Policy, &cfg.PolicyPath)
	s.setInt("release", fc.Release, &cfg.Release)
	s.setString("at-version", fc.Version, &cfg.Version)
	s.setStrings("enable", fc.Gates, &cfg.Gates)
	s.setString("output", fc.Output, &cfg.Output)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
