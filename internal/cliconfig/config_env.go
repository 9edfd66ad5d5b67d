package cliconfig

import (
	"os"
	"strings"
)

// ApplyEnvConfig applies configuration from environment variables (SUNSET_*).
// It respects flags that have been explicitly set (changed map).
// Returns an error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("policy", os.Getenv("SUNSET_POLICY"), &cfg.PolicyPath)
	s.setString("at-version", os.Getenv("SUNSET_VERSION"), &cfg.Version)
	s.setString("output", os.Getenv("SUNSET_OUTPUT"), &cfg.Output)

	if err := s.setIntFromString("release", os.Getenv("SUNSET_RELEASE"), &cfg.Release); err != nil {
		return err
	}

	if gates := os.Getenv("SUNSET_GATES"); gates != "" {
		s.setStrings("enable", SplitGates(gates), &cfg.Gates)
	}

	s.setBoolFromString("verbose", os.Getenv("SUNSET_VERBOSE"), &cfg.Verbose)

	return nil
}

// SplitGates splits a comma-separated gate list, trimming whitespace and
// dropping empty entries.
func SplitGates(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
