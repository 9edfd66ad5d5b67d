package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/bft-labs/sunset/pkg/release"
)

// DefaultOutput is the default list output format.
const DefaultOutput = "table"

// Config holds CLI configuration for sunset.
type Config struct {
	// PolicyPath is the deprecation policy file to load.
	PolicyPath string

	// Release is the explicit release counter to evaluate at. Takes
	// precedence over Version when both are set.
	Release int

	// Version is a semantic version to derive the release counter from.
	Version string

	// Gates lists the opt-in gates the host has enabled.
	Gates []string

	// Output selects the list format: "table" or "json".
	Output string

	// Verbose lowers the log level to debug.
	Verbose bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Output: DefaultOutput,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.PolicyPath == "" {
		return fmt.Errorf("policy file is required (--policy, SUNSET_POLICY, or config file)")
	}
	if c.Release < 0 {
		return fmt.Errorf("release must not be negative")
	}
	switch c.Output {
	case "table", "json":
	default:
		return fmt.Errorf("output must be %q or %q, got %q", "table", "json", c.Output)
	}
	return nil
}

// ResolveRelease returns the release counter to evaluate at. An explicit
// release wins; otherwise the version string is parsed on the 0.x cadence.
func (c *Config) ResolveRelease() (release.Number, error) {
	if c.Release > 0 {
		return release.Number(c.Release), nil
	}
	if c.Version != "" {
		return release.FromVersion(c.Version)
	}
	return 0, fmt.Errorf("release is required (--release or --at-version)")
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a string slice if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
