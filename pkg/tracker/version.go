package tracker

import (
	"github.com/bft-labs/sunset/pkg/lifecycle"
	"github.com/bft-labs/sunset/pkg/log"
	"github.com/bft-labs/sunset/pkg/policy"
	"github.com/bft-labs/sunset/pkg/registry"
	"github.com/bft-labs/sunset/pkg/release"
)

// Version information for the tracker module.
const (
	// Version is the current version of the tracker module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)

// ModuleVersions returns the current versions of all sunset packages in
// this build, keyed by package name.
func ModuleVersions() map[string]string {
	return map[string]string{
		"tracker":   Version,
		"policy":    policy.Version,
		"registry":  registry.Version,
		"lifecycle": lifecycle.Version,
		"release":   release.Version,
		"log":       log.Version,
	}
}

// CompatibilityMatrix returns the minimum compatible version of every
// sunset package, keyed by package name.
func CompatibilityMatrix() map[string]string {
	return map[string]string{
		"tracker":   MinCompatibleVersion,
		"policy":    policy.MinCompatibleVersion,
		"registry":  registry.MinCompatibleVersion,
		"lifecycle": lifecycle.MinCompatibleVersion,
		"release":   release.MinCompatibleVersion,
		"log":       log.MinCompatibleVersion,
	}
}
