// Package sunset tracks the deprecation lifecycle of a command-line tool's
// surface: its commands, arguments, and optional third-party dependencies.
//
// Given a policy (which features are deprecated, since which release, for
// which audience tier) and the host's current release counter, sunset
// deterministically answers whether a feature still works, works with a
// warning, or must be refused.
//
// Example usage:
//
//	t, err := sunset.Load("policy.toml", sunset.WithClock(12))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out := t.CheckCurrent("op undo --what")
//	switch out.State {
//	case sunset.StateWarnAndAllow:
//	    fmt.Fprintln(os.Stderr, "Warning: "+out.Message)
//	case sunset.StateRefused:
//	    fmt.Fprintln(os.Stderr, "Error: "+out.Message)
//	    os.Exit(1)
//	}
//
// This package is a facade over pkg/policy, pkg/registry, pkg/lifecycle,
// pkg/release, and pkg/tracker; embedding applications that only need the
// common path can import this single package.
package sunset

import (
	"github.com/bft-labs/sunset/pkg/lifecycle"
	"github.com/bft-labs/sunset/pkg/policy"
	"github.com/bft-labs/sunset/pkg/registry"
	"github.com/bft-labs/sunset/pkg/release"
	"github.com/bft-labs/sunset/pkg/tracker"
)

// Core identifiers and records.
type (
	// FeatureID names a command, argument, or dependency path subject to
	// a compatibility lifecycle.
	FeatureID = policy.FeatureID

	// FlagID names the opt-in gate of a dependency transition.
	FlagID = policy.FlagID

	// Tier classifies a feature's audience and selects its grace period.
	Tier = policy.Tier

	// Record describes the lifecycle of one deprecated feature.
	Record = policy.Record

	// DependencyRecord describes a deprecated third-party dependency with
	// an opt-in gate.
	DependencyRecord = policy.DependencyRecord

	// ReleaseNumber is the host's release counter.
	ReleaseNumber = release.Number

	// State is the lifecycle state of a feature at a given release.
	State = lifecycle.State

	// Tracker answers lifecycle questions for an embedding application.
	Tracker = tracker.Tracker

	// Option configures a Tracker.
	Option = tracker.Option

	// Outcome is the result of checking one feature invocation.
	Outcome = tracker.Outcome

	// GateFunc reports whether the host has enabled an opt-in gate.
	GateFunc = tracker.GateFunc

	// Registry is a frozen set of deprecation records.
	Registry = registry.Registry

	// Builder accumulates records before the registry is frozen.
	Builder = registry.Builder
)

// Tiers.
const (
	TierStandard = policy.TierStandard
	TierNiche    = policy.TierNiche
)

// Lifecycle states.
const (
	StateActive       = lifecycle.StateActive
	StateWarnAndAllow = lifecycle.StateWarnAndAllow
	StateRefused      = lifecycle.StateRefused
)

// Registration-time errors, checkable with errors.Is.
var (
	ErrDuplicateFeature = policy.ErrDuplicateFeature
	ErrInvalidRecord    = policy.ErrInvalidRecord
)

// NewBuilder returns an empty registry builder for hosts that define their
// policy in code rather than a file.
func NewBuilder() *Builder {
	return registry.NewBuilder()
}

// New creates a tracker over an already-frozen registry.
func New(reg *Registry, opts ...Option) (*Tracker, error) {
	return tracker.New(reg, opts...)
}

// Load reads a policy file (TOML or YAML) and creates a tracker over it.
func Load(path string, opts ...Option) (*Tracker, error) {
	return tracker.Load(path, opts...)
}

// Tracker options and helpers, re-exported so the common embedding path
// needs no second import.
var (
	WithLogger      = tracker.WithLogger
	WithGates       = tracker.WithGates
	WithClock       = tracker.WithClock
	WithPlugin      = tracker.WithPlugin
	WithSwapHandler = tracker.WithSwapHandler
	EnabledGates    = tracker.EnabledGates
)
