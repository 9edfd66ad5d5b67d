package tracker

import (
	"strings"

	"github.com/bft-labs/sunset/pkg/log"
	"github.com/bft-labs/sunset/pkg/policy"
	"github.com/bft-labs/sunset/pkg/release"
)

// GateFunc reports whether the host has enabled an opt-in gate. The tracker
// consults it only when a dependency refusal could be bypassed; it never
// caches the answer, so hosts may back it with live flag state.
type GateFunc func(policy.FlagID) bool

// EnabledGates builds a GateFunc from a fixed set of enabled gate names.
// Useful for CLI hosts that collect gates from repeated flags.
func EnabledGates(names ...string) GateFunc {
	set := make(map[policy.FlagID]bool, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			set[policy.FlagID(n)] = true
		}
	}
	return func(id policy.FlagID) bool { return set[id] }
}

// Option configures optional behavior of a Tracker.
type Option func(*options)

// options holds the optional configuration for a Tracker instance.
type options struct {
	logger  log.Logger
	gates   GateFunc
	current release.Number
	plugins []Plugin
	onSwap  func(SwapEvent)
}

// defaultOptions returns options with sensible defaults. The current
// release is derived from the host binary's build version when that
// version follows the 0.x cadence.
func defaultOptions() options {
	o := options{logger: log.NewNoopLogger()}
	if n, ok := release.FromBuildInfo(); ok {
		o.current = n
	}
	return o
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithGates sets the host's gate state. Without it, no gate is ever
// considered enabled and dependency refusals are final.
func WithGates(gates GateFunc) Option {
	return func(o *options) {
		o.gates = gates
	}
}

// WithClock pins the release CheckCurrent evaluates at. Check with an
// explicit release is unaffected.
func WithClock(at release.Number) Option {
	return func(o *options) {
		o.current = at
	}
}

// WithPlugin registers a plugin to be initialized when the tracker starts.
// Plugins are initialized in registration order and shut down in reverse
// order. Built-in plugins ship their own options, like the policy watcher's
// WithPolicyWatcher.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithSwapHandler sets a handler invoked after every registry swap.
// The handler is called synchronously from Swap; implementations should
// return quickly.
func WithSwapHandler(handler func(SwapEvent)) Option {
	return func(o *options) {
		o.onSwap = handler
	}
}
