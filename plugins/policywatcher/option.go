package policywatcher

import "github.com/bft-labs/sunset/pkg/tracker"

// WithPolicyWatcher returns a tracker Option that reloads the policy file
// when it changes on disk.
//
// Usage:
//
//	t, err := tracker.Load(path,
//	    policywatcher.WithPolicyWatcher(policywatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithPolicyWatcher(cfg Config) tracker.Option {
	plugin := New(cfg)
	return tracker.WithPlugin(plugin)
}

// WithDefaultPolicyWatcher returns a tracker Option that enables policy
// watching with default settings (debounce 100ms).
//
// Usage:
//
//	t, err := tracker.Load(path, policywatcher.WithDefaultPolicyWatcher())
func WithDefaultPolicyWatcher() tracker.Option {
	return WithPolicyWatcher(DefaultConfig())
}
