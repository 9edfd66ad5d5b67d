package tracker

import (
	"context"

	"github.com/bft-labs/sunset/pkg/log"
)

// Plugin extends the tracker with optional background functionality.
// Plugins are initialized in registration order when the tracker starts
// and shut down in reverse order when it stops.
type Plugin interface {
	// Name returns a unique identifier for the plugin.
	Name() string

	// Initialize is called when the tracker starts. The context is
	// canceled when the tracker stops; long-running plugins should
	// watch it.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called when the tracker stops, after the Initialize
	// context has been canceled.
	Shutdown(ctx context.Context) error
}

// BasePlugin provides no-op Initialize and Shutdown implementations.
// Embed it in plugins that only need one of the two hooks.
type BasePlugin struct{}

// Initialize does nothing.
func (BasePlugin) Initialize(ctx context.Context, cfg PluginConfig) error { return nil }

// Shutdown does nothing.
func (BasePlugin) Shutdown(ctx context.Context) error { return nil }

// PluginConfig gives plugins access to the tracker's environment.
type PluginConfig struct {
	// PolicyPath is the file the tracker was loaded from. Empty when the
	// registry was built in code.
	PolicyPath string

	// Logger is the tracker's logger.
	Logger log.Logger

	// Reload re-reads the policy file and swaps in the new registry.
	// It returns ErrNoPolicySource when there is no file to reload.
	Reload func() error
}
