// Package policywatcher provides policy file monitoring for sunset.
// When enabled, it watches the tracker's policy file for changes and
// reloads the registry so deprecation schedules can be tightened or
// extended without restarting the host.
package policywatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/sunset/pkg/log"
	"github.com/bft-labs/sunset/pkg/tracker"
)

// Plugin implements policy file watching. It monitors the directory holding
// the policy file, so editors that replace the file on save are still seen,
// and triggers the tracker's Reload after a debounce window.
type Plugin struct {
	mu sync.RWMutex

	// Configuration
	debounceDelay time.Duration

	// Runtime state
	policyPath string
	logger     log.Logger
	reload     func() error
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	debounce   *time.Timer
}

// Config holds configuration options for the policy watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// reloading, so editors that write in bursts trigger one reload.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new policy watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "policywatcher"
}

// Initialize sets up the plugin and starts the watch loop. A tracker built
// from an in-code registry has no policy file; the watcher then disables
// itself rather than failing the start.
func (p *Plugin) Initialize(ctx context.Context, cfg tracker.PluginConfig) error {
	p.mu.Lock()
	p.policyPath = cfg.PolicyPath
	p.logger = cfg.Logger
	p.reload = cfg.Reload
	p.mu.Unlock()

	if p.policyPath == "" {
		p.logger.Warn("policy watcher disabled: tracker has no policy file")
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("policy watcher initialized", log.String("path", p.policyPath))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the watch loop and waits for it to exit.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// watchLoop watches the policy file's directory for changes.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("policy watcher: failed to create watcher", log.Err(err))
		return
	}
	defer watcher.Close()

	dir := filepath.Dir(p.policyPath)
	if err := watcher.Add(dir); err != nil {
		p.logger.Error("policy watcher: failed to watch directory",
			log.String("dir", dir), log.Err(err))
		return
	}

	target := filepath.Base(p.policyPath)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(p.debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("policy watcher: watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(delay time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(delay, p.doReload)
}

// doReload reloads the policy through the tracker. On failure the tracker
// keeps serving the previous registry; the next successful edit recovers.
func (p *Plugin) doReload() {
	if err := p.reload(); err != nil {
		p.logger.Error("policy watcher: reload failed, keeping previous policy",
			log.String("path", p.policyPath), log.Err(err))
		return
	}
	p.logger.Info("policy watcher: policy reloaded", log.String("path", p.policyPath))
}
