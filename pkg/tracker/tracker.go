package tracker

import (
	"context"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/bft-labs/sunset/internal/policyfile"
	"github.com/bft-labs/sunset/pkg/lifecycle"
	"github.com/bft-labs/sunset/pkg/log"
	"github.com/bft-labs/sunset/pkg/policy"
	"github.com/bft-labs/sunset/pkg/registry"
	"github.com/bft-labs/sunset/pkg/release"
)

// Outcome is the result of checking one feature invocation.
type Outcome struct {
	// Feature is the id that was checked.
	Feature policy.FeatureID

	// State is the lifecycle verdict at the checked release.
	State lifecycle.State

	// Message is the user-facing explanation. Empty when State is
	// StateActive.
	Message string

	// Gate names the opt-in flag for dependency entries, empty otherwise.
	Gate policy.FlagID

	// Gated reports that a refusal was bypassed because the host enabled
	// the gate.
	Gated bool
}

// SwapEvent describes one registry swap.
type SwapEvent struct {
	// Path is the policy file the tracker reloads from. Empty when the
	// registry was built in code.
	Path string

	// PreviousCount and CurrentCount are the registry entry counts before
	// and after the swap.
	PreviousCount int
	CurrentCount  int
}

// Tracker answers "may this feature still be used at this release" for an
// embedding application. Use New or Load to create an instance; Check and
// CheckCurrent are safe to call concurrently from any goroutine.
type Tracker struct {
	mu      sync.RWMutex
	reg     *registry.Registry
	path    string
	current release.Number
	running bool
	cancel  context.CancelFunc

	gates   GateFunc
	logger  log.Logger
	plugins []Plugin
	onSwap  func(SwapEvent)
}

// New creates a tracker over an already-frozen registry. A nil registry is
// treated as empty: every feature reports as fully supported.
func New(reg *registry.Registry, opts ...Option) (*Tracker, error) {
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	if reg == nil {
		reg = registry.Empty()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Tracker{
		reg:     reg,
		current: o.current,
		gates:   o.gates,
		logger:  o.logger,
		plugins: o.plugins,
		onSwap:  o.onSwap,
	}, nil
}

// Load reads a policy file, freezes its registry, and creates a tracker
// that can Reload from the same path.
func Load(path string, opts ...Option) (*Tracker, error) {
	reg, err := policyfile.Load(path)
	if err != nil {
		return nil, err
	}
	t, err := New(reg, opts...)
	if err != nil {
		return nil, err
	}
	t.path = path
	return t, nil
}

// Check evaluates one feature at the given release. Unregistered features
// are fully supported. For dependency entries a refusal may be bypassed by
// the host's gate state; when the gate itself carries a deprecation record,
// that record is evaluated at the same release, so removing the gate later
// re-refuses the dependency.
func (t *Tracker) Check(id policy.FeatureID, at release.Number) Outcome {
	t.mu.RLock()
	reg := t.reg
	gates := t.gates
	t.mu.RUnlock()

	e, ok := reg.Lookup(id)
	if !ok {
		return Outcome{Feature: id, State: lifecycle.StateActive}
	}

	if !e.IsDependency() {
		d := lifecycle.Evaluate(id, e.Record, at)
		return Outcome{Feature: id, State: d.State, Message: d.Message}
	}

	dep := e.Dependency()
	d := lifecycle.EvaluateDependency(id, dep, at)
	out := Outcome{Feature: id, State: d.State, Message: d.Message, Gate: dep.Gate}

	if d.State != lifecycle.StateRefused || gates == nil || !gates(dep.Gate) {
		return out
	}

	// The gate is enabled, so the legacy path stays available but keeps
	// warning.
	bypass := lifecycle.GateBypass(id, dep)
	out.State = bypass.State
	out.Message = bypass.Message
	out.Gated = true

	// Second stage: the gate may be registered with its own record. Once
	// the gate is refused, the opt-in no longer exists and the dependency
	// is refused for good.
	gateEntry, ok := reg.Lookup(policy.FeatureID(dep.Gate))
	if !ok {
		return out
	}
	switch gd := lifecycle.Evaluate(policy.FeatureID(dep.Gate), gateEntry.Record, at); gd.State {
	case lifecycle.StateRefused:
		plain := lifecycle.Evaluate(id, dep.Record, at)
		out.State = lifecycle.StateRefused
		out.Gated = false
		out.Message = fmt.Sprintf("%s; the %s opt-in was removed in release %d",
			plain.Message, dep.Gate, gateEntry.Record.EffectiveRemoval())
	case lifecycle.StateWarnAndAllow:
		out.Message += fmt.Sprintf("; the %s opt-in stops working in release %d",
			dep.Gate, gateEntry.Record.EffectiveRemoval())
	}
	return out
}

// CheckCurrent evaluates one feature at the tracker's current release, set
// with WithClock or derived from build info.
func (t *Tracker) CheckCurrent(id policy.FeatureID) Outcome {
	t.mu.RLock()
	at := t.current
	t.mu.RUnlock()
	return t.Check(id, at)
}

// CurrentRelease returns the release CheckCurrent evaluates at.
func (t *Tracker) CurrentRelease() release.Number {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Registry returns the tracker's current frozen registry.
func (t *Tracker) Registry() *registry.Registry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.reg
}

// PolicyPath returns the policy file backing this tracker, empty when the
// registry was built in code.
func (t *Tracker) PolicyPath() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.path
}

// Swap atomically replaces the tracker's registry. Each registry stays
// frozen; only the pointer moves. In-flight Check calls finish against the
// registry they started with.
func (t *Tracker) Swap(reg *registry.Registry) {
	if reg == nil {
		reg = registry.Empty()
	}

	t.mu.Lock()
	previous := t.reg.Len()
	t.reg = reg
	path := t.path
	onSwap := t.onSwap
	t.mu.Unlock()

	t.logger.Info("policy registry swapped",
		log.Int("previous_entries", previous),
		log.Int("entries", reg.Len()))

	if onSwap != nil {
		onSwap(SwapEvent{Path: path, PreviousCount: previous, CurrentCount: reg.Len()})
	}
}

// Reload re-reads the policy file and swaps in the new registry. On any
// load failure the tracker keeps serving the previous registry.
func (t *Tracker) Reload() error {
	t.mu.RLock()
	path := t.path
	t.mu.RUnlock()

	if path == "" {
		return ErrNoPolicySource
	}

	reg, err := policyfile.Load(path)
	if err != nil {
		return err
	}
	t.Swap(reg)
	return nil
}

// Start initializes registered plugins. Returns immediately afterwards;
// the tracker itself runs no background work. The provided context bounds
// all plugin activity.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.running = true
	path := t.path
	t.mu.Unlock()

	// The lock is not held here: plugins may call back into the tracker
	// (Reload, Check) from Initialize.
	cfg := PluginConfig{
		PolicyPath: path,
		Logger:     t.logger,
		Reload:     t.Reload,
	}
	for _, p := range t.plugins {
		if err := p.Initialize(runCtx, cfg); err != nil {
			t.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			cancel()
			t.mu.Lock()
			t.running = false
			t.cancel = nil
			t.mu.Unlock()
			return err
		}
		t.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	return nil
}

// Stop cancels the plugin context and shuts plugins down in reverse
// registration order. Shutdown errors are logged, not returned, so one
// misbehaving plugin cannot block the others.
func (t *Tracker) Stop() error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return ErrNotRunning
	}
	t.running = false
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	shutdownCtx := context.Background()
	for i := len(t.plugins) - 1; i >= 0; i-- {
		p := t.plugins[i]
		if err := p.Shutdown(shutdownCtx); err != nil {
			t.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
		} else {
			t.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
		}
	}
	return nil
}

// Running reports whether Start has been called without a matching Stop.
func (t *Tracker) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}

// validateModuleVersions checks that all package versions are compatible.
// Returns an error if any package version is below its minimum compatible
// version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"policy":    {policy.Version, policy.MinCompatibleVersion},
		"registry":  {registry.Version, registry.MinCompatibleVersion},
		"lifecycle": {lifecycle.Version, lifecycle.MinCompatibleVersion},
		"release":   {release.Version, release.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		v, err := semver.NewVersion(m.version)
		if err != nil {
			return fmt.Errorf("module %s has malformed version %q: %w", name, m.version, err)
		}
		minV, err := semver.NewVersion(m.minVersion)
		if err != nil {
			return fmt.Errorf("module %s has malformed minimum version %q: %w", name, m.minVersion, err)
		}
		if v.LessThan(minV) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}
