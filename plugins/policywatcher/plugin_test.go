package policywatcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/sunset/pkg/lifecycle"
	"github.com/bft-labs/sunset/pkg/policy"
	"github.com/bft-labs/sunset/pkg/tracker"
	"github.com/bft-labs/sunset/plugins/policywatcher"
)

const pollDeadline = 5 * time.Second

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// waitForState polls until the feature reaches the wanted state or the
// deadline expires.
func waitForState(t *testing.T, tr *tracker.Tracker, id policy.FeatureID, want lifecycle.State) {
	t.Helper()
	deadline := time.Now().Add(pollDeadline)
	for time.Now().Before(deadline) {
		if tr.CheckCurrent(id).State == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("feature %q never reached state %v (last: %v)", id, want, tr.CheckCurrent(id).State)
}

func TestPlugin_ReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.toml")

	writeFile(t, path, `
schema = 1
[[feature]]
id            = "old-op"
tier          = "standard"
deprecated_at = 10
`)

	tr, err := tracker.Load(path,
		tracker.WithClock(12),
		policywatcher.WithPolicyWatcher(policywatcher.Config{DebounceDelay: 20 * time.Millisecond}),
	)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := tr.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		if err := tr.Stop(); err != nil {
			t.Errorf("Stop() error = %v", err)
		}
	}()

	if got := tr.CheckCurrent("old-op").State; got != lifecycle.StateWarnAndAllow {
		t.Fatalf("initial state = %v, want StateWarnAndAllow", got)
	}

	// Tighten the schedule on disk; the watcher should pick it up.
	writeFile(t, path, `
schema = 1
[[feature]]
id            = "old-op"
tier          = "standard"
deprecated_at = 10
removal_at    = 12
`)

	waitForState(t, tr, "old-op", lifecycle.StateRefused)
}

func TestPlugin_KeepsPreviousPolicyOnBadEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.toml")

	writeFile(t, path, `
schema = 1
[[feature]]
id            = "old-op"
tier          = "standard"
deprecated_at = 10
removal_at    = 12
`)

	tr, err := tracker.Load(path,
		tracker.WithClock(12),
		policywatcher.WithPolicyWatcher(policywatcher.Config{DebounceDelay: 20 * time.Millisecond}),
	)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ctx := context.Background()
	if err := tr.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() { _ = tr.Stop() }()

	if got := tr.CheckCurrent("old-op").State; got != lifecycle.StateRefused {
		t.Fatalf("initial state = %v, want StateRefused", got)
	}

	// A broken edit must not take down the running policy.
	writeFile(t, path, `
schema = 1
[[feature]]
id            = "old-op"
tier          = "bogus"
deprecated_at = 10
`)
	time.Sleep(500 * time.Millisecond)

	if got := tr.CheckCurrent("old-op").State; got != lifecycle.StateRefused {
		t.Fatalf("state after bad edit = %v, want StateRefused (previous registry)", got)
	}

	// The next good edit recovers.
	writeFile(t, path, `
schema = 1
[[feature]]
id            = "old-op"
tier          = "standard"
deprecated_at = 40
`)

	waitForState(t, tr, "old-op", lifecycle.StateActive)
}

func TestPlugin_DisabledWithoutPolicyFile(t *testing.T) {
	tr, err := tracker.New(nil, policywatcher.WithDefaultPolicyWatcher())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// The watcher disables itself when there is no file to watch; the
	// tracker must still start and stop cleanly.
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := tr.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestPlugin_Name(t *testing.T) {
	p := policywatcher.New(policywatcher.DefaultConfig())
	if p.Name() != "policywatcher" {
		t.Errorf("Name() = %q, want %q", p.Name(), "policywatcher")
	}
}
