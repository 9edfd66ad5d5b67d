// Package tracker provides an embeddable deprecation tracker for CLI tools
// and services that retire features on a fixed release cadence.
//
// A Tracker wraps a frozen registry of deprecation records and answers one
// question: may this feature still be used at this release? The answer is an
// Outcome carrying the lifecycle state and a ready-to-print message.
//
// # Basic Usage
//
// Load a policy file and check a feature before executing it:
//
//	t, err := tracker.Load("deprecations.toml", tracker.WithClock(34))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out := t.CheckCurrent("op undo --what")
//	switch out.State {
//	case lifecycle.StateWarnAndAllow:
//	    fmt.Fprintln(os.Stderr, "Warning: "+out.Message)
//	case lifecycle.StateRefused:
//	    fmt.Fprintln(os.Stderr, "Error: "+out.Message)
//	    os.Exit(1)
//	}
//
// Registries can also be built in code with registry.NewBuilder and passed
// to New, for hosts that compile their deprecation policy in.
//
// # Gates
//
// Dependency transitions carry an opt-in gate. Supply the host's flag state
// with WithGates and a refused dependency whose gate is enabled keeps
// working, with a warning, until the gate's own record expires:
//
//	t, err := tracker.New(reg, tracker.WithGates(tracker.EnabledGates("legacy-git-backend")))
//
// # Hot Reload
//
// Trackers created with Load can Reload their policy file; the registry is
// swapped atomically and in-flight checks are unaffected. The
// plugins/policywatcher package does this automatically on file changes:
//
//	import "github.com/bft-labs/sunset/plugins/policywatcher"
//
//	t, err := tracker.Load(path, policywatcher.WithDefaultPolicyWatcher())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := t.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Stop()
//
// Start and Stop only manage plugins; a tracker without plugins never needs
// them.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// Use [ModuleVersions] to get versions of all sunset packages and
// [CompatibilityMatrix] to check minimum compatible versions. See version.go
// for details.
package tracker
