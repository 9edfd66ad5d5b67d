package tracker_test

import (
	"fmt"

	"github.com/bft-labs/sunset/pkg/policy"
	"github.com/bft-labs/sunset/pkg/registry"
	"github.com/bft-labs/sunset/pkg/tracker"
)

// ExampleNew demonstrates embedding the tracker with an in-code policy.
func ExampleNew() {
	b := registry.NewBuilder()
	_ = b.Register("op undo --what", policy.Record{
		Tier:         policy.TierStandard,
		DeprecatedAt: 10,
		Replacement:  "op restore",
	})

	t, err := tracker.New(b.Freeze(), tracker.WithClock(12))
	if err != nil {
		fmt.Printf("failed to create tracker: %v\n", err)
		return
	}

	out := t.CheckCurrent("op undo --what")
	fmt.Println(out.State)
	fmt.Println(out.Message)

	// Output:
	// warn
	// op undo --what is deprecated and will stop working in release 16; use op restore instead
}

// ExampleWithGates demonstrates keeping a removed dependency alive through
// its opt-in gate.
func ExampleWithGates() {
	b := registry.NewBuilder()
	_ = b.RegisterDependency("git-subprocess-backend", policy.DependencyRecord{
		Record: policy.Record{Tier: policy.TierStandard, DeprecatedAt: 20},
		Gate:   "legacy-git-backend",
	})

	t, err := tracker.New(b.Freeze(),
		tracker.WithClock(27),
		tracker.WithGates(tracker.EnabledGates("legacy-git-backend")),
	)
	if err != nil {
		fmt.Printf("failed to create tracker: %v\n", err)
		return
	}

	out := t.CheckCurrent("git-subprocess-backend")
	fmt.Println(out.State)
	fmt.Println(out.Gated)
	fmt.Println(out.Message)

	// Output:
	// warn
	// true
	// git-subprocess-backend was removed from the default build in release 26 and is running via the legacy-git-backend opt-in
}

// Example_moduleVersions demonstrates version checking.
func Example_moduleVersions() {
	fmt.Printf("Tracker version: %s\n", tracker.Version)

	versions := tracker.ModuleVersions()
	fmt.Printf("Packages tracked: %d\n", len(versions))

	// Output:
	// Tracker version: 1.0.0
	// Packages tracked: 6
}
