// Package release defines the release counter that drives every lifecycle
// decision in sunset.
//
// The counter is an opaque, monotonically increasing integer supplied by the
// embedding application on every evaluation call. It is read, never computed:
// the host derives it from its own version metadata, and the tracker only
// compares it against the releases recorded in deprecation records.
//
// # Deriving the counter
//
// Hosts on a 0.x cadence (one minor bump per release) can parse the counter
// straight from a version string:
//
//	now, err := release.FromVersion("v0.34.1") // now == 34
//	if err != nil {
//	    return err
//	}
//
// or from the binary's own build metadata:
//
//	if now, ok := release.FromBuildInfo(); ok {
//	    // use now
//	}
//
// Hosts with a different versioning scheme pass a release.Number directly;
// nothing in this module depends on how the integer was obtained.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package release
