// Package lifecycle evaluates where a feature stands on its deprecation
// schedule.
//
// Every feature moves one way through three states as the release counter
// grows: Active (works silently), WarnAndAllow (works, but each use warns),
// Refused (invocations fail). The evaluator is pure: it reads nothing but
// the record and the release number it is handed, so the same inputs always
// yield the same Decision and results are trivially cacheable.
//
// # Usage
//
// Evaluate a record directly:
//
//	rec := policy.Record{Tier: policy.TierStandard, DeprecatedAt: 10}
//	d := lifecycle.Evaluate("old-op", rec, 12)
//	// d.State == lifecycle.StateWarnAndAllow
//
// Most callers go through tracker.Check instead, which layers registry
// lookup and gate resolution on top of this package.
//
// # State Machine
//
// Valid state transitions as the release counter grows:
//   - Active -> WarnAndAllow (at the deprecation release)
//   - WarnAndAllow -> Refused (at the effective removal release, inclusive)
//
// There are no backward transitions.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package lifecycle
