// Package policy contains the deprecation records and grace-period rules at
// the core of sunset.
//
// This is the innermost layer: no infrastructure dependencies, no I/O, only
// the data model and the pure derivations on it.
//
// # Entities
//
//   - [Record]: one deprecated command or argument (tier, announcement
//     release, optional explicit removal release, optional replacement)
//   - [DependencyRecord]: a deprecated third-party dependency; adds the
//     opt-in Gate that keeps its code paths reachable after removal
//   - [Tier]: audience classification selecting the grace period
//
// # Grace periods
//
// When a record carries no explicit removal release, the effective removal
// is derived from the tier: standard features keep working for six releases
// after the announcement, niche (internal/diagnostic) namespaces for two.
// The derivation never consults a wall clock, only the abstract release
// counter, so tests can replay any schedule deterministically.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package policy
