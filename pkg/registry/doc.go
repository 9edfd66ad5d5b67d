// Package registry holds the frozen mapping from feature identifiers to
// their deprecation records.
//
// Registration happens once, during host startup, through a Builder. The
// builder rejects duplicate feature ids and records that fail validation,
// so configuration mistakes surface before the first feature check runs.
// Freeze turns the builder into an immutable Registry that any number of
// goroutines may query concurrently.
package registry
