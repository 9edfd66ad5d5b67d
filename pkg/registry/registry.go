package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bft-labs/sunset/pkg/policy"
)

// ErrFrozen is returned when registering on a builder whose registry has
// already been frozen. The single-writer window ends at Freeze.
var ErrFrozen = errors.New("sunset: registry frozen")

// Entry is the registry's uniform view of one registered feature. Gate is
// empty for plain deprecation records.
type Entry struct {
	ID     policy.FeatureID
	Record policy.Record
	Gate   policy.FlagID
}

// IsDependency reports whether the entry was registered as a third-party
// dependency transition and therefore carries an opt-in gate.
func (e Entry) IsDependency() bool { return e.Gate != "" }

// Dependency reconstructs the DependencyRecord for a dependency entry.
func (e Entry) Dependency() policy.DependencyRecord {
	return policy.DependencyRecord{Record: e.Record, Gate: e.Gate}
}

// Builder accumulates deprecation records during startup configuration
// loading. It is the single writer of the registry it builds: populate it
// from one goroutine, then Freeze it. A Builder is not safe for concurrent
// use; the frozen Registry is.
type Builder struct {
	entries map[policy.FeatureID]Entry
	frozen  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[policy.FeatureID]Entry)}
}

// Register adds a plain deprecation record for id. It fails with
// policy.ErrDuplicateFeature when id is already present and with
// policy.ErrInvalidRecord when the record is inconsistent, so a broken
// policy is caught while the host is still starting up.
func (b *Builder) Register(id policy.FeatureID, rec policy.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("register %q: %w", id, err)
	}
	return b.add(Entry{ID: id, Record: rec})
}

// RegisterDependency adds a dependency transition record for id. The same
// duplicate and validity rules apply as for Register.
func (b *Builder) RegisterDependency(id policy.FeatureID, rec policy.DependencyRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("register %q: %w", id, err)
	}
	return b.add(Entry{ID: id, Record: rec.Record, Gate: rec.Gate})
}

func (b *Builder) add(e Entry) error {
	if b.frozen {
		return fmt.Errorf("register %q: %w", e.ID, ErrFrozen)
	}
	if e.ID == "" {
		return fmt.Errorf("register: %w: empty feature id", policy.ErrInvalidRecord)
	}
	if _, ok := b.entries[e.ID]; ok {
		return fmt.Errorf("register %q: %w", e.ID, policy.ErrDuplicateFeature)
	}
	b.entries[e.ID] = e
	return nil
}

// Freeze ends the single-writer window and returns the immutable registry.
// Further Register calls on the builder fail with ErrFrozen, which makes the
// initialization barrier mechanical rather than conventional.
func (b *Builder) Freeze() *Registry {
	b.frozen = true
	ids := make([]policy.FeatureID, 0, len(b.entries))
	for id := range b.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &Registry{entries: b.entries, ids: ids}
}

// Registry is a frozen set of deprecation records keyed by FeatureID. It is
// immutable after construction, so lookups are safe from any number of
// goroutines without locking.
type Registry struct {
	entries map[policy.FeatureID]Entry
	ids     []policy.FeatureID
}

// Empty returns a registry with no entries: a policy under which every
// feature is fully supported.
func Empty() *Registry {
	return NewBuilder().Freeze()
}

// Lookup returns the entry for id. Absence means the feature is not
// deprecated; callers must treat that as full support, not as an error.
func (r *Registry) Lookup(id policy.FeatureID) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of registered features.
func (r *Registry) Len() int { return len(r.entries) }

// Features returns all registered ids in lexical order, for deterministic
// listings.
func (r *Registry) Features() []policy.FeatureID {
	out := make([]policy.FeatureID, len(r.ids))
	copy(out, r.ids)
	return out
}
