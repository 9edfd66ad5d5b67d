package policy

import (
	"fmt"
	"strings"

	"github.com/bft-labs/sunset/pkg/release"
)

// FeatureID names a command, argument, or dependency path subject to a
// compatibility lifecycle. IDs are stable for the feature's entire lifetime
// and are never reused for an unrelated feature.
type FeatureID string

// FlagID names the opt-in mechanism that keeps a removed dependency's code
// paths reachable. Flag state belongs to the host application; sunset only
// records the identifier.
type FlagID string

// Tier classifies a feature's audience and selects its grace period.
type Tier int

const (
	// TierStandard covers user-facing commands and arguments. Breaking them
	// has a broad blast radius, so they keep working for six releases after
	// the deprecation is announced.
	TierStandard Tier = iota

	// TierNiche covers internal and diagnostic command namespaces. Their
	// audience is assumed small and tolerant of churn; they get two releases.
	TierNiche
)

// Grace periods, in releases, for records without an explicit removal
// release. On a monthly cadence the standard window is roughly six months.
const (
	StandardGraceReleases = 6
	NicheGraceReleases    = 2
)

// String returns a human-readable representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierStandard:
		return "standard"
	case TierNiche:
		return "niche"
	default:
		return "unknown"
	}
}

// ParseTier converts a configuration value into a Tier.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return TierStandard, nil
	case "niche":
		return TierNiche, nil
	default:
		return 0, fmt.Errorf("%w: unknown tier %q", ErrInvalidRecord, s)
	}
}

// Record describes the lifecycle of one deprecated feature.
type Record struct {
	// Tier selects the grace-period policy. Immutable once registered;
	// promoting a feature to a broader audience requires a new FeatureID.
	Tier Tier

	// DeprecatedAt is the release in which the deprecation was announced.
	// Set once, never mutated.
	DeprecatedAt release.Number

	// RemovalAt optionally pins the release in which the feature stops
	// working. Zero means "derive from the tier"; see EffectiveRemoval.
	// When set it must be strictly greater than DeprecatedAt.
	RemovalAt release.Number

	// Replacement optionally names the feature that supersedes this one.
	// It is referenced by identifier only and is used purely for message
	// composition.
	Replacement FeatureID
}

// DependencyRecord describes a deprecated third-party runtime dependency.
// Unlike a plain Record, the dependency's code paths stay reachable after
// the default removal for hosts that enable the Gate, giving the transition
// a second, separately tracked stage.
type DependencyRecord struct {
	Record

	// Gate names the opt-in flag that keeps the dependency reachable after
	// the default removal. Always non-empty; a plain Record has no gate at
	// all, so the distinction is structural.
	Gate FlagID
}

// Validate reports whether the record is internally consistent. Violations
// are configuration bugs: they are rejected at registration time so they
// surface at startup, not at first user invocation.
func (r Record) Validate() error {
	if r.Tier != TierStandard && r.Tier != TierNiche {
		return fmt.Errorf("%w: unknown tier %d", ErrInvalidRecord, int(r.Tier))
	}
	if r.DeprecatedAt <= 0 {
		return fmt.Errorf("%w: deprecation release must be positive, got %d",
			ErrInvalidRecord, r.DeprecatedAt)
	}
	if r.RemovalAt != 0 && r.RemovalAt <= r.DeprecatedAt {
		return fmt.Errorf("%w: removal release %d is not after deprecation release %d",
			ErrInvalidRecord, r.RemovalAt, r.DeprecatedAt)
	}
	return nil
}

// Validate checks the embedded record and the gate invariant.
func (d DependencyRecord) Validate() error {
	if err := d.Record.Validate(); err != nil {
		return err
	}
	if d.Gate == "" {
		return fmt.Errorf("%w: dependency record has an empty gate", ErrInvalidRecord)
	}
	return nil
}

// EffectiveRemoval returns the release in which the feature stops working.
// An explicit RemovalAt wins; otherwise the removal is derived from the tier
// and the announcement release. The result is a pure function of the record,
// so tests can replay any release schedule deterministically.
func (r Record) EffectiveRemoval() release.Number {
	if r.RemovalAt != 0 {
		return r.RemovalAt
	}
	if r.Tier == TierNiche {
		return r.DeprecatedAt + NicheGraceReleases
	}
	return r.DeprecatedAt + StandardGraceReleases
}
