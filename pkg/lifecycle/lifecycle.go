package lifecycle

import (
	"fmt"
	"strings"

	"github.com/bft-labs/sunset/pkg/policy"
	"github.com/bft-labs/sunset/pkg/release"
)

// State represents the lifecycle state of a feature at a given release.
type State int

const (
	// StateActive means the feature works normally with no messaging.
	StateActive State = iota

	// StateWarnAndAllow means the feature still works but every use
	// carries a deprecation warning.
	StateWarnAndAllow

	// StateRefused means invocations of the feature fail.
	StateRefused
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateWarnAndAllow:
		return "warn"
	case StateRefused:
		return "refused"
	default:
		return "unknown"
	}
}

// ParseState converts a textual state name back into a State, for
// command-line filters.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StateActive, nil
	case "warn":
		return StateWarnAndAllow, nil
	case "refused":
		return StateRefused, nil
	default:
		return StateActive, fmt.Errorf("lifecycle: unknown state %q", s)
	}
}

// Decision is the evaluator's verdict for one feature at one release.
// Message is empty only for StateActive.
type Decision struct {
	State   State
	Message string
}

// Evaluate determines the lifecycle state of a plain deprecation record at
// release `at`. It is a pure function of its arguments: the same record and
// release always produce the same decision, and the state never moves
// backward as `at` grows. The removal boundary is inclusive, so a feature
// whose effective removal is N is already refused at N.
func Evaluate(id policy.FeatureID, rec policy.Record, at release.Number) Decision {
	removal := rec.EffectiveRemoval()
	switch {
	case at < rec.DeprecatedAt:
		return Decision{State: StateActive}
	case at < removal:
		return Decision{State: StateWarnAndAllow, Message: warnMessage(id, rec, removal)}
	default:
		return Decision{State: StateRefused, Message: refusedMessage(id, rec, removal)}
	}
}

// EvaluateDependency determines the lifecycle state of a dependency
// transition record. The schedule is identical to Evaluate; only the refusal
// message differs, pointing the user at the opt-in gate instead of leaving
// them stranded. Whether that gate is actually enabled is the caller's
// concern, never this package's.
func EvaluateDependency(id policy.FeatureID, dep policy.DependencyRecord, at release.Number) Decision {
	d := Evaluate(id, dep.Record, at)
	if d.State == StateRefused {
		d.Message += fmt.Sprintf("; enable the %s setting to keep using it", dep.Gate)
	}
	return d
}

// GateBypass returns the decision for a refused dependency whose opt-in gate
// the host reports as enabled: the legacy path runs, with a warning naming
// the opt-in that keeps it alive.
func GateBypass(id policy.FeatureID, dep policy.DependencyRecord) Decision {
	msg := fmt.Sprintf("%s was removed from the default build in release %d and is running via the %s opt-in",
		id, dep.EffectiveRemoval(), dep.Gate)
	return Decision{State: StateWarnAndAllow, Message: msg}
}

func warnMessage(id policy.FeatureID, rec policy.Record, removal release.Number) string {
	msg := fmt.Sprintf("%s is deprecated and will stop working in release %d", id, removal)
	if rec.Replacement != "" {
		msg += fmt.Sprintf("; use %s instead", rec.Replacement)
	}
	return msg
}

func refusedMessage(id policy.FeatureID, rec policy.Record, removal release.Number) string {
	msg := fmt.Sprintf("%s was removed in release %d", id, removal)
	if rec.Replacement != "" {
		msg += fmt.Sprintf("; use %s instead", rec.Replacement)
	}
	return msg
}
