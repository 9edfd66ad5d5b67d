package policy

import "errors"

// Registration-time errors. Both indicate configuration bugs, so hosts must
// treat them as fatal during startup rather than deferring them to the first
// user invocation. They can be checked with errors.Is.
var (
	// ErrDuplicateFeature is returned when a FeatureID is registered twice.
	// Registration is append-only; silently overwriting a policy entry is
	// never permitted.
	ErrDuplicateFeature = errors.New("sunset: feature already registered")

	// ErrInvalidRecord is returned when a deprecation record is internally
	// inconsistent, e.g. its removal release is not after its deprecation
	// release, or a dependency record carries no gate.
	ErrInvalidRecord = errors.New("sunset: invalid deprecation record")
)
