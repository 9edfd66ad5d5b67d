package release

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Number identifies a single release on the host application's fixed cadence.
// Numbers are totally ordered and only ever move forward; the tracker never
// reads a wall clock, so tests can simulate any number of releases by passing
// plain integers.
type Number int

// FromVersion derives the release counter from a semantic version string.
// Projects on a 0.x cadence bump the minor version once per release, so the
// minor version is the counter ("v0.34.1" -> 34). Versions outside the 0.x
// line have no universal mapping to a cadence counter and are rejected;
// callers on other schemes supply the Number directly.
func FromVersion(s string) (Number, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("release: parse version %q: %w", s, err)
	}
	if v.Major() != 0 {
		return 0, fmt.Errorf("release: version %q is not on a 0.x cadence", s)
	}
	return Number(v.Minor()), nil
}

// FromBuildInfo derives the release counter from the running binary's main
// module version. It returns false when build info is unavailable or the
// recorded version does not follow the 0.x cadence (development builds and
// test binaries report "(devel)" or nothing at all).
func FromBuildInfo() (Number, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return 0, false
	}
	n, err := FromVersion(info.Main.Version)
	if err != nil {
		return 0, false
	}
	return n, true
}
