// Package version wraps the Solidity compiler version used to gate
// version-sensitive behavior: EVM instruction arity, optimized PUSH
// variants, and other per-release quirks that the rest of the module
// needs to consult.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a parsed solc version, ordered the way semver.Version orders
// Major/Minor/Patch.
type Version struct {
	inner *semver.Version
	raw   string
}

// New wraps an already-parsed semver.Version.
func New(v *semver.Version) Version {
	return Version{inner: v, raw: v.Original()}
}

// Parse parses a version string like "0.8.20" or "0.8".
func Parse(s string) (Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return Version{}, fmt.Errorf("invalid solc version %q: %w", s, err)
	}
	return Version{inner: v, raw: s}, nil
}

// MustParse parses a version string and panics on error. Intended for
// package-level defaults and tests, never for untrusted input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether the version was never set.
func (v Version) IsZero() bool {
	return v.inner == nil
}

// String renders the version as solc does, e.g. "0.8.20".
func (v Version) String() string {
	if v.inner == nil {
		return "0.0.0"
	}
	return fmt.Sprintf("%d.%d.%d", v.inner.Major(), v.inner.Minor(), v.inner.Patch())
}

// LessThan reports whether v < other.
func (v Version) LessThan(other Version) bool {
	return v.inner.LessThan(other.inner)
}

// GreaterThanOrEqual reports whether v >= other.
func (v Version) GreaterThanOrEqual(other Version) bool {
	return !v.inner.LessThan(other.inner)
}

// Satisfies reports whether v satisfies the given semver constraint
// expression, e.g. ">=0.8.0".
func (v Version) Satisfies(constraint string) bool {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}
	return c.Check(v.inner)
}

var pragmaRe = regexp.MustCompile(`pragma\s+solidity\s+([^;]+);`)
var constraintRe = regexp.MustCompile(`^(\^|~|>=|<=|>|<|=)?\s*(\d+\.\d+(?:\.\d+)?)`)

// Detected is the version information extracted from a pragma statement.
type Detected struct {
	Raw        string
	Constraint string
	Version    Version
}

// Detect extracts the first "pragma solidity ...;" version constraint
// from source text. Returns an error if no pragma is present or it could
// not be parsed; callers in this module treat that as a diagnostic
// warning rather than a hard failure (see project.AssignDependencies).
func Detect(source string) (*Detected, error) {
	matches := pragmaRe.FindStringSubmatch(source)
	if matches == nil {
		return nil, fmt.Errorf("no pragma solidity statement found")
	}

	raw := strings.TrimSpace(matches[1])
	constraintMatches := constraintRe.FindStringSubmatch(raw)
	if constraintMatches == nil {
		return nil, fmt.Errorf("invalid pragma version: %s", raw)
	}

	v, err := Parse(constraintMatches[2])
	if err != nil {
		return nil, fmt.Errorf("invalid version in pragma: %w", err)
	}

	return &Detected{Raw: raw, Constraint: constraintMatches[1], Version: v}, nil
}
