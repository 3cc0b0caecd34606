package propgen

import "strings"

// Policy holds the per-key substitution flags. The zero value substitutes
// the key normally on every iteration.
type Policy struct {
	// ClearOnZero empties the value on inner iteration 0. Use it for keys
	// that read an input produced by an earlier inner iteration.
	ClearOnZero bool

	// FirstInnerOnly empties the value on every inner iteration except 0.
	// Use it for seed inputs consumed only when an outer iteration starts.
	FirstInnerOnly bool

	// PreviousInner substitutes loop tokens with inner-1 instead of inner.
	// The inner index must be numeric.
	PreviousInner bool
}

// IsZero reports whether no flag is set
func (p Policy) IsZero() bool {
	return p == Policy{}
}

// String returns a compact flag list for display
func (p Policy) String() string {
	var flags []string
	if p.ClearOnZero {
		flags = append(flags, "clear-on-zero")
	}
	if p.FirstInnerOnly {
		flags = append(flags, "first-inner-only")
	}
	if p.PreviousInner {
		flags = append(flags, "previous-inner")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

// Policies maps trimmed property keys to their policy
type Policies map[string]Policy

// DefaultPolicies returns the policy table used when none is supplied.
// simulated.vehicle.dat.file is read from the previous inner loop's
// assignment, which does not exist on inner iteration 0.
func DefaultPolicies() Policies {
	return Policies{
		"simulated.vehicle.dat.file": {ClearOnZero: true},
	}
}

// For returns the policy of a template key, ignoring surrounding whitespace
func (p Policies) For(key string) Policy {
	if p == nil {
		return Policy{}
	}
	if pol, ok := p[key]; ok {
		return pol
	}
	return p[strings.TrimSpace(key)]
}
