// Package catalog declares the regulatory rules the gate enforces. Rules are
// data: each is an independent, named predicate over a frozen Facts snapshot,
// tagged with its citation, channel applicability, and severity. Adding or
// amending a rule is a catalog change, never an engine change.
package catalog

import (
	"contactgate/internal/facts"
	"contactgate/pkg/domain"
)

// Severity controls whether a failing rule blocks the contact or only
// annotates the decision.
type Severity string

const (
	SeverityBlock Severity = "block"
	SeverityWarn  Severity = "warn"
)

// Rule is an immutable, named predicate over Facts.
//
// Evaluate must be pure: no I/O, no clock reads (the attempt time is frozen
// into Facts.ResolvedAt), no mutation of the snapshot. A rule that depends on
// an unresolved fact must fail rather than guess.
type Rule struct {
	ID       string
	Citation string
	Channels []domain.Channel
	Severity Severity
	Evaluate func(f facts.Facts) (passed bool, reason string)
}

// AppliesTo reports whether the rule covers the given channel.
func (r Rule) AppliesTo(ch domain.Channel) bool {
	for _, c := range r.Channels {
		if c == ch {
			return true
		}
	}
	return false
}
