// Package engine aggregates per-rule verdicts into a single decision. It is
// generic over the catalog: rule changes never touch this package.
package engine

import (
	"contactgate/internal/catalog"
	"contactgate/internal/facts"
	"contactgate/pkg/domain"
)

// Engine orchestrates the catalog against resolved facts. It holds no mutable
// state and never suspends; evaluation is a pure computation.
type Engine struct {
	catalog *catalog.Catalog
}

// New constructs an Engine over a validated catalog.
func New(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Evaluate runs every applicable rule in catalog-declaration order and
// aggregates the verdicts. Aggregation is commutative; the fixed order exists
// for audit reproducibility and the primary-reason tie-break.
//
// allowed = no block-severity rule failed. Warn failures never block but are
// always retained. The primary blocking reason is the first failing block
// rule in catalog order, deterministic across repeated evaluations of the
// same (attempt, facts) pair.
func (e *Engine) Evaluate(attempt ContactAttempt, f facts.Facts) Decision {
	d := Decision{
		ID:          domain.NewDecisionID(),
		Allowed:     true,
		EvaluatedAt: attempt.RequestedAt,
	}

	for _, rule := range e.catalog.Rules() {
		if !rule.AppliesTo(attempt.Channel) {
			continue
		}
		passed, reason := rule.Evaluate(f)
		d.Outcomes = append(d.Outcomes, RuleOutcome{
			RuleID:   rule.ID,
			Citation: rule.Citation,
			Severity: rule.Severity,
			Passed:   passed,
			Reason:   reason,
		})
		if !passed && rule.Severity == catalog.SeverityBlock {
			d.Allowed = false
			if d.BlockedBy == "" {
				d.BlockedBy = rule.ID
			}
		}
	}

	return d
}

// FailClosed builds the safe decision returned when the gate cannot complete
// a normal evaluation (unresolvable facts, audit unavailable). The reason is
// one of the synthetic BlockedBy constants.
func FailClosed(attempt ContactAttempt, reason, message string) Decision {
	return Decision{
		ID:          domain.NewDecisionID(),
		Allowed:     false,
		BlockedBy:   reason,
		EvaluatedAt: attempt.RequestedAt,
		Outcomes: []RuleOutcome{{
			RuleID:   reason,
			Citation: "fail-closed gate policy",
			Severity: catalog.SeverityBlock,
			Passed:   false,
			Reason:   message,
		}},
	}
}
