package catalog

import (
	"fmt"

	"contactgate/internal/platform/config"
	dErrors "contactgate/pkg/domain-errors"
)

// Catalog is a fixed, ordered rule set. Declaration order is the audit
// tie-break order: when several block rules fail, the first one in the
// catalog is the decision's primary blocking reason.
type Catalog struct {
	rules []Rule
}

// New builds the default catalog from policy configuration and validates it.
// A malformed rule or policy is a startup error, never a per-call failure.
func New(policy config.Policy) (*Catalog, error) {
	rules, err := defaultRules(policy)
	if err != nil {
		return nil, err
	}
	c := &Catalog{rules: rules}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Rules returns the catalog in declaration order. Callers must not mutate
// the returned slice.
func (c *Catalog) Rules() []Rule {
	return c.rules
}

// Len reports the number of declared rules.
func (c *Catalog) Len() int { return len(c.rules) }

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.rules))
	for i, r := range c.rules {
		if r.ID == "" {
			return dErrors.New(dErrors.CodeCatalogConfig, fmt.Sprintf("rule at index %d has no id", i))
		}
		if seen[r.ID] {
			return dErrors.New(dErrors.CodeCatalogConfig, "duplicate rule id: "+r.ID)
		}
		seen[r.ID] = true
		if r.Citation == "" {
			return dErrors.New(dErrors.CodeCatalogConfig, "rule "+r.ID+" has no citation")
		}
		if len(r.Channels) == 0 {
			return dErrors.New(dErrors.CodeCatalogConfig, "rule "+r.ID+" has no channel applicability")
		}
		for _, ch := range r.Channels {
			if !ch.IsValid() {
				return dErrors.New(dErrors.CodeCatalogConfig, "rule "+r.ID+" has invalid channel "+ch.String())
			}
		}
		if r.Severity != SeverityBlock && r.Severity != SeverityWarn {
			return dErrors.New(dErrors.CodeCatalogConfig, "rule "+r.ID+" has invalid severity")
		}
		if r.Evaluate == nil {
			return dErrors.New(dErrors.CodeCatalogConfig, "rule "+r.ID+" has no evaluate function")
		}
	}
	return nil
}
