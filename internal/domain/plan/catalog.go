package plan

import "strings"

// Catalog answers plan lookups over an immutable table.
type Catalog struct {
	tiers Config
}

// NewCatalog copies cfg; later changes to cfg do not leak into the catalog.
func NewCatalog(cfg Config) *Catalog {
	return &Catalog{tiers: cfg.clone()}
}

// ResolvePlan normalises a stored plan identifier. Unknown values become the lowest tier.
func (c *Catalog) ResolvePlan(raw string) Tier {
	v := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range orderedTiers {
		if v == string(t) {
			return t
		}
	}
	if t, ok := legacyAliases[v]; ok {
		return t
	}
	return TierStarter
}

// Limits returns the quotas of tier. A tier absent from the table gets all-zero limits.
func (c *Catalog) Limits(t Tier) Limits {
	return c.tiers[t].Limits
}

// Capabilities returns a copy of the capability flags of tier.
func (c *Catalog) Capabilities(t Tier) map[Capability]bool {
	out := make(map[Capability]bool, len(AllCapabilities))
	for _, capability := range AllCapabilities {
		out[capability] = c.tiers[t].Capabilities[capability]
	}
	return out
}

// HasCapability is false for unknown capability names.
func (c *Catalog) HasCapability(t Tier, capability Capability) bool {
	if !capability.IsKnown() {
		return false
	}
	return c.tiers[t].Capabilities[capability]
}

// Rank grows strictly with tier power. Unknown tiers rank as the lowest tier.
func (c *Catalog) Rank(t Tier) int {
	for i, known := range orderedTiers {
		if known == t {
			return i
		}
	}
	return 0
}

// Compare returns -1, 0 or 1 when a is lower than, equal to or higher than b.
func (c *Catalog) Compare(a, b Tier) int {
	ra, rb := c.Rank(a), c.Rank(b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	return 0
}

// NextTier returns the tier just above t, or "" for the top tier.
func (c *Catalog) NextTier(t Tier) Tier {
	r := c.Rank(t)
	if r+1 >= len(orderedTiers) {
		return ""
	}
	return orderedTiers[r+1]
}

// Tiers lists every tier in ascending order.
func (c *Catalog) Tiers() []Tier {
	out := make([]Tier, len(orderedTiers))
	copy(out, orderedTiers)
	return out
}
