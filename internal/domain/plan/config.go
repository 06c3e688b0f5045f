package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Config is the full plan table, one entry per tier.
type Config map[Tier]TierConfig

func capsOf(enabled ...Capability) map[Capability]bool {
	caps := make(map[Capability]bool, len(AllCapabilities))
	for _, c := range AllCapabilities {
		caps[c] = false
	}
	for _, c := range enabled {
		caps[c] = true
	}
	return caps
}

// DefaultConfig returns a fresh copy of the built-in plan table.
func DefaultConfig() Config {
	return Config{
		TierStarter: {
			Limits: Limits{
				MaxProjects:        1,
				MaxActiveProjects:  1,
				MaxTeamMembers:     1,
				MaxUpdatesPerMonth: 4,
				MaxMediaPerProject: 10,
				MaxDocuments:       5,
				MaxVideos:          0,
			},
			Capabilities: capsOf(),
		},
		TierPublie: {
			Limits: Limits{
				MaxProjects:        3,
				MaxActiveProjects:  2,
				MaxTeamMembers:     2,
				MaxUpdatesPerMonth: 12,
				MaxMediaPerProject: 30,
				MaxDocuments:       15,
				MaxVideos:          1,
			},
			Capabilities: capsOf(CapWhatsappAlerts),
		},
		TierVerifie: {
			Limits: Limits{
				MaxProjects:        10,
				MaxActiveProjects:  5,
				MaxTeamMembers:     5,
				MaxUpdatesPerMonth: 40,
				MaxMediaPerProject: 60,
				MaxDocuments:       40,
				MaxVideos:          3,
			},
			Capabilities: capsOf(CapLeadScoring, CapLeadExport, CapAdvancedAnalytics, CapFeaturedListing, CapWhatsappAlerts),
		},
		TierPartenaire: {
			Limits: Limits{
				MaxProjects:        30,
				MaxActiveProjects:  15,
				MaxTeamMembers:     15,
				MaxUpdatesPerMonth: Unlimited,
				MaxMediaPerProject: 120,
				MaxDocuments:       100,
				MaxVideos:          10,
			},
			Capabilities: capsOf(CapLeadScoring, CapLeadExport, CapAdvancedAnalytics, CapFeaturedListing,
				CapWhatsappAlerts, CapABTesting, CapPrioritySupport, CapCustomBranding),
		},
		TierEnterprise: {
			Limits: Limits{
				MaxProjects:        Unlimited,
				MaxActiveProjects:  Unlimited,
				MaxTeamMembers:     Unlimited,
				MaxUpdatesPerMonth: Unlimited,
				MaxMediaPerProject: Unlimited,
				MaxDocuments:       Unlimited,
				MaxVideos:          Unlimited,
			},
			Capabilities: capsOf(AllCapabilities...),
		},
	}
}

func (c Config) clone() Config {
	out := make(Config, len(c))
	for t, tc := range c {
		out[t] = tc.clone()
	}
	return out
}

type limitsOverride struct {
	MaxProjects        *int `json:"maxProjects"`
	MaxActiveProjects  *int `json:"maxActiveProjects"`
	MaxTeamMembers     *int `json:"maxTeamMembers"`
	MaxUpdatesPerMonth *int `json:"maxUpdatesPerMonth"`
	MaxMediaPerProject *int `json:"maxMediaPerProject"`
	MaxDocuments       *int `json:"maxDocuments"`
	MaxVideos          *int `json:"maxVideos"`
}

type tierOverride struct {
	Limits       *limitsOverride `json:"limits"`
	Capabilities map[string]bool `json:"capabilities"`
}

// ApplyOverrides merges a deployment-time JSON override into base.
// On any problem the untouched base copy is returned together with the error,
// so a malformed override never replaces the defaults partially.
func ApplyOverrides(base Config, raw []byte) (Config, error) {
	result := base.clone()
	if len(bytes.TrimSpace(raw)) == 0 {
		return result, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var overrides map[string]tierOverride
	if err := dec.Decode(&overrides); err != nil {
		return base.clone(), fmt.Errorf("%w: %v", ErrInvalidOverride, err)
	}

	for rawTier, ov := range overrides {
		tier := Tier(strings.ToLower(strings.TrimSpace(rawTier)))
		tc, ok := result[tier]
		if !ok {
			return base.clone(), fmt.Errorf("%w: unknown tier %q", ErrInvalidOverride, rawTier)
		}
		if ov.Limits != nil {
			if err := mergeLimits(&tc.Limits, ov.Limits); err != nil {
				return base.clone(), fmt.Errorf("%w: tier %s: %v", ErrInvalidOverride, tier, err)
			}
		}
		for name, enabled := range ov.Capabilities {
			capability := Capability(name)
			if !capability.IsKnown() {
				return base.clone(), fmt.Errorf("%w: tier %s: unknown capability %q", ErrInvalidOverride, tier, name)
			}
			tc.Capabilities[capability] = enabled
		}
		result[tier] = tc
	}
	return result, nil
}

func mergeLimits(dst *Limits, ov *limitsOverride) error {
	fields := []struct {
		name string
		src  *int
		dst  *int
	}{
		{"maxProjects", ov.MaxProjects, &dst.MaxProjects},
		{"maxActiveProjects", ov.MaxActiveProjects, &dst.MaxActiveProjects},
		{"maxTeamMembers", ov.MaxTeamMembers, &dst.MaxTeamMembers},
		{"maxUpdatesPerMonth", ov.MaxUpdatesPerMonth, &dst.MaxUpdatesPerMonth},
		{"maxMediaPerProject", ov.MaxMediaPerProject, &dst.MaxMediaPerProject},
		{"maxDocuments", ov.MaxDocuments, &dst.MaxDocuments},
		{"maxVideos", ov.MaxVideos, &dst.MaxVideos},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if *f.src < 0 && !IsUnlimited(*f.src) {
			return fmt.Errorf("%s must be >= 0 or -1, got %d", f.name, *f.src)
		}
		*f.dst = *f.src
	}
	return nil
}
