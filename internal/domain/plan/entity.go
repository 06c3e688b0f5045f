package plan

// Tier identifies a subscription level of a promoteur.
type Tier string

const (
	TierStarter    Tier = "starter"
	TierPublie     Tier = "publie"
	TierVerifie    Tier = "verifie"
	TierPartenaire Tier = "partenaire"
	TierEnterprise Tier = "enterprise"
)

// orderedTiers lists every tier from the least to the most powerful.
var orderedTiers = []Tier{TierStarter, TierPublie, TierVerifie, TierPartenaire, TierEnterprise}

// legacyAliases maps identifiers stored by older billing flows to current tiers.
var legacyAliases = map[string]Tier{
	"free":       TierStarter,
	"gratuit":    TierStarter,
	"basic":      TierStarter,
	"basique":    TierStarter,
	"standard":   TierPublie,
	"premium":    TierVerifie,
	"pro":        TierPartenaire,
	"entreprise": TierEnterprise,
}

// Unlimited is the quota sentinel meaning "no ceiling".
const Unlimited = -1

// IsUnlimited is the only place the -1 sentinel is interpreted.
func IsUnlimited(n int) bool {
	return n == Unlimited
}

// Within reports whether current usage leaves room for one more unit under limit.
func Within(current, limit int) bool {
	if IsUnlimited(limit) {
		return true
	}
	return current < limit
}

// Limits are the numeric quotas of a tier. Each value is >= 0 or Unlimited.
type Limits struct {
	MaxProjects        int `json:"maxProjects" yaml:"maxProjects"`
	MaxActiveProjects  int `json:"maxActiveProjects" yaml:"maxActiveProjects"`
	MaxTeamMembers     int `json:"maxTeamMembers" yaml:"maxTeamMembers"`
	MaxUpdatesPerMonth int `json:"maxUpdatesPerMonth" yaml:"maxUpdatesPerMonth"`
	MaxMediaPerProject int `json:"maxMediaPerProject" yaml:"maxMediaPerProject"`
	MaxDocuments       int `json:"maxDocuments" yaml:"maxDocuments"`
	MaxVideos          int `json:"maxVideos" yaml:"maxVideos"`
}

// Capability is a named boolean feature gated by tier.
type Capability string

const (
	CapLeadScoring         Capability = "leadScoring"
	CapLeadExport          Capability = "leadExport"
	CapABTesting           Capability = "abTesting"
	CapEnterpriseContracts Capability = "enterpriseContracts"
	CapAdvancedAnalytics   Capability = "advancedAnalytics"
	CapFeaturedListing     Capability = "featuredListing"
	CapPrioritySupport     Capability = "prioritySupport"
	CapCustomBranding      Capability = "customBranding"
	CapAPIAccess           Capability = "apiAccess"
	CapWhatsappAlerts      Capability = "whatsappAlerts"
)

// AllCapabilities is the closed set of recognised capability names.
var AllCapabilities = []Capability{
	CapLeadScoring,
	CapLeadExport,
	CapABTesting,
	CapEnterpriseContracts,
	CapAdvancedAnalytics,
	CapFeaturedListing,
	CapPrioritySupport,
	CapCustomBranding,
	CapAPIAccess,
	CapWhatsappAlerts,
}

// IsKnown returns true for members of AllCapabilities.
func (c Capability) IsKnown() bool {
	for _, known := range AllCapabilities {
		if c == known {
			return true
		}
	}
	return false
}

// TierConfig is the quota and feature definition of one tier.
type TierConfig struct {
	Limits       Limits              `json:"limits"`
	Capabilities map[Capability]bool `json:"capabilities"`
}

func (tc TierConfig) clone() TierConfig {
	caps := make(map[Capability]bool, len(tc.Capabilities))
	for k, v := range tc.Capabilities {
		caps[k] = v
	}
	return TierConfig{Limits: tc.Limits, Capabilities: caps}
}
