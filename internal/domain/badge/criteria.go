package badge

import (
	"math"

	"immotrust/internal/domain/promoteur"
	"immotrust/internal/domain/trustscore"
)

// Facts are the metric values of one promoteur. A metric that is absent
// (e.g. avgResponseHours without any answered lead) fails every rule on it.
type Facts map[Metric]float64

const eqTolerance = 1e-9

// Matches evaluates every rule. No rules, an unknown metric or an unknown op
// never match.
func (c Criteria) Matches(f Facts) bool {
	if len(c.Rules) == 0 {
		return false
	}
	for _, r := range c.Rules {
		if !r.holds(f) {
			return false
		}
	}
	return true
}

func (r Rule) holds(f Facts) bool {
	v, ok := f[r.Metric]
	if !ok || math.IsNaN(v) || math.IsNaN(r.Value) {
		return false
	}
	switch r.Op {
	case OpGTE:
		return v >= r.Value
	case OpLTE:
		return v <= r.Value
	case OpEQ:
		return math.Abs(v-r.Value) < eqTolerance
	}
	return false
}

// FactsFor derives the facts from a promoteur and its score signals.
func FactsFor(p *promoteur.Promoteur, sig trustscore.PromoteurSignals) Facts {
	f := Facts{
		MetricKYCVerified:           boolFact(p.KYCStatus == promoteur.KYCVerified),
		MetricFinancialProofLevel:   float64(p.FinancialProofLevel.Rank()),
		MetricOnboardingCompleted:   boolFact(p.OnboardingCompleted),
		MetricProjectCount:          float64(sig.ProjectCount),
		MetricPublishedProjectCount: float64(sig.PublishedProjects),
		MetricTrustScore:            float64(p.TrustScore),
		MetricRecentUpdates:         float64(sig.RecentUpdates),
		MetricDocumentCompleteness:  math.Round(sig.DocumentCompleteness * 100),
		MetricRestrictions:          float64(p.Restrictions),
	}
	if sig.AvgResponseHours != nil {
		f[MetricAvgResponseHours] = *sig.AvgResponseHours
	}
	return f
}

func boolFact(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
