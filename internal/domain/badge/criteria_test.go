package badge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"immotrust/internal/domain/promoteur"
	"immotrust/internal/domain/trustscore"
)

func TestCriteriaMatches(t *testing.T) {
	facts := Facts{MetricTrustScore: 72, MetricRestrictions: 0}

	fiable := Criteria{Rules: []Rule{
		{Metric: MetricTrustScore, Op: OpGTE, Value: 70},
		{Metric: MetricRestrictions, Op: OpEQ, Value: 0},
	}}
	assert.True(t, fiable.Matches(facts))

	facts[MetricRestrictions] = 1
	assert.False(t, fiable.Matches(facts))
}

func TestCriteriaFailClosed(t *testing.T) {
	facts := Facts{MetricTrustScore: 90}

	assert.False(t, Criteria{}.Matches(facts))
	assert.False(t, Criteria{Rules: []Rule{{Metric: "followers", Op: OpGTE, Value: 1}}}.Matches(facts))
	assert.False(t, Criteria{Rules: []Rule{{Metric: MetricTrustScore, Op: "gt", Value: 1}}}.Matches(facts))
	assert.False(t, Criteria{Rules: []Rule{{Metric: MetricTrustScore, Op: OpLTE, Value: math.NaN()}}}.Matches(facts))
}

func TestFactsForWithoutAnsweredLeads(t *testing.T) {
	p := &promoteur.Promoteur{KYCStatus: promoteur.KYCVerified, FinancialProofLevel: promoteur.ProofHigh}
	facts := FactsFor(p, trustscore.PromoteurSignals{DocumentCompleteness: 0.75})

	assert.Equal(t, 1.0, facts[MetricKYCVerified])
	assert.Equal(t, 3.0, facts[MetricFinancialProofLevel])
	assert.Equal(t, 75.0, facts[MetricDocumentCompleteness])
	_, ok := facts[MetricAvgResponseHours]
	assert.False(t, ok)

	reactif := Criteria{Rules: []Rule{{Metric: MetricAvgResponseHours, Op: OpLTE, Value: 24}}}
	assert.False(t, reactif.Matches(facts))
}

func TestDefaultBadgesHaveUniqueCodesAndRules(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range DefaultBadges() {
		assert.False(t, seen[b.Code], b.Code)
		seen[b.Code] = true
		assert.NotEmpty(t, b.Criteria.Rules, b.Code)
	}
	assert.Len(t, seen, 7)
}
