package trustscore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"immotrust/internal/domain/project"
	"immotrust/internal/domain/promoteur"
)

func hours(h float64) *float64 { return &h }

func TestScorePromoteurScenario(t *testing.T) {
	c := NewCalculator(DefaultConfig())
	verified := PromoteurSignals{
		KYCStatus:           promoteur.KYCVerified,
		OnboardingCompleted: true,
		FinancialProofLevel: promoteur.ProofHigh,
		ProjectCount:        3,
	}
	unverified := verified
	unverified.KYCStatus = promoteur.KYCNone

	assert.Equal(t, 54, c.ScorePromoteur(verified))
	assert.Greater(t, c.ScorePromoteur(verified), c.ScorePromoteur(unverified))
}

func TestScorePromoteurKYCMonotonic(t *testing.T) {
	c := NewCalculator(DefaultConfig())
	for _, restrictions := range []int{0, 1, 3, 10} {
		for _, projects := range []int{0, 2, 50} {
			base := PromoteurSignals{ProjectCount: projects, Restrictions: restrictions, BadgeCount: 2}
			none, submitted, verified := base, base, base
			submitted.KYCStatus = promoteur.KYCSubmitted
			verified.KYCStatus = promoteur.KYCVerified

			assert.GreaterOrEqual(t, c.ScorePromoteur(submitted), c.ScorePromoteur(none))
			assert.GreaterOrEqual(t, c.ScorePromoteur(verified), c.ScorePromoteur(submitted))
		}
	}
}

func TestScorePromoteurClamped(t *testing.T) {
	c := NewCalculator(DefaultConfig())

	maxed := PromoteurSignals{
		KYCStatus:            promoteur.KYCVerified,
		OnboardingCompleted:  true,
		FinancialProofLevel:  promoteur.ProofHigh,
		ProjectCount:         1 << 30,
		RecentUpdates:        math.MaxInt,
		DocumentCompleteness: 7,
		AvgResponseHours:     hours(0.5),
		BadgeCount:           1000,
	}
	assert.Equal(t, 100, c.ScorePromoteur(maxed))

	penalised := PromoteurSignals{Restrictions: math.MaxInt}
	assert.Equal(t, 0, c.ScorePromoteur(penalised))

	weird := PromoteurSignals{
		ProjectCount:         -5,
		DocumentCompleteness: math.NaN(),
		AvgResponseHours:     hours(math.Inf(1)),
		Restrictions:         -2,
	}
	assert.Equal(t, 0, c.ScorePromoteur(weird))
}

func TestScorePromoteurInflatedWeightsStillClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Promoteur.KYCVerified = 500
	c := NewCalculator(cfg)
	assert.Equal(t, 100, c.ScorePromoteur(PromoteurSignals{KYCStatus: promoteur.KYCVerified}))
}

func TestResponseScoreDecaysLinearly(t *testing.T) {
	assert.Equal(t, 0, responseScore(nil, 4, 72, 10))
	assert.Equal(t, 10, responseScore(hours(2), 4, 72, 10))
	assert.Equal(t, 5, responseScore(hours(38), 4, 72, 10))
	assert.Equal(t, 0, responseScore(hours(100), 4, 72, 10))
}

func TestScoreProjectPhotoThresholdByType(t *testing.T) {
	c := NewCalculator(DefaultConfig())
	villa := ProjectSignals{Type: project.TypeVilla, Photos: 6}
	immeuble := ProjectSignals{Type: project.TypeImmeuble, Photos: 6}

	assert.Equal(t, 15, c.ScoreProject(villa))
	assert.Equal(t, 9, c.ScoreProject(immeuble))
}

func TestScoreProjectPenalties(t *testing.T) {
	c := NewCalculator(DefaultConfig())
	good := ProjectSignals{
		Type:                 project.TypeVilla,
		Photos:               10,
		Plans:                2,
		RecentUpdates:        3,
		QualityUpdates:       2,
		DocumentCompleteness: 1,
		HasRiskDisclosure:    true,
		HasDeliveryDate:      true,
		Leads:                40,
	}
	assert.Equal(t, 100, c.ScoreProject(good))

	edited := good
	edited.UnexplainedChanges = 2
	assert.Equal(t, 80, c.ScoreProject(edited))

	edited.UnexplainedChanges = 100
	assert.Equal(t, 70, c.ScoreProject(edited))

	suspended := edited
	suspended.Suspended = true
	assert.Equal(t, 30, c.ScoreProject(suspended))

	empty := ProjectSignals{Suspended: true, UnexplainedChanges: 5}
	assert.Equal(t, 0, c.ScoreProject(empty))
}

func TestIsQualityUpdate(t *testing.T) {
	c := NewCalculator(DefaultConfig())
	assert.False(t, c.IsQualityUpdate(project.Update{Body: "short"}))
	assert.True(t, c.IsQualityUpdate(project.Update{Body: "short", MediaCount: 2}))
	long := make([]rune, 120)
	for i := range long {
		long[i] = 'é'
	}
	assert.True(t, c.IsQualityUpdate(project.Update{Body: string(long)}))
}
