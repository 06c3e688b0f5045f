package trustscore

import (
	"math"

	"immotrust/internal/domain/project"
	"immotrust/internal/domain/promoteur"
)

const (
	MinScore = 0
	MaxScore = 100
)

// PromoteurSignals are the inputs of ScorePromoteur.
type PromoteurSignals struct {
	KYCStatus           promoteur.KYCStatus           `json:"kycStatus"`
	OnboardingCompleted bool                          `json:"onboardingCompleted"`
	FinancialProofLevel promoteur.FinancialProofLevel `json:"financialProofLevel"`
	ProjectCount        int                           `json:"projectCount"`
	PublishedProjects   int                           `json:"publishedProjects"`
	RecentUpdates       int                           `json:"recentUpdates"`
	// DocumentCompleteness is the share of required documents present, in [0,1].
	DocumentCompleteness float64 `json:"documentCompleteness"`
	// AvgResponseHours is nil when no lead was ever answered.
	AvgResponseHours *float64 `json:"avgResponseHours"`
	BadgeCount       int      `json:"badgeCount"`
	Restrictions     int      `json:"restrictions"`
}

type ProjectSignals struct {
	Type                 project.Type `json:"type"`
	Photos               int          `json:"photos"`
	Plans                int          `json:"plans"`
	RecentUpdates        int          `json:"recentUpdates"`
	QualityUpdates       int          `json:"qualityUpdates"`
	DocumentCompleteness float64      `json:"documentCompleteness"`
	HasRiskDisclosure    bool         `json:"hasRiskDisclosure"`
	HasDeliveryDate      bool         `json:"hasDeliveryDate"`
	Leads                int          `json:"leads"`
	UnexplainedChanges   int          `json:"unexplainedChanges"`
	Suspended            bool         `json:"suspended"`
}

// Calculator holds the pure scoring pipelines.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Config() Config {
	return c.cfg
}

// ScorePromoteur sums weighted components, subtracts the capped restriction
// penalty and clamps to [0,100].
func (c *Calculator) ScorePromoteur(s PromoteurSignals) int {
	w := c.cfg.Promoteur
	score := 0

	switch s.KYCStatus {
	case promoteur.KYCVerified:
		score += w.KYCVerified
	case promoteur.KYCSubmitted:
		score += w.KYCSubmitted
	}
	if s.OnboardingCompleted {
		score += w.OnboardingCompleted
	}
	switch s.FinancialProofLevel {
	case promoteur.ProofBasic:
		score += w.FinancialProof.Basic
	case promoteur.ProofMedium:
		score += w.FinancialProof.Medium
	case promoteur.ProofHigh:
		score += w.FinancialProof.High
	default:
		score += w.FinancialProof.None
	}

	score += capped(s.ProjectCount, w.PerProject, w.ProjectCap)
	score += capped(s.RecentUpdates, w.PerRecentUpdate, w.UpdateCap)
	score += share(s.DocumentCompleteness, w.DocumentCap)
	score += responseScore(s.AvgResponseHours, w.ResponseFastHours, w.ResponseSlowHours, w.ResponseCap)
	score += capped(s.BadgeCount, w.PerBadge, w.BadgeCap)

	score -= capped(s.Restrictions, w.RestrictionPenalty, w.RestrictionPenaltyCap)
	return clamp(score)
}

// ScoreProject rewards informational completeness, update cadence, documents,
// transparency and engagement, and penalises unexplained edits and suspension.
func (c *Calculator) ScoreProject(s ProjectSignals) int {
	w := c.cfg.Project
	score := 0

	minPhotos := w.PhotoMinVilla
	if s.Type == project.TypeImmeuble {
		minPhotos = w.PhotoMinImmeuble
	}
	if minPhotos <= 0 {
		if s.Photos > 0 {
			score += w.PhotoWeight
		}
	} else {
		score += share(float64(s.Photos)/float64(minPhotos), w.PhotoWeight)
	}
	if s.Plans > 0 {
		score += w.PlanWeight
	}

	score += capped(s.RecentUpdates, w.PerRecentUpdate, w.UpdateFrequencyCap)
	score += capped(s.QualityUpdates, w.PerQualityUpdate, w.UpdateQualityCap)
	score += share(s.DocumentCompleteness, w.DocumentCap)
	if s.HasRiskDisclosure {
		score += w.RiskDisclosure
	}
	if s.HasDeliveryDate {
		score += w.DeliveryDate
	}
	score += capped(s.Leads, w.PerLead, w.EngagementCap)

	score -= capped(s.UnexplainedChanges, w.UnexplainedChangePenalty, w.UnexplainedChangeCap)
	if s.Suspended {
		score -= w.SuspendedPenalty
	}
	return clamp(score)
}

// IsQualityUpdate reports whether an update carries enough substance to count
// towards update quality.
func (c *Calculator) IsQualityUpdate(u project.Update) bool {
	return len([]rune(u.Body)) >= c.cfg.Project.QualityUpdateMinBody || u.MediaCount > 0
}

func capped(n, per, limit int) int {
	if n <= 0 || per <= 0 {
		return 0
	}
	if n > limit/per+1 {
		return limit
	}
	return min(n*per, limit)
}

// share scales weight by ratio clamped to [0,1].
func share(ratio float64, weight int) int {
	if math.IsNaN(ratio) || ratio <= 0 {
		return 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(ratio * float64(weight)))
}

// responseScore is full weight up to fast, zero from slow, linear in between.
func responseScore(avg *float64, fast, slow float64, weight int) int {
	if avg == nil || math.IsNaN(*avg) || *avg < 0 {
		return 0
	}
	switch {
	case *avg <= fast:
		return weight
	case *avg >= slow:
		return 0
	}
	return share((slow-*avg)/(slow-fast), weight)
}

func clamp(score int) int {
	return max(MinScore, min(MaxScore, score))
}
