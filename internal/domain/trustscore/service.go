package trustscore

import (
	"context"
	"time"

	"go.uber.org/zap"

	"immotrust/internal/domain/project"
	"immotrust/internal/domain/promoteur"
	"immotrust/internal/metrics"
)

// PromoteurStore returns (nil, nil) for a missing promoteur.
type PromoteurStore interface {
	GetByID(ctx context.Context, id uint) (*promoteur.Promoteur, error)
	UpdateTrustScore(ctx context.Context, id uint, score int) error
}

// ProjectStore is satisfied by *project.Repository.
type ProjectStore interface {
	GetByID(ctx context.Context, id uint) (*project.Project, error)
	UpdateTrustScore(ctx context.Context, id uint, score int) error
	ListByPromoteur(ctx context.Context, promoteurID uint) ([]project.Project, error)
	CountUpdatesSince(ctx context.Context, promoteurID uint, since time.Time) (int, error)
	ListProjectUpdatesSince(ctx context.Context, projectID uint, since time.Time) ([]project.Update, error)
	DocumentKinds(ctx context.Context, projectID uint) ([]string, error)
	CountMediaByKind(ctx context.Context, projectID uint, kind project.MediaKind) (int, error)
	CountUnexplainedChanges(ctx context.Context, projectID uint) (int, error)
}

// LeadStats supplies response-time and engagement signals.
type LeadStats interface {
	AvgResponseHours(ctx context.Context, promoteurID uint) (hours float64, ok bool, err error)
	CountByProject(ctx context.Context, projectID uint) (int, error)
}

type Service struct {
	calc     *Calculator
	promos   PromoteurStore
	projects ProjectStore
	leads    LeadStats
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
}

func NewService(calc *Calculator, promos PromoteurStore, projects ProjectStore, leads LeadStats, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		calc:     calc,
		promos:   promos,
		projects: projects,
		leads:    leads,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// PromoteurSignals gathers every input of the promoteur score. It returns
// (nil, nil, nil) when the promoteur does not exist.
func (s *Service) PromoteurSignals(ctx context.Context, promoteurID uint) (*promoteur.Promoteur, *PromoteurSignals, error) {
	p, err := s.promos.GetByID(ctx, promoteurID)
	if err != nil || p == nil {
		return nil, nil, err
	}

	projects, err := s.projects.ListByPromoteur(ctx, promoteurID)
	if err != nil {
		return nil, nil, err
	}
	since := s.now().AddDate(0, 0, -s.calc.cfg.Promoteur.UpdateWindowDays)
	recent, err := s.projects.CountUpdatesSince(ctx, promoteurID, since)
	if err != nil {
		return nil, nil, err
	}

	sig := &PromoteurSignals{
		KYCStatus:           p.KYCStatus,
		OnboardingCompleted: p.OnboardingCompleted,
		FinancialProofLevel: p.FinancialProofLevel,
		ProjectCount:        len(projects),
		RecentUpdates:       recent,
		BadgeCount:          len(p.Badges),
		Restrictions:        p.Restrictions,
	}

	var completeness float64
	for _, pr := range projects {
		if pr.PublicationStatus == project.StatusPublished {
			sig.PublishedProjects++
		}
		c, err := s.documentCompleteness(ctx, pr.ID)
		if err != nil {
			return nil, nil, err
		}
		completeness += c
	}
	if len(projects) > 0 {
		sig.DocumentCompleteness = completeness / float64(len(projects))
	}

	if s.leads != nil {
		hours, ok, err := s.leads.AvgResponseHours(ctx, promoteurID)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			sig.AvgResponseHours = &hours
		}
	}
	return p, sig, nil
}

func (s *Service) ProjectSignals(ctx context.Context, projectID uint) (*project.Project, *ProjectSignals, error) {
	pr, err := s.projects.GetByID(ctx, projectID)
	if err != nil || pr == nil {
		return nil, nil, err
	}

	sig := &ProjectSignals{
		Type:              pr.Type,
		HasRiskDisclosure: pr.HasRiskDisclosure,
		HasDeliveryDate:   pr.DeliveryDate != nil,
		Suspended:         pr.PublicationStatus == project.StatusSuspended,
	}
	if sig.Photos, err = s.projects.CountMediaByKind(ctx, projectID, project.MediaPhoto); err != nil {
		return nil, nil, err
	}
	if sig.Plans, err = s.projects.CountMediaByKind(ctx, projectID, project.MediaPlan); err != nil {
		return nil, nil, err
	}

	since := s.now().AddDate(0, 0, -s.calc.cfg.Project.UpdateWindowDays)
	updates, err := s.projects.ListProjectUpdatesSince(ctx, projectID, since)
	if err != nil {
		return nil, nil, err
	}
	sig.RecentUpdates = len(updates)
	for _, u := range updates {
		if s.calc.IsQualityUpdate(u) {
			sig.QualityUpdates++
		}
	}

	if sig.DocumentCompleteness, err = s.documentCompleteness(ctx, projectID); err != nil {
		return nil, nil, err
	}
	if sig.UnexplainedChanges, err = s.projects.CountUnexplainedChanges(ctx, projectID); err != nil {
		return nil, nil, err
	}
	if s.leads != nil {
		if sig.Leads, err = s.leads.CountByProject(ctx, projectID); err != nil {
			return nil, nil, err
		}
	}
	return pr, sig, nil
}

// PromoteurScore computes the live score. A missing promoteur scores 0.
func (s *Service) PromoteurScore(ctx context.Context, promoteurID uint) (int, error) {
	_, sig, err := s.PromoteurSignals(ctx, promoteurID)
	if err != nil || sig == nil {
		return 0, err
	}
	return s.calc.ScorePromoteur(*sig), nil
}

// ProjectScore computes the live score. A missing project scores 0.
func (s *Service) ProjectScore(ctx context.Context, projectID uint) (int, error) {
	_, sig, err := s.ProjectSignals(ctx, projectID)
	if err != nil || sig == nil {
		return 0, err
	}
	return s.calc.ScoreProject(*sig), nil
}

// RecalculatePromoteur refreshes the cached score and returns it.
func (s *Service) RecalculatePromoteur(ctx context.Context, promoteurID uint) (int, error) {
	p, sig, err := s.PromoteurSignals(ctx, promoteurID)
	if err != nil || p == nil {
		return 0, err
	}
	score := s.calc.ScorePromoteur(*sig)
	if score != p.TrustScore {
		if err := s.promos.UpdateTrustScore(ctx, promoteurID, score); err != nil {
			return 0, err
		}
		s.log.Info("promoteur trust score changed",
			zap.Uint("promoteur_id", promoteurID),
			zap.Int("old", p.TrustScore),
			zap.Int("new", score),
		)
	}
	s.metrics.ObserveTrustScore("promoteur", score)
	return score, nil
}

func (s *Service) RecalculateProject(ctx context.Context, projectID uint) (int, error) {
	pr, sig, err := s.ProjectSignals(ctx, projectID)
	if err != nil || pr == nil {
		return 0, err
	}
	score := s.calc.ScoreProject(*sig)
	if score != pr.TrustScore {
		if err := s.projects.UpdateTrustScore(ctx, projectID, score); err != nil {
			return 0, err
		}
		s.log.Info("project trust score changed",
			zap.Uint("project_id", projectID),
			zap.Int("old", pr.TrustScore),
			zap.Int("new", score),
		)
	}
	s.metrics.ObserveTrustScore("project", score)
	return score, nil
}

func (s *Service) documentCompleteness(ctx context.Context, projectID uint) (float64, error) {
	kinds, err := s.projects.DocumentKinds(ctx, projectID)
	if err != nil {
		return 0, err
	}
	present := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		present[k] = true
	}
	found := 0
	for _, required := range project.RequiredDocumentKinds {
		if present[required] {
			found++
		}
	}
	return float64(found) / float64(len(project.RequiredDocumentKinds)), nil
}
