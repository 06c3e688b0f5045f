package project

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"immotrust/internal/domain/promoteur"
)

type Service struct {
	repo       *Repository
	quota      QuotaGuard
	onboarding OnboardingMarker
	reputation ReputationRefresher
	log        *zap.Logger
	now        func() time.Time
}

func NewService(repo *Repository, quota QuotaGuard, onboarding OnboardingMarker, reputation ReputationRefresher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		quota:      quota,
		onboarding: onboarding,
		reputation: reputation,
		log:        log,
		now:        time.Now,
	}
}

// Get returns a project only when it belongs to promoteurID.
func (s *Service) Get(ctx context.Context, promoteurID, projectID uint) (*Project, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.PromoteurID != promoteurID {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, promoteurID uint) ([]Project, error) {
	return s.repo.ListByPromoteur(ctx, promoteurID)
}

func (s *Service) Create(ctx context.Context, promoteurID uint, req CreateProjectRequest) (*Project, error) {
	if strings.TrimSpace(req.Title) == "" || !req.Type.IsValid() {
		return nil, ErrValidation
	}
	if err := s.quota.RequireProjectSlot(ctx, promoteurID); err != nil {
		return nil, err
	}

	p := &Project{
		PromoteurID:       promoteurID,
		Title:             strings.TrimSpace(req.Title),
		Type:              req.Type,
		PublicationStatus: StatusDraft,
		Stage:             StagePlanning,
		City:              req.City,
		PriceFrom:         req.PriceFrom,
		Surface:           req.Surface,
		UnitCount:         req.UnitCount,
		HasRiskDisclosure: req.HasRiskDisclosure,
		DeliveryDate:      req.DeliveryDate,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("project created", zap.Uint("promoteur_id", promoteurID), zap.Uint("project_id", p.ID))

	s.markStep(ctx, promoteurID, promoteur.StepFirstProject)
	s.refresh(ctx, promoteurID, p.ID)
	return p, nil
}

func (s *Service) Publish(ctx context.Context, promoteurID, projectID uint) (*Project, error) {
	p, err := s.Get(ctx, promoteurID, projectID)
	if err != nil {
		return nil, err
	}
	switch p.PublicationStatus {
	case StatusPublished:
		return nil, ErrAlreadyPublished
	case StatusSuspended:
		return nil, ErrProjectSuspended
	}
	if err := s.quota.RequireActiveProjectSlot(ctx, promoteurID); err != nil {
		return nil, err
	}

	p.PublicationStatus = StatusPublished
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("project published", zap.Uint("promoteur_id", promoteurID), zap.Uint("project_id", p.ID))

	s.markStep(ctx, promoteurID, promoteur.StepFirstPublication)
	s.refresh(ctx, promoteurID, p.ID)
	return p, nil
}

func (s *Service) AddUpdate(ctx context.Context, promoteurID, projectID uint, req AddUpdateRequest) (*Update, error) {
	if strings.TrimSpace(req.Title) == "" || req.MediaCount < 0 {
		return nil, ErrValidation
	}
	if _, err := s.Get(ctx, promoteurID, projectID); err != nil {
		return nil, err
	}
	if err := s.quota.RequireMonthlyUpdate(ctx, promoteurID); err != nil {
		return nil, err
	}

	u := &Update{
		ProjectID:   projectID,
		PromoteurID: promoteurID,
		Title:       strings.TrimSpace(req.Title),
		Body:        req.Body,
		MediaCount:  req.MediaCount,
		CreatedAt:   s.now(),
	}
	if err := s.repo.CreateUpdate(ctx, u); err != nil {
		return nil, err
	}
	s.refresh(ctx, promoteurID, projectID)
	return u, nil
}

func (s *Service) AddDocument(ctx context.Context, promoteurID, projectID uint, req AddDocumentRequest) (*Document, error) {
	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind == "" || strings.TrimSpace(req.URL) == "" {
		return nil, ErrValidation
	}
	if _, err := s.Get(ctx, promoteurID, projectID); err != nil {
		return nil, err
	}
	if err := s.quota.RequireDocumentSlot(ctx, promoteurID, projectID); err != nil {
		return nil, err
	}

	d := &Document{ProjectID: projectID, Kind: kind, URL: req.URL}
	if err := s.repo.CreateDocument(ctx, d); err != nil {
		return nil, err
	}
	s.refresh(ctx, promoteurID, projectID)
	return d, nil
}

func (s *Service) AddMedia(ctx context.Context, promoteurID, projectID uint, req AddMediaRequest) (*Media, error) {
	if !req.Kind.IsValid() {
		return nil, ErrInvalidMediaKind
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrValidation
	}
	if _, err := s.Get(ctx, promoteurID, projectID); err != nil {
		return nil, err
	}
	if err := s.quota.RequireMediaSlot(ctx, promoteurID, projectID, string(req.Kind)); err != nil {
		return nil, err
	}

	m := &Media{ProjectID: projectID, Kind: req.Kind, URL: req.URL}
	if err := s.repo.CreateMedia(ctx, m); err != nil {
		return nil, err
	}
	s.refresh(ctx, promoteurID, projectID)
	return m, nil
}

// UpdateKeyFields applies edits and logs every key-field change with the given reason.
func (s *Service) UpdateKeyFields(ctx context.Context, promoteurID, projectID uint, req UpdateKeyFieldsRequest) (*Project, []Change, error) {
	p, err := s.Get(ctx, promoteurID, projectID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	reason := strings.TrimSpace(req.Reason)
	var changes []Change
	record := func(field, oldValue, newValue string) {
		if oldValue == newValue {
			return
		}
		changes = append(changes, Change{
			ProjectID: p.ID,
			Field:     field,
			OldValue:  oldValue,
			NewValue:  newValue,
			Reason:    reason,
			ChangedAt: now,
		})
	}

	touched := false
	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		p.Title = strings.TrimSpace(*req.Title)
		touched = true
	}
	if req.HasRiskDisclosure != nil {
		p.HasRiskDisclosure = *req.HasRiskDisclosure
		touched = true
	}
	if req.Stage != nil {
		if !req.Stage.IsValid() {
			return nil, nil, ErrValidation
		}
		p.Stage = *req.Stage
		touched = true
	}
	if req.PriceFrom != nil {
		record(FieldPrice, formatFloat(p.PriceFrom), formatFloat(*req.PriceFrom))
		p.PriceFrom = *req.PriceFrom
		touched = true
	}
	if req.Surface != nil {
		record(FieldSurface, formatFloat(p.Surface), formatFloat(*req.Surface))
		p.Surface = *req.Surface
		touched = true
	}
	if req.UnitCount != nil {
		record(FieldUnitCount, strconv.Itoa(p.UnitCount), strconv.Itoa(*req.UnitCount))
		p.UnitCount = *req.UnitCount
		touched = true
	}
	if req.DeliveryDate != nil {
		record(FieldDeliveryDate, formatDate(p.DeliveryDate), formatDate(req.DeliveryDate))
		d := *req.DeliveryDate
		p.DeliveryDate = &d
		touched = true
	}
	if !touched {
		return nil, nil, ErrNothingToChange
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, nil, err
	}
	if err := s.repo.CreateChanges(ctx, changes); err != nil {
		return nil, nil, err
	}
	for _, c := range changes {
		if c.Reason == "" {
			s.log.Warn("unexplained key field change",
				zap.Uint("project_id", p.ID),
				zap.String("field", c.Field),
				zap.String("old", c.OldValue),
				zap.String("new", c.NewValue),
			)
		}
	}
	s.refresh(ctx, promoteurID, p.ID)
	return p, changes, nil
}

// Suspend is an admin sanction on a listing.
func (s *Service) Suspend(ctx context.Context, projectID uint, reason string) (*Project, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	p.PublicationStatus = StatusSuspended
	p.SuspendedReason = reason
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Warn("project suspended", zap.Uint("project_id", p.ID), zap.String("reason", reason))
	s.refresh(ctx, p.PromoteurID, p.ID)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, promoteurID, projectID uint) error {
	if _, err := s.Get(ctx, promoteurID, projectID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, projectID); err != nil {
		return err
	}
	s.log.Info("project deleted", zap.Uint("promoteur_id", promoteurID), zap.Uint("project_id", projectID))
	s.refresh(ctx, promoteurID, 0)
	return nil
}

func (s *Service) markStep(ctx context.Context, promoteurID uint, step string) {
	if s.onboarding == nil {
		return
	}
	if _, err := s.onboarding.CompleteOnboardingStep(ctx, promoteurID, step); err != nil {
		s.log.Warn("onboarding step not recorded", zap.Uint("promoteur_id", promoteurID), zap.String("step", step), zap.Error(err))
	}
}

func (s *Service) refresh(ctx context.Context, promoteurID, projectID uint) {
	if s.reputation == nil {
		return
	}
	if projectID != 0 {
		if err := s.reputation.RefreshProject(ctx, projectID); err != nil {
			s.log.Warn("project score refresh failed", zap.Uint("project_id", projectID), zap.Error(err))
		}
	}
	if err := s.reputation.Refresh(ctx, promoteurID); err != nil {
		s.log.Warn("reputation refresh failed", zap.Uint("promoteur_id", promoteurID), zap.Error(err))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
