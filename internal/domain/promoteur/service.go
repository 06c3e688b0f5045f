package promoteur

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"immotrust/internal/domain/plan"
)

// ReputationRefresher recomputes derived reputation (trust score, badges) after a mutation.
type ReputationRefresher interface {
	Refresh(ctx context.Context, promoteurID uint) error
}

// Service holds promoteur profile business logic.
type Service struct {
	repo      Repository
	catalog   *plan.Catalog
	refresher ReputationRefresher
	log       *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, catalog *plan.Catalog, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, catalog: catalog, log: log, now: time.Now}
}

// SetRefresher wires the reputation pipeline. It is optional; without it no recomputation runs.
func (s *Service) SetRefresher(r ReputationRefresher) {
	s.refresher = r
}

// SetClock replaces the time source, for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create opens a profile for an owner account with the default checklist.
func (s *Service) Create(ctx context.Context, ownerUserID int64, companyName, rawPlan string) (*Promoteur, error) {
	existing, err := s.repo.GetByOwnerUserID(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	p := &Promoteur{
		OwnerUserID:         ownerUserID,
		CompanyName:         strings.TrimSpace(companyName),
		Plan:                string(s.catalog.ResolvePlan(rawPlan)),
		ComplianceStatus:    CompliancePending,
		KYCStatus:           KYCNone,
		FinancialProofLevel: ProofNone,
		OnboardingChecklist: DefaultChecklist(),
		Badges:              []BadgeAward{},
		TeamMembers:         []TeamMember{},
	}
	if p.CompanyName != "" {
		if _, err := CompleteItem(p, StepCompanyProfile, s.now()); err != nil {
			return nil, err
		}
	}
	Recalculate(p)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("promoteur created", zap.Uint("promoteur_id", p.ID), zap.Int64("owner_user_id", ownerUserID), zap.String("plan", p.Plan))
	return p, nil
}

// Get loads a promoteur or returns ErrPromoteurNotFound.
func (s *Service) Get(ctx context.Context, id uint) (*Promoteur, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPromoteurNotFound
	}
	return p, nil
}

// CompleteOnboardingStep marks a checklist item (by code or position) as done.
// It backs the internal triggers; the dashboard goes through CompleteSelfServiceStep.
func (s *Service) CompleteOnboardingStep(ctx context.Context, id uint, codeOrIndex string) (*Promoteur, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.completeStep(ctx, p, codeOrIndex)
}

// CompleteSelfServiceStep is CompleteOnboardingStep restricted to the steps a
// promoteur may tick by hand.
func (s *Service) CompleteSelfServiceStep(ctx context.Context, id uint, codeOrIndex string) (*Promoteur, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item := FindChecklistItem(p, codeOrIndex)
	if item == nil {
		return nil, ErrChecklistItemNotFound
	}
	if !IsSelfService(item.Code) {
		return nil, ErrStepNotSelfService
	}
	return s.completeStep(ctx, p, item.Code)
}

func (s *Service) completeStep(ctx context.Context, p *Promoteur, codeOrIndex string) (*Promoteur, error) {
	changed, err := CompleteItem(p, codeOrIndex, s.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return p, nil
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("onboarding step completed",
		zap.Uint("promoteur_id", p.ID),
		zap.String("step", codeOrIndex),
		zap.Int("progress", p.OnboardingProgress),
	)
	s.refresh(ctx, p.ID)
	return p, nil
}

// SubmitKYC moves KYC from none to submitted.
func (s *Service) SubmitKYC(ctx context.Context, id uint) (*Promoteur, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.KYCStatus == KYCVerified {
		return nil, ErrInvalidKYCTransition
	}
	p.KYCStatus = KYCSubmitted
	if _, err := CompleteItem(p, StepKYCDocuments, s.now()); err != nil {
		return nil, err
	}
	return s.saveAndRefresh(ctx, p, "kyc submitted")
}

// VerifyKYC is the admin decision on a submitted KYC file.
func (s *Service) VerifyKYC(ctx context.Context, id uint) (*Promoteur, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.KYCStatus != KYCSubmitted {
		return nil, ErrInvalidKYCTransition
	}
	p.KYCStatus = KYCVerified
	if p.ComplianceStatus == CompliancePending {
		p.ComplianceStatus = ComplianceCompliant
	}
	return s.saveAndRefresh(ctx, p, "kyc verified")
}

// SetFinancialProof records the strength of the supplied financial guarantees.
func (s *Service) SetFinancialProof(ctx context.Context, id uint, level FinancialProofLevel) (*Promoteur, error) {
	if !level.IsValid() {
		return nil, ErrInvalidProofLevel
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.FinancialProofLevel = level
	if level.Rank() > 0 {
		if _, err := CompleteItem(p, StepFinancialProof, s.now()); err != nil {
			return nil, err
		}
	}
	return s.saveAndRefresh(ctx, p, "financial proof updated")
}

// AddRestriction applies an admin sanction; each restriction lowers the trust score.
func (s *Service) AddRestriction(ctx context.Context, id uint, reason string) (*Promoteur, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Restrictions++
	s.log.Warn("restriction added", zap.Uint("promoteur_id", id), zap.String("reason", reason), zap.Int("restrictions", p.Restrictions))
	return s.saveAndRefresh(ctx, p, "restriction added")
}

// LiftRestriction removes one active restriction.
func (s *Service) LiftRestriction(ctx context.Context, id uint) (*Promoteur, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Restrictions <= 0 {
		return nil, ErrNoRestriction
	}
	p.Restrictions--
	return s.saveAndRefresh(ctx, p, "restriction lifted")
}

// SetComplianceStatus is the admin compliance decision.
func (s *Service) SetComplianceStatus(ctx context.Context, id uint, status ComplianceStatus) (*Promoteur, error) {
	if !status.IsValid() {
		return nil, ErrInvalidCompliance
	}
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ComplianceStatus = status
	return s.saveAndRefresh(ctx, p, "compliance status changed")
}

// ChangePlan stores the normalised tier of rawPlan.
func (s *Service) ChangePlan(ctx context.Context, id uint, rawPlan string) (*Promoteur, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := s.catalog.ResolvePlan(p.Plan)
	to := s.catalog.ResolvePlan(rawPlan)
	p.Plan = string(to)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	direction := "same"
	switch s.catalog.Compare(to, from) {
	case 1:
		direction = "upgrade"
	case -1:
		direction = "downgrade"
	}
	s.log.Info("plan changed", zap.Uint("promoteur_id", id), zap.String("from", string(from)), zap.String("to", string(to)), zap.String("direction", direction))
	return p, nil
}

func (s *Service) saveAndRefresh(ctx context.Context, p *Promoteur, event string) (*Promoteur, error) {
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info(event, zap.Uint("promoteur_id", p.ID))
	s.refresh(ctx, p.ID)
	return p, nil
}

// refresh never fails the mutation that triggered it; reputation is advisory.
func (s *Service) refresh(ctx context.Context, id uint) {
	if s.refresher == nil {
		return
	}
	if err := s.refresher.Refresh(ctx, id); err != nil {
		s.log.Warn("reputation refresh failed", zap.Uint("promoteur_id", id), zap.Error(err))
	}
}
