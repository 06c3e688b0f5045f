package lead

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"immotrust/internal/domain/plan"
	"immotrust/internal/domain/project"
	"immotrust/internal/metrics"
)

type ProjectFinder interface {
	GetByID(ctx context.Context, id uint) (*project.Project, error)
}

// CapabilityGate is satisfied by *quota.Resolver.
type CapabilityGate interface {
	CheckCapability(ctx context.Context, promoteurID uint, name string) (bool, error)
	RequireCapability(ctx context.Context, promoteurID uint, capability plan.Capability) error
}

// ReputationRefresher rescoring after a response changes the response-time signal.
type ReputationRefresher interface {
	Refresh(ctx context.Context, promoteurID uint) error
}

type Service struct {
	repo       *Repository
	projects   ProjectFinder
	plans      CapabilityGate
	reputation ReputationRefresher
	metrics    *metrics.Metrics
	log        *zap.Logger
	now        func() time.Time
}

func NewService(repo *Repository, projects ProjectFinder, plans CapabilityGate, reputation ReputationRefresher, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		projects:   projects,
		plans:      plans,
		reputation: reputation,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Submit classifies and stores a buyer enquiry on a published project.
func (s *Service) Submit(ctx context.Context, projectID uint, req SubmitLeadRequest) (*Lead, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, project.ErrProjectNotFound
	}
	if p.PublicationStatus != project.StatusPublished {
		return nil, ErrProjectUnavailable
	}

	now := s.now()
	l := &Lead{
		Reference:   uuid.New(),
		PromoteurID: p.PromoteurID,
		ProjectID:   p.ID,
		BuyerName:   strings.TrimSpace(req.BuyerName),
		BuyerEmail:  strings.TrimSpace(req.BuyerEmail),
		BuyerPhone:  strings.TrimSpace(req.BuyerPhone),
		Financing:   NormalizeFinancing(req.Financing),
		Timeframe:   NormalizeTimeframe(req.Timeframe),
		Budget:      req.Budget,
		Message:     strings.TrimSpace(req.Message),
		Status:      StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	l.Tier = Classify(l.Signals())

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("store lead: %w", err)
	}
	s.metrics.RecordLead(string(l.Tier))
	s.log.Info("lead submitted",
		zap.String("reference", l.Reference.String()),
		zap.Uint("promoteur_id", l.PromoteurID),
		zap.Uint("project_id", l.ProjectID),
		zap.String("tier", string(l.Tier)),
	)
	return l, nil
}

func (s *Service) get(ctx context.Context, promoteurID, leadID uint) (*Lead, error) {
	l, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if l == nil || l.PromoteurID != promoteurID {
		return nil, ErrLeadNotFound
	}
	return l, nil
}

// MarkResponded records the first response only. Later calls leave the
// timestamp unchanged so the response-time signal stays honest.
func (s *Service) MarkResponded(ctx context.Context, promoteurID, leadID uint) (*Lead, error) {
	l, err := s.get(ctx, promoteurID, leadID)
	if err != nil {
		return nil, err
	}
	if l.RespondedAt != nil {
		return l, nil
	}

	at := s.now()
	first, err := s.repo.MarkResponded(ctx, leadID, at)
	if err != nil {
		return nil, err
	}
	if !first {
		return s.get(ctx, promoteurID, leadID)
	}
	l.RespondedAt = &at
	l.Status = StatusContacted

	if s.reputation != nil {
		if err := s.reputation.Refresh(ctx, promoteurID); err != nil {
			s.log.Warn("reputation refresh failed", zap.Uint("promoteur_id", promoteurID), zap.Error(err))
		}
	}
	return l, nil
}

func (s *Service) UpdateStatus(ctx context.Context, promoteurID, leadID uint, status Status) (*Lead, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	l, err := s.get(ctx, promoteurID, leadID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, leadID, status); err != nil {
		return nil, err
	}
	l.Status = status
	return l, nil
}

// ListForPromoteur hides tiers unless the plan includes lead scoring.
func (s *Service) ListForPromoteur(ctx context.Context, promoteurID uint, status Status, limit, offset int) (*LeadListResponse, error) {
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	scoring, err := s.plans.CheckCapability(ctx, promoteurID, string(plan.CapLeadScoring))
	if err != nil {
		return nil, err
	}
	leads, total, err := s.repo.ListByPromoteur(ctx, promoteurID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	if !scoring {
		for i := range leads {
			leads[i].Tier = ""
		}
	}
	if leads == nil {
		leads = []Lead{}
	}
	return &LeadListResponse{Leads: leads, Total: total, TiersHidden: !scoring}, nil
}

var exportHeader = []string{
	"reference", "project_id", "created_at", "buyer_name", "buyer_email", "buyer_phone",
	"financing", "timeframe", "budget", "tier", "status", "responded_at",
}

// csvCell neutralises buyer-supplied text that a spreadsheet would read as a formula.
func csvCell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}

// ExportCSV writes every lead of the promoteur. Requires the leadExport capability.
func (s *Service) ExportCSV(ctx context.Context, promoteurID uint, w io.Writer) (int, error) {
	if err := s.plans.RequireCapability(ctx, promoteurID, plan.CapLeadExport); err != nil {
		return 0, err
	}
	scoring, err := s.plans.CheckCapability(ctx, promoteurID, string(plan.CapLeadScoring))
	if err != nil {
		return 0, err
	}
	leads, _, err := s.repo.ListByPromoteur(ctx, promoteurID, "", 0, 0)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}
	for _, l := range leads {
		tier := ""
		if scoring {
			tier = string(l.Tier)
		}
		responded := ""
		if l.RespondedAt != nil {
			responded = l.RespondedAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			l.Reference.String(),
			strconv.FormatUint(uint64(l.ProjectID), 10),
			l.CreatedAt.UTC().Format(time.RFC3339),
			csvCell(l.BuyerName),
			csvCell(l.BuyerEmail),
			csvCell(l.BuyerPhone),
			csvCell(string(l.Financing)),
			csvCell(string(l.Timeframe)),
			strconv.FormatFloat(l.Budget, 'f', -1, 64),
			tier,
			string(l.Status),
			responded,
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	s.log.Info("leads exported", zap.Uint("promoteur_id", promoteurID), zap.Int("count", len(leads)))
	return len(leads), nil
}
