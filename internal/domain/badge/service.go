package badge

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"immotrust/internal/domain/promoteur"
	"immotrust/internal/domain/trustscore"
	"immotrust/internal/metrics"
	"immotrust/internal/pkg/dberr"
)

type Catalog interface {
	List(ctx context.Context) ([]Badge, error)
	GetByID(ctx context.Context, id uint) (*Badge, error)
	GetByCode(ctx context.Context, code string) (*Badge, error)
	Create(ctx context.Context, b *Badge) error
}

type PromoteurStore interface {
	GetByID(ctx context.Context, id uint) (*promoteur.Promoteur, error)
	UpdateBadges(ctx context.Context, id uint, badges []promoteur.BadgeAward) error
}

// SignalSource is satisfied by *trustscore.Service.
type SignalSource interface {
	PromoteurSignals(ctx context.Context, promoteurID uint) (*promoteur.Promoteur, *trustscore.PromoteurSignals, error)
}

// Result lists the badges awarded by a run and those held before it.
// Revoked is only filled when stale revocation is enabled.
type Result struct {
	Awarded     []Badge `json:"awarded"`
	AlreadyHeld []Badge `json:"alreadyHeld"`
	Revoked     []Badge `json:"revoked"`
}

const staleReason = "criteria no longer met"

type Service struct {
	catalog  Catalog
	promos   PromoteurStore
	signals  SignalSource
	notifier Notifier
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time

	revokeStale bool
}

func NewService(catalog Catalog, promos PromoteurStore, signals SignalSource, notifier Notifier, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	return &Service{
		catalog:  catalog,
		promos:   promos,
		signals:  signals,
		notifier: notifier,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetRevokeStale makes CheckAndAward drop held badges whose criteria fail.
// Off by default: removal is then an admin decision through RemoveBadge.
func (s *Service) SetRevokeStale(on bool) {
	s.revokeStale = on
}

func (s *Service) List(ctx context.Context) ([]Badge, error) {
	return s.catalog.List(ctx)
}

// Held returns the catalog entries the promoteur currently holds.
func (s *Service) Held(ctx context.Context, promoteurID uint) ([]Badge, error) {
	p, err := s.promos.GetByID(ctx, promoteurID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, promoteur.ErrPromoteurNotFound
	}
	all, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	held := make([]Badge, 0, len(p.Badges))
	for _, b := range all {
		if p.HasBadge(b.ID) {
			held = append(held, b)
		}
	}
	return held, nil
}

// CheckAndAward evaluates every badge not yet held and awards those that match.
// Running it twice on unchanged state awards nothing the second time.
// With stale revocation on, held badges are re-evaluated too.
func (s *Service) CheckAndAward(ctx context.Context, promoteurID uint) (*Result, error) {
	p, sig, err := s.signals.PromoteurSignals(ctx, promoteurID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, promoteur.ErrPromoteurNotFound
	}
	all, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	facts := FactsFor(p, *sig)
	res := &Result{Awarded: []Badge{}, AlreadyHeld: []Badge{}, Revoked: []Badge{}}
	now := s.now()
	stale := map[uint]bool{}
	var fresh []promoteur.BadgeAward
	for _, b := range all {
		if p.HasBadge(b.ID) {
			if s.revokeStale && !b.Criteria.Matches(facts) {
				stale[b.ID] = true
				res.Revoked = append(res.Revoked, b)
				continue
			}
			res.AlreadyHeld = append(res.AlreadyHeld, b)
			continue
		}
		if !b.Criteria.Matches(facts) {
			continue
		}
		fresh = append(fresh, promoteur.BadgeAward{BadgeID: b.ID, EarnedAt: now})
		res.Awarded = append(res.Awarded, b)
	}
	if len(res.Awarded) == 0 && len(res.Revoked) == 0 {
		return res, nil
	}

	awards := make([]promoteur.BadgeAward, 0, len(p.Badges)+len(fresh))
	for _, a := range p.Badges {
		if !stale[a.BadgeID] {
			awards = append(awards, a)
		}
	}
	awards = append(awards, fresh...)
	if err := s.promos.UpdateBadges(ctx, promoteurID, awards); err != nil {
		return nil, err
	}
	for _, b := range res.Revoked {
		e := Event{ID: uuid.NewString(), PromoteurID: promoteurID, Badge: b, Reason: staleReason, At: now}
		s.log.Info("badge removed",
			zap.String("event_id", e.ID),
			zap.Uint("promoteur_id", promoteurID),
			zap.Uint("badge_id", b.ID),
			zap.String("badge", b.Code),
			zap.String("reason", staleReason),
		)
		s.notifier.BadgeRemoved(ctx, e)
	}
	for _, b := range res.Awarded {
		e := Event{ID: uuid.NewString(), PromoteurID: promoteurID, Badge: b, At: now}
		s.log.Info("badge awarded",
			zap.String("event_id", e.ID),
			zap.Uint("promoteur_id", promoteurID),
			zap.String("badge", b.Code),
		)
		s.metrics.RecordBadgeAwarded(b.Code)
		s.notifier.BadgeAwarded(ctx, e)
	}
	return res, nil
}

// RemoveBadge drops a held badge. Removing a badge that is not held is a no-op.
func (s *Service) RemoveBadge(ctx context.Context, promoteurID, badgeID uint, reason string) error {
	p, err := s.promos.GetByID(ctx, promoteurID)
	if err != nil {
		return err
	}
	if p == nil {
		return promoteur.ErrPromoteurNotFound
	}
	if !p.HasBadge(badgeID) {
		s.log.Debug("badge not held, nothing to remove",
			zap.Uint("promoteur_id", promoteurID),
			zap.Uint("badge_id", badgeID),
		)
		return nil
	}

	kept := make([]promoteur.BadgeAward, 0, len(p.Badges)-1)
	for _, a := range p.Badges {
		if a.BadgeID != badgeID {
			kept = append(kept, a)
		}
	}
	if err := s.promos.UpdateBadges(ctx, promoteurID, kept); err != nil {
		return err
	}

	b, err := s.catalog.GetByID(ctx, badgeID)
	if err != nil {
		return err
	}
	e := Event{ID: uuid.NewString(), PromoteurID: promoteurID, Reason: reason, At: s.now()}
	if b != nil {
		e.Badge = *b
	} else {
		e.Badge = Badge{ID: badgeID}
	}
	s.log.Info("badge removed",
		zap.String("event_id", e.ID),
		zap.Uint("promoteur_id", promoteurID),
		zap.Uint("badge_id", badgeID),
		zap.String("badge", e.Badge.Code),
		zap.String("reason", reason),
	)
	s.notifier.BadgeRemoved(ctx, e)
	return nil
}

// InitializeDefaultBadges seeds every starter badge whose code is missing.
// It is safe to call on every boot, including concurrently.
func (s *Service) InitializeDefaultBadges(ctx context.Context) (int, error) {
	created := 0
	for _, def := range DefaultBadges() {
		existing, err := s.catalog.GetByCode(ctx, def.Code)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}
		b := def
		if err := s.catalog.Create(ctx, &b); err != nil {
			if dberr.IsUniqueViolation(err) {
				continue
			}
			return created, err
		}
		created++
	}
	if created > 0 {
		s.log.Info("default badges seeded", zap.Int("created", created))
	}
	return created, nil
}
