package team

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"immotrust/internal/domain/promoteur"
	"immotrust/internal/metrics"
)

// PromoteurFinder lookups return (nil, nil) when nothing matches.
type PromoteurFinder interface {
	GetByID(ctx context.Context, id uint) (*promoteur.Promoteur, error)
	GetByOwnerUserID(ctx context.Context, userID int64) (*promoteur.Promoteur, error)
}

type RoleFinder interface {
	GetByName(ctx context.Context, promoteurID uint, name string) (*TeamRole, error)
}

// Actor is the authenticated caller. PromoteurID is the profile already
// attached to the session, or 0.
type Actor struct {
	UserID      int64
	PromoteurID uint
}

// Context is the resolved team position of an actor.
type Context struct {
	PromoteurID uint `json:"promoteurId"`
	IsOwner     bool `json:"isOwner"`
	TeamRole    Role `json:"teamRole,omitempty"`
}

// Session memoises resolution for one request. It must not outlive the request
// and is not safe for concurrent use.
type Session struct {
	Actor     Actor
	resolved  bool
	tc        *Context
	denied    error
	overrides map[Role]map[string]bool
}

func NewSession(actor Actor) *Session {
	return &Session{Actor: actor}
}

type Resolver struct {
	promoteurs PromoteurFinder
	roles      RoleFinder
	metrics    *metrics.Metrics
	log        *zap.Logger
}

func NewResolver(promoteurs PromoteurFinder, roles RoleFinder, m *metrics.Metrics, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{promoteurs: promoteurs, roles: roles, metrics: m, log: log}
}

// Context resolves the actor's team context, at most once per session.
// Lookup failures are not memoised.
func (r *Resolver) Context(ctx context.Context, s *Session) (*Context, error) {
	if s.resolved {
		return s.tc, s.denied
	}

	p, err := r.findPromoteur(ctx, s.Actor)
	if err != nil {
		return nil, err
	}

	s.resolved = true
	switch {
	case p == nil:
		s.denied = ErrAccessDenied
	case p.IsOwner(s.Actor.UserID):
		s.tc = &Context{PromoteurID: p.ID, IsOwner: true}
	default:
		if m := p.FindTeamMember(s.Actor.UserID); m != nil {
			s.tc = &Context{PromoteurID: p.ID, TeamRole: Role(m.Role)}
		} else {
			s.denied = ErrAccessDenied
		}
	}
	return s.tc, s.denied
}

func (r *Resolver) findPromoteur(ctx context.Context, a Actor) (*promoteur.Promoteur, error) {
	if a.PromoteurID != 0 {
		p, err := r.promoteurs.GetByID(ctx, a.PromoteurID)
		if err != nil {
			return nil, &EvaluationError{Op: "lookup promoteur", Err: err}
		}
		if p != nil && (p.IsOwner(a.UserID) || p.FindTeamMember(a.UserID) != nil) {
			return p, nil
		}
	}
	if a.UserID == 0 {
		return nil, nil
	}
	p, err := r.promoteurs.GetByOwnerUserID(ctx, a.UserID)
	if err != nil {
		return nil, &EvaluationError{Op: "lookup owner", Err: err}
	}
	return p, nil
}

// HasPermission applies owner bypass, then the promoteur's sparse override,
// then the default matrix. Unknown roles and permissions are refused.
func (r *Resolver) HasPermission(ctx context.Context, s *Session, tc *Context, perm Permission) (bool, error) {
	if tc == nil || !perm.IsKnown() {
		return false, nil
	}
	if tc.IsOwner {
		return true, nil
	}

	override, err := r.override(ctx, s, tc.PromoteurID, tc.TeamRole)
	if err != nil {
		return false, err
	}
	if v, ok := override[string(perm)]; ok {
		return v, nil
	}
	return DefaultPermission(tc.TeamRole, perm), nil
}

func (r *Resolver) override(ctx context.Context, s *Session, promoteurID uint, role Role) (map[string]bool, error) {
	if s != nil {
		if o, ok := s.overrides[role]; ok {
			return o, nil
		}
	}
	tr, err := r.roles.GetByName(ctx, promoteurID, string(role))
	if err != nil {
		return nil, &EvaluationError{Op: "lookup role", Err: err}
	}
	var o map[string]bool
	if tr != nil {
		o = tr.Permissions
	}
	if s != nil {
		if s.overrides == nil {
			s.overrides = make(map[Role]map[string]bool)
		}
		s.overrides[role] = o
	}
	return o, nil
}

// Allowed resolves the context and checks perm. It returns ErrAccessDenied,
// ErrPermissionDenied or an *EvaluationError, never a wrong decision.
func (r *Resolver) Allowed(ctx context.Context, s *Session, perm Permission) (*Context, error) {
	tc, err := r.Context(ctx, s)
	if err != nil {
		r.metrics.RecordPermission(outcomeOf(err))
		return nil, err
	}
	ok, err := r.HasPermission(ctx, s, tc, perm)
	if err != nil {
		r.metrics.RecordPermission("error")
		return nil, err
	}
	if !ok {
		r.metrics.RecordPermission("denied")
		r.log.Info("permission denied",
			zap.Int64("user_id", s.Actor.UserID),
			zap.Uint("promoteur_id", tc.PromoteurID),
			zap.String("role", string(tc.TeamRole)),
			zap.String("permission", string(perm)),
		)
		return tc, ErrPermissionDenied
	}
	r.metrics.RecordPermission("allowed")
	return tc, nil
}

// Effective lists the permissions a role holds within the promoteur.
func (r *Resolver) Effective(ctx context.Context, promoteurID uint, role Role) (map[Permission]bool, error) {
	tc := &Context{PromoteurID: promoteurID, TeamRole: role}
	out := make(map[Permission]bool, len(AllPermissions))
	s := NewSession(Actor{})
	for _, p := range AllPermissions {
		ok, err := r.HasPermission(ctx, s, tc, p)
		if err != nil {
			return nil, err
		}
		out[p] = ok
	}
	return out, nil
}

func outcomeOf(err error) string {
	if errors.Is(err, ErrEvaluation) {
		return "error"
	}
	return "denied"
}
