package team

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"immotrust/internal/domain/promoteur"
	"immotrust/internal/pkg/dberr"
)

type MemberStore interface {
	GetByID(ctx context.Context, id uint) (*promoteur.Promoteur, error)
	Save(ctx context.Context, p *promoteur.Promoteur) error
}

type RoleStore interface {
	RoleFinder
	List(ctx context.Context, promoteurID uint) ([]TeamRole, error)
	Create(ctx context.Context, role *TeamRole) error
	UpdatePermissions(ctx context.Context, id uint, perms map[string]bool) error
	Delete(ctx context.Context, promoteurID uint, name string) (bool, error)
}

// SlotGuard is satisfied by *quota.Resolver.
type SlotGuard interface {
	RequireTeamSlot(ctx context.Context, promoteurID uint) error
}

type OnboardingMarker interface {
	CompleteOnboardingStep(ctx context.Context, id uint, codeOrIndex string) (*promoteur.Promoteur, error)
}

type Service struct {
	members    MemberStore
	roles      RoleStore
	quota      SlotGuard
	onboarding OnboardingMarker
	resolver   *Resolver
	log        *zap.Logger
	now        func() time.Time
}

func NewService(members MemberStore, roles RoleStore, quota SlotGuard, onboarding OnboardingMarker, resolver *Resolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		members:    members,
		roles:      roles,
		quota:      quota,
		onboarding: onboarding,
		resolver:   resolver,
		log:        log,
		now:        time.Now,
	}
}

func (s *Service) load(ctx context.Context, promoteurID uint) (*promoteur.Promoteur, error) {
	p, err := s.members.GetByID(ctx, promoteurID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, promoteur.ErrPromoteurNotFound
	}
	return p, nil
}

func normalizeRole(raw string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" || len(name) > 64 {
		return "", ErrInvalidRole
	}
	return Role(name), nil
}

func (s *Service) ListMembers(ctx context.Context, promoteurID uint) ([]promoteur.TeamMember, error) {
	p, err := s.load(ctx, promoteurID)
	if err != nil {
		return nil, err
	}
	return p.TeamMembers, nil
}

// AddMember is quota-checked against maxTeamMembers.
func (s *Service) AddMember(ctx context.Context, promoteurID uint, userID int64, rawRole string) (*promoteur.TeamMember, error) {
	role, err := normalizeRole(rawRole)
	if err != nil {
		return nil, err
	}
	p, err := s.load(ctx, promoteurID)
	if err != nil {
		return nil, err
	}
	if p.IsOwner(userID) {
		return nil, ErrOwnerNotMember
	}
	if p.FindTeamMember(userID) != nil {
		return nil, ErrMemberExists
	}
	if err := s.quota.RequireTeamSlot(ctx, promoteurID); err != nil {
		return nil, err
	}

	m := promoteur.TeamMember{UserID: userID, Role: string(role), JoinedAt: s.now()}
	p.TeamMembers = append(p.TeamMembers, m)
	if err := s.members.Save(ctx, p); err != nil {
		return nil, err
	}
	s.audit("team member added", promoteurID, zap.Int64("user_id", userID), zap.String("role", string(role)))

	if s.onboarding != nil {
		if _, err := s.onboarding.CompleteOnboardingStep(ctx, promoteurID, promoteur.StepTeamInvite); err != nil {
			s.log.Warn("onboarding step not recorded", zap.Uint("promoteur_id", promoteurID), zap.Error(err))
		}
	}
	return &m, nil
}

func (s *Service) RemoveMember(ctx context.Context, promoteurID uint, userID int64) error {
	p, err := s.load(ctx, promoteurID)
	if err != nil {
		return err
	}
	kept := make([]promoteur.TeamMember, 0, len(p.TeamMembers))
	for _, m := range p.TeamMembers {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(p.TeamMembers) {
		return ErrMemberNotFound
	}
	p.TeamMembers = kept
	if err := s.members.Save(ctx, p); err != nil {
		return err
	}
	s.audit("team member removed", promoteurID, zap.Int64("user_id", userID))
	return nil
}

func (s *Service) ChangeRole(ctx context.Context, promoteurID uint, userID int64, rawRole string) (*promoteur.TeamMember, error) {
	role, err := normalizeRole(rawRole)
	if err != nil {
		return nil, err
	}
	p, err := s.load(ctx, promoteurID)
	if err != nil {
		return nil, err
	}
	m := p.FindTeamMember(userID)
	if m == nil {
		return nil, ErrMemberNotFound
	}
	previous := m.Role
	m.Role = string(role)
	if err := s.members.Save(ctx, p); err != nil {
		return nil, err
	}
	s.audit("team member role changed", promoteurID,
		zap.Int64("user_id", userID),
		zap.String("old", previous),
		zap.String("new", string(role)),
	)
	out := *m
	return &out, nil
}

func (s *Service) ListRoles(ctx context.Context, promoteurID uint) ([]TeamRole, error) {
	return s.roles.List(ctx, promoteurID)
}

// UpsertRole stores a sparse override. Every key must be a known permission.
func (s *Service) UpsertRole(ctx context.Context, promoteurID uint, rawName string, perms map[string]bool) (*TeamRole, error) {
	name, err := normalizeRole(rawName)
	if err != nil {
		return nil, err
	}
	clean := make(map[string]bool, len(perms))
	for k, v := range perms {
		p, err := ParsePermission(k)
		if err != nil {
			return nil, err
		}
		clean[string(p)] = v
	}

	existing, err := s.roles.GetByName(ctx, promoteurID, string(name))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		role := &TeamRole{PromoteurID: promoteurID, Name: string(name), Permissions: clean}
		err = s.roles.Create(ctx, role)
		if err == nil {
			s.audit("team role created", promoteurID, zap.String("role", string(name)))
			return role, nil
		}
		if !dberr.IsUniqueViolation(err) {
			return nil, err
		}
		// created concurrently: update the winner instead
		if existing, err = s.roles.GetByName(ctx, promoteurID, string(name)); err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrRoleNotFound
		}
	}

	if err := s.roles.UpdatePermissions(ctx, existing.ID, clean); err != nil {
		return nil, err
	}
	existing.Permissions = clean
	s.audit("team role updated", promoteurID, zap.String("role", string(name)))
	return existing, nil
}

func (s *Service) DeleteRole(ctx context.Context, promoteurID uint, rawName string) error {
	name, err := normalizeRole(rawName)
	if err != nil {
		return err
	}
	deleted, err := s.roles.Delete(ctx, promoteurID, string(name))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRoleNotFound
	}
	s.audit("team role deleted", promoteurID, zap.String("role", string(name)))
	return nil
}

// EffectivePermissions merges the override with the default matrix for display.
func (s *Service) EffectivePermissions(ctx context.Context, promoteurID uint, rawRole string) (map[Permission]bool, error) {
	role, err := normalizeRole(rawRole)
	if err != nil {
		return nil, err
	}
	return s.resolver.Effective(ctx, promoteurID, role)
}

func (s *Service) audit(msg string, promoteurID uint, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("audit_id", uuid.NewString()),
		zap.Uint("promoteur_id", promoteurID),
	}, fields...)
	s.log.Info(msg, fields...)
}
