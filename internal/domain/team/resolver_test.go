package team

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"immotrust/internal/domain/promoteur"
)

/* ==================== MOCKS ==================== */

type MockPromoteurFinder struct {
	mock.Mock
}

func (m *MockPromoteurFinder) GetByID(ctx context.Context, id uint) (*promoteur.Promoteur, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promoteur.Promoteur), args.Error(1)
}

func (m *MockPromoteurFinder) GetByOwnerUserID(ctx context.Context, userID int64) (*promoteur.Promoteur, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promoteur.Promoteur), args.Error(1)
}

type MockRoleFinder struct {
	mock.Mock
}

func (m *MockRoleFinder) GetByName(ctx context.Context, promoteurID uint, name string) (*TeamRole, error) {
	args := m.Called(ctx, promoteurID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TeamRole), args.Error(1)
}

/* ==================== FIXTURES ==================== */

const (
	ownerID      int64 = 1
	commercialID int64 = 2
	strangerID   int64 = 3
	customID     int64 = 4
)

func orgPromoteur() *promoteur.Promoteur {
	return &promoteur.Promoteur{
		ID:          10,
		OwnerUserID: ownerID,
		TeamMembers: []promoteur.TeamMember{
			{UserID: commercialID, Role: "commercial"},
			{UserID: customID, Role: "stagiaire"},
		},
	}
}

/* ==================== TESTS ==================== */

func TestOwnerPassesEveryPermission(t *testing.T) {
	finder := new(MockPromoteurFinder)
	finder.On("GetByOwnerUserID", mock.Anything, ownerID).Return(orgPromoteur(), nil)
	r := NewResolver(finder, new(MockRoleFinder), nil, nil)
	s := NewSession(Actor{UserID: ownerID})

	for _, p := range AllPermissions {
		tc, err := r.Allowed(context.Background(), s, p)
		require.NoError(t, err, p)
		assert.True(t, tc.IsOwner)
		assert.Equal(t, uint(10), tc.PromoteurID)
	}
	finder.AssertNumberOfCalls(t, "GetByOwnerUserID", 1)
}

func TestCommercialDefaults(t *testing.T) {
	finder := new(MockPromoteurFinder)
	roles := new(MockRoleFinder)
	finder.On("GetByID", mock.Anything, uint(10)).Return(orgPromoteur(), nil)
	roles.On("GetByName", mock.Anything, uint(10), "commercial").Return(nil, nil)
	r := NewResolver(finder, roles, nil, nil)
	s := NewSession(Actor{UserID: commercialID, PromoteurID: 10})

	tc, err := r.Allowed(context.Background(), s, PermViewLeads)
	require.NoError(t, err)
	assert.False(t, tc.IsOwner)
	assert.Equal(t, RoleCommercial, tc.TeamRole)

	_, err = r.Allowed(context.Background(), s, PermDeleteProjects)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	finder.AssertNumberOfCalls(t, "GetByID", 1)
	roles.AssertNumberOfCalls(t, "GetByName", 1)
}

func TestOverrideGrantsDeleteProjects(t *testing.T) {
	finder := new(MockPromoteurFinder)
	roles := new(MockRoleFinder)
	finder.On("GetByID", mock.Anything, uint(10)).Return(orgPromoteur(), nil)
	roles.On("GetByName", mock.Anything, uint(10), "commercial").Return(&TeamRole{
		PromoteurID: 10,
		Name:        "commercial",
		Permissions: map[string]bool{"deleteProjects": true, "exportLeads": false},
	}, nil)
	r := NewResolver(finder, roles, nil, nil)
	s := NewSession(Actor{UserID: commercialID, PromoteurID: 10})

	_, err := r.Allowed(context.Background(), s, PermDeleteProjects)
	assert.NoError(t, err)

	_, err = r.Allowed(context.Background(), s, PermExportLeads)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// absent from the override: default matrix applies
	_, err = r.Allowed(context.Background(), s, PermViewLeads)
	assert.NoError(t, err)
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	finder := new(MockPromoteurFinder)
	roles := new(MockRoleFinder)
	finder.On("GetByID", mock.Anything, uint(10)).Return(orgPromoteur(), nil)
	roles.On("GetByName", mock.Anything, uint(10), "stagiaire").Return(nil, nil)
	r := NewResolver(finder, roles, nil, nil)
	s := NewSession(Actor{UserID: customID, PromoteurID: 10})

	for _, p := range AllPermissions {
		_, err := r.Allowed(context.Background(), s, p)
		assert.ErrorIs(t, err, ErrPermissionDenied, p)
	}
}

func TestStrangerIsDenied(t *testing.T) {
	finder := new(MockPromoteurFinder)
	finder.On("GetByID", mock.Anything, uint(10)).Return(orgPromoteur(), nil)
	finder.On("GetByOwnerUserID", mock.Anything, strangerID).Return(nil, nil)
	r := NewResolver(finder, new(MockRoleFinder), nil, nil)
	s := NewSession(Actor{UserID: strangerID, PromoteurID: 10})

	_, err := r.Context(context.Background(), s)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.NotErrorIs(t, err, ErrPermissionDenied)

	// memoised for this request only
	_, err = r.Context(context.Background(), s)
	assert.ErrorIs(t, err, ErrAccessDenied)
	finder.AssertNumberOfCalls(t, "GetByOwnerUserID", 1)

	_, err = r.Context(context.Background(), NewSession(Actor{UserID: strangerID, PromoteurID: 10}))
	assert.ErrorIs(t, err, ErrAccessDenied)
	finder.AssertNumberOfCalls(t, "GetByOwnerUserID", 2)
}

func TestAttachedProfileFallsBackToOwnerLookup(t *testing.T) {
	finder := new(MockPromoteurFinder)
	finder.On("GetByID", mock.Anything, uint(77)).Return(nil, nil)
	finder.On("GetByOwnerUserID", mock.Anything, ownerID).Return(orgPromoteur(), nil)
	r := NewResolver(finder, new(MockRoleFinder), nil, nil)

	tc, err := r.Context(context.Background(), NewSession(Actor{UserID: ownerID, PromoteurID: 77}))
	require.NoError(t, err)
	assert.True(t, tc.IsOwner)
	assert.Equal(t, uint(10), tc.PromoteurID)
}

func TestLookupFailureIsEvaluationError(t *testing.T) {
	boom := errors.New("db down")
	finder := new(MockPromoteurFinder)
	finder.On("GetByOwnerUserID", mock.Anything, ownerID).Return(nil, boom)
	r := NewResolver(finder, new(MockRoleFinder), nil, nil)
	s := NewSession(Actor{UserID: ownerID})

	_, err := r.Allowed(context.Background(), s, PermViewProjects)
	assert.ErrorIs(t, err, ErrEvaluation)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrAccessDenied)

	// failures are retried, not memoised
	_, _ = r.Context(context.Background(), s)
	finder.AssertNumberOfCalls(t, "GetByOwnerUserID", 2)
}

func TestRoleLookupFailureIsEvaluationError(t *testing.T) {
	finder := new(MockPromoteurFinder)
	roles := new(MockRoleFinder)
	finder.On("GetByID", mock.Anything, uint(10)).Return(orgPromoteur(), nil)
	roles.On("GetByName", mock.Anything, uint(10), "commercial").Return(nil, errors.New("timeout"))
	r := NewResolver(finder, roles, nil, nil)

	_, err := r.Allowed(context.Background(), NewSession(Actor{UserID: commercialID, PromoteurID: 10}), PermViewLeads)
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestUnknownPermissionIsRefused(t *testing.T) {
	r := NewResolver(new(MockPromoteurFinder), new(MockRoleFinder), nil, nil)
	ok, err := r.HasPermission(context.Background(), nil, &Context{PromoteurID: 1, IsOwner: true}, "launchRockets")
	require.NoError(t, err)
	assert.False(t, ok)
}
