package promoteur

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"immotrust/internal/domain/plan"
)

/* ==================== MOCKS ==================== */

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context, promoteurID uint) error {
	return m.Called(ctx, promoteurID).Error(0)
}

/* ==================== SETUP ==================== */

func setupService(t *testing.T) (*Service, *MockRefresher, Repository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:promoteur_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Promoteur{}))

	repo := NewRepository(db)
	svc := NewService(repo, plan.NewCatalog(plan.DefaultConfig()), nil)
	refresher := new(MockRefresher)
	refresher.On("Refresh", mock.Anything, mock.Anything).Return(nil)
	svc.SetRefresher(refresher)
	return svc, refresher, repo
}

/* ==================== TESTS ==================== */

func TestCreateNormalisesPlanAndSeedsChecklist(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, 42, "  Sahel Promotion ", "premium")
	require.NoError(t, err)
	assert.Equal(t, "Sahel Promotion", p.CompanyName)
	assert.Equal(t, string(plan.TierVerifie), p.Plan)
	assert.Len(t, p.OnboardingChecklist, 7)
	assert.Equal(t, 14, p.OnboardingProgress)

	_, err = svc.Create(ctx, 42, "Autre", "")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	other, err := svc.Create(ctx, 43, "Inconnu", "platinum")
	require.NoError(t, err)
	assert.Equal(t, string(plan.TierStarter), other.Plan)
}

func TestKYCFlow(t *testing.T) {
	svc, refresher, repo := setupService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, 1, "Atlas", "starter")
	require.NoError(t, err)

	_, err = svc.VerifyKYC(ctx, p.ID)
	assert.ErrorIs(t, err, ErrInvalidKYCTransition)

	p, err = svc.SubmitKYC(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, KYCSubmitted, p.KYCStatus)
	assert.True(t, FindChecklistItem(p, StepKYCDocuments).Completed)

	p, err = svc.VerifyKYC(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, KYCVerified, p.KYCStatus)
	assert.Equal(t, ComplianceCompliant, p.ComplianceStatus)

	_, err = svc.SubmitKYC(ctx, p.ID)
	assert.ErrorIs(t, err, ErrInvalidKYCTransition)

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, KYCVerified, stored.KYCStatus)
	refresher.AssertNumberOfCalls(t, "Refresh", 2)
}

func TestFinancialProofCompletesStep(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, 1, "Atlas", "")
	require.NoError(t, err)

	_, err = svc.SetFinancialProof(ctx, p.ID, "platinum")
	assert.ErrorIs(t, err, ErrInvalidProofLevel)

	p, err = svc.SetFinancialProof(ctx, p.ID, ProofNone)
	require.NoError(t, err)
	assert.False(t, FindChecklistItem(p, StepFinancialProof).Completed)

	p, err = svc.SetFinancialProof(ctx, p.ID, ProofMedium)
	require.NoError(t, err)
	assert.True(t, FindChecklistItem(p, StepFinancialProof).Completed)
}

func TestRestrictions(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, 1, "Atlas", "")
	require.NoError(t, err)

	_, err = svc.LiftRestriction(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNoRestriction)

	p, err = svc.AddRestriction(ctx, p.ID, "fausse annonce")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Restrictions)

	p, err = svc.LiftRestriction(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Restrictions)
}

func TestCompleteOnboardingStepIsIdempotent(t *testing.T) {
	svc, refresher, _ := setupService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, 1, "Atlas", "")
	require.NoError(t, err)

	_, err = svc.CompleteOnboardingStep(ctx, p.ID, StepLogo)
	require.NoError(t, err)
	p, err = svc.CompleteOnboardingStep(ctx, p.ID, StepLogo)
	require.NoError(t, err)
	assert.Equal(t, 29, p.OnboardingProgress)
	refresher.AssertNumberOfCalls(t, "Refresh", 1)

	_, err = svc.CompleteOnboardingStep(ctx, 999, StepLogo)
	assert.ErrorIs(t, err, ErrPromoteurNotFound)
}

func TestCompleteSelfServiceStepRejectsPlatformSteps(t *testing.T) {
	svc, refresher, repo := setupService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, 1, "Atlas", "")
	require.NoError(t, err)

	for _, step := range []string{StepKYCDocuments, StepFinancialProof, StepFirstProject, StepFirstPublication, StepTeamInvite, "2"} {
		_, err = svc.CompleteSelfServiceStep(ctx, p.ID, step)
		assert.ErrorIs(t, err, ErrStepNotSelfService, step)
	}
	_, err = svc.CompleteSelfServiceStep(ctx, p.ID, "unknown")
	assert.ErrorIs(t, err, ErrChecklistItemNotFound)

	p, err = svc.CompleteSelfServiceStep(ctx, p.ID, StepLogo)
	require.NoError(t, err)
	assert.Equal(t, 29, p.OnboardingProgress)

	stored, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.OnboardingCompleted)
	assert.False(t, FindChecklistItem(stored, StepKYCDocuments).Completed)
	assert.Equal(t, KYCNone, stored.KYCStatus)
	refresher.AssertNumberOfCalls(t, "Refresh", 1)
}

func TestCompleteOnboardingItemHandler(t *testing.T) {
	svc, _, _ := setupService(t)
	p, err := svc.Create(context.Background(), 1, "Atlas", "")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.POST("/promoteur/onboarding/:item/complete", func(c *gin.Context) {
		c.Set("promoteur_id", p.ID)
		c.Next()
	}, h.CompleteOnboardingItem)

	tests := []struct {
		item string
		code int
	}{
		{StepFirstPublication, http.StatusForbidden},
		{StepKYCDocuments, http.StatusForbidden},
		{"missing", http.StatusNotFound},
		{StepLogo, http.StatusOK},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/promoteur/onboarding/"+tt.item+"/complete", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.code, w.Code, tt.item)
	}
}

func TestComplianceAndPlan(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()
	p, err := svc.Create(ctx, 1, "Atlas", "")
	require.NoError(t, err)

	_, err = svc.SetComplianceStatus(ctx, p.ID, "frozen")
	assert.ErrorIs(t, err, ErrInvalidCompliance)

	p, err = svc.SetComplianceStatus(ctx, p.ID, ComplianceSuspended)
	require.NoError(t, err)
	assert.True(t, p.IsSuspended())

	p, err = svc.ChangePlan(ctx, p.ID, "Partenaire")
	require.NoError(t, err)
	assert.Equal(t, string(plan.TierPartenaire), p.Plan)
}
