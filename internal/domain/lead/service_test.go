package lead

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"immotrust/internal/domain/plan"
	"immotrust/internal/domain/project"
	"immotrust/internal/domain/promoteur"
	"immotrust/internal/domain/quota"
)

/* ==================== MOCKS ==================== */

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context, promoteurID uint) error {
	return m.Called(ctx, promoteurID).Error(0)
}

/* ==================== FIXTURES ==================== */

type testEnv struct {
	db        *gorm.DB
	svc       *Service
	repo      *Repository
	refresher *MockRefresher
	promo     *promoteur.Promoteur
	published *project.Project
	draft     *project.Project
	clock     time.Time
}

func setupLeads(t *testing.T, tier plan.Tier) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:lead_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&promoteur.Promoteur{}, &project.Project{}, &project.Update{}, &project.Document{}, &project.Media{}, &Lead{}))

	ctx := context.Background()
	promos := promoteur.NewRepository(db)
	p := &promoteur.Promoteur{OwnerUserID: 1, CompanyName: "Riviera Habitat", Plan: string(tier)}
	require.NoError(t, promos.Create(ctx, p))

	projects := project.NewRepository(db)
	published := &project.Project{PromoteurID: p.ID, Title: "Les Terrasses", Type: project.TypeImmeuble, PublicationStatus: project.StatusPublished}
	draft := &project.Project{PromoteurID: p.ID, Title: "Villa Azur", Type: project.TypeVilla, PublicationStatus: project.StatusDraft}
	require.NoError(t, projects.Create(ctx, published))
	require.NoError(t, projects.Create(ctx, draft))

	resolver := quota.NewResolver(promos, projects, plan.NewCatalog(plan.DefaultConfig()), nil, nil)
	refresher := new(MockRefresher)
	repo := NewRepository(db)

	env := &testEnv{
		db:        db,
		repo:      repo,
		refresher: refresher,
		promo:     p,
		published: published,
		draft:     draft,
		clock:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	env.svc = NewService(repo, projects, resolver, refresher, nil, nil)
	env.svc.SetClock(func() time.Time { return env.clock })
	return env
}

func hotLead() SubmitLeadRequest {
	return SubmitLeadRequest{
		BuyerName:  "Awa Diop",
		BuyerEmail: "awa@example.com",
		Financing:  "comptant",
		Timeframe:  "immediate",
		Budget:     650000,
		Message:    strings.Repeat("intéressée par un T3 avec terrasse ", 8),
	}
}

/* ==================== TESTS ==================== */

func TestSubmitClassifiesAndStores(t *testing.T) {
	env := setupLeads(t, plan.TierVerifie)
	ctx := context.Background()

	l, err := env.svc.Submit(ctx, env.published.ID, hotLead())
	require.NoError(t, err)
	assert.Equal(t, TierA, l.Tier)
	assert.Equal(t, FinancingCash, l.Financing)
	assert.Equal(t, env.promo.ID, l.PromoteurID)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", l.Reference.String())

	cold, err := env.svc.Submit(ctx, env.published.ID, SubmitLeadRequest{BuyerName: "Curieux", BuyerPhone: "+221770000000"})
	require.NoError(t, err)
	assert.Equal(t, TierD, cold.Tier)

	n, err := env.repo.CountByProject(ctx, env.published.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSubmitRequiresPublishedProject(t *testing.T) {
	env := setupLeads(t, plan.TierVerifie)

	_, err := env.svc.Submit(context.Background(), env.draft.ID, hotLead())
	assert.ErrorIs(t, err, ErrProjectUnavailable)

	_, err = env.svc.Submit(context.Background(), 9999, hotLead())
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestMarkRespondedKeepsFirstResponse(t *testing.T) {
	env := setupLeads(t, plan.TierVerifie)
	ctx := context.Background()
	env.refresher.On("Refresh", mock.Anything, env.promo.ID).Return(nil)

	l, err := env.svc.Submit(ctx, env.published.ID, hotLead())
	require.NoError(t, err)

	env.clock = env.clock.Add(3 * time.Hour)
	first, err := env.svc.MarkResponded(ctx, env.promo.ID, l.ID)
	require.NoError(t, err)
	require.NotNil(t, first.RespondedAt)
	assert.Equal(t, StatusContacted, first.Status)

	env.clock = env.clock.Add(48 * time.Hour)
	again, err := env.svc.MarkResponded(ctx, env.promo.ID, l.ID)
	require.NoError(t, err)
	assert.True(t, first.RespondedAt.Equal(*again.RespondedAt))
	env.refresher.AssertNumberOfCalls(t, "Refresh", 1)

	hours, ok, err := env.repo.AvgResponseHours(ctx, env.promo.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 3.0, hours, 0.01)
}

func TestMarkRespondedOtherPromoteur(t *testing.T) {
	env := setupLeads(t, plan.TierVerifie)
	l, err := env.svc.Submit(context.Background(), env.published.ID, hotLead())
	require.NoError(t, err)

	_, err = env.svc.MarkResponded(context.Background(), env.promo.ID+1, l.ID)
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestAvgResponseHoursWithoutResponses(t *testing.T) {
	env := setupLeads(t, plan.TierVerifie)
	_, ok, err := env.repo.AvgResponseHours(context.Background(), env.promo.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListHidesTiersWithoutLeadScoring(t *testing.T) {
	env := setupLeads(t, plan.TierPublie)
	ctx := context.Background()
	_, err := env.svc.Submit(ctx, env.published.ID, hotLead())
	require.NoError(t, err)

	resp, err := env.svc.ListForPromoteur(ctx, env.promo.ID, "", 50, 0)
	require.NoError(t, err)
	assert.True(t, resp.TiersHidden)
	require.Len(t, resp.Leads, 1)
	assert.Empty(t, resp.Leads[0].Tier)

	// the tier is still stored for when the plan is upgraded
	stored, err := env.repo.GetByID(ctx, resp.Leads[0].ID)
	require.NoError(t, err)
	assert.Equal(t, TierA, stored.Tier)
}

func TestListShowsTiersWithLeadScoring(t *testing.T) {
	env := setupLeads(t, plan.TierVerifie)
	ctx := context.Background()
	_, err := env.svc.Submit(ctx, env.published.ID, hotLead())
	require.NoError(t, err)

	resp, err := env.svc.ListForPromoteur(ctx, env.promo.ID, StatusNew, 50, 0)
	require.NoError(t, err)
	assert.False(t, resp.TiersHidden)
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, TierA, resp.Leads[0].Tier)

	_, err = env.svc.ListForPromoteur(ctx, env.promo.ID, "pending", 50, 0)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExportRequiresCapability(t *testing.T) {
	env := setupLeads(t, plan.TierPublie)

	var buf bytes.Buffer
	_, err := env.svc.ExportCSV(context.Background(), env.promo.ID, &buf)
	var limitErr *quota.LimitError
	require.ErrorAs(t, err, &limitErr)
	assert.ErrorIs(t, err, quota.ErrFeatureNotAvailable)
	assert.Equal(t, plan.TierVerifie, limitErr.UpgradeTo)
	assert.Zero(t, buf.Len())
}

func TestExportWritesCSV(t *testing.T) {
	env := setupLeads(t, plan.TierVerifie)
	ctx := context.Background()
	_, err := env.svc.Submit(ctx, env.published.ID, hotLead())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := env.svc.ExportCSV(ctx, env.promo.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "Awa Diop", records[1][3])
	assert.Equal(t, "650000", records[1][8])
	assert.Equal(t, "A", records[1][9])
}

func TestExportNeutralisesFormulas(t *testing.T) {
	env := setupLeads(t, plan.TierVerifie)
	ctx := context.Background()
	req := hotLead()
	req.BuyerName = `=HYPERLINK("http://evil","x")`
	req.BuyerPhone = "+33 6 12 34 56 78"
	_, err := env.svc.Submit(ctx, env.published.ID, req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = env.svc.ExportCSV(ctx, env.promo.ID, &buf)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `'=HYPERLINK("http://evil","x")`, records[1][3])
	assert.Equal(t, "awa@example.com", records[1][4])
	assert.Equal(t, "'+33 6 12 34 56 78", records[1][5])
}

func TestCSVCell(t *testing.T) {
	tests := map[string]string{
		"":         "",
		"Awa Diop": "Awa Diop",
		"@SUM(A1)": "'@SUM(A1)",
		"-2+3":     "'-2+3",
		"\tcmd":    "'\tcmd",
		"\rcmd":    "'\rcmd",
		"a=b":      "a=b",
	}
	for in, want := range tests {
		assert.Equal(t, want, csvCell(in), in)
	}
}
