package badge

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"immotrust/internal/domain/project"
	"immotrust/internal/domain/promoteur"
	"immotrust/internal/domain/trustscore"
)

type recordingNotifier struct {
	awarded []Event
	removed []Event
}

func (n *recordingNotifier) BadgeAwarded(_ context.Context, e Event) { n.awarded = append(n.awarded, e) }
func (n *recordingNotifier) BadgeRemoved(_ context.Context, e Event) { n.removed = append(n.removed, e) }

type fixture struct {
	db       *gorm.DB
	promos   promoteur.Repository
	scores   *trustscore.Service
	svc      *Service
	notifier *recordingNotifier
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:badge_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Badge{},
		&promoteur.Promoteur{},
		&project.Project{},
		&project.Update{},
		&project.Document{},
		&project.Media{},
		&project.Change{},
	))

	promos := promoteur.NewRepository(db)
	scores := trustscore.NewService(trustscore.NewCalculator(trustscore.DefaultConfig()), promos, project.NewRepository(db), nil, nil, nil)
	n := &recordingNotifier{}
	svc := NewService(NewRepository(db), promos, scores, n, nil, nil)
	svc.SetClock(func() time.Time { return time.Date(2026, time.May, 4, 10, 0, 0, 0, time.UTC) })

	_, err = svc.InitializeDefaultBadges(context.Background())
	require.NoError(t, err)
	return &fixture{db: db, promos: promos, scores: scores, svc: svc, notifier: n}
}

func (f *fixture) createPromoteur(t *testing.T, p *promoteur.Promoteur) *promoteur.Promoteur {
	t.Helper()
	require.NoError(t, f.promos.Create(context.Background(), p))
	return p
}

func codes(badges []Badge) []string {
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		out = append(out, b.Code)
	}
	return out
}

func TestInitializeDefaultBadgesIsIdempotent(t *testing.T) {
	f := setup(t)

	created, err := f.svc.InitializeDefaultBadges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	all, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultBadges()))
}

func TestCheckAndAwardIsIdempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.createPromoteur(t, &promoteur.Promoteur{
		OwnerUserID:         1,
		CompanyName:         "Sahel Immo",
		KYCStatus:           promoteur.KYCVerified,
		FinancialProofLevel: promoteur.ProofMedium,
	})

	first, err := f.svc.CheckAndAward(ctx, p.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"kyc_verifie", "financement_solide"}, codes(first.Awarded))
	assert.Empty(t, first.AlreadyHeld)
	assert.Len(t, f.notifier.awarded, 2)

	second, err := f.svc.CheckAndAward(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, second.Awarded)
	assert.ElementsMatch(t, []string{"kyc_verifie", "financement_solide"}, codes(second.AlreadyHeld))

	stored, err := f.promos.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Badges, 2)
}

func TestRemoveBadge(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.createPromoteur(t, &promoteur.Promoteur{OwnerUserID: 2, CompanyName: "Teranga", KYCStatus: promoteur.KYCVerified})

	res, err := f.svc.CheckAndAward(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, res.Awarded, 1)
	kyc := res.Awarded[0]

	require.NoError(t, f.svc.RemoveBadge(ctx, p.ID, kyc.ID, "documents expired"))
	require.Len(t, f.notifier.removed, 1)
	assert.Equal(t, "documents expired", f.notifier.removed[0].Reason)
	assert.Equal(t, "kyc_verifie", f.notifier.removed[0].Badge.Code)

	held, err := f.svc.Held(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, held)

	// not held any more: no-op
	require.NoError(t, f.svc.RemoveBadge(ctx, p.ID, kyc.ID, "again"))
	assert.Len(t, f.notifier.removed, 1)
}

func TestCheckAndAwardRevokesStaleBadgesWhenEnabled(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.createPromoteur(t, &promoteur.Promoteur{
		OwnerUserID:         5,
		CompanyName:         "Dakar Habitat",
		KYCStatus:           promoteur.KYCVerified,
		FinancialProofLevel: promoteur.ProofMedium,
	})
	_, err := f.svc.CheckAndAward(ctx, p.ID)
	require.NoError(t, err)

	p, err = f.promos.GetByID(ctx, p.ID)
	require.NoError(t, err)
	p.KYCStatus = promoteur.KYCSubmitted
	require.NoError(t, f.promos.Save(ctx, p))

	kept, err := f.svc.CheckAndAward(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, kept.Revoked)
	assert.ElementsMatch(t, []string{"kyc_verifie", "financement_solide"}, codes(kept.AlreadyHeld))

	f.svc.SetRevokeStale(true)
	res, err := f.svc.CheckAndAward(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"kyc_verifie"}, codes(res.Revoked))
	assert.Equal(t, []string{"financement_solide"}, codes(res.AlreadyHeld))
	require.Len(t, f.notifier.removed, 1)
	assert.Equal(t, staleReason, f.notifier.removed[0].Reason)

	held, err := f.svc.Held(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"financement_solide"}, codes(held))
}

func TestCheckAndAwardMissingPromoteur(t *testing.T) {
	f := setup(t)
	_, err := f.svc.CheckAndAward(context.Background(), 999)
	assert.ErrorIs(t, err, promoteur.ErrPromoteurNotFound)
}

func TestRefresherRescoresAfterAward(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.createPromoteur(t, &promoteur.Promoteur{OwnerUserID: 3, CompanyName: "Keur Bati", KYCStatus: promoteur.KYCVerified})

	r := NewRefresher(f.scores, f.svc, nil)
	require.NoError(t, r.Refresh(ctx, p.ID))

	stored, err := f.promos.GetByID(ctx, p.ID)
	require.NoError(t, err)
	// kyc 20 + one badge 2
	assert.Equal(t, 22, stored.TrustScore)
	assert.Len(t, stored.Badges, 1)

	rep := r.Sweep(ctx, []uint{p.ID, 4242}, nil)
	assert.Equal(t, 2, rep.Promoteurs+rep.Failures)
	assert.Equal(t, 1, rep.Failures)
}
