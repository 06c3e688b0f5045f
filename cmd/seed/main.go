// Command seed loads the badge catalog and a demo promoteur with projects
// and leads into a fresh database.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"immotrust/internal/app"
	"immotrust/internal/config"
	"immotrust/internal/database"
	"immotrust/internal/domain/lead"
	"immotrust/internal/domain/project"
	"immotrust/internal/domain/promoteur"
	"immotrust/internal/pkg/logger"
)

const demoOwnerUserID int64 = 1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zl, err := logger.New(logger.Config{Level: cfg.LogLevel, Environment: cfg.AppEnv, ServiceName: "immotrust-seed"})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	ctx := context.Background()
	a := app.New(cfg, db, nil, zl)
	if err := a.Seed(ctx); err != nil {
		zl.Fatal("badge seeding failed", zap.Error(err))
	}

	existing, err := a.Promoteurs.GetByOwnerUserID(ctx, demoOwnerUserID)
	if err != nil {
		zl.Fatal("lookup failed", zap.Error(err))
	}
	if existing != nil {
		zl.Info("demo promoteur already present", zap.Uint("promoteur_id", existing.ID))
		return
	}

	if err := seedDemo(ctx, a); err != nil {
		zl.Fatal("demo seeding failed", zap.Error(err))
	}
	zl.Info("seed completed")
}

func seedDemo(ctx context.Context, a *app.App) error {
	p, err := a.PromoteurService.Create(ctx, demoOwnerUserID, "Atlas Immobilier", "verifie")
	if err != nil {
		return err
	}
	if _, err := a.PromoteurService.SubmitKYC(ctx, p.ID); err != nil {
		return err
	}
	if _, err := a.PromoteurService.VerifyKYC(ctx, p.ID); err != nil {
		return err
	}
	if _, err := a.PromoteurService.SetFinancialProof(ctx, p.ID, promoteur.ProofMedium); err != nil {
		return err
	}
	if _, err := a.PromoteurService.SetComplianceStatus(ctx, p.ID, promoteur.ComplianceCompliant); err != nil {
		return err
	}

	residence, err := a.ProjectService.Create(ctx, p.ID, project.CreateProjectRequest{
		Title:             "Residence Al Bahr",
		Type:              project.TypeImmeuble,
		City:              "Casablanca",
		PriceFrom:         950000,
		Surface:           85,
		UnitCount:         48,
		HasRiskDisclosure: true,
	})
	if err != nil {
		return err
	}
	for _, doc := range []project.AddDocumentRequest{
		{Kind: project.DocPermisConstruire, URL: "https://cdn.immotrust.ma/demo/permis.pdf"},
		{Kind: project.DocTitrePropriete, URL: "https://cdn.immotrust.ma/demo/titre.pdf"},
		{Kind: project.DocGarantieFinanciere, URL: "https://cdn.immotrust.ma/demo/garantie.pdf"},
	} {
		if _, err := a.ProjectService.AddDocument(ctx, p.ID, residence.ID, doc); err != nil {
			return err
		}
	}
	for _, m := range []project.AddMediaRequest{
		{Kind: project.MediaPhoto, URL: "https://cdn.immotrust.ma/demo/facade.jpg"},
		{Kind: project.MediaPlan, URL: "https://cdn.immotrust.ma/demo/plan-t3.pdf"},
	} {
		if _, err := a.ProjectService.AddMedia(ctx, p.ID, residence.ID, m); err != nil {
			return err
		}
	}
	if _, err := a.ProjectService.Publish(ctx, p.ID, residence.ID); err != nil {
		return err
	}
	if _, err := a.ProjectService.AddUpdate(ctx, p.ID, residence.ID, project.AddUpdateRequest{
		Title:      "Gros oeuvre termine",
		Body:       "Structure achevee sur les quatre blocs.",
		MediaCount: 3,
	}); err != nil {
		return err
	}

	if _, err := a.ProjectService.Create(ctx, p.ID, project.CreateProjectRequest{
		Title: "Villas Palmeraie",
		Type:  project.TypeVilla,
		City:  "Marrakech",
	}); err != nil {
		return err
	}

	leads := []lead.SubmitLeadRequest{
		{BuyerName: "Salma B.", BuyerEmail: "salma@example.ma", Financing: "cash", Timeframe: "immediate", Budget: 1200000},
		{BuyerName: "Youssef K.", BuyerPhone: "+212600000000", Financing: "mortgage", Timeframe: "within_3_months", Budget: 800000},
		{BuyerName: "Nadia E.", BuyerEmail: "nadia@example.ma", Message: "Disponibilite des T2 ?"},
	}
	for i, req := range leads {
		l, err := a.LeadService.Submit(ctx, residence.ID, req)
		if err != nil {
			return err
		}
		if i == 0 {
			if _, err := a.LeadService.MarkResponded(ctx, p.ID, l.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
