package main

import (
	"context"
	"log"

	httpadapter "resume-editor/internal/adapter/http"
	"resume-editor/internal/adapter/jdextract"
	"resume-editor/internal/adapter/rebuild"
	repo "resume-editor/internal/adapter/repository"
	"resume-editor/internal/adapter/snapshot"
	"resume-editor/internal/config"
	"resume-editor/internal/infrastructure/migration"
	"resume-editor/internal/usecase"
	infra "resume-editor/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	snapshots, err := snapshot.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		log.Fatalf("snapshot store: %v", err)
	}

	// history DB is optional (best-effort)
	historyPool, err := infra.NewHistoryPool(ctx, cfg.History.DSN)
	if err != nil {
		log.Printf("warning: history DB not available: %v", err)
	}
	if historyPool != nil {
		if err := migration.RunMigrations(ctx, historyPool); err != nil {
			log.Printf("warning: history migrations failed: %v", err)
		}
	}
	historyRepo := repo.NewHistoryRepo(historyPool)

	rebuilder := rebuild.NewClient(cfg.Rebuild.BaseURL)
	coordinator := usecase.NewCoordinator(rebuilder, snapshots, historyRepo, cfg.App.OutputFilename)
	session := usecase.NewSession(snapshots, coordinator)

	app := fiber.New()

	h := httpadapter.NewHandler(session, jdextract.NewExtractor(), historyRepo)
	app.Post("/session/open", h.OpenSession)
	app.Post("/session/view", h.UpdateView)
	app.Post("/session/section", h.SwitchSection)
	app.Post("/session/save", h.SaveSession)
	app.Post("/session/cancel", h.CancelSession)
	app.Post("/jd/extract", h.ExtractJD)
	app.Get("/history", h.History)
	app.Get("/health", h.Health)

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
