package main

import (
	"context"
	"fmt"
	"log"

	"dentrack/internal/config"
	"dentrack/internal/handler"
	"dentrack/internal/ocr"
	"dentrack/internal/parser"
	"dentrack/internal/repository/postgres"
	"dentrack/internal/router"
	"dentrack/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	clinicRepo := postgres.NewClinicRepo(db)
	uploadRepo := postgres.NewUploadRepo(db)
	rollupRepo := postgres.NewRollupRepo(db)

	// The clinics config seeds the directory and builds the amount
	// parser lookup table. Errors here abort startup by design.
	entries, err := config.LoadClinicEntries(cfg.Clinics.ConfigPath)
	if err != nil {
		return err
	}
	registry, err := parser.NewRegistryFromConfig(entries)
	if err != nil {
		return fmt.Errorf("failed to build parser registry: %w", err)
	}

	// Initialize services
	clinicSvc := service.NewClinicService(clinicRepo, cfg.Clinics.DefaultPayPercentage)
	if err := clinicSvc.Seed(context.Background(), entries); err != nil {
		return fmt.Errorf("failed to seed clinics: %w", err)
	}

	extractor := ocr.NewTesseractExtractor(&cfg.OCR)
	ingestSvc := service.NewIngestService(uploadRepo, clinicRepo, cfg.Files)
	processSvc := service.NewProcessService(
		uploadRepo, clinicRepo, clinicSvc, extractor, registry,
		cfg.Files, cfg.Pipeline.Concurrency)
	rollupSvc := service.NewRollupService(rollupRepo, uploadRepo, cfg.Clinics.DefaultPayPercentage)

	// Initialize handlers
	clinicH := handler.NewClinicHandler(clinicSvc)
	uploadH := handler.NewUploadHandler(uploadRepo, processSvc)
	processH := handler.NewProcessHandler(ingestSvc, processSvc)
	rollupH := handler.NewRollupHandler(rollupSvc, clinicRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(clinicH, uploadH, processH, rollupH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
