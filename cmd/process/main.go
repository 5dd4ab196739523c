// Command process runs the pipeline over every upload in status new.
package main

import (
	"context"
	"fmt"
	"log"

	"dentrack/internal/config"
	"dentrack/internal/ocr"
	"dentrack/internal/parser"
	"dentrack/internal/repository/postgres"
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

	clinicRepo := postgres.NewClinicRepo(db)
	uploadRepo := postgres.NewUploadRepo(db)

	entries, err := config.LoadClinicEntries(cfg.Clinics.ConfigPath)
	if err != nil {
		return err
	}
	registry, err := parser.NewRegistryFromConfig(entries)
	if err != nil {
		return fmt.Errorf("failed to build parser registry: %w", err)
	}

	ctx := context.Background()
	clinicSvc := service.NewClinicService(clinicRepo, cfg.Clinics.DefaultPayPercentage)
	if err := clinicSvc.Seed(ctx, entries); err != nil {
		return fmt.Errorf("failed to seed clinics: %w", err)
	}

	extractor := ocr.NewTesseractExtractor(&cfg.OCR)
	processSvc := service.NewProcessService(
		uploadRepo, clinicRepo, clinicSvc, extractor, registry,
		cfg.Files, cfg.Pipeline.Concurrency)

	report, err := processSvc.ProcessNewUploads(ctx)
	if err != nil {
		return err
	}

	log.Printf("Processed %d uploads, %d failed", report.Processed(), report.Failed())
	return nil
}
