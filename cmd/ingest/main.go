// Command ingest registers report files from the incoming dir as new
// uploads, seeding clinics from config first.
package main

import (
	"context"
	"fmt"
	"log"

	"dentrack/internal/config"
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

	ctx := context.Background()
	clinicSvc := service.NewClinicService(clinicRepo, cfg.Clinics.DefaultPayPercentage)
	if err := clinicSvc.Seed(ctx, entries); err != nil {
		return fmt.Errorf("failed to seed clinics: %w", err)
	}

	ingestSvc := service.NewIngestService(uploadRepo, clinicRepo, cfg.Files)
	registered, err := ingestSvc.RegisterIncoming(ctx)
	if err != nil {
		return err
	}

	log.Printf("Registered %d new uploads", len(registered))
	return nil
}
