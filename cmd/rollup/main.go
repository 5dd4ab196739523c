// Command rollup materializes weekly rollups for a given week start.
// Usage: rollup -week-start 2024-02-05 [-refresh]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"dentrack/internal/config"
	"dentrack/internal/repository/postgres"
	"dentrack/internal/service"
)

func main() {
	weekStartFlag := flag.String("week-start", "", "week start date (YYYY-MM-DD, a Monday)")
	refresh := flag.Bool("refresh", false, "delete the week's existing rollups and regenerate")
	flag.Parse()

	if err := run(*weekStartFlag, *refresh); err != nil {
		log.Fatal(err)
	}
}

func run(weekStartArg string, refresh bool) error {
	if weekStartArg == "" {
		return fmt.Errorf("-week-start is required")
	}
	weekStart, err := time.Parse("2006-01-02", weekStartArg)
	if err != nil {
		return fmt.Errorf("invalid -week-start: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uploadRepo := postgres.NewUploadRepo(db)
	rollupRepo := postgres.NewRollupRepo(db)
	rollupSvc := service.NewRollupService(rollupRepo, uploadRepo, cfg.Clinics.DefaultPayPercentage)

	ctx := context.Background()
	var rows int
	if refresh {
		rollups, err := rollupSvc.Refresh(ctx, weekStart)
		if err != nil {
			return err
		}
		rows = len(rollups)
	} else {
		rollups, err := rollupSvc.Generate(ctx, weekStart)
		if err != nil {
			return err
		}
		rows = len(rollups)
	}

	log.Printf("Created %d rollup rows for week %s", rows, weekStartArg)
	return nil
}
