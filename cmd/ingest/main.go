// Command ingest runs one ingestion batch: it reads the scraper's raw CSV
// export, normalizes every record, and reconciles them into the faculty
// table. It prints an inserted/updated/skipped summary and exits.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/meetp/facultyfinder/internal/app/repositories"
	"github.com/meetp/facultyfinder/internal/app/services"
	"github.com/meetp/facultyfinder/internal/bootstrap"
	"github.com/meetp/facultyfinder/internal/ingest"
	"github.com/meetp/facultyfinder/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	csvPath := flag.String("csv", "", "path to the raw CSV export (overrides config)")
	flag.Parse()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	path := cfg.Ingest.CSVPath
	if *csvPath != "" {
		path = *csvPath
	}

	raws, err := ingest.LoadCSV(path)
	if err != nil {
		lgr.Error().Err(err).Str("path", path).
			Msg("Failed to load raw export; run the scraper first")
		os.Exit(1)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := repositories.NewRepositories(dbPool)
	normalizer := ingest.NewNormalizer(cfg.Ingest.PhonePrefix)
	service := services.NewIngestService(repos.FacultyRepository, normalizer, lgr)

	summary, err := service.Run(context.Background(), raws)
	if err != nil {
		lgr.Error().Err(err).Msg("Ingestion failed")
		os.Exit(1)
	}

	count, err := repos.FacultyRepository.Count(context.Background())
	if err != nil {
		lgr.Warn().Err(err).Msg("Failed to count stored records")
	}

	lgr.Info().
		Str("runID", summary.RunID).
		Int("inserted", summary.Inserted).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Int64("totalStored", count).
		Msg("Done. Rerun the embed command to refresh the search index.")
}
