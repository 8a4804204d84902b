// Command embed rebuilds the embedding index from the current faculty table.
// The whole index is rebuilt every run; vectors are positional, so there is
// no incremental path.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/meetp/facultyfinder/internal/app/repositories"
	"github.com/meetp/facultyfinder/internal/bootstrap"
	"github.com/meetp/facultyfinder/internal/embedding"
	"github.com/meetp/facultyfinder/internal/index"
	"github.com/meetp/facultyfinder/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	embedder, err := embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
		BaseURL: cfg.Embedding.BaseURL,
		APIKey:  cfg.Embedding.APIKey,
		Model:   cfg.Embedding.Model,
	})
	if err != nil {
		lgr.Error().Err(err).
			Msg("Embedding model failed to load; check embedding.base_url and embedding.model in the config")
		os.Exit(1)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to setup database")
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := repositories.NewRepositories(dbPool)

	ctx := context.Background()
	snapshot, err := repos.FacultyRepository.Snapshot(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to snapshot faculty table")
		os.Exit(1)
	}
	if len(snapshot) == 0 {
		lgr.Error().Msg("Faculty table is empty; run the ingest command first")
		os.Exit(1)
	}

	builder := index.NewBuilder(embedder, cfg.Embedding.Model)
	artifact, err := builder.Build(ctx, snapshot)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to build embedding index")
		os.Exit(1)
	}

	if err := index.Save(cfg.Search.IndexPath, artifact); err != nil {
		lgr.Error().Err(err).Str("path", cfg.Search.IndexPath).Msg("Failed to save embedding index")
		os.Exit(1)
	}

	lgr.Info().
		Int("records", artifact.Count).
		Int("dimension", artifact.Dimension).
		Str("model", artifact.Model).
		Str("path", cfg.Search.IndexPath).
		Msg("Embedding index written")
}
