package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"monopoly_report/internal/adapters/observability"
	"monopoly_report/internal/app"
	"monopoly_report/internal/bootstrap"
	"monopoly_report/internal/shared"
	mysqlrepo "monopoly_report/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	policy, err := app.ParsePolicy(cfg.DataErrorPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DATA_ERROR_POLICY")
	}

	log.Info().
		Str("path", cfg.PropertiesPath).
		Str("url", cfg.PropertiesURL).
		Int("workers", cfg.IngestWorkers).
		Str("policy", string(policy)).
		Msg("ingestor starting")

	db, err := bootstrap.OpenMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()
	log.Info().Msg("db ping ok")

	src, err := bootstrap.FileOrHTTPSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize properties source")
	}

	ing := app.NewIngestionService(src, mysqlrepo.New(db), cfg.IngestWorkers, policy)
	res, err := ing.Ingest(ctx)
	if err != nil {
		log.Fatal().Err(err).
			Int("stored", res.Stored).
			Int("failed", res.Failed).
			Msg("ingestion finished with errors")
	}
	log.Info().
		Int("stored", res.Stored).
		Int("skipped", res.Skipped).
		Int64("pruned", res.Pruned).
		Msg("ingestion completed")
}
