package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"monopoly_report/internal/adapters/console"
	"monopoly_report/internal/adapters/htmldoc"
	"monopoly_report/internal/adapters/observability"
	"monopoly_report/internal/app"
	"monopoly_report/internal/bootstrap"
	"monopoly_report/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// stdout carries the narrative; logs go to stderr
	log.Logger = observability.NewLoggerTo(cfg.AppEnv, os.Stderr)

	policy, err := app.ParsePolicy(cfg.DataErrorPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DATA_ERROR_POLICY")
	}

	src, closeSrc, err := bootstrap.Source(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.SourceKind).Msg("source init failed")
	}
	defer closeSrc()

	records, err := src.LoadRecords(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("properties could not be loaded")
	}

	page := htmldoc.New("Monopoly Properties")
	sum, err := app.NewReportService(cfg.ReportWorkers, policy).
		Build(ctx, records, console.NewSink(os.Stdout), page)
	if err != nil {
		log.Fatal().Err(err).Msg("report aborted")
	}

	html, err := page.HTML()
	if err != nil {
		log.Fatal().Err(err).Msg("render html failed")
	}
	if cfg.OutputHTML == "-" {
		_, err = os.Stdout.WriteString(html)
	} else {
		err = os.WriteFile(cfg.OutputHTML, []byte(html), 0o644)
	}
	if err != nil {
		log.Fatal().Err(err).Str("out", cfg.OutputHTML).Msg("write html failed")
	}

	log.Info().
		Int("total", sum.Total).
		Int("rendered", sum.Rendered).
		Int("skipped", len(sum.Skipped)).
		Str("html", cfg.OutputHTML).
		Msg("report completed")
}
