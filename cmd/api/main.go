package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"monopoly_report/internal/adapters/htmldoc"
	server "monopoly_report/internal/adapters/http_server"
	"monopoly_report/internal/adapters/observability"
	"monopoly_report/internal/app"
	"monopoly_report/internal/bootstrap"
	"monopoly_report/internal/domain"
	"monopoly_report/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	policy, err := app.ParsePolicy(cfg.DataErrorPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid DATA_ERROR_POLICY")
	}

	src, closeSrc, err := bootstrap.Source(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.SourceKind).Msg("source init failed")
	}
	defer closeSrc()

	// deps
	cache := bootstrap.Cache(cfg)
	reports := app.NewReportService(cfg.ReportWorkers, policy)
	newPage := func() domain.Page { return htmldoc.New("Monopoly Properties") }
	q := app.NewQueryService(src, reports, cache, newPage, cfg.CacheTTL)

	// http
	srv := server.New(log.Logger)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("source", cfg.SourceKind).
		Bool("cache", cache != nil).
		Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
