// Package bootstrap builds adapters from configuration for the commands.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	redisad "monopoly_report/internal/adapters/redis"
	"monopoly_report/internal/adapters/source"
	"monopoly_report/internal/domain"
	"monopoly_report/internal/shared"
	mysqlrepo "monopoly_report/internal/storage/mysql"
)

// OpenMySQL opens and pings the database.
func OpenMySQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}

// FileOrHTTPSource returns the document source named by the config.
func FileOrHTTPSource(cfg shared.Config) (domain.RecordSource, error) {
	if cfg.PropertiesURL != "" {
		return source.NewHTTP(cfg.PropertiesURL, cfg.SourceRPS)
	}
	return source.NewFile(cfg.PropertiesPath), nil
}

// Source returns the record source for PROPERTIES_SOURCE. The close func
// is never nil.
func Source(cfg shared.Config) (domain.RecordSource, func(), error) {
	noop := func() {}
	switch cfg.SourceKind {
	case "", "file":
		return source.NewFile(cfg.PropertiesPath), noop, nil
	case "http":
		if cfg.PropertiesURL == "" {
			return nil, noop, fmt.Errorf("PROPERTIES_URL is required for http source")
		}
		s, err := source.NewHTTP(cfg.PropertiesURL, cfg.SourceRPS)
		return s, noop, err
	case "mysql":
		db, err := OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		return mysqlrepo.New(db), func() { _ = db.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unknown PROPERTIES_SOURCE %q", cfg.SourceKind)
}

// Cache returns the redis cache, or nil when REDIS_ADDR is empty or the
// server does not answer. The report works without it.
func Cache(cfg shared.Config) domain.Cache {
	if cfg.RedisAddr == "" {
		return nil
	}
	c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, report cache disabled")
		_ = c.Close()
		return nil
	}
	return c
}
