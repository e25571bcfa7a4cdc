package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	SourceKind     string // file|http|mysql
	PropertiesPath string
	PropertiesURL  string
	SourceRPS      int

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	ReportWorkers   int
	IngestWorkers   int
	DataErrorPolicy string // skip|abort
	OutputHTML      string // "-" writes the page to stdout
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		SourceKind:      env("PROPERTIES_SOURCE", "file"),
		PropertiesPath:  env("PROPERTIES_PATH", "data/properties.json"),
		PropertiesURL:   env("PROPERTIES_URL", ""),
		SourceRPS:       atoi("SOURCE_RPS", 5),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/monopoly?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		ReportWorkers:   atoi("REPORT_WORKERS", 4),
		IngestWorkers:   atoi("INGEST_WORKERS", 4),
		DataErrorPolicy: env("DATA_ERROR_POLICY", "skip"),
		OutputHTML:      env("OUTPUT_HTML", "report.html"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
