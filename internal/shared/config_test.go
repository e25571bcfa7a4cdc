package shared_test

import (
	"testing"
	"time"

	"monopoly_report/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PROPERTIES_SOURCE", "PROPERTIES_PATH", "REPORT_WORKERS", "CACHE_TTL_SECONDS", "DATA_ERROR_POLICY", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.SourceKind != "file" || c.PropertiesPath != "data/properties.json" {
		t.Fatalf("unexpected source defaults: %+v", c)
	}
	if c.ReportWorkers != 4 || c.CacheTTL != 300*time.Second || c.DataErrorPolicy != "skip" || c.RedisAddr != "" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROPERTIES_SOURCE", "http")
	t.Setenv("PROPERTIES_URL", "http://example.test/properties.json")
	t.Setenv("REPORT_WORKERS", "8")
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")

	c := shared.Load()
	if c.SourceKind != "http" || c.PropertiesURL != "http://example.test/properties.json" || c.ReportWorkers != 8 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.CacheTTL != 300*time.Second {
		t.Fatalf("bad int should fall back to default, got %v", c.CacheTTL)
	}
}
