package bootstrap_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "monopoly_report/internal/adapters/redis"
	"monopoly_report/internal/adapters/source"
	"monopoly_report/internal/bootstrap"
	"monopoly_report/internal/shared"
)

func TestSource_Kinds(t *testing.T) {
	s, closeFn, err := bootstrap.Source(shared.Config{SourceKind: "file", PropertiesPath: "x.json"})
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	if _, ok := s.(*source.FileSource); !ok {
		t.Fatalf("expected file source, got %T", s)
	}

	s, _, err = bootstrap.Source(shared.Config{SourceKind: "http", PropertiesURL: "http://example.test/properties.json"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*source.HTTPSource); !ok {
		t.Fatalf("expected http source, got %T", s)
	}

	if _, _, err := bootstrap.Source(shared.Config{SourceKind: "http"}); err == nil {
		t.Fatalf("expected error for http source without URL")
	}
	if _, _, err := bootstrap.Source(shared.Config{SourceKind: "ftp"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestCache(t *testing.T) {
	if c := bootstrap.Cache(shared.Config{}); c != nil {
		t.Fatalf("expected nil cache without REDIS_ADDR")
	}

	mr := miniredis.RunT(t)
	c := bootstrap.Cache(shared.Config{RedisAddr: mr.Addr()})
	if _, ok := c.(*redisad.Cache); !ok {
		t.Fatalf("expected redis cache, got %T", c)
	}

	addr := mr.Addr()
	mr.Close()
	if c := bootstrap.Cache(shared.Config{RedisAddr: addr}); c != nil {
		t.Fatalf("expected nil cache when redis is down")
	}
}
