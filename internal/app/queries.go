package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"monopoly_report/internal/domain"
)

// QueryService renders the report for readers such as the HTTP API.
// Each call is one fresh pass over the source; the cache only ever holds
// rendered output keyed by a hash of the records it was built from.
type QueryService struct {
	source   domain.RecordSource
	reports  *ReportService
	cache    domain.Cache
	newPage  func() domain.Page
	cacheTTL time.Duration
}

func NewQueryService(src domain.RecordSource, rs *ReportService, c domain.Cache, newPage func() domain.Page, ttl time.Duration) *QueryService {
	return &QueryService{source: src, reports: rs, cache: c, newPage: newPage, cacheTTL: ttl}
}

func (s *QueryService) GetReport(ctx context.Context) (domain.ReportView, error) {
	records, err := s.source.LoadRecords(ctx)
	if err != nil {
		return domain.ReportView{}, err
	}

	key, err := reportKey(s.reports.policy, records)
	if err != nil {
		return domain.ReportView{}, err
	}
	var rv domain.ReportView
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &rv); ok {
			rv.Cached = true
			return rv, nil
		}
	}

	rv, err = s.render(ctx, key, records)
	if err != nil {
		return domain.ReportView{}, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rv, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return rv, nil
}

func (s *QueryService) render(ctx context.Context, key string, records []domain.PropertyRecord) (domain.ReportView, error) {
	page := s.newPage()
	var sink bufferSink
	sum, err := s.reports.Build(ctx, records, &sink, page)
	if err != nil {
		return domain.ReportView{}, err
	}
	html, err := page.HTML()
	if err != nil {
		return domain.ReportView{}, fmt.Errorf("render html: %w", err)
	}
	return domain.ReportView{Key: key, Narrative: sink.String(), HTML: html, Summary: sum}, nil
}

func reportKey(p Policy, records []domain.PropertyRecord) (string, error) {
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("hash records: %w", err)
	}
	sum := sha1.Sum(b)
	return fmt.Sprintf("report:%s:%s", p, hex.EncodeToString(sum[:])), nil
}

// bufferSink collects narrative blocks the way a console would print them:
// each block followed by a line break.
type bufferSink struct{ b strings.Builder }

func (s *bufferSink) Emit(block string) error {
	s.b.WriteString(block)
	s.b.WriteByte('\n')
	return nil
}

func (s *bufferSink) String() string { return s.b.String() }
