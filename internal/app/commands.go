package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"monopoly_report/internal/domain"
)

// IngestionService replaces the repository contents with the records of a
// source, keeping their relative order.
type IngestionService struct {
	source  domain.RecordSource
	repo    domain.RecordRepository
	workers int
	policy  Policy
}

func NewIngestionService(src domain.RecordSource, r domain.RecordRepository, workers int, policy Policy) *IngestionService {
	if workers <= 0 {
		workers = 1
	}
	if policy == "" {
		policy = PolicySkip
	}
	return &IngestionService{source: src, repo: r, workers: workers, policy: policy}
}

// IngestResult counts what happened to each record.
type IngestResult struct {
	Stored  int
	Skipped int
	Failed  int
	Pruned  int64
}

// Ingest writes valid records at positions 0..n-1 and then removes every
// row at or beyond n, so the table mirrors the source after a clean run.
// Under PolicyAbort a malformed record stops the run before any write.
// When an upsert fails nothing is pruned; a rerun converges.
func (s *IngestionService) Ingest(ctx context.Context) (IngestResult, error) {
	records, err := s.source.LoadRecords(ctx)
	if err != nil {
		return IngestResult{}, err
	}

	var res IngestResult
	valid := make([]domain.PropertyRecord, 0, len(records))
	for i, rec := range records {
		if _, err := derive(rec); err != nil {
			var fe *domain.FieldError
			if errors.As(err, &fe) {
				fe.Index = i
			}
			if s.policy == PolicyAbort {
				return IngestResult{}, err
			}
			log.Warn().Err(err).Int("index", i).Msg("ingest skipped malformed record")
			res.Skipped++
			continue
		}
		valid = append(valid, rec)
	}

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	sem := semaphore.NewWeighted(int64(s.workers))

	for pos, rec := range valid {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return res, err
		}
		wg.Add(1)
		go func(pos int, p domain.PropertyRecord) {
			defer wg.Done()
			defer sem.Release(1)

			err := s.repo.UpsertRecord(ctx, pos, p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed++
				errs = append(errs, fmt.Errorf("upsert %q: %w", p.Name, err))
				return
			}
			res.Stored++
		}(pos, rec)
	}

	wg.Wait()
	if len(errs) > 0 {
		return res, errors.Join(errs...)
	}

	n, err := s.repo.DeleteFrom(ctx, len(valid))
	if err != nil {
		return res, fmt.Errorf("prune stale records: %w", err)
	}
	res.Pruned = n
	return res, nil
}
