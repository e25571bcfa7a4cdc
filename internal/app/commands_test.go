package app_test

import (
	"context"
	"errors"
	"testing"

	"monopoly_report/internal/app"
	"monopoly_report/internal/domain"
)

func brokenBoardwalk() domain.PropertyRecord {
	bad := boardwalk()
	bad.Name = "Broken"
	bad.RentWithHouses = nil
	return bad
}

func TestIngest_StoresValidRecordsInOrder(t *testing.T) {
	src := &fakeSource{records: []domain.PropertyRecord{mediterranean(), brokenBoardwalk(), boardwalk()}}
	repo := newFakeRepo()

	res, err := app.NewIngestionService(src, repo, 2, app.PolicySkip).Ingest(context.Background())
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Stored != 2 || res.Skipped != 1 || res.Failed != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(repo.stored) != 2 || repo.stored[0].Name != "Mediterranean Avenue" || repo.stored[1].Name != "Boardwalk" {
		t.Fatalf("records stored at wrong positions: %+v", repo.stored)
	}
	if repo.pruned != 2 {
		t.Fatalf("expected prune from 2, got %d", repo.pruned)
	}
}

func TestIngest_ShorterSourceRemovesStaleRows(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()

	long := &fakeSource{records: []domain.PropertyRecord{mediterranean(), boardwalk(), mediterranean()}}
	if _, err := app.NewIngestionService(long, repo, 2, app.PolicySkip).Ingest(ctx); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	short := &fakeSource{records: []domain.PropertyRecord{boardwalk()}}
	res, err := app.NewIngestionService(short, repo, 2, app.PolicySkip).Ingest(ctx)
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if res.Pruned != 2 || len(repo.stored) != 1 || repo.stored[0].Name != "Boardwalk" {
		t.Fatalf("stale rows kept: result %+v, stored %+v", res, repo.stored)
	}
}

func TestIngest_AbortPolicyWritesNothing(t *testing.T) {
	src := &fakeSource{records: []domain.PropertyRecord{mediterranean(), brokenBoardwalk()}}
	repo := newFakeRepo()

	_, err := app.NewIngestionService(src, repo, 2, app.PolicyAbort).Ingest(context.Background())
	var fe *domain.FieldError
	if !errors.As(err, &fe) || fe.Index != 1 || fe.Field != "rentWithHouses" {
		t.Fatalf("expected field error for record 1, got %v", err)
	}
	if len(repo.stored) != 0 || repo.pruned != -1 {
		t.Fatalf("abort touched storage: stored %+v, pruned %d", repo.stored, repo.pruned)
	}
}

func TestIngest_RepoErrorsAreJoinedAndSkipPrune(t *testing.T) {
	src := &fakeSource{records: []domain.PropertyRecord{mediterranean(), boardwalk()}}
	repo := newFakeRepo()
	repo.failOn = "Boardwalk"

	res, err := app.NewIngestionService(src, repo, 4, app.PolicySkip).Ingest(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if res.Stored != 1 || res.Failed != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if repo.pruned != -1 {
		t.Fatalf("pruned after a failed upsert")
	}
}

func TestIngest_SourceError(t *testing.T) {
	src := &fakeSource{err: domain.SourceError("read", errors.New("no such file"))}
	_, err := app.NewIngestionService(src, newFakeRepo(), 1, app.PolicySkip).Ingest(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
