package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dunamismax/pixlens/internal/domain"
)

func TestMemoryJobStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryJobStore()

	created := time.Now().UTC().Add(-time.Minute)
	job := domain.Job{ID: "job-1", Status: domain.JobStatusCreated, CreatedAt: created, UpdatedAt: created}
	if err := s.Create(ctx, job); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(ctx, job); err == nil {
		t.Fatal("expected duplicate create to fail")
	}

	updated, err := s.UpdateStatus(ctx, "job-1", domain.JobStatusQueued)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != domain.JobStatusQueued || !updated.UpdatedAt.After(created) {
		t.Fatalf("unexpected updated job %+v", updated)
	}

	got, ok, err := s.Get(ctx, "job-1")
	if err != nil || !ok || got.Status != domain.JobStatusQueued {
		t.Fatalf("unexpected get result ok=%v err=%v job=%+v", ok, err, got)
	}

	if _, err := s.UpdateStatus(ctx, "missing", domain.JobStatusFailed); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestMemoryJobStoreUsageLogs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryJobStore()

	var _ UsageStore = s
	for _, u := range []domain.UsageLog{
		{UserID: "a", JobID: "1", PixelsProcessed: 10},
		{UserID: "b", JobID: "2", PixelsProcessed: 20},
		{UserID: "a", JobID: "3", PixelsProcessed: 30},
	} {
		if err := s.CreateUsageLog(ctx, u); err != nil {
			t.Fatalf("create usage log: %v", err)
		}
	}

	if got := s.UsageLogs("a"); len(got) != 2 || got[1].PixelsProcessed != 30 {
		t.Fatalf("unexpected usage for a: %+v", got)
	}
	if got := s.UsageLogs(""); len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
}

func TestOpenWithoutDSNUsesMemory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), "  ")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn()

	if _, ok := s.(*MemoryJobStore); !ok {
		t.Fatalf("expected memory store, got %T", s)
	}
}
