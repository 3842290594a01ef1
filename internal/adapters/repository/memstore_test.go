package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/stride/internal/domain/model"
)

func fixedClock() func() time.Time {
	t0 := time.Date(2023, 10, 28, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t0 }
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithClock(fixedClock()))

	if err := s.Put(ctx, model.CritiqueJob{ID: "job1", Image: "aW1n"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "job1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.JobPending || got.SubmittedAt.IsZero() {
		t.Errorf("expected pending job with a submit time, got %+v", got)
	}

	if err := s.Complete(ctx, "job1", "Knees drifting in."); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got, _ = s.Get(ctx, "job1")
	if got.Status != model.JobDone || got.Critique != "Knees drifting in." {
		t.Errorf("expected done job with critique, got %+v", got)
	}
	if got.CompletedAt == nil || got.Image != "" {
		t.Errorf("expected completion time and dropped image, got %+v", got)
	}

	// Returned jobs are copies.
	*got.CompletedAt = time.Time{}
	again, _ := s.Get(ctx, "job1")
	if again.CompletedAt.IsZero() {
		t.Error("mutating a returned job changed the store")
	}
}

func TestMemoryStore_Errors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Complete(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_ = s.Put(ctx, model.CritiqueJob{ID: "job1"})
	if err := s.Put(ctx, model.CritiqueJob{ID: "job1"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithMaxJobs(2))

	_ = s.Put(ctx, model.CritiqueJob{ID: "job1"})
	_ = s.Put(ctx, model.CritiqueJob{ID: "job2"})
	if err := s.Delete(ctx, "job1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "job1"); err != nil {
		t.Errorf("deleting twice should be a no-op, got %v", err)
	}
	// The freed slot must not evict job2.
	_ = s.Put(ctx, model.CritiqueJob{ID: "job3"})
	if _, err := s.Get(ctx, "job2"); err != nil {
		t.Errorf("expected job2 kept, got %v", err)
	}
	if n := s.Count(ctx); n != 2 {
		t.Errorf("expected 2 jobs, got %d", n)
	}
}

func TestMemoryStore_Eviction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithMaxJobs(3))

	for i := 0; i < 5; i++ {
		if err := s.Put(ctx, model.CritiqueJob{ID: fmt.Sprintf("job%d", i)}); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	if n := s.Count(ctx); n != 3 {
		t.Errorf("expected 3 jobs, got %d", n)
	}
	if _, err := s.Get(ctx, "job1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected oldest jobs evicted, got %v", err)
	}
	if _, err := s.Get(ctx, "job4"); err != nil {
		t.Errorf("expected newest job kept, got %v", err)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("job%d", i)
			_ = s.Put(ctx, model.CritiqueJob{ID: id})
			_ = s.Complete(ctx, id, "ok")
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	if n := s.Count(ctx); n != 20 {
		t.Errorf("expected 20 jobs, got %d", n)
	}
}
