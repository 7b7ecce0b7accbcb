package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	rec := &RunRecord{RunID: "r1", DBHash: "abc", Status: StatusRunning, StartedAt: time.Now()}

	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, err := s.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.DBHash != "abc" {
		t.Fatalf("got DBHash %q, want %q", got.DBHash, "abc")
	}
}

func TestMemoryStoreGetMissingReturnsErrNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestMemoryStorePutOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Put(ctx, &RunRecord{RunID: "r1", Status: StatusRunning, StartedAt: time.Now()})
	s.Put(ctx, &RunRecord{RunID: "r1", Status: StatusSucceeded, StartedAt: time.Now()})

	got, err := s.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Status != StatusSucceeded {
		t.Fatalf("got status %q, want %q", got.Status, StatusSucceeded)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.Put(ctx, &RunRecord{RunID: "r1", StartedAt: time.Now()})
	if err := s.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, "r1"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound after delete", err)
	}
}

func TestMemoryStoreListFiltersBySinceAndOrdersDescending(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()
	s.Put(ctx, &RunRecord{RunID: "old", StartedAt: base.Add(-time.Hour)})
	s.Put(ctx, &RunRecord{RunID: "mid", StartedAt: base})
	s.Put(ctx, &RunRecord{RunID: "new", StartedAt: base.Add(time.Hour)})

	got, err := s.List(ctx, base, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].RunID != "new" || got[1].RunID != "mid" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestMemoryStoreListRespectsLimit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 5; i++ {
		s.Put(ctx, &RunRecord{RunID: string(rune('a' + i)), StartedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	got, err := s.List(ctx, base.Add(-time.Hour), 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
}
