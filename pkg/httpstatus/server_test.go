package httpstatus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/store"
)

func TestHandleHealthzReturnsOK(t *testing.T) {
	r := NewReporter(store.NewMemoryStore())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
}

func TestHandleStatusReturnsVersion(t *testing.T) {
	r := NewReporter(store.NewMemoryStore())
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	r.Router().ServeHTTP(w, req)

	var resp statusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Version == "" {
		t.Fatal("expected non-empty version")
	}
}

func TestHandleGetRunReturns404WhenMissing(t *testing.T) {
	r := NewReporter(store.NewMemoryStore())
	req := httptest.NewRequest(http.MethodGet, "/runs/missing", nil)
	w := httptest.NewRecorder()
	r.Router().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleGetRunReturnsRecord(t *testing.T) {
	s := store.NewMemoryStore()
	s.Put(context.Background(), &store.RunRecord{RunID: "r1", Status: store.StatusSucceeded, StartedAt: time.Now()})
	r := NewReporter(s)

	req := httptest.NewRequest(http.MethodGet, "/runs/r1", nil)
	w := httptest.NewRecorder()
	r.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	var rec store.RunRecord
	if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if rec.RunID != "r1" {
		t.Fatalf("got RunID %q, want %q", rec.RunID, "r1")
	}
}

func TestHandleListRunsDefaultWindowExcludesOldRuns(t *testing.T) {
	s := store.NewMemoryStore()
	base := time.Now()
	s.Put(context.Background(), &store.RunRecord{RunID: "old", StartedAt: base.Add(-48 * time.Hour)})
	s.Put(context.Background(), &store.RunRecord{RunID: "new", StartedAt: base})
	r := NewReporter(s)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	w := httptest.NewRecorder()
	r.Router().ServeHTTP(w, req)

	var recs []store.RunRecord
	if err := json.NewDecoder(w.Body).Decode(&recs); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	for _, rec := range recs {
		if rec.RunID == "old" {
			t.Fatal("expected default 24h window to exclude the 48h-old record")
		}
	}
}
