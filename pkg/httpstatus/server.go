// Package httpstatus exposes a small HTTP status API over a pkg/store,
// for the serve command: health/readiness checks and run-record lookup
// for callers that submitted a placement run and want to poll its outcome
// instead of holding a connection open. Routed with go-chi/chi, which the
// teacher's go.mod already required but never wired into any source file;
// this package is the first thing in the module to import it.
package httpstatus

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/buildinfo"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/store"
)

// Reporter serves status and run-record endpoints backed by a store.Store.
type Reporter struct {
	Store     store.Store
	startedAt time.Time
}

// NewReporter creates a Reporter, recording the current time as its start
// for /status's uptime field.
func NewReporter(s store.Store) *Reporter {
	return &Reporter{Store: s, startedAt: time.Now()}
}

// Router builds the chi router serving this Reporter's endpoints.
func (r *Reporter) Router() chi.Router {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)

	mux.Get("/healthz", r.handleHealthz)
	mux.Get("/status", r.handleStatus)
	mux.Get("/runs/{runID}", r.handleGetRun)
	mux.Get("/runs", r.handleListRuns)
	return mux
}

func (r *Reporter) handleHealthz(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type statusResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Uptime  string `json:"uptime"`
}

func (r *Reporter) handleStatus(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Version: buildinfo.Version,
		Commit:  buildinfo.Commit,
		Uptime:  time.Since(r.startedAt).Round(time.Second).String(),
	})
}

func (r *Reporter) handleGetRun(w http.ResponseWriter, req *http.Request) {
	runID := chi.URLParam(req, "runID")
	rec, err := r.Store.Get(req.Context(), runID)
	if err == store.ErrNotFound {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (r *Reporter) handleListRuns(w http.ResponseWriter, req *http.Request) {
	limit := 50
	if v := req.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	since := time.Now().Add(-24 * time.Hour)
	if v := req.URL.Query().Get("since"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			since = t
		}
	}
	recs, err := r.Store.List(req.Context(), since, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
