// Package placer is the top-level driver (ambient, not a spec.md
// component): it orchestrates C7 (proximity injection), C4 (global
// placement), C5 (legalization), C6 (pin assignment), C7 again (proximity
// removal), and C8 (grid alignment) into one end-to-end placement run, and
// owns the single tough-mode retry policy Section 7 describes for
// legalization infeasibility.
package placer

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/UTDA-group/IdeaPlaceEx/pkg/config"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/db"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/errors"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/globalplace"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/gridalign"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/legalize"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/observability"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/pinassign"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/proximity"
	"github.com/UTDA-group/IdeaPlaceEx/pkg/store"
)

// Options configures one placement run. Logger defaults to a discarding
// logger so library callers get silence unless they opt in, matching the
// teacher's pipeline.Options.Logger convention. Store is optional: when
// set, Run records the run's start and outcome there so the serve
// command's status endpoints can answer "what happened to run X" for a
// batch of placements without holding the caller's connection open.
type Options struct {
	Config config.Config
	Logger *log.Logger
	Store  store.Store
	DBHash string
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Result reports the outcome of one end-to-end placement run.
type Result struct {
	RunID           string
	Retryable       bool
	ToughModeUsed   bool
	OuterIterations int
	OuterConverged  bool
	HPWL            float64
	Elapsed         time.Duration
}

// Run executes the full pipeline against d in place. On legalization
// infeasibility it retries exactly once with a tough-mode config (doubled
// initial multipliers, raised outer-iteration cap) before surfacing
// failure; Result.Retryable reports whether the final error was itself one
// a caller could retry (i.e. the tough-mode attempt was also infeasible).
func Run(d *db.DB, opts Options) (Result, error) {
	opts.setDefaults()
	start := time.Now()
	runID := uuid.New().String()
	logger := opts.Logger.With("run_id", runID)

	if err := d.Validate(); err != nil {
		return Result{RunID: runID}, err
	}
	cfg := opts.Config.WithDefaults()

	ctx := context.Background()
	observability.Run().OnRunStart(ctx, runID)

	if opts.Store != nil {
		opts.Store.Put(ctx, &store.RunRecord{
			RunID: runID, DBHash: opts.DBHash, Status: store.StatusRunning, StartedAt: start,
		})
	}

	result, err := runOnce(d, cfg, logger, runID)
	result.RunID = runID
	if err != nil && errors.Retryable(err) {
		logger.Warn("legalization infeasible, retrying in tough mode")
		result, err = runOnce(d, cfg.Tough(), logger, runID)
		result.RunID = runID
		result.ToughModeUsed = true
	}
	result.Elapsed = time.Since(start)
	if err != nil {
		result.Retryable = errors.Retryable(err)
		logger.Error("placement failed", "err", err)
		observability.Run().OnRunComplete(ctx, runID, 0, result.Elapsed, err)
		recordOutcome(opts.Store, runID, opts.DBHash, cfg.ToughMode || result.ToughModeUsed, start, store.StatusFailed, 0, err)
		return result, err
	}
	logger.Info("placement finished", "hpwl", result.HPWL, "outer_iterations", result.OuterIterations)
	observability.Run().OnRunComplete(ctx, runID, result.HPWL, result.Elapsed, nil)
	recordOutcome(opts.Store, runID, opts.DBHash, result.ToughModeUsed, start, store.StatusSucceeded, result.HPWL, nil)
	return result, nil
}

// recordOutcome writes the final run record if a Store was configured; a
// nil Store is a no-op so callers that don't care about run history pay
// nothing.
func recordOutcome(s store.Store, runID, dbHash string, tough bool, started time.Time, status store.Status, hpwl float64, err error) {
	if s == nil {
		return
	}
	rec := &store.RunRecord{
		RunID: runID, DBHash: dbHash, Status: status,
		HPWL: hpwl, ToughMode: tough, StartedAt: started, EndedAt: time.Now(),
	}
	if err != nil {
		rec.ErrorMsg = err.Error()
	}
	s.Put(context.Background(), rec)
}

// runOnce drives one attempt of C7 -> C4 -> C5 -> C6 -> C7(remove) -> C8
// against cfg, cleaning up the injected proximity nets on every exit path
// so a failed attempt never leaves the DB in an inconsistent state for a
// caller that inspects it after an error.
func runOnce(d *db.DB, cfg config.Config, logger *log.Logger, runID string) (Result, error) {
	ctx := context.Background()
	inj := proximity.Inject(d, cfg)

	gpResult, err := globalplace.Run(d, cfg)
	if err != nil {
		proximity.Remove(d, inj)
		return Result{}, err
	}
	if !gpResult.Converged {
		logger.Warn("global placement hit its iteration cap without converging", "iterations", gpResult.Iterations)
	}

	result := Result{OuterIterations: gpResult.Iterations, OuterConverged: gpResult.Converged}

	legalizeStart := time.Now()
	observability.Run().OnLegalizeStart(ctx, runID)
	err = legalize.Run(d, cfg)
	observability.Run().OnLegalizeComplete(ctx, runID, time.Since(legalizeStart), err)
	if err != nil {
		proximity.Remove(d, inj)
		return result, err
	}

	pinassignStart := time.Now()
	observability.Run().OnPinAssignStart(ctx, runID)
	err = pinassign.Run(d, cfg)
	observability.Run().OnPinAssignComplete(ctx, runID, time.Since(pinassignStart), err)
	if err != nil {
		proximity.Remove(d, inj)
		return result, err
	}

	proximity.Remove(d, inj)

	if err := gridalign.Run(d, cfg); err != nil {
		return result, err
	}

	result.HPWL = d.TotalHPWL()
	return result, nil
}
