package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/timesheet"
)

// reconciler is the slice of the reconcile service the job needs.
type reconciler interface {
	Reconcile(ctx context.Context, window timesheet.Window) (timesheet.ReconcileResult, error)
}

// ReconcileJobs runs the scheduled reconciliation sweep. Each tick covers the
// trailing lookback window; because reconciliation is idempotent, overlapping
// windows across ticks are harmless.
type ReconcileJobs struct {
	reconciler reconciler
	interval   time.Duration
	lookback   time.Duration
}

func NewReconcileJobs(r reconciler, interval, lookback time.Duration) *ReconcileJobs {
	return &ReconcileJobs{
		reconciler: r,
		interval:   interval,
		lookback:   lookback,
	}
}

func (j *ReconcileJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_attendance_events", j.interval, j.ReconcileTrailingWindow)
}

func (j *ReconcileJobs) ReconcileTrailingWindow(ctx context.Context) error {
	end := time.Now().UTC()
	window := timesheet.Window{Start: end.Add(-j.lookback), End: end}

	result, err := j.reconciler.Reconcile(ctx, window)
	if err != nil {
		// A manual run may hold the lock; the next tick will catch up.
		if errors.Is(err, timesheet.ErrReconcileInProgress) {
			slog.Info("cron: reconciliation already running, skipping tick")
			return nil
		}
		return fmt.Errorf("scheduled reconciliation failed: %w", err)
	}

	slog.Info("cron: reconciliation sweep finished",
		"created", result.Created,
		"skipped", result.Skipped(),
		"total", result.Total)
	return nil
}
