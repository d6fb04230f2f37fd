package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/attendance"
	"github.com/fieldops/payroll-backend-go/internal/domain/job"
	"github.com/fieldops/payroll-backend-go/internal/domain/rate"
	"github.com/fieldops/payroll-backend-go/internal/domain/timesheet"
	ratesvc "github.com/fieldops/payroll-backend-go/internal/service/rate"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// rateLookupConcurrency bounds the parallel effective-rate reads issued
// within one reconciliation run.
const rateLookupConcurrency = 8

// Service turns raw attendance events into timesheets and keeps timesheet
// approval in step with job completion.
//
// Reconciliation is idempotent: at most one event-sourced timesheet exists
// per (employee, job, work day), so re-running a window creates nothing new.
// Runs never overlap; duplicate detection is read-then-write, and a
// concurrent run over the same window could slip past it.
type Service struct {
	attendanceRepo attendance.Repository
	jobRepo        job.Repository
	timesheetRepo  timesheet.Repository
	rates          ratesvc.Resolver
	matcher        MatchStrategy

	mu sync.Mutex // held for the duration of a run
}

func NewService(
	attendanceRepo attendance.Repository,
	jobRepo job.Repository,
	timesheetRepo timesheet.Repository,
	rates ratesvc.Resolver,
	matcher MatchStrategy,
) *Service {
	if matcher == nil {
		matcher = NewLocationFirstMatcher()
	}
	return &Service{
		attendanceRepo: attendanceRepo,
		jobRepo:        jobRepo,
		timesheetRepo:  timesheetRepo,
		rates:          rates,
		matcher:        matcher,
	}
}

type dayKey struct {
	employeeID string
	workDay    string
}

// pendingSheet is an event that survived matching and the duplicate check and
// is waiting on rate resolution.
type pendingSheet struct {
	event attendance.Event
	match job.Assignment
	rate  *rate.Record
}

// Reconcile processes every attendance event whose clock-in falls in the
// window. Per-event skip reasons are counted, never raised; only
// infrastructure failures abort the run. All created timesheets commit in one
// atomic batch.
func (s *Service) Reconcile(ctx context.Context, window timesheet.Window) (timesheet.ReconcileResult, error) {
	var result timesheet.ReconcileResult

	if err := window.Validate(); err != nil {
		return result, err
	}

	if !s.mu.TryLock() {
		return result, timesheet.ErrReconcileInProgress
	}
	defer s.mu.Unlock()

	events, err := s.attendanceRepo.ListInWindow(ctx, window.Start, window.End)
	if err != nil {
		return result, fmt.Errorf("failed to load attendance events: %w", err)
	}
	result.Total = len(events)
	if len(events) == 0 {
		return result, nil
	}

	// Work days covered by the window, widened to whole days for the
	// assignment projection and the duplicate check.
	dayStart := truncateToDay(window.Start)
	dayEnd := truncateToDay(window.End).AddDate(0, 0, 1)

	assignments, err := s.jobRepo.ListAssignments(ctx, dayStart, dayEnd)
	if err != nil {
		return result, fmt.Errorf("failed to load job assignments: %w", err)
	}

	existing, err := s.timesheetRepo.ListEventSourcedKeys(ctx, dayStart, dayEnd)
	if err != nil {
		return result, fmt.Errorf("failed to load existing timesheet keys: %w", err)
	}

	byEmployeeDay := indexAssignments(assignments)

	// Phase 1: match each event to a job and drop already-reconciled ones.
	var pending []*pendingSheet
	for _, ev := range events {
		key := dayKey{employeeID: ev.EmployeeID, workDay: ev.WorkDay().Format("2006-01-02")}
		match, ok := s.matcher.Match(ev, byEmployeeDay[key])
		if !ok {
			result.SkippedNoMatch++
			slog.Debug("reconcile: no job assignment for event",
				"event_id", ev.ID, "employee_id", ev.EmployeeID, "work_day", key.workDay)
			continue
		}

		tsKey := timesheet.Key{EmployeeID: ev.EmployeeID, JobID: match.JobID, WorkDay: key.workDay}
		if _, dup := existing[tsKey]; dup {
			result.SkippedDuplicate++
			continue
		}

		pending = append(pending, &pendingSheet{event: ev, match: match})
	}

	// Phase 2: resolve rates concurrently. Reads only; ordering among
	// independent employees does not matter.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rateLookupConcurrency)
	for _, p := range pending {
		p := p
		g.Go(func() error {
			rec, err := s.rates.Resolve(gctx, p.event.EmployeeID, p.event.ClockIn, p.match.LocationID, p.match.ClientID)
			if err != nil {
				return err
			}
			p.rate = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return timesheet.ReconcileResult{Total: result.Total}, fmt.Errorf("failed to resolve rates: %w", err)
	}

	// Phase 3: build the batch. The seen set catches two events hitting the
	// same (employee, job, work day) inside a single window.
	seen := make(map[timesheet.Key]struct{}, len(pending))
	var sheets []timesheet.Timesheet
	for _, p := range pending {
		if p.rate == nil {
			result.SkippedNoRate++
			slog.Info("reconcile: no pay rate in effect for event",
				"event_id", p.event.ID, "employee_id", p.event.EmployeeID,
				"clock_in", p.event.ClockIn)
			continue
		}

		sheet := buildTimesheet(p.event, p.match, p.rate)
		if _, dup := seen[sheet.IdempotencyKey()]; dup {
			result.SkippedDuplicate++
			continue
		}
		seen[sheet.IdempotencyKey()] = struct{}{}
		sheets = append(sheets, sheet)
	}

	if err := s.timesheetRepo.CreateBatch(ctx, sheets); err != nil {
		return timesheet.ReconcileResult{Total: result.Total}, fmt.Errorf("failed to commit timesheet batch: %w", err)
	}
	result.Created = len(sheets)

	slog.Info("reconcile: run complete",
		"window_start", window.Start, "window_end", window.End,
		"total", result.Total, "created", result.Created,
		"skipped_duplicate", result.SkippedDuplicate,
		"skipped_no_match", result.SkippedNoMatch,
		"skipped_no_rate", result.SkippedNoRate)

	return result, nil
}

// OnJobCompleted stamps admin approval on the job's event-sourced timesheets.
// Best-effort bulk update: re-applying approval is harmless, so no
// transaction is needed.
func (s *Service) OnJobCompleted(ctx context.Context, jobID string) (int64, error) {
	count, err := s.timesheetRepo.ApproveByJob(ctx, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to approve timesheets for job %s: %w", jobID, err)
	}

	slog.Info("reconcile: job completion approved timesheets", "job_id", jobID, "count", count)
	return count, nil
}

// OnJobCompletionReverted resets admin approval on the given timesheets. Runs
// in a transaction that re-verifies each row, because a human admin may be
// editing the same timesheet concurrently and manual timesheets must never be
// flipped back.
func (s *Service) OnJobCompletionReverted(ctx context.Context, timesheetIDs []string) error {
	if err := s.timesheetRepo.RevertApprovals(ctx, timesheetIDs); err != nil {
		return fmt.Errorf("failed to revert timesheet approvals: %w", err)
	}

	slog.Info("reconcile: job completion reverted", "timesheet_count", len(timesheetIDs))
	return nil
}

func indexAssignments(assignments []job.Assignment) map[dayKey][]job.Assignment {
	idx := make(map[dayKey][]job.Assignment)
	for _, as := range assignments {
		key := dayKey{
			employeeID: as.EmployeeID,
			workDay:    as.ServiceDate.Format("2006-01-02"),
		}
		idx[key] = append(idx[key], as)
	}
	return idx
}

func buildTimesheet(ev attendance.Event, match job.Assignment, rec *rate.Record) timesheet.Timesheet {
	sheet := timesheet.Timesheet{
		ID:         uuid.NewString(),
		EmployeeID: ev.EmployeeID,
		JobID:      match.JobID,
		WorkDay:    ev.WorkDay(),
		StartTime:  &ev.ClockIn,
		EndTime:    ev.ClockOut,
		Rate:       rec.Snapshot(),
		// The clock event is the employee's proof of work; admin approval
		// waits for job completion.
		EmployeeApproved: true,
		AdminApproved:    false,
		Source:           timesheet.SourceAttendanceEvent,
	}

	switch rec.Type {
	case rate.TypePerVisit:
		sheet.Units = 1
	default:
		// An open shift (no clock-out) has no payable hours until closed.
		if !ev.Open() {
			sheet.Hours = roundHours(ev.ClockOut.Sub(ev.ClockIn).Hours())
		}
	}

	return sheet
}

func roundHours(h float64) float64 {
	return math.Max(0, math.Round(h*100)/100)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
