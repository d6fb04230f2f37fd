package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/timesheet"
	ratesvc "github.com/fieldops/payroll-backend-go/internal/service/rate"
	"github.com/google/uuid"
)

// ManualEntryInput is an admin-entered timesheet. The pay rate is resolved at
// entry time from the employee's rate records, scoped by the optional
// location/client of the job the work was done for.
type ManualEntryInput struct {
	EmployeeID string
	JobID      string
	WorkDay    time.Time
	StartTime  *time.Time
	EndTime    *time.Time
	Hours      float64
	Units      int
	LocationID *string
	ClientID   *string
}

func (in ManualEntryInput) validate() error {
	if in.Hours < 0 || in.Units < 0 {
		return timesheet.ErrInvalidQuantity
	}
	return nil
}

// Service owns manual timesheet entry and per-employee timesheet reads.
// Reconciliation-created timesheets go through the reconcile service instead.
type Service struct {
	timesheetRepo timesheet.Repository
	rates         ratesvc.Resolver
}

func NewService(timesheetRepo timesheet.Repository, rates ratesvc.Resolver) *Service {
	return &Service{
		timesheetRepo: timesheetRepo,
		rates:         rates,
	}
}

// CreateManual records an admin-entered timesheet. Unlike reconciliation, a
// missing rate here is an error, not a skip: the admin is looking at the
// result and can fix the rate records first. The employee has not confirmed
// the work, so employee approval starts false.
func (s *Service) CreateManual(ctx context.Context, in ManualEntryInput) (timesheet.Timesheet, error) {
	if err := in.validate(); err != nil {
		return timesheet.Timesheet{}, err
	}

	rec, err := s.rates.Resolve(ctx, in.EmployeeID, in.WorkDay, in.LocationID, in.ClientID)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to resolve rate: %w", err)
	}
	if rec == nil {
		return timesheet.Timesheet{}, timesheet.ErrNoRateInEffect
	}

	sheet := timesheet.Timesheet{
		ID:               uuid.NewString(),
		EmployeeID:       in.EmployeeID,
		JobID:            in.JobID,
		WorkDay:          truncateToDay(in.WorkDay),
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		Hours:            in.Hours,
		Units:            in.Units,
		Rate:             rec.Snapshot(),
		EmployeeApproved: false,
		AdminApproved:    false,
		Source:           timesheet.SourceManual,
	}

	created, err := s.timesheetRepo.Create(ctx, sheet)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create manual timesheet: %w", err)
	}

	slog.Info("timesheet: manual entry created",
		"timesheet_id", created.ID, "employee_id", created.EmployeeID,
		"job_id", created.JobID, "work_day", created.WorkDay.Format("2006-01-02"))

	return created, nil
}

// ListByEmployee returns the employee's timesheets with work day in
// [start, end], ordered ascending.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]timesheet.Timesheet, error) {
	sheets, err := s.timesheetRepo.ListByEmployeeAndRange(ctx, employeeID, truncateToDay(start), truncateToDay(end))
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	return sheets, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
