package timesheet

import (
	"context"
	"time"
)

// Repository persists timesheets. CreateBatch is the subsystem's only write
// path during reconciliation and must be atomic: either every timesheet in
// the batch commits or none do.
type Repository interface {
	// CreateBatch atomically inserts all timesheets. An empty batch is a
	// no-op.
	CreateBatch(ctx context.Context, sheets []Timesheet) error

	// Create inserts a single (manually entered) timesheet.
	Create(ctx context.Context, sheet Timesheet) (Timesheet, error)

	// ListEventSourcedKeys returns the idempotency keys of event-sourced
	// timesheets whose work day falls in [start, end]. Reconciliation uses
	// this set for its duplicate check.
	ListEventSourcedKeys(ctx context.Context, start, end time.Time) (map[Key]struct{}, error)

	// ListByEmployeeAndRange returns all timesheets for the employee whose
	// work day falls in [start, end], ordered by work day ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Timesheet, error)

	// ApproveByJob stamps admin approval on every event-sourced, not yet
	// admin-approved timesheet of the job. Returns how many rows changed.
	// Re-applying is harmless, so this is a plain bulk update.
	ApproveByJob(ctx context.Context, jobID string) (int64, error)

	// RevertApprovals resets admin approval on the given timesheets inside a
	// transaction, re-reading each row with a lock first and touching only
	// event-sourced rows. Unknown ids and manual timesheets are skipped.
	RevertApprovals(ctx context.Context, ids []string) error
}
