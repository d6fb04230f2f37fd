package job

import (
	"context"
	"time"
)

// Repository projects job-schedule records into assignments. Read-only: the
// scheduling subsystem owns the underlying records.
type Repository interface {
	// ListAssignments returns assignments whose service date falls in
	// [start, end), ordered by service date then by schedule arrival order.
	// Arrival order matters: the matcher's tie-break depends on it.
	ListAssignments(ctx context.Context, start, end time.Time) ([]Assignment, error)
}
