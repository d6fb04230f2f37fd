package attendance

import (
	"context"
	"time"
)

// Repository reads attendance events from the store. The time-clock subsystem
// owns writes; reconciliation only consumes.
type Repository interface {
	// ListInWindow returns events whose clock-in falls in [start, end),
	// ordered by clock-in ascending.
	ListInWindow(ctx context.Context, start, end time.Time) ([]Event, error)
}
