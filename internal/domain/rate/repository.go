package rate

import (
	"context"
	"time"
)

// Repository reads effective-dated rate records.
type Repository interface {
	// FindEffective returns the most recent record for the employee with
	// effective date <= at, restricted by scope (location equality, client
	// equality, or neither). A miss returns (nil, nil): having no rate on
	// file is a skip condition for the caller, not an error.
	FindEffective(ctx context.Context, employeeID string, at time.Time, scope Scope) (*Record, error)
}
