package job

import "time"

// Assignment pairs an employee with a scheduled job on a service date. It is
// a projection over job-schedule records for a query window, held in memory
// during a reconciliation run and never persisted by this subsystem.
type Assignment struct {
	JobID       string
	EmployeeID  string
	LocationID  *string
	ClientID    *string
	ServiceDate time.Time // day granularity, UTC midnight
}
