package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrReconcileInProgress = errors.New("a reconciliation run is already in progress")
	ErrInvalidWindow       = errors.New("reconciliation window start must be before end")
	ErrTimesheetNotFound   = errors.New("timesheet not found")
	ErrInvalidRateAmount   = errors.New("rate amount must be positive")
	ErrNoRateInEffect      = errors.New("no pay rate in effect for employee")
	ErrInvalidQuantity     = errors.New("worked quantity must not be negative")
)
