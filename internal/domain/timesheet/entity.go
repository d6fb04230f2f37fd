package timesheet

import (
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/rate"
	"github.com/shopspring/decimal"
)

// Source distinguishes how a timesheet came to exist.
const (
	// SourceAttendanceEvent marks timesheets generated by reconciliation from
	// a clock event. At most one such timesheet exists per
	// (employee, job, work day).
	SourceAttendanceEvent = "attendance_event"
	// SourceManual marks timesheets entered by an admin.
	SourceManual = "manual"
)

// Timesheet is a payable unit of work: an employee, the job it was worked
// against, the day, the worked quantity, and a frozen copy of the pay rate
// that applied when the timesheet was created.
type Timesheet struct {
	ID         string
	EmployeeID string
	JobID      string
	WorkDay    time.Time // UTC midnight
	StartTime  *time.Time
	EndTime    *time.Time

	// Hours is the payable quantity for hourly rates, rounded to 2 decimal
	// places. Units is the quantity for per-visit rates (always 1 for
	// event-sourced timesheets).
	Hours float64
	Units int

	Rate rate.Snapshot

	// EmployeeApproved is set at creation for event-sourced timesheets: the
	// clock event itself is the proof of work. AdminApproved flips when the
	// owning job is marked complete and flips back if that is reverted.
	EmployeeApproved bool
	AdminApproved    bool

	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Amount is the payable value of the timesheet under its rate snapshot.
// Monthly rates pay per period, not per timesheet, so the line amount is the
// rate itself exactly once per period; callers aggregating a period must
// de-duplicate monthly lines.
func (t Timesheet) Amount() decimal.Decimal {
	switch t.Rate.Type {
	case rate.TypeHourly:
		return t.Rate.Amount.Mul(decimal.NewFromFloat(t.Hours))
	case rate.TypePerVisit:
		return t.Rate.Amount.Mul(decimal.NewFromInt(int64(t.Units)))
	case rate.TypeMonthly:
		return t.Rate.Amount
	default:
		return decimal.Zero
	}
}

// Key is the idempotency key for event-sourced timesheets.
type Key struct {
	EmployeeID string
	JobID      string
	WorkDay    string // YYYY-MM-DD
}

// IdempotencyKey returns the (employee, job, work day) triple that must be
// unique among event-sourced timesheets.
func (t Timesheet) IdempotencyKey() Key {
	return Key{
		EmployeeID: t.EmployeeID,
		JobID:      t.JobID,
		WorkDay:    t.WorkDay.Format("2006-01-02"),
	}
}
