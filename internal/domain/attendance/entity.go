package attendance

import "time"

// Event is a raw clock-in/clock-out record produced by the time-clock
// subsystem. Events are immutable once the clock-out is written; this service
// only ever reads them.
type Event struct {
	ID         string
	EmployeeID string
	LocationID *string
	ClockIn    time.Time
	ClockOut   *time.Time
	Latitude   *float64
	Longitude  *float64
	CreatedAt  time.Time
}

// WorkDay returns the calendar day the event belongs to, normalized to UTC
// midnight. Timesheets are keyed on this day.
func (e Event) WorkDay() time.Time {
	y, m, d := e.ClockIn.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Open reports whether the shift is still open (no clock-out recorded). Open
// shifts reconcile to zero payable hours.
func (e Event) Open() bool {
	return e.ClockOut == nil
}
