package rate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type is how a rate converts worked quantity into pay.
type Type string

const (
	TypePerVisit Type = "per_visit"
	TypeHourly   Type = "hourly"
	TypeMonthly  Type = "monthly"
)

// Record is an effective-dated pay rate. A record applies from its effective
// date forward until superseded by a later one. Optional location or client
// scope narrows where it applies; scoped records win over unscoped ones.
type Record struct {
	ID            string
	EmployeeID    string
	Type          Type
	Amount        decimal.Decimal
	EffectiveDate time.Time
	LocationID    *string
	ClientID      *string
	MonthlyPayDay *int
	CreatedAt     time.Time
}

// Snapshot is the point-in-time copy of a resolved rate that gets embedded in
// a timesheet. It is never re-resolved, so historical pay stays auditable
// even after the rate table changes.
type Snapshot struct {
	Type          Type
	Amount        decimal.Decimal
	MonthlyPayDay *int
}

// Snapshot freezes the record's payable fields.
func (r Record) Snapshot() Snapshot {
	return Snapshot{
		Type:          r.Type,
		Amount:        r.Amount,
		MonthlyPayDay: r.MonthlyPayDay,
	}
}

// Scope restricts an effective-rate lookup to a location or a client. The
// zero value is an unscoped lookup.
type Scope struct {
	LocationID *string
	ClientID   *string
}
