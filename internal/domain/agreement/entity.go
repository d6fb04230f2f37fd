package agreement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often an agreement bills.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
)

// Agreement is a recurring service contract with a client. Read-only to this
// subsystem; the client-management surface owns the records.
type Agreement struct {
	ID        string
	ClientID  string
	Name      string
	Amount    decimal.Decimal
	Frequency Frequency

	// MonthlyPayDay is the billing day of month for monthly agreements.
	// QuarterMonth/QuarterDay anchor the billing schedule for quarterly ones.
	MonthlyPayDay int
	QuarterMonth  time.Month
	QuarterDay    int

	StartDate *time.Time
	EndDate   *time.Time
	Active    bool

	// ClientActive is joined in from the client record: agreements of
	// inactive clients never project.
	ClientActive bool
}

// Eligible reports whether the agreement projects revenue at the given
// instant: active client, active agreement, positive amount, and a contract
// window containing now.
func (a Agreement) Eligible(now time.Time) bool {
	if !a.Active || !a.ClientActive {
		return false
	}
	if !a.Amount.IsPositive() {
		return false
	}
	if a.StartDate != nil && now.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && now.After(*a.EndDate) {
		return false
	}
	return true
}
