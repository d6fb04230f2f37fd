package agreement

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectedPayment is one expected future payment. Derived and ephemeral:
// never persisted, consumed by reporting.
type ProjectedPayment struct {
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	AgreementID   string          `json:"agreement_id"`
	AgreementName string          `json:"agreement_name"`
	ClientID      string          `json:"client_id"`
	DaysUntil     int             `json:"days_until"`
}

// FinancialProjection aggregates all projected payments within a horizon.
type FinancialProjection struct {
	// TotalExpected is the sum of every projected payment in the horizon.
	TotalExpected decimal.Decimal `json:"total_expected"`
	// MonthlyBreakdown keys revenue by payment month ("2006-01").
	MonthlyBreakdown map[string]decimal.Decimal `json:"monthly_breakdown"`
	// Payments is every projected payment, sorted ascending by date.
	Payments []ProjectedPayment `json:"payments"`
	// UpcomingPayments is the subset due within the next 30 days
	// (0 <= days until <= 30), sorted ascending by date.
	UpcomingPayments []ProjectedPayment `json:"upcoming_payments"`
	// HorizonDays echoes the horizon the projection was computed for.
	HorizonDays int `json:"horizon_days"`
}
