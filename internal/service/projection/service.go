package projection

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/agreement"
	"github.com/shopspring/decimal"
)

// upcomingWindowDays bounds the "due soon" subset of a projection.
const upcomingWindowDays = 30

// DefaultHorizonDays is used when the caller does not supply a horizon.
const DefaultHorizonDays = 90

// Service projects future revenue from active service agreements. Agreements
// are a recurring series: every occurrence inside the horizon is emitted, not
// just the next one, so an agreement billed twice within the horizon counts
// twice.
type Service struct {
	agreementRepo agreement.Repository

	// now is swappable so projections are reproducible under test.
	now func() time.Time
}

func NewService(agreementRepo agreement.Repository) *Service {
	return &Service{
		agreementRepo: agreementRepo,
		now:           time.Now,
	}
}

// ProjectRevenue computes the expected payments for every eligible agreement
// within horizonDays of now. A non-positive horizon falls back to the default.
func (s *Service) ProjectRevenue(ctx context.Context, horizonDays int) (agreement.FinancialProjection, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	projection := agreement.FinancialProjection{
		TotalExpected:    decimal.Zero,
		MonthlyBreakdown: make(map[string]decimal.Decimal),
		HorizonDays:      horizonDays,
	}

	agreements, err := s.agreementRepo.ListActive(ctx)
	if err != nil {
		return projection, fmt.Errorf("failed to load service agreements: %w", err)
	}

	now := s.now().UTC()
	today := truncateToDay(now)
	horizonEnd := today.AddDate(0, 0, horizonDays)

	for _, ag := range agreements {
		if !ag.Eligible(now) {
			continue
		}

		cutoff := horizonEnd
		if ag.EndDate != nil && ag.EndDate.Before(cutoff) {
			cutoff = truncateToDay(*ag.EndDate)
		}

		for _, date := range paymentSeries(ag, today, cutoff) {
			projection.Payments = append(projection.Payments, agreement.ProjectedPayment{
				Date:          date,
				Amount:        ag.Amount,
				AgreementID:   ag.ID,
				AgreementName: ag.Name,
				ClientID:      ag.ClientID,
				DaysUntil:     daysBetween(today, date),
			})
		}
	}

	sort.Slice(projection.Payments, func(i, j int) bool {
		return projection.Payments[i].Date.Before(projection.Payments[j].Date)
	})

	for _, p := range projection.Payments {
		projection.TotalExpected = projection.TotalExpected.Add(p.Amount)

		monthKey := p.Date.Format("2006-01")
		projection.MonthlyBreakdown[monthKey] = projection.MonthlyBreakdown[monthKey].Add(p.Amount)

		if p.DaysUntil >= 0 && p.DaysUntil <= upcomingWindowDays {
			projection.UpcomingPayments = append(projection.UpcomingPayments, p)
		}
	}

	slog.Info("projection: revenue computed",
		"horizon_days", horizonDays,
		"agreements", len(agreements),
		"payments", len(projection.Payments),
		"total_expected", projection.TotalExpected)

	return projection, nil
}

// paymentSeries lists every payment date for one agreement in [today, cutoff].
// The first occurrence is the next scheduled date on or after today; the rest
// step by the agreement's frequency.
func paymentSeries(ag agreement.Agreement, today, cutoff time.Time) []time.Time {
	var stepMonths int
	var date time.Time

	switch ag.Frequency {
	case agreement.FrequencyMonthly:
		stepMonths = 1
		date = clampedDate(today.Year(), today.Month(), ag.MonthlyPayDay)
	case agreement.FrequencyQuarterly:
		stepMonths = 3
		date = clampedDate(today.Year(), ag.QuarterMonth, ag.QuarterDay)
	default:
		return nil
	}

	for date.Before(today) {
		date = addMonthsClamped(date, ag.MonthlyPayDay, ag.QuarterDay, ag.Frequency, stepMonths)
	}

	var series []time.Time
	for !date.After(cutoff) {
		series = append(series, date)
		date = addMonthsClamped(date, ag.MonthlyPayDay, ag.QuarterDay, ag.Frequency, stepMonths)
	}
	return series
}

// addMonthsClamped advances by whole months while re-anchoring to the
// configured day, so a pay-day of 31 lands on the 30th in April and back on
// the 31st in May instead of drifting. Month arithmetic is done on the
// (year, month) pair directly; time.AddDate from a clamped date would skip
// short months.
func addMonthsClamped(date time.Time, monthlyDay, quarterDay int, freq agreement.Frequency, months int) time.Time {
	day := monthlyDay
	if freq == agreement.FrequencyQuarterly {
		day = quarterDay
	}
	total := int(date.Month()) - 1 + months
	year := date.Year() + total/12
	month := time.Month(total%12 + 1)
	return clampedDate(year, month, day)
}

// clampedDate builds a UTC date, pulling an overflowing day back to the last
// day of the month.
func clampedDate(year int, month time.Month, day int) time.Time {
	if day < 1 {
		day = 1
	}
	last := daysInMonth(year, month)
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
