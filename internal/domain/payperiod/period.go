package payperiod

import "time"

// Period is a semi-monthly pay period: an inclusive work-day range and the
// date the work is paid out. Pay dates fall on the 15th (for work done on the
// 1st through the 15th) or on the 1st of the following month (for work done
// on the 16th through the end of the month).
//
// Periods are pure values. They are derived from calendar fields only, so the
// same calendar date always yields the same period regardless of wall-clock
// time or the input's time zone offset.
type Period struct {
	ID        string
	WorkStart time.Time
	WorkEnd   time.Time
	PayDate   time.Time
}

// atMidnightUTC re-anchors the calendar fields of t to UTC midnight. All
// period math happens on these normalized instants.
func atMidnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(year int, month time.Month) time.Time {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

func newPeriod(workStart, workEnd, payDate time.Time) Period {
	return Period{
		ID:        payDate.Format("2006-01-02"),
		WorkStart: workStart,
		WorkEnd:   workEnd,
		PayDate:   payDate,
	}
}

// ForWorkDate returns the period that pays out work performed on the given
// date. Days 1-15 pay on the 15th of the same month; days 16 through the end
// of the month pay on the 1st of the following month.
func ForWorkDate(date time.Time) Period {
	d := atMidnightUTC(date)
	year, month, day := d.Date()

	if day <= 15 {
		return newPeriod(
			time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
			time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
		)
	}

	return newPeriod(
		time.Date(year, month, 16, 0, 0, 0, 0, time.UTC),
		endOfMonth(year, month),
		time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC),
	)
}

// ForPayDate returns the period paid out on the given date. The date's day of
// month must be exactly 1 or 15; anything else is ErrInvalidPayDate.
func ForPayDate(date time.Time) (Period, error) {
	d := atMidnightUTC(date)
	year, month, day := d.Date()

	switch day {
	case 15:
		return newPeriod(
			time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, month, 15, 0, 0, 0, 0, time.UTC),
			d,
		), nil
	case 1:
		// Pays the back half of the previous month.
		return newPeriod(
			time.Date(year, month-1, 16, 0, 0, 0, 0, time.UTC),
			endOfMonth(d.AddDate(0, 0, -1).Year(), d.AddDate(0, 0, -1).Month()),
			d,
		), nil
	default:
		return Period{}, ErrInvalidPayDate
	}
}

// Next returns the period one pay-date transition forward. The result is
// re-derived through ForPayDate so the two functions can never disagree.
func (p Period) Next() Period {
	year, month, day := p.PayDate.Date()

	var payDate time.Time
	if day == 15 {
		payDate = time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	} else {
		payDate = time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	}

	next, _ := ForPayDate(payDate) // constructed day is always 1 or 15
	return next
}

// Previous returns the period one pay-date transition backward.
func (p Period) Previous() Period {
	year, month, day := p.PayDate.Date()

	var payDate time.Time
	if day == 15 {
		payDate = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	} else {
		payDate = time.Date(year, month-1, 15, 0, 0, 0, 0, time.UTC)
	}

	prev, _ := ForPayDate(payDate)
	return prev
}
