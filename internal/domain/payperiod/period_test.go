package payperiod

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestForWorkDate_FirstHalfPaysOn15th(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		work time.Time
	}{
		{"first of month", date(2025, time.March, 1)},
		{"mid first half", date(2025, time.March, 8)},
		{"boundary day 15", date(2025, time.March, 15)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := ForWorkDate(c.work)
			assert.Equal(t, date(2025, time.March, 15), p.PayDate)
			assert.Equal(t, date(2025, time.March, 1), p.WorkStart)
			assert.Equal(t, date(2025, time.March, 15), p.WorkEnd)
			assert.Equal(t, "2025-03-15", p.ID)
		})
	}
}

func TestForWorkDate_SecondHalfPaysOnFirstOfNextMonth(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		work    time.Time
		payDate time.Time
		workEnd time.Time
	}{
		{"boundary day 16", date(2025, time.March, 16), date(2025, time.April, 1), date(2025, time.March, 31)},
		{"end of 31-day month", date(2025, time.March, 31), date(2025, time.April, 1), date(2025, time.March, 31)},
		{"end of february", date(2025, time.February, 28), date(2025, time.March, 1), date(2025, time.February, 28)},
		{"leap february", date(2024, time.February, 29), date(2024, time.March, 1), date(2024, time.February, 29)},
		{"december rolls into january", date(2025, time.December, 20), date(2026, time.January, 1), date(2025, time.December, 31)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := ForWorkDate(c.work)
			assert.Equal(t, c.payDate, p.PayDate)
			assert.Equal(t, c.workEnd, p.WorkEnd)
			assert.Equal(t, 16, p.WorkStart.Day())
		})
	}
}

func TestForWorkDate_IgnoresTimeOfDayAndZone(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+9", 9*3600)
	late := time.Date(2025, time.June, 10, 23, 45, 0, 0, loc)

	p := ForWorkDate(late)
	assert.Equal(t, date(2025, time.June, 15), p.PayDate)
	assert.Equal(t, ForWorkDate(date(2025, time.June, 10)), p)
}

func TestForPayDate_RejectsNon1stOr15th(t *testing.T) {
	t.Parallel()
	for _, day := range []int{2, 10, 14, 16, 28, 31} {
		_, err := ForPayDate(date(2025, time.January, day))
		assert.ErrorIs(t, err, ErrInvalidPayDate, "day %d", day)
	}
}

func TestForPayDate_FirstOfMonthPaysPreviousBackHalf(t *testing.T) {
	t.Parallel()
	p, err := ForPayDate(date(2025, time.April, 1))
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.March, 16), p.WorkStart)
	assert.Equal(t, date(2025, time.March, 31), p.WorkEnd)
	assert.Equal(t, date(2025, time.April, 1), p.PayDate)
}

func TestForPayDate_JanuaryFirstPaysDecember(t *testing.T) {
	t.Parallel()
	p, err := ForPayDate(date(2026, time.January, 1))
	require.NoError(t, err)

	assert.Equal(t, date(2025, time.December, 16), p.WorkStart)
	assert.Equal(t, date(2025, time.December, 31), p.WorkEnd)
}

func TestForPayDate_IsLeftInverseOfForWorkDate(t *testing.T) {
	t.Parallel()
	payDates := []time.Time{
		date(2025, time.January, 15),
		date(2025, time.February, 1),
		date(2025, time.March, 1),
		date(2024, time.March, 1), // leap year
		date(2026, time.January, 1),
	}
	for _, pd := range payDates {
		p, err := ForPayDate(pd)
		require.NoError(t, err)
		assert.Equal(t, pd, ForWorkDate(p.WorkStart).PayDate, "pay date %s", pd.Format("2006-01-02"))
		assert.Equal(t, pd, ForWorkDate(p.WorkEnd).PayDate, "pay date %s", pd.Format("2006-01-02"))
	}
}

func TestNextAndPrevious_StepOneTransition(t *testing.T) {
	t.Parallel()
	p := ForWorkDate(date(2025, time.March, 3)) // pays 2025-03-15

	next := p.Next()
	assert.Equal(t, date(2025, time.April, 1), next.PayDate)
	assert.Equal(t, date(2025, time.March, 16), next.WorkStart)

	afterNext := next.Next()
	assert.Equal(t, date(2025, time.April, 15), afterNext.PayDate)

	assert.Equal(t, p, next.Previous())
	assert.Equal(t, next, afterNext.Previous())
}

func TestNext_WalkIsConsistentAcrossYearBoundary(t *testing.T) {
	t.Parallel()
	p, err := ForPayDate(date(2025, time.December, 15))
	require.NoError(t, err)

	// Two transitions: 12-15 -> 01-01 -> 01-15.
	p = p.Next()
	assert.Equal(t, date(2026, time.January, 1), p.PayDate)
	p = p.Next()
	assert.Equal(t, date(2026, time.January, 15), p.PayDate)
	assert.Equal(t, date(2026, time.January, 1), p.WorkStart)
}
