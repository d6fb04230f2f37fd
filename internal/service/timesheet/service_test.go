package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/rate"
	"github.com/fieldops/payroll-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimesheetRepo struct {
	sheets    []timesheet.Timesheet
	createErr error
}

func (f *fakeTimesheetRepo) CreateBatch(_ context.Context, sheets []timesheet.Timesheet) error {
	f.sheets = append(f.sheets, sheets...)
	return nil
}

func (f *fakeTimesheetRepo) Create(_ context.Context, sheet timesheet.Timesheet) (timesheet.Timesheet, error) {
	if f.createErr != nil {
		return timesheet.Timesheet{}, f.createErr
	}
	sheet.CreatedAt = time.Now()
	sheet.UpdatedAt = sheet.CreatedAt
	f.sheets = append(f.sheets, sheet)
	return sheet, nil
}

func (f *fakeTimesheetRepo) ListEventSourcedKeys(_ context.Context, _, _ time.Time) (map[timesheet.Key]struct{}, error) {
	return nil, nil
}

func (f *fakeTimesheetRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, start, end time.Time) ([]timesheet.Timesheet, error) {
	var out []timesheet.Timesheet
	for _, s := range f.sheets {
		if s.EmployeeID == employeeID && !s.WorkDay.Before(start) && !s.WorkDay.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeTimesheetRepo) ApproveByJob(_ context.Context, _ string) (int64, error) { return 0, nil }

func (f *fakeTimesheetRepo) RevertApprovals(_ context.Context, _ []string) error { return nil }

type fakeResolver struct {
	record *rate.Record
	err    error
}

func (f *fakeResolver) Resolve(_ context.Context, _ string, _ time.Time, _, _ *string) (*rate.Record, error) {
	return f.record, f.err
}

func hourlyRecord(amount int64) *rate.Record {
	return &rate.Record{
		ID:            "rate-1",
		Type:          rate.TypeHourly,
		Amount:        decimal.NewFromInt(amount),
		EffectiveDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateManual(t *testing.T) {
	t.Parallel()
	repo := &fakeTimesheetRepo{}
	svc := NewService(repo, &fakeResolver{record: hourlyRecord(25)})

	workDay := time.Date(2025, time.May, 12, 10, 30, 0, 0, time.UTC)
	created, err := svc.CreateManual(context.Background(), ManualEntryInput{
		EmployeeID: "emp-1",
		JobID:      "job-1",
		WorkDay:    workDay,
		Hours:      4,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, timesheet.SourceManual, created.Source)
	assert.False(t, created.EmployeeApproved, "manual entries await the employee's confirmation")
	assert.False(t, created.AdminApproved)
	assert.Equal(t, time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC), created.WorkDay)
	assert.True(t, decimal.NewFromInt(25).Equal(created.Rate.Amount))
	assert.True(t, decimal.NewFromInt(100).Equal(created.Amount()))
	require.Len(t, repo.sheets, 1)
}

func TestCreateManual_NoRateIsAnError(t *testing.T) {
	t.Parallel()
	svc := NewService(&fakeTimesheetRepo{}, &fakeResolver{})

	_, err := svc.CreateManual(context.Background(), ManualEntryInput{
		EmployeeID: "emp-1",
		JobID:      "job-1",
		WorkDay:    time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
		Hours:      4,
	})
	assert.ErrorIs(t, err, timesheet.ErrNoRateInEffect)
}

func TestCreateManual_NegativeQuantityRejected(t *testing.T) {
	t.Parallel()
	svc := NewService(&fakeTimesheetRepo{}, &fakeResolver{record: hourlyRecord(25)})

	_, err := svc.CreateManual(context.Background(), ManualEntryInput{
		EmployeeID: "emp-1",
		JobID:      "job-1",
		WorkDay:    time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
		Hours:      -1,
	})
	assert.ErrorIs(t, err, timesheet.ErrInvalidQuantity)
}

func TestCreateManual_ResolverFailurePropagates(t *testing.T) {
	t.Parallel()
	storeErr := errors.New("store unreachable")
	svc := NewService(&fakeTimesheetRepo{}, &fakeResolver{err: storeErr})

	_, err := svc.CreateManual(context.Background(), ManualEntryInput{
		EmployeeID: "emp-1",
		JobID:      "job-1",
		WorkDay:    time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, storeErr)
}

func TestListByEmployee(t *testing.T) {
	t.Parallel()
	day := func(d int) time.Time { return time.Date(2025, time.May, d, 0, 0, 0, 0, time.UTC) }
	repo := &fakeTimesheetRepo{sheets: []timesheet.Timesheet{
		{ID: "ts-1", EmployeeID: "emp-1", WorkDay: day(10)},
		{ID: "ts-2", EmployeeID: "emp-1", WorkDay: day(20)},
		{ID: "ts-3", EmployeeID: "emp-2", WorkDay: day(12)},
	}}
	svc := NewService(repo, &fakeResolver{})

	sheets, err := svc.ListByEmployee(context.Background(), "emp-1", day(1), day(15))
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, "ts-1", sheets[0].ID)
}
