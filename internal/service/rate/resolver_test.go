package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/rate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRateRepo mimics the store's effective-rate query: latest record with
// effective date <= at, filtered by the requested scope.
type fakeRateRepo struct {
	records []rate.Record
	err     error
}

func (f *fakeRateRepo) FindEffective(_ context.Context, employeeID string, at time.Time, scope rate.Scope) (*rate.Record, error) {
	if f.err != nil {
		return nil, f.err
	}

	var best *rate.Record
	for i := range f.records {
		rec := f.records[i]
		if rec.EmployeeID != employeeID || rec.EffectiveDate.After(at) {
			continue
		}
		switch {
		case scope.LocationID != nil:
			if rec.LocationID == nil || *rec.LocationID != *scope.LocationID {
				continue
			}
		case scope.ClientID != nil:
			if rec.ClientID == nil || *rec.ClientID != *scope.ClientID {
				continue
			}
		default:
			if rec.LocationID != nil || rec.ClientID != nil {
				continue
			}
		}
		if best == nil || rec.EffectiveDate.After(best.EffectiveDate) {
			best = &f.records[i]
		}
	}
	return best, nil
}

func strPtr(s string) *string { return &s }

func record(id, employeeID string, amount int64, effective time.Time, locationID, clientID *string) rate.Record {
	return rate.Record{
		ID:            id,
		EmployeeID:    employeeID,
		Type:          rate.TypeHourly,
		Amount:        decimal.NewFromInt(amount),
		EffectiveDate: effective,
		LocationID:    locationID,
		ClientID:      clientID,
	}
}

func TestResolver_PrefersLocationOverClientOverUnscoped(t *testing.T) {
	t.Parallel()
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRateRepo{records: []rate.Record{
		record("unscoped", "emp-1", 20, base, nil, nil),
		record("client", "emp-1", 25, base, nil, strPtr("client-1")),
		record("location", "emp-1", 30, base, strPtr("loc-1"), nil),
	}}
	r := NewResolver(repo)
	at := base.AddDate(0, 1, 0)

	rec, err := r.Resolve(context.Background(), "emp-1", at, strPtr("loc-1"), strPtr("client-1"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "location", rec.ID)

	// No location scope: client tier wins.
	rec, err = r.Resolve(context.Background(), "emp-1", at, nil, strPtr("client-1"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "client", rec.ID)

	// No scope at all: unscoped record.
	rec, err = r.Resolve(context.Background(), "emp-1", at, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "unscoped", rec.ID)
}

func TestResolver_FallsThroughEmptyTiers(t *testing.T) {
	t.Parallel()
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRateRepo{records: []rate.Record{
		record("unscoped", "emp-1", 20, base, nil, nil),
	}}
	r := NewResolver(repo)

	// Location and client supplied, but only an unscoped rate exists.
	rec, err := r.Resolve(context.Background(), "emp-1", base.AddDate(0, 0, 10), strPtr("loc-9"), strPtr("client-9"))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "unscoped", rec.ID)
}

func TestResolver_IgnoresFutureEffectiveDates(t *testing.T) {
	t.Parallel()
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRateRepo{records: []rate.Record{
		record("old", "emp-1", 20, base, nil, nil),
		record("raise", "emp-1", 22, base.AddDate(0, 2, 0), nil, nil),
	}}
	r := NewResolver(repo)

	// One month in: the raise is not yet effective.
	rec, err := r.Resolve(context.Background(), "emp-1", base.AddDate(0, 1, 0), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "old", rec.ID)

	// Three months in: the raise applies.
	rec, err = r.Resolve(context.Background(), "emp-1", base.AddDate(0, 3, 0), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "raise", rec.ID)
}

func TestResolver_MissIsNotAnError(t *testing.T) {
	t.Parallel()
	r := NewResolver(&fakeRateRepo{})

	rec, err := r.Resolve(context.Background(), "emp-unknown", time.Now(), nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestResolver_PropagatesStoreErrors(t *testing.T) {
	t.Parallel()
	storeErr := errors.New("store unreachable")
	r := NewResolver(&fakeRateRepo{err: storeErr})

	_, err := r.Resolve(context.Background(), "emp-1", time.Now(), nil, nil)
	assert.ErrorIs(t, err, storeErr)
}
