package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/rate"
)

// Resolver finds the pay rate in effect for an employee at a point in time.
//
// Resolution walks three tiers from most to least specific: rates scoped to
// the given location, then rates scoped to the given client, then unscoped
// rates. Within a tier the most recent record with effective date <= at wins.
// A miss across all tiers returns (nil, nil): an employee with no rate on
// file is a skip condition for reconciliation, not a failure.
type Resolver interface {
	Resolve(ctx context.Context, employeeID string, at time.Time, locationID, clientID *string) (*rate.Record, error)
}

type resolver struct {
	repo rate.Repository
}

func NewResolver(repo rate.Repository) Resolver {
	return &resolver{repo: repo}
}

func (r *resolver) Resolve(ctx context.Context, employeeID string, at time.Time, locationID, clientID *string) (*rate.Record, error) {
	if locationID != nil {
		rec, err := r.repo.FindEffective(ctx, employeeID, at, rate.Scope{LocationID: locationID})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve location-scoped rate: %w", err)
		}
		if rec != nil {
			return rec, nil
		}
	}

	if clientID != nil {
		rec, err := r.repo.FindEffective(ctx, employeeID, at, rate.Scope{ClientID: clientID})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve client-scoped rate: %w", err)
		}
		if rec != nil {
			return rec, nil
		}
	}

	rec, err := r.repo.FindEffective(ctx, employeeID, at, rate.Scope{})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve unscoped rate: %w", err)
	}
	return rec, nil
}
