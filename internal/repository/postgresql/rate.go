package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/rate"
	"github.com/fieldops/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rateRepository struct {
	db *database.DB
}

func NewRateRepository(db *database.DB) rate.Repository {
	return &rateRepository{db: db}
}

// FindEffective implements rate.Repository. The scope picks one of three
// query shapes: location equality, client equality, or fully unscoped
// records. A miss returns (nil, nil).
func (r *rateRepository) FindEffective(ctx context.Context, employeeID string, at time.Time, scope rate.Scope) (*rate.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, rate_type, amount, effective_date,
		       location_id, client_id, monthly_pay_day, created_at
		FROM pay_rates
		WHERE employee_id = $1
		  AND effective_date <= $2
	`
	args := []interface{}{employeeID, at}

	switch {
	case scope.LocationID != nil:
		query += ` AND location_id = $3`
		args = append(args, *scope.LocationID)
	case scope.ClientID != nil:
		query += ` AND client_id = $3`
		args = append(args, *scope.ClientID)
	default:
		query += ` AND location_id IS NULL AND client_id IS NULL`
	}

	query += `
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var rec rate.Record
	err := q.QueryRow(ctx, query, args...).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Type, &rec.Amount, &rec.EffectiveDate,
		&rec.LocationID, &rec.ClientID, &rec.MonthlyPayDay, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no rate on file for this scope
		}
		return nil, fmt.Errorf("failed to find effective rate: %w", err)
	}

	return &rec, nil
}
