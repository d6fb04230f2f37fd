package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/agreement"
	"github.com/fieldops/payroll-backend-go/internal/pkg/database"
)

type agreementRepository struct {
	db *database.DB
}

func NewAgreementRepository(db *database.DB) agreement.Repository {
	return &agreementRepository{db: db}
}

// ListActive implements agreement.Repository.
func (a *agreementRepository) ListActive(ctx context.Context) ([]agreement.Agreement, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT sa.id, sa.client_id, sa.name, sa.amount, sa.frequency,
		       sa.monthly_pay_day, sa.quarter_month, sa.quarter_day,
		       sa.start_date, sa.end_date, sa.active, c.active AS client_active
		FROM service_agreements sa
		JOIN clients c ON c.id = sa.client_id
		WHERE sa.active = TRUE
		  AND c.active = TRUE
		ORDER BY sa.client_id, sa.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active agreements: %w", err)
	}
	defer rows.Close()

	var agreements []agreement.Agreement
	for rows.Next() {
		var ag agreement.Agreement
		var quarterMonth int
		if err := rows.Scan(
			&ag.ID, &ag.ClientID, &ag.Name, &ag.Amount, &ag.Frequency,
			&ag.MonthlyPayDay, &quarterMonth, &ag.QuarterDay,
			&ag.StartDate, &ag.EndDate, &ag.Active, &ag.ClientActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan agreement: %w", err)
		}
		ag.QuarterMonth = time.Month(quarterMonth)
		agreements = append(agreements, ag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read agreements: %w", err)
	}

	return agreements, nil
}
