package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/job"
	"github.com/fieldops/payroll-backend-go/internal/pkg/database"
)

type jobRepository struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.Repository {
	return &jobRepository{db: db}
}

// ListAssignments implements job.Repository. The created_at ordering is the
// arrival order the matcher's tie-break relies on.
func (j *jobRepository) ListAssignments(ctx context.Context, start, end time.Time) ([]job.Assignment, error) {
	q := GetQuerier(ctx, j.db)

	query := `
		SELECT job_id, employee_id, location_id, client_id, service_date
		FROM job_schedules
		WHERE service_date >= $1
		  AND service_date < $2
		ORDER BY service_date ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list job assignments: %w", err)
	}
	defer rows.Close()

	var assignments []job.Assignment
	for rows.Next() {
		var as job.Assignment
		if err := rows.Scan(&as.JobID, &as.EmployeeID, &as.LocationID, &as.ClientID, &as.ServiceDate); err != nil {
			return nil, fmt.Errorf("failed to scan job assignment: %w", err)
		}
		assignments = append(assignments, as)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job assignments: %w", err)
	}

	return assignments, nil
}
