package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/attendance"
	"github.com/fieldops/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// ListInWindow implements attendance.Repository.
func (a *attendanceRepository) ListInWindow(ctx context.Context, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, location_id, clock_in, clock_out,
		       latitude, longitude, created_at
		FROM attendance_events
		WHERE clock_in >= $1
		  AND clock_in < $2
		ORDER BY clock_in ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		if err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &ev.LocationID, &ev.ClockIn, &ev.ClockOut,
			&ev.Latitude, &ev.Longitude, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance events: %w", err)
	}

	return events, nil
}
