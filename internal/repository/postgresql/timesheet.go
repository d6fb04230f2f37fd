package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/timesheet"
	"github.com/fieldops/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

const insertTimesheetQuery = `
	INSERT INTO timesheets (
		id, employee_id, job_id, work_day, start_time, end_time,
		hours, units, rate_type, rate_amount, rate_monthly_pay_day,
		employee_approved, admin_approved, source
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
	)
`

// CreateBatch implements timesheet.Repository. All inserts ride a single
// transaction and a single pgx batch round-trip: either the whole
// reconciliation run commits or none of it does.
func (t *timesheetRepository) CreateBatch(ctx context.Context, sheets []timesheet.Timesheet) error {
	if len(sheets) == 0 {
		return nil
	}

	return WithTransaction(ctx, t.db, func(txCtx context.Context, tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, sheet := range sheets {
			batch.Queue(insertTimesheetQuery,
				sheet.ID, sheet.EmployeeID, sheet.JobID, sheet.WorkDay,
				sheet.StartTime, sheet.EndTime,
				sheet.Hours, sheet.Units,
				sheet.Rate.Type, sheet.Rate.Amount, sheet.Rate.MonthlyPayDay,
				sheet.EmployeeApproved, sheet.AdminApproved, sheet.Source,
			)
		}

		results := tx.SendBatch(txCtx, batch)
		defer results.Close()

		for range sheets {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert timesheet batch: %w", err)
			}
		}
		return results.Close()
	})
}

// Create implements timesheet.Repository.
func (t *timesheetRepository) Create(ctx context.Context, sheet timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, t.db)

	query := insertTimesheetQuery + ` RETURNING created_at, updated_at`
	err := q.QueryRow(ctx, query,
		sheet.ID, sheet.EmployeeID, sheet.JobID, sheet.WorkDay,
		sheet.StartTime, sheet.EndTime,
		sheet.Hours, sheet.Units,
		sheet.Rate.Type, sheet.Rate.Amount, sheet.Rate.MonthlyPayDay,
		sheet.EmployeeApproved, sheet.AdminApproved, sheet.Source,
	).Scan(&sheet.CreatedAt, &sheet.UpdatedAt)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	return sheet, nil
}

// ListEventSourcedKeys implements timesheet.Repository.
func (t *timesheetRepository) ListEventSourcedKeys(ctx context.Context, start, end time.Time) (map[timesheet.Key]struct{}, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT employee_id, job_id, work_day
		FROM timesheets
		WHERE source = $1
		  AND work_day >= $2
		  AND work_day <= $3
	`

	rows, err := q.Query(ctx, query, timesheet.SourceAttendanceEvent, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list event-sourced timesheet keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[timesheet.Key]struct{})
	for rows.Next() {
		var employeeID, jobID string
		var workDay time.Time
		if err := rows.Scan(&employeeID, &jobID, &workDay); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet key: %w", err)
		}
		keys[timesheet.Key{
			EmployeeID: employeeID,
			JobID:      jobID,
			WorkDay:    workDay.Format("2006-01-02"),
		}] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timesheet keys: %w", err)
	}

	return keys, nil
}

// ListByEmployeeAndRange implements timesheet.Repository.
func (t *timesheetRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]timesheet.Timesheet, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, employee_id, job_id, work_day, start_time, end_time,
		       hours, units, rate_type, rate_amount, rate_monthly_pay_day,
		       employee_approved, admin_approved, source, created_at, updated_at
		FROM timesheets
		WHERE employee_id = $1
		  AND work_day >= $2
		  AND work_day <= $3
		ORDER BY work_day ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.Timesheet
	for rows.Next() {
		var sheet timesheet.Timesheet
		if err := rows.Scan(
			&sheet.ID, &sheet.EmployeeID, &sheet.JobID, &sheet.WorkDay,
			&sheet.StartTime, &sheet.EndTime,
			&sheet.Hours, &sheet.Units,
			&sheet.Rate.Type, &sheet.Rate.Amount, &sheet.Rate.MonthlyPayDay,
			&sheet.EmployeeApproved, &sheet.AdminApproved, &sheet.Source,
			&sheet.CreatedAt, &sheet.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read timesheets: %w", err)
	}

	return sheets, nil
}

// ApproveByJob implements timesheet.Repository. A plain bulk update: stamping
// approval twice is harmless, so no row locks are taken.
func (t *timesheetRepository) ApproveByJob(ctx context.Context, jobID string) (int64, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE timesheets
		SET admin_approved = TRUE, updated_at = NOW()
		WHERE job_id = $1
		  AND source = $2
		  AND admin_approved = FALSE
	`

	tag, err := q.Exec(ctx, query, jobID, timesheet.SourceAttendanceEvent)
	if err != nil {
		return 0, fmt.Errorf("failed to approve timesheets for job: %w", err)
	}

	return tag.RowsAffected(), nil
}

// RevertApprovals implements timesheet.Repository. Rollback can race a human
// admin editing the same rows, so each row is re-read under a lock and the
// source re-verified before the flag is reset. Manually entered timesheets
// are never touched, even if their ids are mixed into the request.
func (t *timesheetRepository) RevertApprovals(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return WithTransaction(ctx, t.db, func(txCtx context.Context, tx pgx.Tx) error {
		for _, id := range ids {
			var source string
			err := tx.QueryRow(txCtx, `
				SELECT source FROM timesheets WHERE id = $1 FOR UPDATE
			`, id).Scan(&source)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					continue // already deleted; nothing to revert
				}
				return fmt.Errorf("failed to lock timesheet %s: %w", id, err)
			}

			if source != timesheet.SourceAttendanceEvent {
				continue
			}

			if _, err := tx.Exec(txCtx, `
				UPDATE timesheets
				SET admin_approved = FALSE, updated_at = NOW()
				WHERE id = $1
			`, id); err != nil {
				return fmt.Errorf("failed to revert timesheet %s: %w", id, err)
			}
		}
		return nil
	})
}
