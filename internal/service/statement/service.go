package statement

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/payperiod"
	"github.com/fieldops/payroll-backend-go/internal/domain/rate"
	"github.com/fieldops/payroll-backend-go/internal/domain/timesheet"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Statement is one employee's payable summary for a single pay period.
type Statement struct {
	EmployeeID string
	Period     payperiod.Period
	Lines      []timesheet.Timesheet

	TotalHours  float64
	TotalVisits int
	TotalAmount decimal.Decimal
}

// Service builds pay-period statements from an employee's timesheets.
type Service struct {
	timesheetRepo timesheet.Repository
}

func NewService(timesheetRepo timesheet.Repository) *Service {
	return &Service{timesheetRepo: timesheetRepo}
}

// Build assembles the statement for the pay period that pays on payDate.
// A monthly rate contributes its amount once per period no matter how many
// timesheet lines carry it.
func (s *Service) Build(ctx context.Context, employeeID string, payDate time.Time) (Statement, error) {
	period, err := payperiod.ForPayDate(payDate)
	if err != nil {
		return Statement{}, err
	}

	lines, err := s.timesheetRepo.ListByEmployeeAndRange(ctx, employeeID, period.WorkStart, period.WorkEnd)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to load timesheets for statement: %w", err)
	}

	st := Statement{
		EmployeeID:  employeeID,
		Period:      period,
		Lines:       lines,
		TotalAmount: decimal.Zero,
	}

	monthlyCounted := false
	for _, line := range lines {
		switch line.Rate.Type {
		case rate.TypeHourly:
			st.TotalHours += line.Hours
			st.TotalAmount = st.TotalAmount.Add(line.Amount())
		case rate.TypePerVisit:
			st.TotalVisits += line.Units
			st.TotalAmount = st.TotalAmount.Add(line.Amount())
		case rate.TypeMonthly:
			st.TotalHours += line.Hours
			if !monthlyCounted {
				st.TotalAmount = st.TotalAmount.Add(line.Rate.Amount)
				monthlyCounted = true
			}
		}
	}

	return st, nil
}

// WritePDF builds the statement and renders it as a PDF to w.
func (s *Service) WritePDF(ctx context.Context, employeeID string, payDate time.Time, w io.Writer) error {
	st, err := s.Build(ctx, employeeID, payDate)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pay Period Statement")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", st.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Work period: %s to %s",
		st.Period.WorkStart.Format("2006-01-02"), st.Period.WorkEnd.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pay date: %s", st.Period.PayDate.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(30, 7, "Work day")
	pdf.Cell(40, 7, "Job")
	pdf.Cell(25, 7, "Hours")
	pdf.Cell(25, 7, "Units")
	pdf.Cell(30, 7, "Amount")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range st.Lines {
		pdf.Cell(30, 7, line.WorkDay.Format("2006-01-02"))
		pdf.Cell(40, 7, line.JobID)
		pdf.Cell(25, 7, fmt.Sprintf("%.2f", line.Hours))
		pdf.Cell(25, 7, fmt.Sprintf("%d", line.Units))
		pdf.Cell(30, 7, line.Amount().StringFixed(2))
		pdf.Ln(7)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total hours: %.2f", st.TotalHours))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total visits: %d", st.TotalVisits))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total amount: %s", st.TotalAmount.StringFixed(2)))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render statement pdf: %w", err)
	}

	slog.Info("statement: pdf generated",
		"employee_id", employeeID, "pay_date", st.Period.PayDate.Format("2006-01-02"),
		"lines", len(st.Lines))

	return nil
}
