package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/timesheet"
	"github.com/fieldops/payroll-backend-go/internal/handler/http/response"
	"github.com/fieldops/payroll-backend-go/internal/pkg/validator"
	timesheetsvc "github.com/fieldops/payroll-backend-go/internal/service/timesheet"
)

// ManualEntryCreator is the slice of the timesheet service the handler needs.
type ManualEntryCreator interface {
	CreateManual(ctx context.Context, in timesheetsvc.ManualEntryInput) (timesheet.Timesheet, error)
}

// StatementWriter renders an employee's pay-period statement.
type StatementWriter interface {
	WritePDF(ctx context.Context, employeeID string, payDate time.Time, w io.Writer) error
}

type TimesheetHandler interface {
	CreateManual(w http.ResponseWriter, r *http.Request)
	Statement(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheets ManualEntryCreator
	statements StatementWriter
}

func NewTimesheetHandler(timesheets ManualEntryCreator, statements StatementWriter) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheets: timesheets,
		statements: statements,
	}
}

type createManualRequest struct {
	EmployeeID string  `json:"employee_id"`
	JobID      string  `json:"job_id"`
	WorkDay    string  `json:"work_day"`
	StartTime  *string `json:"start_time,omitempty"`
	EndTime    *string `json:"end_time,omitempty"`
	Hours      float64 `json:"hours"`
	Units      int     `json:"units"`
	LocationID *string `json:"location_id,omitempty"`
	ClientID   *string `json:"client_id,omitempty"`
}

type timesheetResponse struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee_id"`
	JobID            string     `json:"job_id"`
	WorkDay          string     `json:"work_day"`
	StartTime        *time.Time `json:"start_time,omitempty"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	Hours            float64    `json:"hours"`
	Units            int        `json:"units"`
	RateType         string     `json:"rate_type"`
	RateAmount       string     `json:"rate_amount"`
	Amount           string     `json:"amount"`
	EmployeeApproved bool       `json:"employee_approved"`
	AdminApproved    bool       `json:"admin_approved"`
	Source           string     `json:"source"`
}

func toTimesheetResponse(t timesheet.Timesheet) timesheetResponse {
	return timesheetResponse{
		ID:               t.ID,
		EmployeeID:       t.EmployeeID,
		JobID:            t.JobID,
		WorkDay:          t.WorkDay.Format("2006-01-02"),
		StartTime:        t.StartTime,
		EndTime:          t.EndTime,
		Hours:            t.Hours,
		Units:            t.Units,
		RateType:         string(t.Rate.Type),
		RateAmount:       t.Rate.Amount.String(),
		Amount:           t.Amount().String(),
		EmployeeApproved: t.EmployeeApproved,
		AdminApproved:    t.AdminApproved,
		Source:           t.Source,
	}
}

// CreateManual implements TimesheetHandler.
func (h *timesheetHandlerImpl) CreateManual(w http.ResponseWriter, r *http.Request) {
	var req createManualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(req.JobID) {
		errs = append(errs, validator.ValidationError{Field: "job_id", Message: "is required"})
	}
	workDay, ok := validator.IsValidDate(req.WorkDay)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "work_day", Message: "must be formatted YYYY-MM-DD"})
	}

	in := timesheetsvc.ManualEntryInput{
		EmployeeID: req.EmployeeID,
		JobID:      req.JobID,
		WorkDay:    workDay,
		Hours:      req.Hours,
		Units:      req.Units,
		LocationID: req.LocationID,
		ClientID:   req.ClientID,
	}
	if req.StartTime != nil {
		start, ok := validator.IsValidTimestamp(*req.StartTime)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be an RFC3339 timestamp"})
		} else {
			in.StartTime = &start
		}
	}
	if req.EndTime != nil {
		end, ok := validator.IsValidTimestamp(*req.EndTime)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be an RFC3339 timestamp"})
		} else {
			in.EndTime = &end
		}
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	created, err := h.timesheets.CreateManual(r.Context(), in)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet created", toTimesheetResponse(created))
}

// Statement implements TimesheetHandler. Streams the pay-period statement as
// a PDF download.
func (h *timesheetHandlerImpl) Statement(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	payDate, ok := validator.IsValidDate(r.URL.Query().Get("pay_date"))
	if !ok {
		response.BadRequest(w, "pay_date must be formatted YYYY-MM-DD", nil)
		return
	}

	// Render fully before touching the response so errors can still produce
	// a JSON body.
	var buf bytes.Buffer
	if err := h.statements.WritePDF(r.Context(), employeeID, payDate, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="statement-`+payDate.Format("2006-01-02")+`.pdf"`)
	_, _ = w.Write(buf.Bytes())
}
