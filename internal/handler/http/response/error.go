package response

import (
	"errors"
	"net/http"

	"github.com/fieldops/payroll-backend-go/internal/domain/payperiod"
	"github.com/fieldops/payroll-backend-go/internal/domain/timesheet"
	"github.com/fieldops/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Pay period domain errors
	case errors.Is(err, payperiod.ErrInvalidPayDate):
		BadRequest(w, "Pay date must fall on the 1st or 15th", nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrReconcileInProgress):
		Conflict(w, "A reconciliation run is already in progress")
	case errors.Is(err, timesheet.ErrInvalidWindow):
		BadRequest(w, "Window start must be before window end", nil)
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrNoRateInEffect):
		BadRequest(w, "No pay rate in effect for this employee", nil)
	case errors.Is(err, timesheet.ErrInvalidQuantity):
		BadRequest(w, "Worked quantity must not be negative", nil)
	case errors.Is(err, timesheet.ErrInvalidRateAmount):
		BadRequest(w, "Rate amount must be positive", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
