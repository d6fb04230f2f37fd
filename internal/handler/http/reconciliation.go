package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fieldops/payroll-backend-go/internal/domain/timesheet"
	"github.com/fieldops/payroll-backend-go/internal/handler/http/response"
	"github.com/fieldops/payroll-backend-go/internal/pkg/validator"
)

// ReconcileRunner is the slice of the reconcile service the handler needs.
type ReconcileRunner interface {
	Reconcile(ctx context.Context, window timesheet.Window) (timesheet.ReconcileResult, error)
}

type ReconciliationHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
}

type reconciliationHandlerImpl struct {
	reconciler ReconcileRunner
}

func NewReconciliationHandler(reconciler ReconcileRunner) ReconciliationHandler {
	return &reconciliationHandlerImpl{reconciler: reconciler}
}

type runReconciliationRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Run implements ReconciliationHandler. An empty body (or empty window
// fields) reconciles the previous calendar day.
func (h *reconciliationHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	var req runReconciliationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var window timesheet.Window
	if req.Start == "" && req.End == "" {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		window = timesheet.Window{Start: today.AddDate(0, 0, -1), End: today}
	} else {
		var errs validator.ValidationErrors
		start, ok := validator.IsValidTimestamp(req.Start)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start", Message: "must be an RFC3339 timestamp"})
		}
		end, ok := validator.IsValidTimestamp(req.End)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end", Message: "must be an RFC3339 timestamp"})
		}
		if len(errs) > 0 {
			response.HandleError(w, errs)
			return
		}
		window = timesheet.Window{Start: start, End: end}
	}

	result, err := h.reconciler.Reconcile(r.Context(), window)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reconciliation complete", result)
}
