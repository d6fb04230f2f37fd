package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fieldops/payroll-backend-go/internal/handler/http/response"
	"github.com/fieldops/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// CompletionApplier is the slice of the reconcile service that handles job
// completion side effects.
type CompletionApplier interface {
	OnJobCompleted(ctx context.Context, jobID string) (int64, error)
	OnJobCompletionReverted(ctx context.Context, timesheetIDs []string) error
}

type JobHandler interface {
	Complete(w http.ResponseWriter, r *http.Request)
	RevertCompletion(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	completions CompletionApplier
}

func NewJobHandler(completions CompletionApplier) JobHandler {
	return &jobHandlerImpl{completions: completions}
}

// Complete implements JobHandler.
func (h *jobHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if validator.IsEmpty(jobID) {
		response.BadRequest(w, "Job id is required", nil)
		return
	}

	count, err := h.completions.OnJobCompleted(r.Context(), jobID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheets approved", map[string]int64{"approved": count})
}

type revertCompletionRequest struct {
	TimesheetIDs []string `json:"timesheet_ids"`
}

// RevertCompletion implements JobHandler.
func (h *jobHandlerImpl) RevertCompletion(w http.ResponseWriter, r *http.Request) {
	var req revertCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(req.TimesheetIDs) == 0 {
		response.BadRequest(w, "At least one timesheet id is required", nil)
		return
	}

	if err := h.completions.OnJobCompletionReverted(r.Context(), req.TimesheetIDs); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet approvals reverted", nil)
}
