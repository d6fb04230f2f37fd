package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fieldops/payroll-backend-go/internal/domain/agreement"
	"github.com/fieldops/payroll-backend-go/internal/handler/http/response"
)

// RevenueProjector is the slice of the projection service the handler needs.
type RevenueProjector interface {
	ProjectRevenue(ctx context.Context, horizonDays int) (agreement.FinancialProjection, error)
}

type ProjectionHandler interface {
	Revenue(w http.ResponseWriter, r *http.Request)
}

type projectionHandlerImpl struct {
	projector RevenueProjector
}

func NewProjectionHandler(projector RevenueProjector) ProjectionHandler {
	return &projectionHandlerImpl{projector: projector}
}

// Revenue implements ProjectionHandler.
func (h *projectionHandlerImpl) Revenue(w http.ResponseWriter, r *http.Request) {
	horizonDays := 0
	if raw := r.URL.Query().Get("horizon_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(w, "horizon_days must be a non-negative integer", nil)
			return
		}
		horizonDays = parsed
	}

	projection, err := h.projector.ProjectRevenue(r.Context(), horizonDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, projection)
}
