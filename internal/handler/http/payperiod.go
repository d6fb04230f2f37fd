package http

import (
	"net/http"

	"github.com/fieldops/payroll-backend-go/internal/domain/payperiod"
	"github.com/fieldops/payroll-backend-go/internal/handler/http/response"
	"github.com/fieldops/payroll-backend-go/internal/pkg/validator"
)

type PayPeriodHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type payPeriodHandlerImpl struct{}

func NewPayPeriodHandler() PayPeriodHandler {
	return &payPeriodHandlerImpl{}
}

type payPeriodResponse struct {
	ID        string `json:"id"`
	WorkStart string `json:"work_start"`
	WorkEnd   string `json:"work_end"`
	PayDate   string `json:"pay_date"`
}

func toPayPeriodResponse(p payperiod.Period) payPeriodResponse {
	return payPeriodResponse{
		ID:        p.ID,
		WorkStart: p.WorkStart.Format("2006-01-02"),
		WorkEnd:   p.WorkEnd.Format("2006-01-02"),
		PayDate:   p.PayDate.Format("2006-01-02"),
	}
}

// Get resolves the pay period containing a date. `by=work` (default) treats
// the date as a work day; `by=pay` requires it to be an actual pay date.
func (h *payPeriodHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.BadRequest(w, "date must be formatted YYYY-MM-DD", nil)
		return
	}

	switch by := r.URL.Query().Get("by"); by {
	case "", "work":
		response.Success(w, toPayPeriodResponse(payperiod.ForWorkDate(date)))
	case "pay":
		period, err := payperiod.ForPayDate(date)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, toPayPeriodResponse(period))
	default:
		response.BadRequest(w, "by must be 'work' or 'pay'", nil)
	}
}
