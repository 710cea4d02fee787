package controllers

import (
	"net/http"

	"github.com/martinezcrafts/shopdesk-backend/api/responses"
	"github.com/martinezcrafts/shopdesk-backend/api/validators"
	"github.com/martinezcrafts/shopdesk-backend/internal/intake"
	"github.com/martinezcrafts/shopdesk-backend/internal/orders"
	pkgerrors "github.com/martinezcrafts/shopdesk-backend/pkg/errors"
	"github.com/martinezcrafts/shopdesk-backend/pkg/logger"
	"github.com/martinezcrafts/shopdesk-backend/pkg/money"
)

// SubmitOrder handles the storefront checkout submission.
func SubmitOrder(svc intake.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "intake service unavailable"))
			return
		}

		var payload orders.Submission
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Submit(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, http.StatusCreated, newSubmitOrderResponse(result))
	}
}

type submitOrderResponse struct {
	Success             bool         `json:"success"`
	OrderID             string       `json:"orderId"`
	Total               money.Amount `json:"total"`
	PaymentInstructions string       `json:"paymentInstructions,omitempty"`
	EmailSent           bool         `json:"emailSent"`
}

func newSubmitOrderResponse(result *intake.Result) submitOrderResponse {
	return submitOrderResponse{
		Success:             true,
		OrderID:             result.OrderID,
		Total:               result.Total,
		PaymentInstructions: result.PaymentInstructions,
		EmailSent:           result.EmailSent,
	}
}
