package handlers

import (
	"encoding/json"
	"net/http"

	"dukastore/internal/domain"
	"dukastore/internal/infrastructure/daraja"
	"dukastore/internal/interfaces/rest"
)

type callbackResponse struct {
	Message string `json:"message"`
}

// MpesaCallback receives the gateway's server-to-server payment result. The
// result is decoded and logged, then acknowledged. Polling remains the driver
// of terminal state; persisting this callback is deliberately unimplemented.
func (h *Handler) MpesaCallback(w http.ResponseWriter, r *http.Request) {
	var envelope daraja.CallbackEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		h.logger.Error("malformed gateway callback", "error", err)
		rest.WriteError(w, domain.NewInvalidRequestError("invalid callback payload"))
		return
	}

	cb := envelope.Body.StkCallback
	h.logger.Info("gateway callback received",
		"checkout_request_id", cb.CheckoutRequestID,
		"merchant_request_id", cb.MerchantRequestID,
		"result_code", cb.ResultCode,
		"result_desc", cb.ResultDesc,
	)

	rest.WriteJSON(w, http.StatusOK, callbackResponse{Message: "Callback received successfully"})
}
