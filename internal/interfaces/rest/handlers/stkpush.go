package handlers

import (
	"encoding/json"
	"net/http"

	"dukastore/internal/application/services"
	"dukastore/internal/domain"
	"dukastore/internal/interfaces/rest"
)

type stkPushRequest struct {
	Amount  int64             `json:"amount"`
	Phone   string            `json:"phone"`
	OrderID json.Number       `json:"orderId"`
	Cart    []domain.CartLine `json:"cart"`
}

type stkPushResponse struct {
	Success           bool   `json:"success"`
	CheckoutRequestID string `json:"checkoutRequestId"`
	MerchantRequestID string `json:"merchantRequestId"`
	CustomerMessage   string `json:"customerMessage"`
}

// STKPush initiates a push payment. 400 on malformed JSON or missing
// amount/phone/orderId, 401 when the gateway rejects our credentials.
func (h *Handler) STKPush(w http.ResponseWriter, r *http.Request) {
	var req stkPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, domain.NewInvalidRequestError("invalid JSON payload"))
		return
	}

	if req.Amount == 0 || req.Phone == "" || req.OrderID.String() == "" {
		rest.WriteError(w, domain.NewInvalidRequestError("missing amount, phone, or orderId"))
		return
	}

	result, err := h.initiator.Initiate(r.Context(), services.InitiateCommand{
		AmountKES: req.Amount,
		Phone:     req.Phone,
		OrderRef:  req.OrderID.String(),
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, stkPushResponse{
		Success:           true,
		CheckoutRequestID: result.CheckoutRequestID,
		MerchantRequestID: result.MerchantRequestID,
		CustomerMessage:   result.CustomerMessage,
	})
}
