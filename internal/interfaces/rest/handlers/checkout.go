package handlers

import (
	"encoding/json"
	"net/http"

	"dukastore/internal/application/services"
	"dukastore/internal/domain"
	"dukastore/internal/interfaces/rest"
)

type checkoutRequest struct {
	Amount  int64             `json:"amount"`
	Phone   string            `json:"phone"`
	Billing domain.Billing    `json:"billing"`
	Cart    []domain.CartLine `json:"cart"`
}

type checkoutResponse struct {
	Success           bool   `json:"success"`
	OrderID           int64  `json:"orderId"`
	CheckoutRequestID string `json:"checkoutRequestId"`
	Status            string `json:"status"`
	Message           string `json:"message"`
}

// Checkout runs the whole saga server-side: initiate, poll until terminal,
// commit. The response is held open for up to the poller's bounded wait, so
// this route needs the server's write timeout above poller.max_wait.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, domain.NewInvalidRequestError("invalid JSON payload"))
		return
	}

	result, err := h.saga.Run(r.Context(), services.CheckoutCommand{
		AmountKES: req.Amount,
		Phone:     req.Phone,
		Billing:   req.Billing,
		Lines:     req.Cart,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, checkoutResponse{
		Success:           true,
		OrderID:           result.OrderID,
		CheckoutRequestID: result.CheckoutRequestID,
		Status:            string(result.Status),
		Message:           result.Message,
	})
}
