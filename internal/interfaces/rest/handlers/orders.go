package handlers

import (
	"encoding/json"
	"net/http"

	"dukastore/internal/application/services"
	"dukastore/internal/domain"
	"dukastore/internal/interfaces/rest"
)

type createOrderRequest struct {
	CheckoutRequestID string            `json:"checkoutRequestId"`
	Billing           domain.Billing    `json:"billing"`
	Items             []domain.CartLine `json:"line_items"`
}

type createOrderResponse struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

// CreateOrder commits a pre-paid order after a confirmed payment. The
// checkoutRequestId keys the at-most-once guard, so a client retry after a
// transient failure cannot double-create the order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, domain.NewInvalidRequestError("invalid JSON payload"))
		return
	}

	order, err := h.committer.Commit(r.Context(), services.CommitCommand{
		CheckoutRequestID: req.CheckoutRequestID,
		Billing:           req.Billing,
		Lines:             req.Items,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, createOrderResponse{
		Success: true,
		OrderID: order.ID,
		Status:  order.Status,
	})
}
