package handlers

import (
	"net/http"

	"dukastore/internal/interfaces/rest"
)

type checkOrderResponse struct {
	Status string `json:"status"`
}

// CheckOrder performs one status query for a checkout request id. 400 when
// the id is missing, 502 when the status source is unreachable.
func (h *Handler) CheckOrder(w http.ResponseWriter, r *http.Request) {
	checkoutRequestID := r.URL.Query().Get("checkoutRequestId")

	status, err := h.poller.Check(r.Context(), checkoutRequestID)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, checkOrderResponse{Status: string(status)})
}
