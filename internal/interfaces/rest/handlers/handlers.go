// Package handlers exposes the storefront's internal HTTP surface: payment
// initiation, status checks, the gateway callback, order creation and the
// catalog proxy.
package handlers

import (
	"log/slog"
	"net/http"

	"dukastore/internal/application/services"
)

type Handler struct {
	initiator *services.Initiator
	poller    *services.Poller
	committer *services.Committer
	saga      *services.CheckoutSaga
	catalog   *services.Catalog
	logger    *slog.Logger
}

func NewHandler(
	initiator *services.Initiator,
	poller *services.Poller,
	committer *services.Committer,
	saga *services.CheckoutSaga,
	catalog *services.Catalog,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		initiator: initiator,
		poller:    poller,
		committer: committer,
		saga:      saga,
		catalog:   catalog,
		logger:    logger,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /stkpush", h.STKPush)
	mux.HandleFunc("GET /check-order", h.CheckOrder)
	mux.HandleFunc("POST /mpesa-callback", h.MpesaCallback)
	mux.HandleFunc("POST /orders", h.CreateOrder)
	mux.HandleFunc("POST /checkout", h.Checkout)
	mux.HandleFunc("GET /products", h.ListProducts)
	mux.HandleFunc("GET /products/{id}", h.GetProduct)
}
