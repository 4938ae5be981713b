package handlers

import (
	"net/http"
	"strconv"

	"dukastore/internal/domain"
	"dukastore/internal/interfaces/rest"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		rest.WriteError(w, domain.NewInvalidRequestError("product id must be numeric"))
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, product)
}
