package services

import (
	"context"
	"log/slog"

	"dukastore/internal/application"
	"dukastore/internal/domain"
)

// Catalog proxies product reads to the commerce backend. Display glue only;
// the backend owns the data.
type Catalog struct {
	backend application.CommerceBackend
	logger  *slog.Logger
}

func NewCatalog(backend application.CommerceBackend, logger *slog.Logger) *Catalog {
	return &Catalog{
		backend: backend,
		logger:  logger,
	}
}

func (c *Catalog) ListProducts(ctx context.Context) ([]application.Product, error) {
	products, err := c.backend.ListProducts(ctx)
	if err != nil {
		c.logger.Error("product listing failed", "error", err)
		return nil, err
	}
	return products, nil
}

func (c *Catalog) GetProduct(ctx context.Context, id int64) (*application.Product, error) {
	if id <= 0 {
		return nil, domain.NewInvalidRequestError("product id must be positive")
	}

	product, err := c.backend.GetProduct(ctx, id)
	if err != nil {
		c.logger.Error("product fetch failed", "product_id", id, "error", err)
		return nil, err
	}
	return product, nil
}
