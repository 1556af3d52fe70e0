package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"
)

// ErrProductNotFound is returned when no product matches the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update applies only the fields present in the patch.
	Update(ctx context.Context, id string, patch models.UpdateProductRequest) error
	// Delete succeeds whether or not the product exists.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
