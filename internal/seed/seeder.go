package seed

import (
	"context"
	"fmt"

	"catalog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCount is the number of products inserted into an empty catalog.
const DefaultCount = 10

// ProductStore is the part of the product service the seeder needs.
type ProductStore interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
}

// Seeder fills an empty catalog with synthetic products.
type Seeder struct {
	store  ProductStore
	count  int
	logger *zap.Logger
}

func NewSeeder(store ProductStore, logger *zap.Logger) *Seeder {
	return &Seeder{store: store, count: DefaultCount, logger: logger}
}

// Run inserts the synthetic products one at a time, only when the catalog is empty.
// It returns the number of products inserted.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	existing, err := s.store.GetAllProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing products: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("Catalog already populated, skipping seed", zap.Int("products", len(existing)))
		return 0, nil
	}

	inserted := 0
	for i := 0; i < s.count; i++ {
		product, err := s.store.CreateProduct(ctx, fakeProduct())
		if err != nil {
			return inserted, fmt.Errorf("failed to seed product %d: %w", i+1, err)
		}
		inserted++
		s.logger.Debug("Seeded product", zap.String("id", product.ID), zap.String("name", product.Name))
	}

	s.logger.Info("Seeded catalog", zap.Int("products", inserted))
	return inserted, nil
}

func fakeProduct() models.CreateProductRequest {
	price := decimal.NewFromFloat(gofakeit.Price(1, 1000)).Round(2)
	quantity := gofakeit.Number(1, 100)
	available := gofakeit.Bool()
	description := gofakeit.ProductDescription()
	image := fmt.Sprintf("https://loremflickr.com/640/480?lock=%d", gofakeit.Number(1, 1_000_000))

	return models.CreateProductRequest{
		Name:        gofakeit.ProductName(),
		Description: &description,
		Image:       &image,
		Price:       &price,
		Quantity:    &quantity,
		IsAvailable: &available,
		Category:    gofakeit.ProductCategory(),
	}
}
