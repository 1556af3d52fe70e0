package repositories_test

import (
	"context"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func TestProperty_PriceUpdateIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("applying the same price patch twice equals applying it once", prop.ForAll(
		func(cents int64, quantity int, available bool) bool {
			ctx := context.Background()
			repo := repositories.NewMemoryProductRepository()

			p := &models.Product{
				Name:        "Widget",
				Description: "Stored description",
				Image:       "https://example.com/w.png",
				Price:       decimal.NewFromInt(1),
				Quantity:    quantity,
				IsAvailable: available,
				Category:    "Tools",
			}
			if err := repo.Create(ctx, p); err != nil {
				return false
			}

			price := decimal.New(cents, -2)
			patch := models.UpdateProductRequest{Price: &price}

			if err := repo.Update(ctx, p.ID, patch); err != nil {
				return false
			}
			once, err := repo.GetByID(ctx, p.ID)
			if err != nil {
				return false
			}
			if err := repo.Update(ctx, p.ID, patch); err != nil {
				return false
			}
			twice, err := repo.GetByID(ctx, p.ID)
			if err != nil {
				return false
			}

			return once.Price.Equal(twice.Price) &&
				twice.Price.Equal(price) &&
				twice.Name == p.Name &&
				twice.Description == p.Description &&
				twice.Image == p.Image &&
				twice.Quantity == p.Quantity &&
				twice.IsAvailable == p.IsAvailable &&
				twice.Category == p.Category
		},
		gen.Int64Range(0, 10_000_000),
		gen.IntRange(0, 1000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestProperty_CreatedProductsAreListed(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every created product is listed exactly once", prop.ForAll(
		func(names []string) bool {
			ctx := context.Background()
			repo := repositories.NewMemoryProductRepository()

			ids := make(map[string]bool)
			for _, name := range names {
				p := &models.Product{Name: name, Category: "Misc"}
				if err := repo.Create(ctx, p); err != nil {
					return false
				}
				ids[p.ID] = true
			}

			all, err := repo.GetAll(ctx)
			if err != nil || len(all) != len(names) || len(ids) != len(names) {
				return false
			}
			for _, p := range all {
				if !ids[p.ID] {
					return false
				}
				delete(ids, p.ID)
			}
			return len(ids) == 0
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
