package models_test

import (
	"testing"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidPrice(t *testing.T) {
	tests := []struct {
		price string
		want  bool
	}{
		{"0", true},
		{"19.99", true},
		{"19.9", true},
		{"19.990", true},
		{"99999999.99", true},
		{"19.999", false},
		{"0.001", false},
		{"100000000", false},
		{"1000000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ValidPrice(decimal.RequireFromString(tt.price)))
		})
	}
}

func TestCreateProductRequest_ToProduct(t *testing.T) {
	description := ""
	image := "https://example.com/a.png"
	price := decimal.RequireFromString("5.25")
	quantity := 0
	available := false

	p := models.CreateProductRequest{
		Name:        "Mug",
		Description: &description,
		Image:       &image,
		Price:       &price,
		Quantity:    &quantity,
		IsAvailable: &available,
		Category:    "Kitchen",
	}.ToProduct()

	assert.Empty(t, p.ID)
	assert.Equal(t, "Mug", p.Name)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, image, p.Image)
	assert.True(t, price.Equal(p.Price))
	assert.Equal(t, 0, p.Quantity)
	assert.False(t, p.IsAvailable)
	assert.Equal(t, "Kitchen", p.Category)
}
