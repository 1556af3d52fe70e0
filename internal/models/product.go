package models

import (
	"github.com/shopspring/decimal"
)

// Price column limits: decimal(10,2).
const (
	PricePrecision = 10
	PriceScale     = 2
)

var maxPrice = decimal.New(1, PricePrecision-PriceScale)

func init() {
	// Prices go over the wire as JSON numbers, the same shape clients send.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the catalog.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Image       string          `json:"image" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	IsAvailable bool            `json:"isAvailable" gorm:"not null"`
	Category    string          `json:"category" gorm:"not null"`
}

// ValidPrice reports whether d fits the price column without rounding.
func ValidPrice(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(PriceScale)) && d.Abs().LessThan(maxPrice)
}

// CreateProductRequest is the body accepted by POST /products.
// Pointer fields are required to be present, which lets zero values through.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description" validate:"required"`
	Image       *string          `json:"image" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0,price"`
	Quantity    *int             `json:"quantity" validate:"required,gte=0"`
	IsAvailable *bool            `json:"isAvailable" validate:"required"`
	Category    string           `json:"category" validate:"required"`
}

// ToProduct builds the entity to be stored. The ID is left for the store to assign.
func (r CreateProductRequest) ToProduct() *Product {
	p := &Product{
		Name:     r.Name,
		Category: r.Category,
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Quantity != nil {
		p.Quantity = *r.Quantity
	}
	if r.IsAvailable != nil {
		p.IsAvailable = *r.IsAvailable
	}
	return p
}

// UpdateProductRequest is a sparse patch: only non-nil fields are applied.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0,price"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0"`
	IsAvailable *bool            `json:"isAvailable"`
	Category    *string          `json:"category" validate:"omitempty,min=1"`
}

// Changes returns the present fields keyed by column name.
func (r UpdateProductRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if r.Name != nil {
		changes["name"] = *r.Name
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Image != nil {
		changes["image"] = *r.Image
	}
	if r.Price != nil {
		changes["price"] = *r.Price
	}
	if r.Quantity != nil {
		changes["quantity"] = *r.Quantity
	}
	if r.IsAvailable != nil {
		changes["is_available"] = *r.IsAvailable
	}
	if r.Category != nil {
		changes["category"] = *r.Category
	}
	return changes
}

// IsEmpty reports whether the patch carries no fields at all.
func (r UpdateProductRequest) IsEmpty() bool {
	return len(r.Changes()) == 0
}

// ApplyTo copies the present fields onto p.
func (r UpdateProductRequest) ApplyTo(p *Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Image != nil {
		p.Image = *r.Image
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Quantity != nil {
		p.Quantity = *r.Quantity
	}
	if r.IsAvailable != nil {
		p.IsAvailable = *r.IsAvailable
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
}
