package models

import (
	"github.com/google/uuid"
)

// ProductVariant is a (color, size) stock-keeping unit of a product.
type ProductVariant struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ProductID     uuid.UUID `json:"product_id" db:"product_id"`
	Color         string    `json:"color" db:"color"`
	Size          string    `json:"size" db:"size"`
	Stock         int       `json:"stock" db:"stock"`
	SKU           string    `json:"sku" db:"sku"`
	ColorImageURL *string   `json:"color_image_url,omitempty" db:"color_image_url"`
}

// IsInStock reports whether any units remain.
func (v ProductVariant) IsInStock() bool {
	return v.Stock > 0
}

// IsLowStock reports whether 5 or fewer units remain.
func (v ProductVariant) IsLowStock() bool {
	return v.Stock > 0 && v.Stock <= 5
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

func (ProductVariant) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS product_variants (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		color VARCHAR(50) NOT NULL,
		size VARCHAR(10) NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		sku VARCHAR(100) NOT NULL UNIQUE,
		color_image_url TEXT,
		UNIQUE (product_id, color, size)
	);
	CREATE INDEX IF NOT EXISTS idx_product_variants_product ON product_variants(product_id);`
}
