package models

import (
	"github.com/google/uuid"
)

// ProductImage is a gallery image, ordered by position.
type ProductImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	URL       string    `json:"url" db:"url"`
	AltText   string    `json:"alt_text" db:"alt_text"`
	Position  int       `json:"position" db:"position"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

func (ProductImage) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS product_images (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		alt_text TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);`
}
