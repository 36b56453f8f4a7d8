package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Per-variant stock lives in ProductVariant.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	CategoryID  uuid.UUID `json:"category_id" db:"category_id"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Featured    bool      `json:"featured" db:"featured"`
	Rating      float64   `json:"rating" db:"rating"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Footwear specific fields
	Material         string `json:"material" db:"material"`
	SoleType         string `json:"sole_type" db:"sole_type"`
	Weight           string `json:"weight" db:"weight"`
	IsWaterResistant bool   `json:"is_water_resistant" db:"is_water_resistant"`
	CareInstructions string `json:"care_instructions" db:"care_instructions"`
}

func (Product) TableName() string {
	return "products"
}

func (Product) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL,
		category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		image_url TEXT NOT NULL DEFAULT '',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		material TEXT NOT NULL DEFAULT '',
		sole_type TEXT NOT NULL DEFAULT '',
		weight TEXT NOT NULL DEFAULT '',
		is_water_resistant BOOLEAN NOT NULL DEFAULT FALSE,
		care_instructions TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
	CREATE INDEX IF NOT EXISTS idx_products_featured ON products(featured);`
}
