package models

import (
	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Slug string    `json:"slug" db:"slug"`
}

func (Category) TableName() string {
	return "categories"
}

func (Category) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE
	);`
}
