package database

import (
	"database/sql"
	"fmt"

	"github.com/qanoot-iftekhar/mywebsite/models"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

var Database *DB

// Connect establishes a connection to the PostgreSQL database
func Connect(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	Database = &DB{db}
	return Database, nil
}

type tableCreator interface {
	TableName() string
	CreateTableSQL() string
}

// InitializeTables creates all tables if they don't exist
func (db *DB) InitializeTables() error {
	// Enable pgcrypto for gen_random_uuid()
	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`); err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	// Order matters: referenced tables first
	tables := []tableCreator{
		models.Category{},
		models.Product{},
		models.ProductImage{},
		models.ProductVariant{},
		models.User{},
		models.CartItem{},
		models.Order{},
		models.OrderItem{},
		models.EmailOTP{},
		models.Review{},
		models.WishlistItem{},
		models.Address{},
		models.NewsletterSubscription{},
		models.Session{},
	}

	for _, t := range tables {
		if _, err := db.Exec(t.CreateTableSQL()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.TableName(), err)
		}
	}

	return nil
}
