package models

import (
	"time"

	"github.com/google/uuid"
)

type NewsletterSubscription struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (NewsletterSubscription) TableName() string {
	return "newsletter_subscriptions"
}

func (NewsletterSubscription) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
