package models

import (
	"time"

	"github.com/google/uuid"
)

// Fit feedback values for footwear reviews.
const (
	FitRunsSmall  = "small"
	FitTrueToSize = "true"
	FitRunsLarge  = "large"

	WidthNarrow  = "narrow"
	WidthPerfect = "perfect"
	WidthWide    = "wide"
)

// ValidTrueToSize reports whether s is a recognized fit choice. The
// empty string means no feedback.
func ValidTrueToSize(s string) bool {
	switch s {
	case "", FitRunsSmall, FitTrueToSize, FitRunsLarge:
		return true
	}
	return false
}

// ValidWidthFeedback reports whether s is a recognized width choice.
func ValidWidthFeedback(s string) bool {
	switch s {
	case "", WidthNarrow, WidthPerfect, WidthWide:
		return true
	}
	return false
}

type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Footwear-specific fields
	TrueToSize     string `json:"true_to_size" db:"true_to_size"`
	WidthFeedback  string `json:"width_feedback" db:"width_feedback"`
	ComfortRating  int    `json:"comfort_rating" db:"comfort_rating"`
	WouldRecommend bool   `json:"would_recommend" db:"would_recommend"`

	// Display only
	UserName string `json:"user_name,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

func (Review) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		rating SMALLINT NOT NULL CHECK (rating >= 1 AND rating <= 5),
		comment TEXT NOT NULL DEFAULT '',
		true_to_size VARCHAR(10) NOT NULL DEFAULT '',
		width_feedback VARCHAR(10) NOT NULL DEFAULT '',
		comfort_rating SMALLINT NOT NULL DEFAULT 5 CHECK (comfort_rating >= 1 AND comfort_rating <= 5),
		would_recommend BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);`
}
