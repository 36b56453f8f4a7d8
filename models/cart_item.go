package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one cart line. Exactly one of UserID or SessionKey is
// set: user carts are keyed by user, guest carts by session key. One
// row exists per (owner, product, size, color).
type CartItem struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	SessionKey *string    `json:"session_key,omitempty" db:"session_key"`
	ProductID  uuid.UUID  `json:"product_id" db:"product_id"`
	Size       string     `json:"size" db:"size"`
	Color      string     `json:"color" db:"color"`
	Quantity   int        `json:"quantity" db:"quantity"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (CartItem) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS cart_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE CASCADE,
		session_key VARCHAR(64),
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		size VARCHAR(10) NOT NULL DEFAULT '',
		color VARCHAR(50) NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		CHECK ((user_id IS NULL) <> (session_key IS NULL))
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_user_line
		ON cart_items(user_id, product_id, size, color) WHERE user_id IS NOT NULL;
	CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_session_line
		ON cart_items(session_key, product_id, size, color) WHERE session_key IS NOT NULL;`
}

// CartLine is a cart item joined with its product for display.
type CartLine struct {
	CartItem
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	ProductImage string  `json:"product_image"`
	CategoryName string  `json:"category_name"`
}

// TotalPrice is price at current catalog price times quantity.
func (l CartLine) TotalPrice() float64 {
	return l.ProductPrice * float64(l.Quantity)
}

// CartTotal sums line totals over a cart snapshot.
func CartTotal(lines []CartLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.TotalPrice()
	}
	return total
}
