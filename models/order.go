package models

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order is an immutable snapshot taken at checkout. UserID is NULL
// for guest orders.
type Order struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	IsGuest     bool       `json:"is_guest" db:"is_guest"`
	OrderNumber string     `json:"order_number" db:"order_number"`
	TotalAmount float64    `json:"total_amount" db:"total_amount"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// Shipping information
	FullName      string `json:"full_name" db:"full_name"`
	Email         string `json:"email" db:"email"`
	Phone         string `json:"phone" db:"phone"`
	Address       string `json:"address" db:"address"`
	City          string `json:"city" db:"city"`
	State         string `json:"state" db:"state"`
	ZipCode       string `json:"zip_code" db:"zip_code"`
	PaymentMethod string `json:"payment_method" db:"payment_method"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is a line copied from the cart at checkout time. Price is
// the product price at purchase.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	Size      string    `json:"size" db:"size"`
	Color     string    `json:"color" db:"color"`

	// Display only
	ProductName  string `json:"product_name,omitempty"`
	ProductImage string `json:"product_image,omitempty"`
}

// CanTransition reports whether an order status change is allowed:
// pending -> processing -> shipped -> delivered, and pending or
// processing may be cancelled.
func CanTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusCancelled
	case OrderStatusProcessing:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}

func (Order) TableName() string {
	return "orders"
}

func (Order) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID REFERENCES users(id) ON DELETE SET NULL,
		is_guest BOOLEAN NOT NULL DEFAULT FALSE,
		order_number VARCHAR(30) NOT NULL UNIQUE,
		total_amount NUMERIC(10,2) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		full_name VARCHAR(100) NOT NULL,
		email TEXT NOT NULL,
		phone VARCHAR(15) NOT NULL,
		address TEXT NOT NULL,
		city VARCHAR(50) NOT NULL,
		state VARCHAR(50) NOT NULL,
		zip_code VARCHAR(10) NOT NULL,
		payment_method VARCHAR(50) NOT NULL DEFAULT 'credit-card',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (OrderItem) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		price NUMERIC(10,2) NOT NULL,
		size VARCHAR(10) NOT NULL DEFAULT '',
		color VARCHAR(50) NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);`
}
