package handlers

import (
	"database/sql"
	"net/http"

	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fetchOrder loads an order with its items.
func fetchOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := database.Database.QueryRow(`
		SELECT id, user_id, is_guest, order_number, total_amount, status,
		       full_name, email, phone, address, city, state, zip_code,
		       payment_method, created_at
		FROM orders WHERE id = $1`, orderID).Scan(
		&order.ID, &order.UserID, &order.IsGuest, &order.OrderNumber,
		&order.TotalAmount, &order.Status, &order.FullName, &order.Email,
		&order.Phone, &order.Address, &order.City, &order.State,
		&order.ZipCode, &order.PaymentMethod, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	items, err := fetchOrderItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func fetchOrderItems(orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := database.Database.Query(`
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		       oi.size, oi.color, p.name, p.image_url
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.Price, &item.Size, &item.Color,
			&item.ProductName, &item.ProductImage,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetOrders lists the authenticated user's orders, newest first.
func GetOrders(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := database.Database.Query(`
		SELECT id, user_id, is_guest, order_number, total_amount, status,
		       full_name, email, phone, address, city, state, zip_code,
		       payment_method, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.IsGuest, &order.OrderNumber,
			&order.TotalAmount, &order.Status, &order.FullName, &order.Email,
			&order.Phone, &order.Address, &order.City, &order.State,
			&order.ZipCode, &order.PaymentMethod, &order.CreatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read orders"})
			return
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read orders"})
		return
	}

	for i := range orders {
		items, err := fetchOrderItems(orders[i].ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
			return
		}
		orders[i].Items = items
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// GetOrder returns a single order belonging to the authenticated user.
func GetOrder(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := fetchOrder(orderID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if order.UserID == nil || *order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
