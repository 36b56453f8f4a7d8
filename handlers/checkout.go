package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"
	"github.com/qanoot-iftekhar/mywebsite/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// execer is the slice of *sql.Tx the order insert needs.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// insertOrderWithRetry inserts the order row, regenerating the order
// number when it collides with an existing one. Each attempt runs
// under a savepoint: a unique violation aborts only the savepoint, not
// the surrounding transaction, so the next attempt can proceed.
func insertOrderWithRetry(tx execer, order *models.Order, prefix string) error {
	for attempt := 0; attempt < 5; attempt++ {
		if _, err := tx.Exec(`SAVEPOINT order_insert`); err != nil {
			return err
		}

		order.OrderNumber = generateOrderNumber(prefix)
		_, err := tx.Exec(`
			INSERT INTO orders (id, user_id, is_guest, order_number, total_amount, status,
				full_name, email, phone, address, city, state, zip_code, payment_method, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			order.ID, order.UserID, order.IsGuest, order.OrderNumber, order.TotalAmount, order.Status,
			order.FullName, order.Email, order.Phone, order.Address, order.City, order.State,
			order.ZipCode, order.PaymentMethod, order.CreatedAt)
		if err == nil {
			return nil
		}

		pqErr, ok := err.(*pq.Error)
		if !ok || pqErr.Code != uniqueViolation {
			return err
		}
		if _, err := tx.Exec(`ROLLBACK TO SAVEPOINT order_insert`); err != nil {
			return err
		}
	}
	return errors.New("could not allocate a unique order number")
}

// GetCheckout returns the cart snapshot the checkout form renders:
// lines, total, and the user's saved addresses when authenticated.
func GetCheckout(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request identity"})
		return
	}

	lines, err := getCartLines(owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty", "redirect": "/cart"})
		return
	}

	resp := gin.H{
		"items": lines,
		"total": models.CartTotal(lines),
	}

	if !owner.isGuest() {
		addresses, err := listAddresses(*owner.userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		resp["addresses"] = addresses
	}

	c.JSON(http.StatusOK, resp)
}

// Checkout converts the cart into an order: one order row, one
// order_items row per cart line, variant stock decremented, cart
// cleared — all in a single transaction. The confirmation email is
// sent after commit and never fails the checkout.
func Checkout(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request identity"})
		return
	}

	var req struct {
		FirstName     string `json:"first_name" binding:"required"`
		LastName      string `json:"last_name"`
		Email         string `json:"email" binding:"required,email"`
		Phone         string `json:"phone" binding:"required"`
		Address       string `json:"address" binding:"required"`
		City          string `json:"city" binding:"required"`
		State         string `json:"state" binding:"required"`
		ZipCode       string `json:"zip_code" binding:"required"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "credit-card"
	}

	lines, err := getCartLines(owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty", "redirect": "/cart"})
		return
	}

	total := models.CartTotal(lines)
	fullName := strings.TrimSpace(req.FirstName + " " + req.LastName)

	orderPrefix := "ORD"
	isGuest := owner.isGuest()
	if isGuest {
		orderPrefix = "ORD-GUEST"
	}

	tx, err := database.Database.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        owner.userID,
		IsGuest:       isGuest,
		TotalAmount:   total,
		Status:        models.OrderStatusPending,
		FullName:      fullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now(),
	}

	if err := insertOrderWithRetry(tx, order, orderPrefix); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	for _, line := range lines {
		item := models.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			Price:       line.ProductPrice,
			Size:        line.Size,
			Color:       line.Color,
			ProductName: line.ProductName,
		}

		_, err = tx.Exec(`
			INSERT INTO order_items (id, order_id, product_id, quantity, price, size, color)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price, item.Size, item.Color)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order item"})
			return
		}
		order.Items = append(order.Items, item)

		// Stock tracking is best-effort per variant: lines without a
		// matching variant are skipped, but an existing variant must
		// cover the quantity or the whole checkout fails.
		var variantExists bool
		err = tx.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM product_variants
				WHERE product_id = $1 AND size = $2 AND color = $3)`,
			line.ProductID, line.Size, line.Color).Scan(&variantExists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check inventory"})
			return
		}
		if !variantExists {
			continue
		}

		result, err := tx.Exec(`
			UPDATE product_variants SET stock = stock - $1
			WHERE product_id = $2 AND size = $3 AND color = $4 AND stock >= $1`,
			line.Quantity, line.ProductID, line.Size, line.Color)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory"})
			return
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "Insufficient stock",
				"product_id": line.ProductID,
				"size":       line.Size,
				"color":      line.Color,
			})
			return
		}
	}

	where, arg := owner.ownerClause(1)
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE `+where, arg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit order"})
		return
	}

	// Guests reach order-success through their session
	if isGuest {
		payload, _, err := SessionStore.Get(owner.sessionKey)
		if err == nil {
			payload.OrderIDs = append(payload.OrderIDs, order.ID.String())
			if err := SessionStore.Set(owner.sessionKey, payload); err != nil {
				log.Printf("Failed to record guest order %s in session: %v", order.ID, err)
			}
		}
	}

	// Email failure must not fail the checkout
	go func(o models.Order) {
		if err := services.SendOrderConfirmationEmail(&o); err != nil {
			log.Printf("Failed to send order confirmation for %s: %v", o.OrderNumber, err)
		}
	}(*order)

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"order":    order,
		"redirect": "/order-success/" + order.ID.String(),
	})
}

// OrderSuccess returns a placed order to its owner. Guests can only
// see orders placed from their own session.
func OrderSuccess(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := fetchOrder(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request identity"})
		return
	}

	authorized := false
	if owner.userID != nil && order.UserID != nil && *owner.userID == *order.UserID {
		authorized = true
	} else if owner.isGuest() && order.IsGuest {
		payload, found, err := SessionStore.Get(owner.sessionKey)
		if err == nil && found && payload.HasOrder(orderID.String()) {
			authorized = true
		}
	}
	if !authorized {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
