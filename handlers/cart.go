package handlers

import (
	"fmt"
	"net/http"

	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// cartOwner is the request identity a cart line belongs to: an
// authenticated user or a guest session. Exactly one side is set.
type cartOwner struct {
	userID     *uuid.UUID
	sessionKey string
}

func (o cartOwner) isGuest() bool {
	return o.userID == nil
}

// ownerClause returns the owner filter for a WHERE clause, with its
// argument bound at the given placeholder position.
func (o cartOwner) ownerClause(pos int) (string, interface{}) {
	if o.userID != nil {
		return fmt.Sprintf("user_id = $%d", pos), *o.userID
	}
	return fmt.Sprintf("session_key = $%d", pos), o.sessionKey
}

// currentOwner resolves the identity set by OptionalAuthMiddleware.
func currentOwner(c *gin.Context) (cartOwner, bool) {
	if idStr := c.GetString("user_id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return cartOwner{}, false
		}
		return cartOwner{userID: &id}, true
	}
	if key := c.GetString("session_key"); key != "" {
		return cartOwner{sessionKey: key}, true
	}
	return cartOwner{}, false
}

// importLegacySessionCart drains a legacy dictionary cart out of the
// session payload into cart_items rows. Both dictionary encodings are
// tolerated; unknown products are dropped.
func importLegacySessionCart(sessionKey string) error {
	payload, found, err := SessionStore.Get(sessionKey)
	if err != nil {
		return err
	}
	if !found || len(payload.Cart) == 0 {
		return nil
	}

	for _, entry := range payload.Cart {
		productID, err := uuid.Parse(entry.ProductID)
		if err != nil || entry.Quantity < 1 {
			continue
		}

		var exists bool
		if err := database.Database.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil || !exists {
			continue
		}

		result, err := database.Database.Exec(`
			UPDATE cart_items SET quantity = quantity + $1
			WHERE session_key = $2 AND product_id = $3 AND size = $4 AND color = $5`,
			entry.Quantity, sessionKey, productID, entry.Size, entry.Color)
		if err != nil {
			return err
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			_, err = database.Database.Exec(`
				INSERT INTO cart_items (id, session_key, product_id, size, color, quantity)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.New(), sessionKey, productID, entry.Size, entry.Color, entry.Quantity)
			if err != nil {
				return err
			}
		}
	}

	payload.Cart = nil
	return SessionStore.Set(sessionKey, payload)
}

// getCartLines returns the owner's cart with product and category
// joined, newest first.
func getCartLines(owner cartOwner) ([]models.CartLine, error) {
	if owner.isGuest() {
		if err := importLegacySessionCart(owner.sessionKey); err != nil {
			return nil, err
		}
	}

	where, arg := owner.ownerClause(1)
	query := `
		SELECT ci.id, ci.user_id, ci.session_key, ci.product_id, ci.size, ci.color,
		       ci.quantity, ci.created_at,
		       p.name, p.price, p.image_url, c.name
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE ` + where + `
		ORDER BY ci.created_at DESC`

	rows, err := database.Database.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.SessionKey, &l.ProductID, &l.Size, &l.Color,
			&l.Quantity, &l.CreatedAt,
			&l.ProductName, &l.ProductPrice, &l.ProductImage, &l.CategoryName,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// GetCart lists the current cart with line and grand totals
func GetCart(c *gin.Context) {
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

	items := make([]gin.H, 0, len(lines))
	for _, l := range lines {
		items = append(items, gin.H{
			"id":            l.ID,
			"product_id":    l.ProductID,
			"product_name":  l.ProductName,
			"product_price": l.ProductPrice,
			"product_image": l.ProductImage,
			"category_name": l.CategoryName,
			"size":          l.Size,
			"color":         l.Color,
			"quantity":      l.Quantity,
			"subtotal":      l.TotalPrice(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"items": items,
		"total": models.CartTotal(lines),
	})
}

// AddToCart upserts a line: an existing (owner, product, size, color)
// row gets its quantity incremented, otherwise a row is inserted.
func AddToCart(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request identity"})
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req struct {
		Quantity int    `json:"quantity" binding:"required,min=1"`
		Size     string `json:"size"`
		Color    string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists bool
	if err := database.Database.QueryRow(`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if owner.isGuest() {
		// Fold any legacy payload first so the upsert sees one encoding
		if err := importLegacySessionCart(owner.sessionKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session cart"})
			return
		}
	}

	where, arg := owner.ownerClause(2)
	result, err := database.Database.Exec(`
		UPDATE cart_items SET quantity = quantity + $1
		WHERE `+where+` AND product_id = $3 AND size = $4 AND color = $5`,
		req.Quantity, arg, productID, req.Size, req.Color)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		var insert string
		if owner.isGuest() {
			insert = `INSERT INTO cart_items (id, session_key, product_id, size, color, quantity)
				VALUES ($1, $2, $3, $4, $5, $6)`
		} else {
			insert = `INSERT INTO cart_items (id, user_id, product_id, size, color, quantity)
				VALUES ($1, $2, $3, $4, $5, $6)`
		}
		_, err = database.Database.Exec(insert, uuid.New(), arg, productID, req.Size, req.Color, req.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added to cart"})
}

// UpdateCartItem sets an absolute quantity for a line
func UpdateCartItem(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request identity"})
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  *int   `json:"quantity" binding:"required"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID and quantity required"})
		return
	}
	if *req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if owner.isGuest() {
		if err := importLegacySessionCart(owner.sessionKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session cart"})
			return
		}
	}

	where, arg := owner.ownerClause(2)
	result, err := database.Database.Exec(`
		UPDATE cart_items SET quantity = $1
		WHERE `+where+` AND product_id = $3 AND size = $4 AND color = $5`,
		*req.Quantity, arg, productID, req.Size, req.Color)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart updated"})
}

// RemoveFromCart deletes a line by (product, size, color)
func RemoveFromCart(c *gin.Context) {
	owner, ok := currentOwner(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request identity"})
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID required"})
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if owner.isGuest() {
		if err := importLegacySessionCart(owner.sessionKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read session cart"})
			return
		}
	}

	where, arg := owner.ownerClause(1)
	result, err := database.Database.Exec(`
		DELETE FROM cart_items
		WHERE `+where+` AND product_id = $2 AND size = $3 AND color = $4`,
		arg, productID, req.Size, req.Color)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed"})
}
