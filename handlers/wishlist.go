package handlers

import (
	"net/http"
	"time"

	"github.com/qanoot-iftekhar/mywebsite/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ToggleWishlist adds the product to the user's wishlist, or removes
// it when already present.
func ToggleWishlist(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
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

	result, err := database.Database.Exec(`
		DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	if affected, _ := result.RowsAffected(); affected > 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "in_wishlist": false, "message": "Removed from wishlist"})
		return
	}

	_, err = database.Database.Exec(`
		INSERT INTO wishlist_items (id, user_id, product_id)
		VALUES ($1, $2, $3)`,
		uuid.New(), userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "in_wishlist": true, "message": "Added to wishlist"})
}

// GetWishlist lists the user's wishlist with product details.
func GetWishlist(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := database.Database.Query(`
		SELECT w.id, w.product_id, w.created_at,
		       p.name, p.price, p.image_url, p.rating, c.name
		FROM wishlist_items w
		JOIN products p ON w.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
		return
	}
	defer rows.Close()

	items := []gin.H{}
	for rows.Next() {
		var (
			id, productID                uuid.UUID
			createdAt                    time.Time
			name, imageURL, categoryName string
			price, rating                float64
		)
		if err := rows.Scan(&id, &productID, &createdAt, &name, &price, &imageURL, &rating, &categoryName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read wishlist"})
			return
		}
		items = append(items, gin.H{
			"id":            id,
			"product_id":    productID,
			"product_name":  name,
			"product_price": price,
			"product_image": imageURL,
			"rating":        rating,
			"category_name": categoryName,
			"created_at":    createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": items, "count": len(items)})
}
