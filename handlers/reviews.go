package handlers

import (
	"net/http"

	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetProductReviews lists reviews for a product, newest first.
func GetProductReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	rows, err := database.Database.Query(`
		SELECT r.id, r.user_id, r.product_id, r.rating, r.comment,
		       r.true_to_size, r.width_feedback, r.comfort_rating,
		       r.would_recommend, r.created_at, u.first_name
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC`, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.ProductID, &r.Rating, &r.Comment,
			&r.TrueToSize, &r.WidthFeedback, &r.ComfortRating,
			&r.WouldRecommend, &r.CreatedAt, &r.UserName,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read reviews"})
			return
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// CreateReview posts a review for a product and refreshes the
// product's average rating.
func CreateReview(c *gin.Context) {
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

	var req struct {
		Rating         int    `json:"rating" binding:"required,min=1,max=5"`
		Comment        string `json:"comment"`
		TrueToSize     string `json:"true_to_size"`
		WidthFeedback  string `json:"width_feedback"`
		ComfortRating  int    `json:"comfort_rating"`
		WouldRecommend *bool  `json:"would_recommend"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidTrueToSize(req.TrueToSize) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid true_to_size value"})
		return
	}
	if !models.ValidWidthFeedback(req.WidthFeedback) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid width_feedback value"})
		return
	}
	if req.ComfortRating == 0 {
		req.ComfortRating = 5
	}
	if req.ComfortRating < 1 || req.ComfortRating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comfort rating must be between 1 and 5"})
		return
	}
	wouldRecommend := true
	if req.WouldRecommend != nil {
		wouldRecommend = *req.WouldRecommend
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

	reviewID := uuid.New()
	_, err = database.Database.Exec(`
		INSERT INTO reviews (id, user_id, product_id, rating, comment,
			true_to_size, width_feedback, comfort_rating, would_recommend)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		reviewID, userID, productID, req.Rating, req.Comment,
		req.TrueToSize, req.WidthFeedback, req.ComfortRating, wouldRecommend)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	// Keep the denormalized product rating in step
	_, err = database.Database.Exec(`
		UPDATE products SET rating = (
			SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = $1
		) WHERE id = $1`, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product rating"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Review submitted",
		"review_id": reviewID,
	})
}
