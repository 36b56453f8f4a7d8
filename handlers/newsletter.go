package handlers

import (
	"net/http"
	"strings"

	"github.com/qanoot-iftekhar/mywebsite/database"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SubscribeNewsletter records an email for the mailing list.
func SubscribeNewsletter(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := database.Database.Exec(`
		INSERT INTO newsletter_subscriptions (id, email)
		VALUES ($1, $2)`, uuid.New(), email)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			c.JSON(http.StatusConflict, gin.H{"error": "Email is already subscribed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Subscribed to newsletter"})
}
