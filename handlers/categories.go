package handlers

import (
	"net/http"

	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"

	"github.com/gin-gonic/gin"
)

// GetCategories lists all categories with their product counts.
func GetCategories(c *gin.Context) {
	rows, err := database.Database.Query(`
		SELECT c.id, c.name, c.slug, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.slug
		ORDER BY c.name`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	categories := []gin.H{}
	for rows.Next() {
		var cat models.Category
		var productCount int
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &productCount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read categories"})
			return
		}
		categories = append(categories, gin.H{
			"id":            cat.ID,
			"name":          cat.Name,
			"slug":          cat.Slug,
			"product_count": productCount,
		})
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
