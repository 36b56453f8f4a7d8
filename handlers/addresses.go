package handlers

import (
	"net/http"

	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func listAddresses(userID uuid.UUID) ([]models.Address, error) {
	rows, err := database.Database.Query(`
		SELECT id, user_id, name, phone, address_line1, address_line2,
		       city, state, zip_code, is_default, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.Phone, &a.AddressLine1, &a.AddressLine2,
			&a.City, &a.State, &a.ZipCode, &a.IsDefault, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

// GetAddresses lists the user's saved addresses, default first.
func GetAddresses(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	addresses, err := listAddresses(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses, "count": len(addresses)})
}

// CreateAddress saves an address. Marking it default clears the flag
// on every other address in the same transaction.
func CreateAddress(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Name         string `json:"name" binding:"required"`
		Phone        string `json:"phone" binding:"required"`
		AddressLine1 string `json:"address_line1" binding:"required"`
		AddressLine2 string `json:"address_line2"`
		City         string `json:"city" binding:"required"`
		State        string `json:"state" binding:"required"`
		ZipCode      string `json:"zip_code" binding:"required"`
		IsDefault    bool   `json:"is_default"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := database.Database.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	if req.IsDefault {
		if _, err := tx.Exec(`UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update addresses"})
			return
		}
	}

	addressID := uuid.New()
	_, err = tx.Exec(`
		INSERT INTO addresses (id, user_id, name, phone, address_line1, address_line2,
			city, state, zip_code, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		addressID, userID, req.Name, req.Phone, req.AddressLine1, req.AddressLine2,
		req.City, req.State, req.ZipCode, req.IsDefault)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Address saved",
		"address_id": addressID,
	})
}

// DeleteAddress removes one of the user's addresses.
func DeleteAddress(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
		return
	}

	result, err := database.Database.Exec(`
		DELETE FROM addresses WHERE id = $1 AND user_id = $2`, addressID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Address deleted"})
}
