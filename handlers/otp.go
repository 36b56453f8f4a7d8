package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"
	"github.com/qanoot-iftekhar/mywebsite/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestOTP issues a fresh login code for an email. Any outstanding
// codes for that email are invalidated by deletion first.
func RequestOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	code, err := models.GenerateOTPCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
		return
	}

	if _, err := database.Database.Exec(`DELETE FROM email_otps WHERE email = $1`, email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	now := time.Now()
	_, err = database.Database.Exec(`
		INSERT INTO email_otps (id, email, code, is_verified, created_at, expires_at)
		VALUES ($1, $2, $3, FALSE, $4, $5)`,
		uuid.New(), email, code, now, now.Add(models.OTPTTL))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create OTP"})
		return
	}

	// Delivery failure surfaces to the caller; no retry
	if err := services.SendOTPEmail(email, code); err != nil {
		log.Printf("OTP email send error for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent to your email",
	})
}

// VerifyOTP redeems a code and logs the user in, creating the account
// on first login. Codes are single-use: redemption sets is_verified.
func VerifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.OTP)

	// Only the most recent matching row counts
	var otp models.EmailOTP
	err := database.Database.QueryRow(`
		SELECT id, email, code, is_verified, created_at, expires_at
		FROM email_otps
		WHERE email = $1 AND code = $2
		ORDER BY created_at DESC LIMIT 1`, email, code).Scan(
		&otp.ID, &otp.Email, &otp.Code, &otp.IsVerified, &otp.CreatedAt, &otp.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !otp.IsValid(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP has expired or already been used"})
		return
	}

	// Get or create the user bound to this email. First-time logins get
	// no password hash, so password login stays unusable.
	var userID uuid.UUID
	err = database.Database.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if err == sql.ErrNoRows {
		userID = uuid.New()
		firstName := email
		if i := strings.Index(email, "@"); i > 0 {
			firstName = email[:i]
		}
		_, err = database.Database.Exec(`
			INSERT INTO users (id, email, password_hash, first_name, is_active, created_at)
			VALUES ($1, $2, NULL, $3, TRUE, $4)`, userID, email, firstName, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// Burn the code only once the account is in place, so a failed
	// provisioning does not consume it
	if _, err := database.Database.Exec(`UPDATE email_otps SET is_verified = TRUE WHERE id = $1`, otp.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	mergeGuestCart(c, userID)

	token, err := generateJWTToken(userID.String(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Login successful",
		"token":    token,
		"redirect": "/",
	})
}
