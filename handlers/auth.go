package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/qanoot-iftekhar/mywebsite/config"
	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/models"
	"github.com/qanoot-iftekhar/mywebsite/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookieName = "session_key"

// RegisterUser creates an account with email and password
func RegisterUser(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var exists bool
	err := database.Database.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userID := uuid.New()
	_, err = database.Database.Exec(`
		INSERT INTO users (id, email, password_hash, first_name, last_name, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)`,
		userID, email, string(hashedPassword), req.FirstName, req.LastName, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Welcome email is best-effort
	go func() {
		if err := services.SendWelcomeEmail(email, req.FirstName); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()

	mergeGuestCart(c, userID)

	token, err := generateJWTToken(userID.String(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":         userID,
			"email":      email,
			"first_name": req.FirstName,
			"last_name":  req.LastName,
		},
		"token":   token,
		"message": "Registration successful",
	})
}

// LoginUser authenticates with email and password
func LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := database.Database.QueryRow(`
		SELECT id, email, password_hash, first_name, last_name, role, is_active, created_at
		FROM users WHERE email = $1`, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
		&user.LastName, &user.Role, &user.IsActive, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is deactivated"})
		return
	}

	// OTP-provisioned accounts have no password
	if user.PasswordHash == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	mergeGuestCart(c, user.ID)

	token, err := generateJWTToken(user.ID.String(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
		},
		"token":   token,
		"message": "Login successful",
	})
}

// LogoutUser ends the session (token removal is client-side) and
// drops any guest session state.
func LogoutUser(c *gin.Context) {
	if key, err := c.Cookie(sessionCookieName); err == nil && key != "" {
		if err := SessionStore.Delete(key); err != nil {
			log.Printf("Failed to delete session %s: %v", key, err)
		}
		c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GetProfile returns the authenticated user's account
func GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	err := database.Database.QueryRow(`
		SELECT id, email, first_name, last_name, role, is_active, created_at
		FROM users WHERE id = $1`, userID).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.Role, &user.IsActive, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates names or changes the password
func UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`

		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FirstName != nil || req.LastName != nil {
		_, err := database.Database.Exec(`
			UPDATE users SET
				first_name = COALESCE($1, first_name),
				last_name = COALESCE($2, last_name)
			WHERE id = $3`, req.FirstName, req.LastName, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	if req.NewPassword != "" {
		if len(req.NewPassword) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
			return
		}

		var currentHash *string
		err := database.Database.QueryRow(`SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&currentHash)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		// Accounts provisioned via OTP set their first password here
		if currentHash != nil {
			if err := bcrypt.CompareHashAndPassword([]byte(*currentHash), []byte(req.CurrentPassword)); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
				return
			}
		}

		newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		if _, err := database.Database.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, string(newHash), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// parseToken validates a Bearer token and returns its claims.
func parseToken(authHeader string) (*Claims, bool) {
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return nil, false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(authHeader[7:], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

// AuthMiddleware requires a valid JWT and sets user_id in the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseToken(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the request identity for endpoints
// that serve both guests and users: a valid JWT sets user_id, anything
// else gets a guest session key (cookie created lazily).
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseToken(c.GetHeader("Authorization")); ok {
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Next()
			return
		}

		key, err := c.Cookie(sessionCookieName)
		if err != nil || key == "" {
			key = uuid.NewString()
			// 30 days, lax, not accessible to scripts
			c.SetCookie(sessionCookieName, key, 30*24*60*60, "/", "", false, true)
		}
		c.Set("session_key", key)
		c.Next()
	}
}

// AdminMiddleware requires users.role = 'admin'; runs after AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var role string
		err := database.Database.QueryRow(`SELECT role FROM users WHERE id = $1`, userID).Scan(&role)
		if err != nil || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// mergeGuestCart folds the request's guest cart into the user's cart.
// Quantities sum when the same (product, size, color) line exists on
// both sides.
func mergeGuestCart(c *gin.Context, userID uuid.UUID) {
	key, err := c.Cookie(sessionCookieName)
	if err != nil || key == "" {
		return
	}

	// Drain any legacy dictionary cart into rows first
	if err := importLegacySessionCart(key); err != nil {
		log.Printf("Failed to import legacy session cart %s: %v", key, err)
	}

	rows, err := database.Database.Query(`
		SELECT id, product_id, size, color, quantity
		FROM cart_items WHERE session_key = $1`, key)
	if err != nil {
		log.Printf("Failed to read guest cart %s: %v", key, err)
		return
	}
	defer rows.Close()

	type guestLine struct {
		id        uuid.UUID
		productID uuid.UUID
		size      string
		color     string
		quantity  int
	}
	var lines []guestLine
	for rows.Next() {
		var l guestLine
		if err := rows.Scan(&l.id, &l.productID, &l.size, &l.color, &l.quantity); err != nil {
			continue
		}
		lines = append(lines, l)
	}

	for _, l := range lines {
		result, err := database.Database.Exec(`
			UPDATE cart_items SET quantity = quantity + $1
			WHERE user_id = $2 AND product_id = $3 AND size = $4 AND color = $5`,
			l.quantity, userID, l.productID, l.size, l.color)
		if err != nil {
			log.Printf("Failed to merge cart line %s: %v", l.id, err)
			continue
		}

		affected, _ := result.RowsAffected()
		if affected > 0 {
			// Summed into an existing user line; drop the guest row
			database.Database.Exec(`DELETE FROM cart_items WHERE id = $1`, l.id)
			continue
		}

		// No collision: hand the row over to the user
		_, err = database.Database.Exec(`
			UPDATE cart_items SET user_id = $1, session_key = NULL WHERE id = $2`,
			userID, l.id)
		if err != nil {
			log.Printf("Failed to reassign cart line %s: %v", l.id, err)
		}
	}
}
