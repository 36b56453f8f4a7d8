package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/qanoot-iftekhar/mywebsite/config"
	"github.com/qanoot-iftekhar/mywebsite/sessions"

	"github.com/golang-jwt/jwt/v5"
)

// SessionStore is the guest session collaborator, set at startup.
var SessionStore sessions.Store

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// generateJWTToken issues an HS256 token with 15 days expiration
func generateJWTToken(userID, email string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

const orderNumberCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateOrderNumber builds "{prefix}-{8 random uppercase-alphanumeric
// chars}". Uniqueness is enforced by the order_number column; callers
// retry on conflict.
func generateOrderNumber(prefix string) string {
	suffix := make([]byte, 8)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderNumberCharset))))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(fmt.Sprintf("order number generation: %v", err))
		}
		suffix[i] = orderNumberCharset[n.Int64()]
	}
	return prefix + "-" + string(suffix)
}
