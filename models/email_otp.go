package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// OTPTTL is how long a code stays valid after creation.
const OTPTTL = 5 * time.Minute

// EmailOTP is a one-time login code. Single use is enforced through
// IsVerified, not deletion; requesting a new code deletes all
// outstanding rows for the email.
type EmailOTP struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	Code       string    `json:"-" db:"code"`
	IsVerified bool      `json:"is_verified" db:"is_verified"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
}

// IsValid reports whether the code can still be redeemed.
func (o EmailOTP) IsValid(now time.Time) bool {
	return !o.IsVerified && now.Before(o.ExpiresAt)
}

// GenerateOTPCode returns a random 6-digit numeric code.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (EmailOTP) TableName() string {
	return "email_otps"
}

func (EmailOTP) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS email_otps (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL,
		code CHAR(6) NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_email_otps_email ON email_otps(email);`
}
