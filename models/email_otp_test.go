package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailOTPIsValid(t *testing.T) {
	now := time.Now()
	otp := EmailOTP{
		CreatedAt: now,
		ExpiresAt: now.Add(OTPTTL),
	}

	assert.True(t, otp.IsValid(now))
	assert.True(t, otp.IsValid(now.Add(OTPTTL-time.Second)))

	// Expired
	assert.False(t, otp.IsValid(now.Add(OTPTTL)))
	assert.False(t, otp.IsValid(now.Add(time.Hour)))

	// Already redeemed
	otp.IsVerified = true
	assert.False(t, otp.IsValid(now))
}

func TestGenerateOTPCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", code)
		}
		seen[code] = true
	}
	// 50 draws from a million values should not all collide
	assert.Greater(t, len(seen), 1)
}
