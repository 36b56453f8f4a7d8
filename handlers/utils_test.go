package handlers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	userPattern := regexp.MustCompile(`^ORD-[A-Z0-9]{8}$`)
	guestPattern := regexp.MustCompile(`^ORD-GUEST-[A-Z0-9]{8}$`)

	for i := 0; i < 20; i++ {
		assert.Regexp(t, userPattern, generateOrderNumber("ORD"))
		assert.Regexp(t, guestPattern, generateOrderNumber("ORD-GUEST"))
	}
}

func TestGenerateOrderNumberVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[generateOrderNumber("ORD")] = true
	}
	assert.Greater(t, len(seen), 90)
}
