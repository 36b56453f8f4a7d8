package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartLineTotalPrice(t *testing.T) {
	line := CartLine{ProductPrice: 89.99}
	line.Quantity = 3

	assert.InDelta(t, 269.97, line.TotalPrice(), 0.001)
}

func TestCartTotal(t *testing.T) {
	runner := CartLine{ProductPrice: 120.00}
	runner.Quantity = 2
	sandal := CartLine{ProductPrice: 45.50}
	sandal.Quantity = 1

	total := CartTotal([]CartLine{runner, sandal})
	assert.InDelta(t, 285.50, total, 0.001)

	assert.Zero(t, CartTotal(nil))
}
