package sessions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyCartDecodesObjectEncoding(t *testing.T) {
	raw := `{
		"8f14e45f-ceea-4672-950c-0c52f9a3e2d5_42_Black": {
			"product_id": "8f14e45f-ceea-4672-950c-0c52f9a3e2d5",
			"quantity": 2,
			"size": "42",
			"color": "Black"
		}
	}`

	var cart LegacyCart
	require.NoError(t, json.Unmarshal([]byte(raw), &cart))
	require.Len(t, cart, 1)

	entry := cart["8f14e45f-ceea-4672-950c-0c52f9a3e2d5_42_Black"]
	assert.Equal(t, "8f14e45f-ceea-4672-950c-0c52f9a3e2d5", entry.ProductID)
	assert.Equal(t, 2, entry.Quantity)
	assert.Equal(t, "42", entry.Size)
	assert.Equal(t, "Black", entry.Color)
}

func TestLegacyCartDecodesBareQuantityEncoding(t *testing.T) {
	raw := `{"8f14e45f-ceea-4672-950c-0c52f9a3e2d5": 3}`

	var cart LegacyCart
	require.NoError(t, json.Unmarshal([]byte(raw), &cart))
	require.Len(t, cart, 1)

	entry := cart["8f14e45f-ceea-4672-950c-0c52f9a3e2d5"]
	assert.Equal(t, "8f14e45f-ceea-4672-950c-0c52f9a3e2d5", entry.ProductID)
	assert.Equal(t, 3, entry.Quantity)
	assert.Empty(t, entry.Size)
	assert.Empty(t, entry.Color)
}

func TestLegacyCartFillsProductIDFromKey(t *testing.T) {
	// Object value missing product_id; the key carries it
	raw := `{"8f14e45f-ceea-4672-950c-0c52f9a3e2d5_41_White": {"quantity": 1, "size": "41", "color": "White"}}`

	var cart LegacyCart
	require.NoError(t, json.Unmarshal([]byte(raw), &cart))

	entry := cart["8f14e45f-ceea-4672-950c-0c52f9a3e2d5_41_White"]
	assert.Equal(t, "8f14e45f-ceea-4672-950c-0c52f9a3e2d5", entry.ProductID)
}

func TestLegacyCartMixedEncodings(t *testing.T) {
	raw := `{
		"aaa-1": 4,
		"bbb-2_40_Red": {"product_id": "bbb-2", "quantity": 1, "size": "40", "color": "Red"}
	}`

	var cart LegacyCart
	require.NoError(t, json.Unmarshal([]byte(raw), &cart))
	require.Len(t, cart, 2)
	assert.Equal(t, 4, cart["aaa-1"].Quantity)
	assert.Equal(t, "Red", cart["bbb-2_40_Red"].Color)
}

func TestProductIDFromKey(t *testing.T) {
	assert.Equal(t, "abc", productIDFromKey("abc_42_Black"))
	assert.Equal(t, "abc", productIDFromKey("abc"))
}
