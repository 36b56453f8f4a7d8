package sessions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, found, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	payload := Payload{OrderIDs: []string{"order-1"}}
	require.NoError(t, store.Set("key", payload))

	got, found, err := store.Get("key")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, payload, got)

	require.NoError(t, store.Delete("key"))
	_, found, err = store.Get("key")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPayloadHasOrder(t *testing.T) {
	p := Payload{OrderIDs: []string{"a", "b"}}

	assert.True(t, p.HasOrder("a"))
	assert.True(t, p.HasOrder("b"))
	assert.False(t, p.HasOrder("c"))
	assert.False(t, Payload{}.HasOrder("a"))
}
