package sessions

import (
	"encoding/json"
	"strings"
)

// LegacyCart is the dictionary guest-cart encoding the old frontend
// stored in the session:
//
//	{ "<productID>_<size>_<color>": {"product_id": ..., "quantity": ..., "size": ..., "color": ...} }
//
// with an even older fallback of { "<productID>": <quantity> }. Both
// encodings must decode.
type LegacyCart map[string]LegacyCartEntry

type LegacyCartEntry struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (c *LegacyCart) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(LegacyCart, len(raw))
	for key, val := range raw {
		var entry LegacyCartEntry
		if err := json.Unmarshal(val, &entry); err == nil {
			if entry.ProductID == "" {
				entry.ProductID = productIDFromKey(key)
			}
			out[key] = entry
			continue
		}

		// Legacy encoding: the value is a bare quantity and the key is
		// the product id, no size or color.
		var qty int
		if err := json.Unmarshal(val, &qty); err != nil {
			return err
		}
		out[key] = LegacyCartEntry{ProductID: key, Quantity: qty}
	}

	*c = out
	return nil
}

// productIDFromKey recovers the product id from a "<id>_<size>_<color>"
// key. Product ids are UUIDs and contain no underscores.
func productIDFromKey(key string) string {
	if i := strings.Index(key, "_"); i >= 0 {
		return key[:i]
	}
	return key
}
