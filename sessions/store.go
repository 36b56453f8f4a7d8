// Package sessions holds server-side state for anonymous visitors.
// Guest cart lines live in the cart_items table keyed by session key;
// the session payload carries what cannot live there: the legacy
// dictionary cart written by the old frontend, and the ids of orders a
// guest placed (so order-success stays reachable without an account).
package sessions

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Payload is the decoded session body.
type Payload struct {
	// Cart is the legacy dictionary-encoded guest cart. New code never
	// writes it; it is drained into cart_items rows on first read.
	Cart LegacyCart `json:"cart,omitempty"`

	// OrderIDs are orders placed from this session while anonymous.
	OrderIDs []string `json:"order_ids,omitempty"`
}

// HasOrder reports whether the session placed the given order.
func (p Payload) HasOrder(orderID string) bool {
	for _, id := range p.OrderIDs {
		if id == orderID {
			return true
		}
	}
	return false
}

// Store is the session storage collaborator: an external key-value
// store addressed by session key.
type Store interface {
	// Get returns the payload for key and whether the session exists.
	Get(key string) (Payload, bool, error)
	Set(key string, p Payload) error
	Delete(key string) error
}

// PostgresStore keeps sessions in the sessions table.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Get(key string) (Payload, bool, error) {
	var data []byte
	err := s.DB.QueryRow(`SELECT data FROM sessions WHERE key = $1`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return Payload{}, false, nil
	}
	if err != nil {
		return Payload{}, false, fmt.Errorf("failed to fetch session: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, false, fmt.Errorf("failed to decode session %s: %w", key, err)
	}
	return p, true, nil
}

func (s *PostgresStore) Set(key string, p Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	_, err = s.DB.Exec(`
		INSERT INTO sessions (key, data) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET data = $2, updated_at = now()`, key, data)
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(key string) error {
	if _, err := s.DB.Exec(`DELETE FROM sessions WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
