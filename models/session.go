package models

import (
	"time"
)

// Session is server-side state for anonymous visitors, keyed by the
// session cookie. Data is an opaque JSON payload owned by the
// sessions package.
type Session struct {
	Key       string    `json:"key" db:"key"`
	Data      []byte    `json:"-" db:"data"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

func (Session) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS sessions (
		key VARCHAR(64) PRIMARY KEY,
		data JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}
