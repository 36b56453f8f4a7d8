package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/qanoot-iftekhar/mywebsite/config"
	"github.com/qanoot-iftekhar/mywebsite/database"
	"github.com/qanoot-iftekhar/mywebsite/sessions"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// newTestContext builds a gin context around a JSON request.
func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

// newMockDatabase swaps the global database handle for a sqlmock one
// with ordered expectations.
func newMockDatabase(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	database.Database = &database.DB{DB: db}
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	SessionStore = sessions.NewMemoryStore()
	return mock
}
