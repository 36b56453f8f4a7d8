package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateReviewRejectsUnknownFitValue(t *testing.T) {
	mock := newMockDatabase(t)
	productID := uuid.New()

	c, w := newTestContext(t, http.MethodPost, "/api/products/"+productID.String()+"/reviews",
		`{"rating":5,"comment":"great","true_to_size":"tiny"}`)
	c.Params = gin.Params{{Key: "id", Value: productID.String()}}
	c.Set("user_id", uuid.New().String())
	CreateReview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "true_to_size")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewRejectsUnknownWidthValue(t *testing.T) {
	mock := newMockDatabase(t)
	productID := uuid.New()

	c, w := newTestContext(t, http.MethodPost, "/api/products/"+productID.String()+"/reviews",
		`{"rating":4,"width_feedback":"regular"}`)
	c.Params = gin.Params{{Key: "id", Value: productID.String()}}
	c.Set("user_id", uuid.New().String())
	CreateReview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "width_feedback")
	assert.NoError(t, mock.ExpectationsWereMet())
}
