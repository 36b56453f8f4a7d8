package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAddToCartSumsQuantityForExistingLine(t *testing.T) {
	mock := newMockDatabase(t)
	productID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	// Existing (owner, product, size, color) line: increment, no insert
	mock.ExpectExec(`UPDATE cart_items SET quantity = quantity \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := newTestContext(t, http.MethodPost, "/add-to-cart/"+productID.String(),
		`{"quantity":2,"size":"42","color":"Black"}`)
	c.Params = gin.Params{{Key: "id", Value: productID.String()}}
	c.Set("user_id", uuid.New().String())
	AddToCart(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartInsertsNewLine(t *testing.T) {
	mock := newMockDatabase(t)
	productID := uuid.New()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`UPDATE cart_items SET quantity = quantity \+ \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO cart_items`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := newTestContext(t, http.MethodPost, "/add-to-cart/"+productID.String(),
		`{"quantity":1,"size":"41","color":"White"}`)
	c.Params = gin.Params{{Key: "id", Value: productID.String()}}
	c.Set("user_id", uuid.New().String())
	AddToCart(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemRejectsQuantityBelowOne(t *testing.T) {
	mock := newMockDatabase(t)
	// No statements expected: validation fails before any query

	c, w := newTestContext(t, http.MethodPatch, "/cart",
		`{"product_id":"`+uuid.New().String()+`","quantity":0,"size":"42","color":"Black"}`)
	c.Set("user_id", uuid.New().String())
	UpdateCartItem(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantity must be at least 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutWithEmptyCartCreatesNothing(t *testing.T) {
	mock := newMockDatabase(t)

	// Cart query returns no lines; no transaction, order or order_items
	// statements may follow
	mock.ExpectQuery(`SELECT ci\.id, ci\.user_id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "session_key", "product_id", "size", "color",
			"quantity", "created_at", "name", "price", "image_url", "category_name",
		}))

	c, w := newTestContext(t, http.MethodPost, "/checkout", `{
		"first_name": "Ada",
		"last_name": "Lovelace",
		"email": "ada@example.com",
		"phone": "5551234",
		"address": "1 Main St",
		"city": "Springfield",
		"state": "IL",
		"zip_code": "62701"
	}`)
	c.Set("user_id", uuid.New().String())
	Checkout(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Your cart is empty")
	assert.NoError(t, mock.ExpectationsWereMet())
}
