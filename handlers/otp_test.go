package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVerifyOTPBurnsCodeOnlyAfterUserProvisioning(t *testing.T) {
	mock := newMockDatabase(t)

	otpID := uuid.New()
	userID := uuid.New()
	now := time.Now()

	// Expectations are ordered: the user lookup must come before the
	// code is marked verified
	mock.ExpectQuery(`SELECT id, email, code, is_verified, created_at, expires_at`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "code", "is_verified", "created_at", "expires_at"}).
			AddRow(otpID.String(), "shopper@example.com", "123456", false, now, now.Add(5*time.Minute)))
	mock.ExpectQuery(`SELECT id FROM users WHERE email`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))
	mock.ExpectExec(`UPDATE email_otps SET is_verified = TRUE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := newTestContext(t, http.MethodPost, "/auth/verify-otp",
		`{"email":"shopper@example.com","otp":"123456"}`)
	VerifyOTP(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOTPLeavesCodeReusableWhenProvisioningFails(t *testing.T) {
	mock := newMockDatabase(t)

	otpID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, email, code, is_verified, created_at, expires_at`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "code", "is_verified", "created_at", "expires_at"}).
			AddRow(otpID.String(), "new@example.com", "654321", false, now, now.Add(5*time.Minute)))
	mock.ExpectQuery(`SELECT id FROM users WHERE email`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("connection reset"))
	// No UPDATE email_otps expected: the code must stay redeemable

	c, w := newTestContext(t, http.MethodPost, "/auth/verify-otp",
		`{"email":"new@example.com","otp":"654321"}`)
	VerifyOTP(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyOTPRejectsUsedCode(t *testing.T) {
	mock := newMockDatabase(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, email, code, is_verified, created_at, expires_at`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "code", "is_verified", "created_at", "expires_at"}).
			AddRow(uuid.New().String(), "shopper@example.com", "123456", true, now, now.Add(5*time.Minute)))

	c, w := newTestContext(t, http.MethodPost, "/auth/verify-otp",
		`{"email":"shopper@example.com","otp":"123456"}`)
	VerifyOTP(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expired or already been used")
	assert.NoError(t, mock.ExpectationsWereMet())
}
