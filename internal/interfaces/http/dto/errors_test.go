package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInvalidQuantity, http.StatusBadRequest},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeEmptyCart, http.StatusUnprocessableEntity},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeInsufficientStock, NormalizeErrorCode("INSUFFICIENT_STOCK"))
	assert.Equal(t, ErrCodeEmptyCart, NormalizeErrorCode("EMPTY_CART"))
	assert.Equal(t, ErrCodeDuplicateRequest, NormalizeErrorCode("DUPLICATE_REQUEST"))
	assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_PRICE"))
	assert.Equal(t, "ERR_ALREADY_NORMALIZED", NormalizeErrorCode("ERR_ALREADY_NORMALIZED"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 7, 1, 3)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(7), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "product not found", "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
