package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCart_MissingUserID(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	h.GetCart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"userId is required"}`, rec.Body.String())
}

func TestGetCart_InvalidUserID(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodGet, "/api/cart?userId=nope", nil)
	rec := httptest.NewRecorder()
	h.GetCart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveCart_MissingUserID(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"cartItems":[]}`))
	rec := httptest.NewRecorder()
	h.SaveCart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveCart_InvalidUserID(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"userId":"nope","cartItems":[]}`))
	rec := httptest.NewRecorder()
	h.SaveCart(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
