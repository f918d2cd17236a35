package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atelierhub/atelier-backend/internal/middleware"
	"github.com/atelierhub/atelier-backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// authedOrderRequest builds a POST /api/orders request carrying a valid
// session token and runs it through RequireAuth into CreateOrder.
func authedOrderRequest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	tokens := token.NewManager("test-secret")
	signed, err := tokens.Sign(primitive.NewObjectID().Hex(), "user")
	require.NoError(t, err)

	h := &Handler{Tokens: tokens}
	auth := middleware.NewAuth(tokens, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	auth.RequireAuth(http.HandlerFunc(h.CreateOrder)).ServeHTTP(rec, req)
	return rec
}

func TestCreateOrder_Unauthenticated(t *testing.T) {
	h := &Handler{Tokens: token.NewManager("test-secret")}
	auth := middleware.NewAuth(h.Tokens, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	auth.RequireAuth(http.HandlerFunc(h.CreateOrder)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestCreateOrder_NoItems(t *testing.T) {
	rec := authedOrderRequest(t, `{"items":[],"total":10,"customer":{"name":"Jo","email":"jo@example.com"},"paymentMethod":"card"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order items are required")
}

func TestCreateOrder_NonPositiveTotal(t *testing.T) {
	rec := authedOrderRequest(t, `{"items":[{"productId":1,"name":"Widget","quantity":1,"price":10}],"total":0,"customer":{"name":"Jo","email":"jo@example.com"},"paymentMethod":"card"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order total must be positive")
}

func TestCreateOrder_MissingCustomer(t *testing.T) {
	rec := authedOrderRequest(t, `{"items":[{"productId":1,"name":"Widget","quantity":1,"price":10}],"total":10,"customer":{},"paymentMethod":"card"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_MissingPaymentMethod(t *testing.T) {
	rec := authedOrderRequest(t, `{"items":[{"productId":1,"name":"Widget","quantity":1,"price":10}],"total":10,"customer":{"name":"Jo","email":"jo@example.com"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment method is required")
}
