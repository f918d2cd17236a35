package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atelierhub/atelier-backend/internal/oauth"
	"github.com/atelierhub/atelier-backend/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider is a fake OAuth provider that records how many calls it
// receives.
func countingProvider(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func exchangeHandler(providerURL string) *Handler {
	return &Handler{
		OAuth:  oauth.NewClient("id", "secret", "http://localhost/cb", providerURL, providerURL),
		Tokens: token.NewManager("test-secret"),
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/exchange-code", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestExchangeCode_MissingState(t *testing.T) {
	srv, calls := countingProvider(t, func(w http.ResponseWriter, r *http.Request) {})
	h := exchangeHandler(srv.URL)

	rec := postJSON(t, h.ExchangeCode, `{"code":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Code and state are required"}`, rec.Body.String())
	assert.Equal(t, 0, *calls, "validation failure must not reach the provider")
}

func TestExchangeCode_MissingCode(t *testing.T) {
	srv, calls := countingProvider(t, func(w http.ResponseWriter, r *http.Request) {})
	h := exchangeHandler(srv.URL)

	rec := postJSON(t, h.ExchangeCode, `{"state":"xyz"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Code and state are required"}`, rec.Body.String())
	assert.Equal(t, 0, *calls)
}

func TestExchangeCode_InvalidBody(t *testing.T) {
	srv, calls := countingProvider(t, func(w http.ResponseWriter, r *http.Request) {})
	h := exchangeHandler(srv.URL)

	rec := postJSON(t, h.ExchangeCode, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, *calls)
}

func TestExchangeCode_ProviderRejection(t *testing.T) {
	srv, _ := countingProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "Bad authorization code.",
		})
	})
	h := exchangeHandler(srv.URL)

	rec := postJSON(t, h.ExchangeCode, `{"code":"bad","state":"xyz"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bad authorization code.", body["error"])
}

func TestExchangeCode_EmptyTokenResponse(t *testing.T) {
	srv, _ := countingProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "Bearer"})
	})
	h := exchangeHandler(srv.URL)

	rec := postJSON(t, h.ExchangeCode, `{"code":"abc","state":"xyz"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExchangeCode_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	h := exchangeHandler(srv.URL)

	rec := postJSON(t, h.ExchangeCode, `{"code":"abc","state":"xyz"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
