package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(tokenURL, userinfoURL string) *Client {
	return NewClient("client-id", "client-secret", "http://localhost:3000/auth/callback", tokenURL, userinfoURL)
}

func TestExchangeCode_Success(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"grant_type":   r.PostFormValue("grant_type"),
			"code":         r.PostFormValue("code"),
			"client_id":    r.PostFormValue("client_id"),
			"redirect_uri": r.PostFormValue("redirect_uri"),
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "at-123",
			"refresh_token": "rt-456",
			"id_token":      "idt-789",
		})
	}))
	defer srv.Close()

	tokens, err := newTestClient(srv.URL, "").ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)

	assert.Equal(t, "at-123", tokens.AccessToken)
	assert.Equal(t, "rt-456", tokens.RefreshToken)
	assert.Equal(t, "idt-789", tokens.IDToken)
	assert.Equal(t, "authorization_code", gotForm["grant_type"])
	assert.Equal(t, "the-code", gotForm["code"])
	assert.Equal(t, "client-id", gotForm["client_id"])
	assert.Equal(t, "http://localhost:3000/auth/callback", gotForm["redirect_uri"])
}

func TestExchangeCode_OptionalTokensAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "at-only"})
	}))
	defer srv.Close()

	tokens, err := newTestClient(srv.URL, "").ExchangeCode(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "at-only", tokens.AccessToken)
	assert.Empty(t, tokens.RefreshToken)
	assert.Empty(t, tokens.IDToken)
}

func TestExchangeCode_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "Code was already redeemed.",
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").ExchangeCode(context.Background(), "stale-code")
	require.Error(t, err)

	exchangeErr, ok := err.(*TokenExchangeError)
	require.True(t, ok)
	assert.False(t, exchangeErr.Transport)
	assert.Equal(t, "Code was already redeemed.", exchangeErr.Message)
}

func TestExchangeCode_MissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "Bearer"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").ExchangeCode(context.Background(), "code")
	require.Error(t, err)

	exchangeErr, ok := err.(*TokenExchangeError)
	require.True(t, ok)
	assert.False(t, exchangeErr.Transport)
	assert.Equal(t, "provider did not return an access token", exchangeErr.Message)
}

func TestExchangeCode_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL, "").ExchangeCode(context.Background(), "code")
	require.Error(t, err)

	exchangeErr, ok := err.(*TokenExchangeError)
	require.True(t, ok)
	assert.True(t, exchangeErr.Transport)
}

func TestFetchProfile_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{
			"id":      "google-user-1",
			"email":   "jo@example.com",
			"name":    "Jo",
			"picture": "https://img.example.com/jo.png",
		})
	}))
	defer srv.Close()

	profile, err := newTestClient("", srv.URL).FetchProfile(context.Background(), "at-123")
	require.NoError(t, err)

	assert.Equal(t, "google-user-1", profile.ID)
	assert.Equal(t, "jo@example.com", profile.Email)
	assert.Equal(t, "Jo", profile.Name)
}

func TestFetchProfile_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient("", srv.URL).FetchProfile(context.Background(), "bad-token")
	require.Error(t, err)

	fetchErr, ok := err.(*ProfileFetchError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
}
