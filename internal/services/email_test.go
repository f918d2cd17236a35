package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailSend_Success(t *testing.T) {
	var calls int
	var got emailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewEmailServiceWithBaseURL("re_test", "orders@example.com", srv.URL)
	err := svc.Send(context.Background(), "jo@example.com", "Order #1 confirmed", "<p>hi</p>")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "orders@example.com", got.From)
	assert.Equal(t, []string{"jo@example.com"}, got.To)
	assert.Equal(t, "Order #1 confirmed", got.Subject)
}

func TestEmailSend_RetriesOnceThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewEmailServiceWithBaseURL("re_test", "orders@example.com", srv.URL)
	err := svc.Send(context.Background(), "jo@example.com", "subject", "body")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestEmailSend_GivesUpAfterRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewEmailServiceWithBaseURL("re_test", "orders@example.com", srv.URL)
	err := svc.Send(context.Background(), "jo@example.com", "subject", "body")
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestEmailSend_NotConfigured(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	svc := NewEmailServiceWithBaseURL("", "orders@example.com", srv.URL)
	err := svc.Send(context.Background(), "jo@example.com", "subject", "body")
	require.Error(t, err)
	assert.Equal(t, 0, calls)
}
