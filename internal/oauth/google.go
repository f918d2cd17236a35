package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenExchangeError covers every way the code-for-token exchange can fail:
// transport errors, non-2xx provider responses, and responses with no
// access_token. Message carries the provider's error_description when the
// provider gave one. Transport distinguishes network failures (the caller
// maps them to 500) from provider rejections (400).
type TokenExchangeError struct {
	Message   string
	Transport bool
}

func (e *TokenExchangeError) Error() string {
	return "token exchange failed: " + e.Message
}

// ProfileFetchError is returned when the userinfo endpoint responds with a
// non-success status.
type ProfileFetchError struct {
	StatusCode int
}

func (e *ProfileFetchError) Error() string {
	return fmt.Sprintf("profile fetch failed with status %d", e.StatusCode)
}

// TokenResponse is the provider's token payload. RefreshToken and IDToken
// may be absent.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// Profile is the userinfo payload as Google returns it. No local shape
// validation is applied.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	StatusMessage string `json:"status_message"`
}

// Client exchanges authorization codes for tokens and resolves user
// profiles against the Google OAuth endpoints.
type Client struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	TokenURL     string
	UserinfoURL  string

	httpClient *http.Client
}

func NewClient(clientID, clientSecret, redirectURI, tokenURL, userinfoURL string) *Client {
	return &Client{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  redirectURI,
		TokenURL:     tokenURL,
		UserinfoURL:  userinfoURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// ExchangeCode performs the form-encoded token-endpoint POST for an
// authorization code. No retry is performed; any failure is a
// *TokenExchangeError.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)
	form.Set("redirect_uri", c.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TokenExchangeError{Message: err.Error(), Transport: true}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TokenExchangeError{Message: err.Error(), Transport: true}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TokenExchangeError{Message: err.Error(), Transport: true}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TokenExchangeError{Message: providerErrorMessage(body)}
	}

	var tokens TokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, &TokenExchangeError{Message: "invalid token response"}
	}
	if tokens.AccessToken == "" {
		return nil, &TokenExchangeError{Message: providerErrorMessage(body)}
	}

	return &tokens, nil
}

// FetchProfile resolves the userinfo payload for an access token.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.UserinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProfileFetchError{StatusCode: resp.StatusCode}
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// providerErrorMessage pulls error_description (or error) out of a provider
// error body, falling back to a generic message.
func providerErrorMessage(body []byte) string {
	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.ErrorDescription != "" {
			return payload.ErrorDescription
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "provider did not return an access token"
}
