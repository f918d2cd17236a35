package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// EmailService sends transactional mail through a Resend-compatible HTTPS
// API. Failures are retried once; callers treat a final failure as
// non-fatal (an unsent confirmation never fails an order).
type EmailService struct {
	apiKey  string
	from    string
	baseURL string

	httpClient *http.Client
}

func NewEmailService(apiKey, from string) *EmailService {
	return &EmailService{
		apiKey:     apiKey,
		from:       from,
		baseURL:    "https://api.resend.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewEmailServiceWithBaseURL is used by tests to point at a fake API.
func NewEmailServiceWithBaseURL(apiKey, from, baseURL string) *EmailService {
	s := NewEmailService(apiKey, from)
	s.baseURL = baseURL
	return s
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one email, retrying a single time on any failure.
func (s *EmailService) Send(ctx context.Context, to, subject, html string) error {
	if s.apiKey == "" {
		return fmt.Errorf("email service not configured")
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying email to %s after error: %v", to, lastErr)
		}
		if lastErr = s.send(ctx, to, subject, html); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (s *EmailService) send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(emailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
