package scheduler

import (
	"io"
	"log"
	"net/http"
	"time"
)

const (
	// CancelExpiredInterval is how often the expiry sweep runs.
	CancelExpiredInterval = 15 * time.Minute
	// CancelExpiredTimeout bounds each call; a timeout is logged and the
	// next tick proceeds as normal.
	CancelExpiredTimeout = 10 * time.Second
)

// StartOrderExpiry starts a background goroutine that periodically calls
// the service's own cancel-expired-orders endpoint. Every failure mode
// (timeout, non-2xx, network error) is logged and skipped so the schedule
// is never interrupted.
func StartOrderExpiry(baseURL, cronSecret string) {
	client := &http.Client{Timeout: CancelExpiredTimeout}

	go func() {
		// First sweep waits for the first tick; the HTTP listener is not
		// up yet when this starts.
		ticker := time.NewTicker(CancelExpiredInterval)
		defer ticker.Stop()

		for range ticker.C {
			runCancelExpired(client, baseURL, cronSecret)
		}
	}()
}

func runCancelExpired(client *http.Client, baseURL, cronSecret string) {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/orders/cancel-expired", nil)
	if err != nil {
		log.Printf("order expiry: failed to build request: %v", err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+cronSecret)

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("order expiry: call skipped: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("order expiry: endpoint returned %d: %s", resp.StatusCode, string(body))
	}
}
