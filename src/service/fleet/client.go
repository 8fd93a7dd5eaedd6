package fleet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"sustainabot/src/config"
	"sustainabot/src/model"
	"sustainabot/src/util"
)

const (
	findingsPath = "/fleet/v1/findings"

	// headerIdempotencyKey lets the service drop a retried append it already stored
	headerIdempotencyKey = "Idempotency-Key"
)

// Client appends findings to a remote shared context service
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      config.RetryConfig

	mu    sync.Mutex
	runID string
	seq   int
}

// NewClient creates a new shared context client
func NewClient(cfg config.FleetConfig) *Client {
	return &Client{
		baseURL:    cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retry:      cfg.Retry,
	}
}

// BeginBatch tags subsequent requests with runID and restarts the sequence
func (c *Client) BeginBatch(runID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runID = runID
	c.seq = 0
}

// AddFinding posts one finding, retrying on the configured status codes
func (c *Client) AddFinding(ctx context.Context, f model.Finding) error {
	c.mu.Lock()
	req := AddFindingRequest{RunID: c.runID, Finding: f}
	key := c.runID + "/" + strconv.Itoa(c.seq)
	c.seq++
	c.mu.Unlock()

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling finding: %w", err)
	}

	var resp AddFindingResponse
	for attempt := 0; ; attempt++ {
		err = c.send(ctx, body, key, &resp)
		if err == nil || attempt >= c.retry.MaxAttempts || !c.shouldRetry(err) {
			break
		}

		delay := c.calculateBackoff(attempt + 1)
		util.Warn("Shared context rejected %s (%v), retry %d/%d in %v", f.ID, err, attempt+1, c.retry.MaxAttempts, delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return err
	}

	util.Debug("Shared context accepted finding %s", f.ID)
	return nil
}

func (c *Client) send(ctx context.Context, body []byte, key string, result *AddFindingResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+findingsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerIdempotencyKey, key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	case resp.StatusCode == http.StatusNoContent:
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// calculateBackoff returns InitialDelay * BackoffFactor^(attempt-1), capped
// at MaxDelay
func (c *Client) calculateBackoff(attempt int) time.Duration {
	delay := float64(c.retry.InitialDelay)
	for i := 1; i < attempt; i++ {
		delay *= c.retry.BackoffFactor
	}
	if c.retry.MaxDelay > 0 && delay > float64(c.retry.MaxDelay) {
		return c.retry.MaxDelay
	}
	return time.Duration(delay)
}

func (c *Client) shouldRetry(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && slices.Contains(c.retry.RetryOnStatus, apiErr.StatusCode)
}

// APIError is a non-2xx response from the shared context service
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shared context error (status %d): %s", e.StatusCode, e.Body)
}
