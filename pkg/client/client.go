package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/schedly/schedly/internal/config"
	"github.com/schedly/schedly/pkg/event"
	log "github.com/sirupsen/logrus"
)

// API is the typed surface of the event service.
type API interface {
	FetchAll(ctx context.Context) ([]event.Event, error)
	Fetch(ctx context.Context, id string) (event.Event, error)
	Create(ctx context.Context, payload event.Input) (event.Event, error)
	Update(ctx context.Context, id string, payload event.Input) (event.Event, error)
	Delete(ctx context.Context, id string) (event.Event, error)
	Check(ctx context.Context) error
}

// APIError is a response whose envelope carried a non-2xx outcome. The
// message is the envelope's human-readable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// envelope mirrors the server's uniform response shape.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client calls the REST surface. Every call is retried with a fixed delay and
// a fixed count, uniformly for success-critical and idempotent operations
// alike; the service has no dedup mechanism, so a lost create response may
// duplicate the record. That risk is accepted.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    uint64
	retryDelay time.Duration
}

func NewClient(baseURL string, cfg config.Client) *Client {
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		retries:    uint64(retries),
		retryDelay: cfg.RetryDelay,
	}
}

func (c *Client) FetchAll(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	if err := c.call(ctx, http.MethodGet, "/event/fetchAll", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) Fetch(ctx context.Context, id string) (event.Event, error) {
	var fetched event.Event
	if err := c.call(ctx, http.MethodGet, "/event/fetch/"+id, nil, &fetched); err != nil {
		return event.Event{}, err
	}
	return fetched, nil
}

func (c *Client) Create(ctx context.Context, payload event.Input) (event.Event, error) {
	var created event.Event
	if err := c.call(ctx, http.MethodPost, "/event/create", payload, &created); err != nil {
		return event.Event{}, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, id string, payload event.Input) (event.Event, error) {
	var updated event.Event
	if err := c.call(ctx, http.MethodPost, "/event/update/"+id, payload, &updated); err != nil {
		return event.Event{}, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) (event.Event, error) {
	var deleted event.Event
	if err := c.call(ctx, http.MethodDelete, "/event/delete/"+id, nil, &deleted); err != nil {
		return event.Event{}, err
	}
	return deleted, nil
}

func (c *Client) Check(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/check", nil, nil)
}

// call performs one request with the retry policy and unwraps the envelope
// into out (when out is non-nil and the envelope carries data).
func (c *Client) call(ctx context.Context, method, path string, payload any, out any) error {
	var requestBody []byte
	if payload != nil {
		var err error
		requestBody, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	operation := func() error {
		return c.doOnce(ctx, method, path, requestBody, out)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), c.retries),
		ctx,
	)
	return backoff.Retry(operation, policy)
}

func (c *Client) doOnce(ctx context.Context, method, path string, requestBody []byte, out any) error {
	var reader io.Reader
	if requestBody != nil {
		reader = bytes.NewReader(requestBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debugf("Request %s %s failed: %v", method, path, err)
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response envelope: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debugf("Request %s %s returned %d: %s", method, path, resp.StatusCode, env.Message)
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
