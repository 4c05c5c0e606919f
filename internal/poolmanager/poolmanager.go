// Package poolmanager is the synchronous HTTP client to the external
// pool-manager service (§1 scope: "specified only at their message
// contracts"; the lookup call itself is a plain synchronous REST call,
// not a queued message). It is the precondition check every revision
// start/restart runs first (§4.3 precondition 2).
package poolmanager

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bondifuzz/api-gateway/internal/domain/pool"
)

// ServerError is the typed external-service failure §7 calls for: the
// handler forwards {status_code, error_code, message} to the client
// verbatim as an opaque passthrough rather than translating it.
type ServerError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("poolmanager: %d %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

// Client calls the pool-manager's REST API over plain net/http: the
// gateway's pool-manager dependency is four narrow calls (get, list, create,
// delete), not a full SDK surface, so a small typed wrapper is grounded more
// plausibly than pulling a generic REST client library.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a Client with the given request timeout.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, http: &http.Client{Timeout: timeout}}
}

// GetPool looks up a pool by id, returning *ServerError on any non-2xx
// response from the remote service.
func (c *Client) GetPool(ctx context.Context, poolID string) (*pool.Pool, error) {
	url := fmt.Sprintf("%s/api/v1/pools/%s", c.baseURL, poolID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("poolmanager: build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poolmanager: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var se ServerError
		_ = json.NewDecoder(resp.Body).Decode(&se)
		se.StatusCode = resp.StatusCode

		return nil, &se
	}

	var p pool.Pool
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("poolmanager: decode: %w", err)
	}

	return &p, nil
}

// DeletePool asks the pool-manager to tear down a pool, used by the
// admin pool-deletion endpoint before the PoolDeleted reconciliation
// message arrives asynchronously (§4.5).
func (c *Client) DeletePool(ctx context.Context, poolID string) error {
	url := fmt.Sprintf("%s/api/v1/pools/%s", c.baseURL, poolID)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("poolmanager: build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("poolmanager: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var se ServerError
		_ = json.NewDecoder(resp.Body).Decode(&se)
		se.StatusCode = resp.StatusCode

		return &se
	}

	return nil
}

// CreatePool registers a new pool with the pool-manager, used by the admin
// pool-creation endpoint.
func (c *Client) CreatePool(ctx context.Context, in pool.CreateInput) (*pool.Pool, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("poolmanager: encode: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/pools", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("poolmanager: build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poolmanager: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var se ServerError
		_ = json.NewDecoder(resp.Body).Decode(&se)
		se.StatusCode = resp.StatusCode

		return nil, &se
	}

	var p pool.Pool
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("poolmanager: decode: %w", err)
	}

	return &p, nil
}

// ListPools returns every pool owned by ownerID.
func (c *Client) ListPools(ctx context.Context, ownerID string) ([]pool.Pool, error) {
	url := fmt.Sprintf("%s/api/v1/pools?owner_id=%s", c.baseURL, ownerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("poolmanager: build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poolmanager: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var se ServerError
		_ = json.NewDecoder(resp.Body).Decode(&se)
		se.StatusCode = resp.StatusCode

		return nil, &se
	}

	var pools []pool.Pool
	if err := json.NewDecoder(resp.Body).Decode(&pools); err != nil {
		return nil, fmt.Errorf("poolmanager: decode: %w", err)
	}

	return pools, nil
}
