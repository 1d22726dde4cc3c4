// Package remote provides a memory.Backend implementation backed by the
// engram REST API.
//
// The client is stateless: every operation is one HTTP round-trip scoped to
// the configured namespace. Retries, timeouts beyond the transport default,
// and circuit-breaking are deliberately left to callers; the availability
// gate in pkg/availability covers the reachability concern.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/engram-memory/engram/pkg/memory"
)

const (
	// DefaultHost is the loopback address a locally run engram server
	// listens on.
	DefaultHost = "http://localhost:8000"

	// DefaultNamespace is the namespace used when none is configured.
	DefaultNamespace = "default"
)

// Config holds configuration for the remote backend client.
type Config struct {
	// Host is the engram server base URL (e.g., "http://localhost:8000").
	// Defaults to DefaultHost if empty.
	Host string

	// Namespace scopes every operation. Defaults to DefaultNamespace if empty.
	Namespace string

	// APIKey, when set, is attached as a bearer credential on every request.
	APIKey string
}

// Client implements memory.Backend over the engram REST API.
type Client struct {
	host       string
	namespace  string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a remote backend client.
func NewClient(c Config, logger *zap.Logger) *Client {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}

	namespace := c.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Client{
		host:       host,
		namespace:  namespace,
		apiKey:     c.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Namespace returns the namespace this client is scoped to.
func (c *Client) Namespace() string {
	return c.namespace
}

// Store persists a fact via POST /v1/memories.
func (c *Client) Store(ctx context.Context, content string, typ memory.Type, importance int, tags []string) (memory.StoreResult, error) {
	if tags == nil {
		tags = []string{}
	}

	body := storeRequest{
		Content:    content,
		Type:       string(typ),
		Importance: importance,
		Tags:       tags,
		Namespace:  c.namespace,
	}

	var result memory.StoreResult
	if err := c.postJSON(ctx, "/v1/memories", body, &result); err != nil {
		return memory.StoreResult{}, err
	}

	return result, nil
}

// Search queries the backend via POST /v1/search.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]memory.SearchHit, error) {
	body := searchRequest{
		Query:     query,
		Limit:     limit,
		Namespace: c.namespace,
	}

	var hits []memory.SearchHit
	if err := c.postJSON(ctx, "/v1/search", body, &hits); err != nil {
		return nil, err
	}

	return hits, nil
}

// Recall retrieves the highest-priority records via POST /v1/recall.
func (c *Client) Recall(ctx context.Context, limit, minImportance int) ([]memory.Memory, error) {
	body := recallRequest{
		Limit:         limit,
		MinImportance: minImportance,
		Namespace:     c.namespace,
	}

	var records []memory.Memory
	if err := c.postJSON(ctx, "/v1/recall", body, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// Delete removes a record via DELETE /v1/memories/{id}.
// A 404 from the backend means the record did not exist and is not an error.
func (c *Client) Delete(ctx context.Context, id int64) (bool, error) {
	endpoint := fmt.Sprintf("%s/v1/memories/%d", c.host, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("creating delete request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("sending delete request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, readBackendError(resp)
	}

	var result deleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decoding delete response: %w", err)
	}

	return result.Deleted, nil
}

// Stats reads the aggregate snapshot via GET /v1/stats.
func (c *Client) Stats(ctx context.Context) (memory.Stats, error) {
	endpoint := fmt.Sprintf("%s/v1/stats?namespace=%s", c.host, url.QueryEscape(c.namespace))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return memory.Stats{}, fmt.Errorf("creating stats request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return memory.Stats{}, fmt.Errorf("sending stats request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return memory.Stats{}, readBackendError(resp)
	}

	var stats memory.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return memory.Stats{}, fmt.Errorf("decoding stats response: %w", err)
	}

	return stats, nil
}

// Health probes GET /v1/health. Any transport or status failure is folded
// into false; this method never returns an error.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/v1/health", nil)
	if err != nil {
		return false
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("health probe failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// postJSON sends a JSON body to host+path and decodes the 2xx response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readBackendError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func readBackendError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	return &memory.BackendError{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
	}
}
