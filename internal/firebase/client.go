// Package firebase talks to a Firebase Realtime Database over its REST API.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/service"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4096

// Config configures a Client.
type Config struct {
	// HTTPClient overrides the transport. Credentials are ignored when set.
	HTTPClient      *http.Client
	Paths           map[service.Resource]string
	BaseURL         string
	AuthToken       string
	CredentialsFile string
	Timeout         time.Duration
}

// APIError is a non-2xx response from the database.
type APIError struct {
	Method     string
	Path       string
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("firebase %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client implements service.RemoteStore against the RTDB REST API.
type Client struct {
	httpClient *http.Client
	paths      map[service.Resource]string
	baseURL    string
	authToken  string
}

var _ service.RemoteStore = (*Client)(nil)

// NewClient creates a REST client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("%w: firebase base URL", common.ErrMissingConfig)
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("%w: firebase base URL: %v", common.ErrInvalidConfig, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		if cfg.CredentialsFile != "" {
			authed, err := newAuthenticatedClient(ctx, cfg.CredentialsFile)
			if err != nil {
				return nil, err
			}
			httpClient = authed
		} else {
			httpClient = &http.Client{}
		}
		httpClient.Timeout = timeout
	}

	paths := make(map[service.Resource]string, 4)
	for _, r := range []service.Resource{
		service.ResourceClassConfig,
		service.ResourceProducts,
		service.ResourceIgnore,
		service.ResourceClassification,
	} {
		paths[r] = string(r)
		if p, ok := cfg.Paths[r]; ok && strings.Trim(p, "/") != "" {
			paths[r] = strings.Trim(p, "/")
		}
	}

	return &Client{
		httpClient: httpClient,
		paths:      paths,
		baseURL:    base,
		authToken:  cfg.AuthToken,
	}, nil
}

// ClassConfig fetches the classification config document.
func (c *Client) ClassConfig(ctx context.Context) ([]service.Record, error) {
	return c.getRecords(ctx, service.ResourceClassConfig)
}

// Products fetches the product collection.
func (c *Client) Products(ctx context.Context) ([]service.Record, error) {
	return c.getRecords(ctx, service.ResourceProducts)
}

// MarkIgnored merges {code: true} into the ignore list.
func (c *Client) MarkIgnored(ctx context.Context, code string) error {
	return c.patch(ctx, service.ResourceIgnore, map[string]any{code: true})
}

// SetClassification merges {code: classification} into class_prod.
func (c *Client) SetClassification(ctx context.Context, code, classification string) error {
	return c.patch(ctx, service.ResourceClassification, map[string]any{code: classification})
}

func (c *Client) getRecords(ctx context.Context, resource service.Resource) ([]service.Record, error) {
	body, err := c.do(ctx, http.MethodGet, resource, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrLoadFailed, resource, err)
	}

	records, err := service.DecodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrLoadFailed, resource, err)
	}

	slog.Debug("Fetched document", "resource", resource, "records", len(records))
	return records, nil
}

func (c *Client) patch(ctx context.Context, resource service.Resource, payload map[string]any) error {
	for key := range payload {
		if err := validateKey(key); err != nil {
			return fmt.Errorf("%w: %s: %w", common.ErrWriteFailed, resource, err)
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to encode payload: %w", common.ErrWriteFailed, resource, err)
	}

	if _, err := c.do(ctx, http.MethodPatch, resource, data); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrWriteFailed, resource, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method string, resource service.Resource, payload []byte) ([]byte, error) {
	endpoint := c.endpoint(resource)

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("Store request",
		"method", method,
		"resource", resource,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &APIError{
			Method:     method,
			Path:       c.paths[resource],
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return body, nil
}

func (c *Client) endpoint(resource service.Resource) string {
	endpoint := c.baseURL + "/" + c.paths[resource] + ".json"
	if c.authToken != "" {
		endpoint += "?auth=" + url.QueryEscape(c.authToken)
	}
	return endpoint
}

// validateKey rejects keys RTDB refuses to store.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if strings.ContainsAny(key, ".$#[]/") {
		return fmt.Errorf("key %q contains a character forbidden by the database", key)
	}
	return nil
}
