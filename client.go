package xjdp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

var userAgent = "xjdp-go/" + Version

// Client defines the resource-level operations against the data service.
// A Catalog consumes this interface, so tests can substitute a double.
type Client interface {
	// Get fetches the JSON document at the given path, relative to the
	// configured base URL.
	Get(ctx context.Context, path string) (json.RawMessage, error)
	// Download fetches raw bytes from an absolute URL (satellite imagery).
	Download(ctx context.Context, url string) ([]byte, error)
	// Timeline returns the ordered timeline event records.
	Timeline(ctx context.Context) ([]json.RawMessage, error)
	// Global returns the global summary statistics keyed by metric name.
	Global(ctx context.Context) (map[string]json.RawMessage, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default data base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout overrides the request timeout on the client's session.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// httpClient implements Client using net/http. The embedded session pools
// connections and is reused for every call; it is safe for concurrent use.
type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the data service. Calls are not retried:
// one failed request is one reported failure, and retry policy is left to
// the caller.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: DefaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	body, err := c.fetch(ctx, c.baseURL+path, path, "application/json")
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &MalformedResponseError{Err: eris.Errorf("invalid JSON from %s", path)}
	}
	return json.RawMessage(body), nil
}

func (c *httpClient) Download(ctx context.Context, url string) ([]byte, error) {
	return c.fetch(ctx, url, url, "")
}

// fetch performs one GET and returns the body, converting transport
// failures and non-2xx statuses into a RequestError carrying name (the
// relative path, or the absolute URL for downloads).
func (c *httpClient) fetch(ctx context.Context, url, name, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "xjdp: create request for %s", name)
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Path: name, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Path: name, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Path: name, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
