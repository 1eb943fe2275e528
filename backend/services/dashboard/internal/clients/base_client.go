package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodyBytes bounds how much of an upstream response is buffered.
var maxBodyBytes int64 = 64 << 20

// ErrBodyTooLarge is returned instead of a truncated upstream body.
var ErrBodyTooLarge = errors.New("clients: response body exceeds limit")

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("clients: %s %s returned %d", e.Method, e.URL, e.Code)
}

// BaseClient provides simple GET/POST helpers.
type BaseClient struct {
	baseURL string
	client  HTTPDoer
}

// NewBaseClient builds client with base URL.
func NewBaseClient(baseURL string, client HTTPDoer) *BaseClient {
	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (c *BaseClient) buildURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		path = c.baseURL + path
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return path
}

// Do executes HTTP request and returns status/body.
func (c *BaseClient) Do(ctx context.Context, method, path string, query url.Values, body []byte, headers map[string]string) (int, []byte, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	respBody, err := readBody(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// GetJSON performs a GET and decodes a 2xx JSON body into out.
func (c *BaseClient) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	_, body, err := c.expectOK(ctx, http.MethodGet, path, query, nil, map[string]string{"Accept": "application/json"})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("clients: decode %s: %w", path, err)
	}
	return nil
}

// PostJSON encodes payload, posts it and decodes a 2xx JSON body into out.
func (c *BaseClient) PostJSON(ctx context.Context, path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("clients: encode %s: %w", path, err)
	}
	_, body, err := c.expectOK(ctx, http.MethodPost, path, nil, data, map[string]string{"Accept": "application/json"})
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("clients: decode %s: %w", path, err)
	}
	return nil
}

// GetRaw performs a GET and returns a 2xx body with its content type.
func (c *BaseClient) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path, query), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	body, err := readBody(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{Method: http.MethodGet, URL: req.URL.String(), Code: resp.StatusCode, Body: truncate(body)}
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *BaseClient) expectOK(ctx context.Context, method, path string, query url.Values, body []byte, headers map[string]string) (int, []byte, error) {
	status, respBody, err := c.Do(ctx, method, path, query, body, headers)
	if err != nil {
		return status, nil, err
	}
	if status < 200 || status > 299 {
		return status, nil, &StatusError{Method: method, URL: c.buildURL(path, query), Code: status, Body: truncate(respBody)}
	}
	return status, respBody, nil
}

func readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > maxBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, maxBodyBytes)
	}
	return body, nil
}

func truncate(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
