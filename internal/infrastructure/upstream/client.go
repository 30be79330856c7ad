// Package upstream is the REST client for the shop backend that owns
// products, customers, sales and invoice numbering.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/config"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
	"golang.org/x/oauth2"
)

const maxResponseBytes = 10 << 20

type tokenKey struct{}

// WithToken attaches the operator's bearer token to ctx so backend calls
// are made on the operator's behalf.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token set by WithToken.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client calls the shop backend. Requests are never retried.
type Client struct {
	baseURL      string
	timeout      time.Duration
	serviceToken string
	base         *http.Client
	maxBody      int64
}

// NewClient creates a backend client. base may be nil.
func NewClient(cfg *config.UpstreamConfig, base *http.Client) *Client {
	if base == nil {
		base = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		timeout:      timeout,
		serviceToken: cfg.ServiceToken,
		base:         base,
		maxBody:      maxResponseBytes,
	}
}

// httpClient returns a client that authenticates with the operator's token,
// falling back to the service token.
func (c *Client) httpClient(ctx context.Context) *http.Client {
	token := TokenFromContext(ctx)
	if token == "" {
		token = c.serviceToken
	}
	if token == "" {
		return &http.Client{Transport: c.base.Transport, Timeout: c.timeout}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	hc.Timeout = c.timeout
	return hc
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient(ctx).Do(req)
	if err != nil {
		log.Printf("Upstream %s %s failed: %v", method, path, err)
		return nil, apperror.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		log.Printf("Upstream %s %s: failed to read response: %v", method, path, err)
		return nil, apperror.ErrUpstreamUnavailable
	}
	if int64(len(data)) > c.maxBody {
		log.Printf("Upstream %s %s: response exceeds %d bytes", method, path, c.maxBody)
		return nil, apperror.ErrUpstreamResponse
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, mapError(method, path, resp.StatusCode, data)
	}
	return data, nil
}

// mapError turns a backend error response into an AppError. Client errors
// keep the backend's status and message; server errors become 502.
func mapError(method, path string, status int, body []byte) error {
	message := errorMessage(body)
	log.Printf("Upstream %s %s returned %d: %s", method, path, status, message)

	switch {
	case status >= http.StatusInternalServerError:
		return apperror.ErrUpstreamUnavailable
	case status == http.StatusUnauthorized:
		if message == "" {
			return apperror.ErrUnauthorized
		}
		return apperror.NewAppError(http.StatusUnauthorized, message)
	case status == http.StatusNotFound && message == "":
		return apperror.ErrNotFound
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return apperror.NewAppError(status, message)
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// dig returns the first non-null value found at one of the dotted paths.
// An empty path selects the whole document.
func dig(data []byte, paths ...string) json.RawMessage {
	for _, path := range paths {
		cur := json.RawMessage(data)
		found := true
		if path != "" {
			for _, key := range strings.Split(path, ".") {
				var obj map[string]json.RawMessage
				if err := json.Unmarshal(cur, &obj); err != nil {
					found = false
					break
				}
				next, ok := obj[key]
				if !ok {
					found = false
					break
				}
				cur = next
			}
		}
		if found && !isNull(cur) {
			return cur
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	return len(s) == 0 || bytes.Equal(s, []byte("null"))
}
