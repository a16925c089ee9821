// Package fetch is a small JSON-over-HTTP GET wrapper. Request parameters
// are supplied as nested structures and flattened into the query string, one
// parameter per leaf path; responses decode into the ordered nest model.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/calumari/nest"
)

const requestIDHeader = "X-Request-Id"

// Client issues HTTP requests with a tuned transport, optional rate limiting
// and per-request correlation IDs.
type Client struct {
	hc      *http.Client
	baseURL string
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL prefixes every request URL with base.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// WithRateLimit caps outgoing requests at rps requests per second with the
// given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithHTTPClient replaces the underlying http.Client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// New creates a Client with a tuned transport and a 30 second default
// timeout.
func New(opts ...Option) *Client {
	c := &Client{
		hc: &http.Client{
			Timeout:   30 * time.Second,
			Transport: newTransport(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       60 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
	}
}

// StatusError is returned by Do for responses outside the 2xx range. The
// response body is retained for diagnostics.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Get issues a GET request to rawurl (joined onto the base URL, if any).
// When params is non-nil it is flattened with nest.Flatten and merged into
// the query string, so a nested parameter structure like
//
//	nest.Document{{Key: "page", Value: nest.Document{{Key: "size", Value: 10}}}}
//
// produces "?page.size=10". A JSON response body decodes into the ordered
// nest model; an empty body yields nil.
func (c *Client) Get(ctx context.Context, rawurl string, params any) (any, error) {
	u, err := url.Parse(c.baseURL + rawurl)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", c.baseURL+rawurl, err)
	}
	if params != nil {
		q := u.Query()
		for _, e := range nest.Flatten(params) {
			q.Set(e.Key, fmt.Sprint(e.Value))
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	v, err := nest.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

// Do sends req, honoring the client's rate limiter, and returns the response
// body. Every request carries a fresh X-Request-Id. Non-2xx responses return
// a *StatusError.
func (c *Client) Do(req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Code: resp.StatusCode, Body: body}
	}
	return body, nil
}
