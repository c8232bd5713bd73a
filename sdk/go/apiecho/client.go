// Package apiecho is a Go client for the apiecho service. Besides single calls it
// can drive concurrent load against /api, which is how the service is usually
// exercised by dashboards and scrapers.
package apiecho

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrInvalidOptions   = errors.New("invalid load options")
)

// Response is the outcome of one /api call.
type Response struct {
	StatusCode int
	Body       string
}

// Client talks to one apiecho instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Client for baseURL, e.g. "http://localhost:5000".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Health calls / and returns its body. Any status other than 200 is an error.
func (c *Client) Health(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/", "")
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp.Body, nil
}

// Metrics scrapes /metrics and returns the exposition text.
func (c *Client) Metrics(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/metrics", "")
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp.Body, nil
}

// Send calls /api with the given method and body. 4xx responses are returned, not errors.
func (c *Client) Send(ctx context.Context, method, body string) (Response, error) {
	return c.do(ctx, method, "/api", body)
}

func (c *Client) do(ctx context.Context, method, path, body string) (Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Response{}, err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: resp.StatusCode, Body: string(data)}, nil
}

// LoadOptions configures a load run against /api.
type LoadOptions struct {
	Method      string
	Body        string
	Requests    int
	Concurrency int
}

// LoadResult summarises a load run.
type LoadResult struct {
	Requests int
	ByStatus map[int]int
	Failures int
	Elapsed  time.Duration
}

// Load sends opts.Requests calls with at most opts.Concurrency in flight.
// Transport failures are counted, not returned; only ctx cancellation aborts the run.
func (c *Client) Load(ctx context.Context, opts LoadOptions) (LoadResult, error) {
	if opts.Requests < 1 || opts.Concurrency < 1 {
		return LoadResult{}, fmt.Errorf("%w: requests and concurrency must be positive", ErrInvalidOptions)
	}
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}

	result := LoadResult{ByStatus: make(map[int]int)}
	var mu sync.Mutex

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := 0; i < opts.Requests; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			resp, err := c.Send(gctx, opts.Method, opts.Body)

			mu.Lock()
			defer mu.Unlock()
			result.Requests++
			if err != nil {
				result.Failures++
				return nil
			}
			result.ByStatus[resp.StatusCode]++
			return nil
		})
	}
	_ = g.Wait()
	result.Elapsed = time.Since(start)

	return result, ctx.Err()
}
