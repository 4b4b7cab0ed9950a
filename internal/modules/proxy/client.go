package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/portfolio-space/portfolio/internal/middleware"
)

// ErrUpstream covers every way the backend can fail to produce a usable answer.
var ErrUpstream = errors.New("backend upstream failed")

// Client calls the backend API. It never retries.
type Client struct {
	http *resty.Client
}

// NewClient builds an upstream client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	return &Client{http: rc}
}

// Forward sends method path to the backend and returns its status and JSON body
// untouched. body is sent as-is when non-nil.
func (c *Client) Forward(ctx context.Context, method, path string, body []byte) (int, json.RawMessage, error) {
	req := c.http.R().SetContext(ctx)
	if rid := middleware.RequestIDFrom(ctx); rid != "" {
		req.SetHeader(middleware.RequestIDHeader, rid)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %w", ErrUpstream, method, path, err)
	}

	payload := resp.Body()
	if !json.Valid(payload) {
		return 0, nil, fmt.Errorf("%w: %s %s: status %d with non-JSON body", ErrUpstream, method, path, resp.StatusCode())
	}
	return resp.StatusCode(), json.RawMessage(payload), nil
}
