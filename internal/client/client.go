// Package client is the console's bearer-token client for the hospital REST API.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/otcheredev/hms-console/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Client issues authorized requests against the API base URL
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL (scheme://host[:port][/prefix])
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Request describes one API call. Op names the call in logs and metrics.
type Request struct {
	Op     string
	Method string
	Path   string
	Query  url.Values
	Token  string
	Body   any
}

// APIError is a non-2xx answer. Message and Category come from the
// API's {message, category} error body when it sends one.
type APIError struct {
	Status   int
	Message  string
	Category string
	Body     string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API returned status %d: %s", e.Status, e.Body)
}

// FlashMessage lets flash.FromError show the server's own wording
func (e *APIError) FlashMessage() (string, string) {
	return e.Message, e.Category
}

// Unauthorized reports whether the API rejected the bearer token
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusUnprocessableEntity
}

// Do sends req and decodes a 2xx JSON body into T. An empty body yields the zero T.
func Do[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T

	resp, err := c.Send(ctx, req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return out, fmt.Errorf("%s: failed to decode response: %w", req.Op, err)
	}
	return out, nil
}

// Send performs req and returns the open response on 2xx. Other statuses
// are drained into an *APIError.
func (c *Client) Send(ctx context.Context, req Request) (*http.Response, error) {
	start := time.Now()

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", req.Op, err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.UpstreamDuration.WithLabelValues(req.Op, "error").Observe(time.Since(start).Seconds())
		log.Warn().Err(err).Str("op", req.Op).Msg("API request failed")
		return nil, fmt.Errorf("%s: failed to execute request: %w", req.Op, err)
	}

	metrics.UpstreamDuration.WithLabelValues(req.Op, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	log.Debug().
		Str("op", req.Op).
		Str("method", httpReq.Method).
		Str("path", httpReq.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	return httpReq, nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	var body struct {
		Message  string `json:"message"`
		Msg      string `json:"msg"`
		Category string `json:"category"`
	}
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			// JWT errors from the API use "msg"
			apiErr.Message = body.Msg
		}
		apiErr.Category = body.Category
	}
	return apiErr
}

// Download is an open binary response
type Download struct {
	Body        io.ReadCloser
	ContentType string
	Filename    string
	Size        int64
}

// Download fetches a file endpoint; the caller must close Body
func (c *Client) Download(ctx context.Context, op, token, filePath string) (*Download, error) {
	resp, err := c.Send(ctx, Request{Op: op, Path: filePath, Token: token})
	if err != nil {
		return nil, err
	}

	d := &Download{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    path.Base(filePath),
		Size:        resp.ContentLength,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		d.Filename = params["filename"]
	}
	if d.ContentType == "" {
		d.ContentType = "application/octet-stream"
	}
	return d, nil
}

// Ping checks that the API answers at all; any HTTP status counts as reachable
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("API unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

// Close releases idle connections
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
