// Package detect calls the external species-detection service.  The
// service takes one image as multipart field "image" and answers with a
// JSON document that is relayed to our caller untouched.
package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrUpstreamStatus is returned when the service answers with a non-2xx status.
var ErrUpstreamStatus = errors.New("detection service returned non-2xx status")

// ErrInvalidResponse is returned when the service answers with a body that is not JSON.
var ErrInvalidResponse = errors.New("detection service returned invalid JSON")

// Recorder receives one observation per call.  Outcome is one of
// success, upstream_error, breaker_open.
type Recorder interface {
	RecordDetection(outcome string, d time.Duration)
}

// Client posts images to the detection endpoint through a circuit breaker.
type Client struct {
	url     string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	rec     Recorder
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option { return func(c *Client) { c.rec = r } }

// New builds a Client for url.  The breaker opens after maxFailures
// consecutive failures and half-opens again after 30 seconds.
func New(url string, timeout time.Duration, maxFailures int, opts ...Option) *Client {
	c := &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
	for _, o := range opts {
		o(c)
	}
	threshold := uint32(max(maxFailures, 1))
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "species-detection",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	})
	return c
}

// Detect sends the image read from r, named filename, and returns the
// service's JSON response body.
func (c *Client) Detect(ctx context.Context, filename string, r io.Reader) ([]byte, error) {
	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.post(ctx, filename, r)
	})
	c.record(err, time.Since(start))
	return body, err
}

func (c *Client) post(ctx context.Context, filename string, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post image: %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}
	if !json.Valid(out) {
		return nil, ErrInvalidResponse
	}
	return out, nil
}

func (c *Client) record(err error, d time.Duration) {
	if c.rec == nil {
		return
	}
	outcome := "success"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = "breaker_open"
	case err != nil:
		outcome = "upstream_error"
	}
	c.rec.RecordDetection(outcome, d)
}
