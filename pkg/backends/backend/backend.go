// Package backend defines the interface and shared plumbing for streaming
// completion backends.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds a whole completion request, including the time spent
// reading the streamed body.
const DefaultTimeout = 120 * time.Second

// Delta is one incremental fragment of generated text. A Delta with Final set
// marks the end of the stream and carries no text.
type Delta struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// Request carries everything a backend needs for one completion call.
// Prompt is the full user-facing instruction text. Preamble is a one-sentence
// system role; backends whose protocol has no system channel ignore it, so
// callers must build Prompt accordingly.
type Request struct {
	Model    string
	Prompt   string
	Preamble string
}

// Streamer runs one completion request, invoking emit for every decoded
// fragment in order and once more with a Final delta, then returns the full
// assembled text with surrounding whitespace trimmed.
type Streamer interface {
	Stream(ctx context.Context, req Request, emit func(Delta)) (string, error)
}

// StatusError reports a non-2xx HTTP response from a backend. It is returned
// before any delta is emitted.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Auth holds authentication settings for a backend API.
type Auth struct {
	Key    string // API key value.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
}

// Backend holds shared state for streaming backend implementations. Embed it
// in concrete adapter structs to get HTTP helpers, auth, and custom headers.
// Concrete types should define their own Stream method to shadow the default
// stub.
type Backend struct {
	BaseURL string            // API base URL (no trailing slash).
	Model   string            // Default model identifier.
	Auth    Auth              // Authentication settings.
	Client  *http.Client      // HTTP client; falls back to a shared 120s-timeout client.
	Headers map[string]string // Extra headers applied to every request.

	clientOnce    sync.Once
	defaultClient *http.Client
}

// Stream is a stub that returns an error. Concrete adapters that embed
// Backend should define their own Stream method to shadow this one.
func (b *Backend) Stream(_ context.Context, _ Request, _ func(Delta)) (string, error) {
	return "", errors.New("backend: Stream not implemented")
}

// httpClient returns the configured client or a cached default client with
// the 120-second request timeout.
func (b *Backend) httpClient() *http.Client {
	if b.Client != nil {
		return b.Client
	}

	b.clientOnce.Do(func() {
		b.defaultClient = &http.Client{Timeout: DefaultTimeout}
	})

	return b.defaultClient
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied.
func (b *Backend) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := strings.TrimRight(b.BaseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	// Apply auth.
	if b.Auth.Key != "" {
		header := b.Auth.Header
		if header == "" {
			header = "Authorization"
		}

		value := b.Auth.Key
		if header == "Authorization" {
			scheme := b.Auth.Scheme
			if scheme == "" {
				scheme = "Bearer"
			}

			value = scheme + " " + value
		} else if b.Auth.Scheme != "" {
			value = b.Auth.Scheme + " " + value
		}

		req.Header.Set(header, value)
	}

	// Apply custom headers.
	for k, v := range b.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (b *Backend) Do(req *http.Request) (*http.Response, error) {
	return b.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// PostStream marshals payload as JSON, sends a POST to the given path, and
// checks for a 2xx status before any of the body is consumed. On success it
// returns the response body for incremental reading; the caller must close it.
func (b *Backend) PostStream(ctx context.Context, path string, payload any) (io.ReadCloser, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := b.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := b.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		return nil, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	return resp.Body, nil
}

// Accumulator assembles the full response text from streamed fragments while
// forwarding each non-empty fragment to emit in order.
type Accumulator struct {
	sb   strings.Builder
	emit func(Delta)
}

// NewAccumulator creates an Accumulator. A nil emit only assembles.
func NewAccumulator(emit func(Delta)) *Accumulator {
	return &Accumulator{emit: emit}
}

// Add appends one fragment. Empty fragments are suppressed entirely: they
// contribute nothing to the assembled text and are not emitted.
func (a *Accumulator) Add(text string) {
	if text == "" {
		return
	}

	a.sb.WriteString(text)

	if a.emit != nil {
		a.emit(Delta{Text: text})
	}
}

// Finish emits the completion marker and returns the assembled text with
// leading and trailing whitespace trimmed once.
func (a *Accumulator) Finish() string {
	if a.emit != nil {
		a.emit(Delta{Final: true})
	}

	return strings.TrimSpace(a.sb.String())
}
