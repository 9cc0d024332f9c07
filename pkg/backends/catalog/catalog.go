// Package catalog lists the models available on a backend, for populating the
// settings UI.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Model identifies one model offered by a backend.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client fetches model catalogs. Listing is a quick metadata call, so it uses
// a much shorter timeout than completion streaming.
type Client struct {
	http *resty.Client
}

// New creates a catalog Client.
func New() *Client {
	return &Client{http: resty.New().SetTimeout(15 * time.Second)}
}

// List returns the models a backend offers. The endpoint and auth follow the
// same conventions as the streaming adapters for the given kind.
func (c *Client) List(ctx context.Context, kind, endpoint, apiKey string) ([]Model, error) {
	switch kind {
	case "ollama":
		return c.listOllama(ctx, endpoint)
	case "openai", "lmstudio":
		return c.listOpenAI(ctx, endpoint, apiKey)
	default:
		return nil, fmt.Errorf("catalog: unknown backend kind %q", kind)
	}
}

func (c *Client) listOllama(ctx context.Context, endpoint string) ([]Model, error) {
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	url := strings.TrimRight(endpoint, "/") + "/api/tags"

	var resp struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}

	r, err := c.http.R().SetContext(ctx).SetResult(&resp).Get(url)
	if err != nil {
		return nil, fmt.Errorf("catalog: list ollama models: %w", err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("catalog: list ollama models: %s; body: %s", r.Status(), r.String())
	}

	out := make([]Model, 0, len(resp.Models))
	for _, m := range resp.Models {
		out = append(out, Model{ID: m.Name, Name: m.Name})
	}

	return out, nil
}

func (c *Client) listOpenAI(ctx context.Context, endpoint, apiKey string) ([]Model, error) {
	if endpoint == "" {
		endpoint = "https://api.openai.com"
	}
	url := strings.TrimRight(endpoint, "/") + "/v1/models"

	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}

	req := c.http.R().SetContext(ctx).SetResult(&resp)
	if apiKey != "" {
		req.SetHeader("Authorization", "Bearer "+apiKey)
	}

	r, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("catalog: list models: %w", err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("catalog: list models: %s; body: %s", r.Status(), r.String())
	}

	out := make([]Model, 0, len(resp.Data))
	for _, d := range resp.Data {
		out = append(out, Model{ID: d.ID, Name: d.ID})
	}

	return out, nil
}
