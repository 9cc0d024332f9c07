// Package ollama provides a Streamer implementation for the Ollama generate
// API, whose stream is line-delimited JSON.
package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/glotkey/glotkey/pkg/backends/backend"
	"github.com/glotkey/glotkey/pkg/backends/stream"
)

const generatePath = "/api/generate"

var _ backend.Streamer = (*Adapter)(nil)

// Adapter implements backend.Streamer for the Ollama HTTP API.
type Adapter struct {
	backend.Backend
}

// New creates an Adapter configured for an Ollama daemon.
// The baseURL is typically "http://localhost:11434".
func New(baseURL, model string) *Adapter {
	a := &Adapter{}
	a.BaseURL = baseURL
	a.Model = model

	return a
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Stream posts the prompt and decodes the response incrementally. Each
// complete non-blank line is one JSON chunk; lines that do not parse as a
// chunk are skipped, since the daemon's stream may interleave non-data lines.
// The request's Preamble is ignored — this protocol has no system channel,
// callers fold the role into the prompt text.
func (a *Adapter) Stream(ctx context.Context, req backend.Request, emit func(backend.Delta)) (string, error) {
	model := req.Model
	if model == "" {
		model = a.Model
	}

	body, err := a.PostStream(ctx, generatePath, generateRequest{
		Model:  model,
		Prompt: req.Prompt,
		Stream: true,
	})
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	defer func() { _ = body.Close() }()

	acc := backend.NewAccumulator(emit)
	lines := stream.NewLineAssembler(body)

	for {
		line, err := lines.Next()
		if errors.Is(err, io.EOF) {
			// End of body counts as completion even without a done marker.
			break
		}
		if err != nil {
			return "", fmt.Errorf("ollama: read stream: %w", err)
		}

		if line == "" {
			continue
		}

		var chunk generateChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			continue
		}

		acc.Add(chunk.Response)

		if chunk.Done {
			break
		}
	}

	return acc.Finish(), nil
}
