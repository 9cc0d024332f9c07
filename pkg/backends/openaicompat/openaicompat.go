// Package openaicompat provides a Streamer implementation for OpenAI-compatible
// Chat Completions APIs (OpenAI, LM Studio, and similar), whose stream is a
// server-sent event stream of delta objects.
package openaicompat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/glotkey/glotkey/pkg/backends/backend"
	"github.com/glotkey/glotkey/pkg/backends/stream"
)

const completionsPath = "/v1/chat/completions"

// temperature matches the fixed sampling temperature used for translation.
const temperature = 0.3

var _ backend.Streamer = (*Adapter)(nil)

// Adapter implements backend.Streamer for OpenAI-compatible APIs.
type Adapter struct {
	backend.Backend
}

// New creates an Adapter for an OpenAI-compatible endpoint. The apiKey may be
// empty for local servers such as LM Studio.
func New(baseURL, apiKey, model string) *Adapter {
	a := &Adapter{}
	a.BaseURL = baseURL
	a.Auth = backend.Auth{Key: apiKey}
	a.Model = model

	return a
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content *string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream posts the conversation and decodes the event stream incrementally.
// The request's Preamble becomes the system message. Payloads that do not
// parse as a delta chunk are skipped rather than aborting the stream.
func (a *Adapter) Stream(ctx context.Context, req backend.Request, emit func(backend.Delta)) (string, error) {
	model := req.Model
	if model == "" {
		model = a.Model
	}

	body, err := a.PostStream(ctx, completionsPath, chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: req.Preamble},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: temperature,
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("openaicompat: %w", err)
	}
	defer func() { _ = body.Close() }()

	acc := backend.NewAccumulator(emit)
	events := stream.NewSSEScanner(body)

	for {
		data, err := events.Next()
		if errors.Is(err, io.EOF) {
			// End of body counts as completion even without a [DONE] sentinel.
			break
		}
		if err != nil {
			return "", fmt.Errorf("openaicompat: read stream: %w", err)
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}

		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == nil {
			continue
		}

		acc.Add(*chunk.Choices[0].Delta.Content)
	}

	return acc.Finish(), nil
}
