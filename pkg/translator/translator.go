// Package translator exposes the two inbound operations of the core —
// translate and explain — streaming deltas to the UI as named events while
// assembling the definitive final string.
package translator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/glotkey/glotkey/pkg/backends"
	"github.com/glotkey/glotkey/pkg/backends/backend"
	"github.com/glotkey/glotkey/pkg/prompt"
)

// Event names for frontend communication.
const (
	EventTranslationChunk = "translation-chunk"
	EventExplanationChunk = "explanation-chunk"
)

// Request describes one translate or explain operation. SourceLang may be the
// sentinel "auto".
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Provider   string `json:"provider"`
	Endpoint   string `json:"endpoint"`
	Model      string `json:"model"`
}

// Chunk is the payload of a streamed delta event.
type Chunk struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// Sink receives ordered, named notifications for the UI layer.
type Sink interface {
	Emit(name string, payload any)
}

// Service runs completion operations against interchangeable backends. It
// holds no per-request state; two requests may run concurrently, each
// emitting its own ordered substream.
type Service struct {
	sink Sink
	log  *slog.Logger

	mu     sync.RWMutex
	apiKey string

	// Factory resolves a backend kind to a Streamer. Defaults to
	// backends.New; tests substitute a fake.
	Factory func(kind string, s backends.Settings) (backend.Streamer, error)
}

// New creates a Service emitting to sink. A nil logger falls back to
// slog.Default.
func New(sink Sink, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{sink: sink, log: log, Factory: backends.New}
}

// SetAPIKey replaces the key used to authenticate backends; empty for local
// daemons. Bound calls arrive on separate goroutines, so a settings edit may
// land while a request streams.
func (s *Service) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apiKey = key
}

func (s *Service) currentAPIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.apiKey
}

// Translate streams a translation of req.Text, emitting each delta under
// EventTranslationChunk, and returns the full trimmed translation.
func (s *Service) Translate(ctx context.Context, req Request) (string, error) {
	return s.run(ctx, req, EventTranslationChunk,
		prompt.Translation(req.Text, req.SourceLang, req.TargetLang),
		prompt.TranslatorPreamble())
}

// Explain streams a linguistic explanation of req.Text, emitting each delta
// under EventExplanationChunk, and returns the full trimmed explanation.
func (s *Service) Explain(ctx context.Context, req Request) (string, error) {
	return s.run(ctx, req, EventExplanationChunk,
		prompt.Explanation(req.Text, req.SourceLang, req.TargetLang),
		prompt.ExplainerPreamble())
}

func (s *Service) run(ctx context.Context, req Request, event, userPrompt, preamble string) (string, error) {
	if req.Text == "" {
		return "", fmt.Errorf("translator: empty text")
	}

	streamer, err := s.Factory(req.Provider, backends.Settings{
		Endpoint: req.Endpoint,
		APIKey:   s.currentAPIKey(),
		Model:    req.Model,
	})
	if err != nil {
		return "", fmt.Errorf("translator: %w", err)
	}

	s.log.Debug("starting completion",
		"event", event,
		"provider", req.Provider,
		"model", req.Model,
		"source", req.SourceLang,
		"target", req.TargetLang,
	)

	final, err := streamer.Stream(ctx, backend.Request{
		Model:    req.Model,
		Prompt:   userPrompt,
		Preamble: preamble,
	}, func(d backend.Delta) {
		s.sink.Emit(event, Chunk{Text: d.Text, Final: d.Final})
	})
	if err != nil {
		return "", fmt.Errorf("translator: %w", err)
	}

	return final, nil
}
