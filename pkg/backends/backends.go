// Package backends wires concrete streaming adapters to backend kind names.
//
// It is organized into sub-packages:
//   - [github.com/glotkey/glotkey/pkg/backends/backend] — Streamer interface, embeddable Backend base struct with HTTP helpers, auth, and delta accumulation
//   - [github.com/glotkey/glotkey/pkg/backends/stream] — incremental line and event-stream frame decoders
//   - [github.com/glotkey/glotkey/pkg/backends/ollama] — line-delimited JSON adapter for the Ollama generate API
//   - [github.com/glotkey/glotkey/pkg/backends/openaicompat] — event-stream adapter for OpenAI-compatible chat completions
//   - [github.com/glotkey/glotkey/pkg/backends/catalog] — model listing for both backend kinds
package backends

import (
	"fmt"
	"sync"

	"github.com/glotkey/glotkey/pkg/backends/backend"
	"github.com/glotkey/glotkey/pkg/backends/ollama"
	"github.com/glotkey/glotkey/pkg/backends/openaicompat"
)

// Settings carries the per-request connection settings for a backend.
type Settings struct {
	Endpoint string
	APIKey   string
	Model    string
}

// Factory creates a Streamer from connection settings.
type Factory func(s Settings) (backend.Streamer, error)

var (
	factoryMu   sync.RWMutex
	factories   = map[string]Factory{}
	defaultsReg sync.Once
)

func ensureDefaults() {
	defaultsReg.Do(func() {
		factories["ollama"] = newOllama
		factories["openai"] = newOpenAICompat
		factories["lmstudio"] = newOpenAICompat
	})
}

// Register registers a custom backend factory under the given kind. It can be
// called at startup to extend the set of supported backends.
func Register(kind string, factory Factory) {
	ensureDefaults()

	factoryMu.Lock()
	defer factoryMu.Unlock()

	factories[kind] = factory
}

// Known reports whether a factory is registered for the given kind.
func Known(kind string) bool {
	ensureDefaults()

	factoryMu.RLock()
	defer factoryMu.RUnlock()

	_, ok := factories[kind]
	return ok
}

// New creates a Streamer for the given backend kind.
func New(kind string, s Settings) (backend.Streamer, error) {
	ensureDefaults()

	factoryMu.RLock()
	factory, ok := factories[kind]
	factoryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("backends: unknown backend kind %q", kind)
	}

	return factory(s)
}

func newOllama(s Settings) (backend.Streamer, error) {
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}

	return ollama.New(endpoint, s.Model), nil
}

func newOpenAICompat(s Settings) (backend.Streamer, error) {
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = "https://api.openai.com"
	}

	return openaicompat.New(endpoint, s.APIKey, s.Model), nil
}
