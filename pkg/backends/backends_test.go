package backends_test

import (
	"context"
	"testing"

	"github.com/glotkey/glotkey/pkg/backends"
	"github.com/glotkey/glotkey/pkg/backends/backend"
	"github.com/glotkey/glotkey/pkg/backends/ollama"
	"github.com/glotkey/glotkey/pkg/backends/openaicompat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DispatchesByKind(t *testing.T) {
	tests := []struct {
		kind string
		want any
	}{
		{kind: "ollama", want: (*ollama.Adapter)(nil)},
		{kind: "openai", want: (*openaicompat.Adapter)(nil)},
		{kind: "lmstudio", want: (*openaicompat.Adapter)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			s, err := backends.New(tt.kind, backends.Settings{Endpoint: "http://localhost:9999", Model: "m"})
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := backends.New("bard", backends.Settings{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bard"`)
}

func TestKnown(t *testing.T) {
	assert.True(t, backends.Known("ollama"))
	assert.True(t, backends.Known("openai"))
	assert.False(t, backends.Known("carrier-pigeon"))
}

type stubStreamer struct{}

func (stubStreamer) Stream(_ context.Context, _ backend.Request, _ func(backend.Delta)) (string, error) {
	return "stub", nil
}

func TestRegister_CustomKind(t *testing.T) {
	backends.Register("stub", func(backends.Settings) (backend.Streamer, error) {
		return stubStreamer{}, nil
	})

	s, err := backends.New("stub", backends.Settings{})
	require.NoError(t, err)

	out, err := s.Stream(context.Background(), backend.Request{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "stub", out)
}
