package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glotkey/glotkey/pkg/backends/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_Ollama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3:8b"},{"name":"mistral"}]}`))
	}))
	t.Cleanup(srv.Close)

	models, err := catalog.New().List(context.Background(), "ollama", srv.URL, "")
	require.NoError(t, err)

	assert.Equal(t, []catalog.Model{
		{ID: "llama3:8b", Name: "llama3:8b"},
		{ID: "mistral", Name: "mistral"},
	}, models)
}

func TestList_OpenAICompatible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"gpt-4o-mini"},{"id":"gpt-4o"}]}`))
	}))
	t.Cleanup(srv.Close)

	models, err := catalog.New().List(context.Background(), "openai", srv.URL, "sk-test")
	require.NoError(t, err)

	assert.Equal(t, []catalog.Model{
		{ID: "gpt-4o-mini", Name: "gpt-4o-mini"},
		{ID: "gpt-4o", Name: "gpt-4o"},
	}, models)
}

func TestList_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	_, err := catalog.New().List(context.Background(), "openai", srv.URL, "bad-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestList_UnknownKind(t *testing.T) {
	_, err := catalog.New().List(context.Background(), "smoke-signals", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"smoke-signals"`)
}
