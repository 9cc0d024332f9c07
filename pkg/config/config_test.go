package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glotkey/glotkey/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
shortcut: alt+f2
provider: openai
endpoint: https://api.openai.com
model: gpt-4o-mini
source_lang: German
target_lang: English
settle_delay: 250ms
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "alt+f2", cfg.Shortcut)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 250*time.Millisecond, cfg.SettleDuration())
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ExpandsEnvReferences(t *testing.T) {
	t.Setenv("TEST_GLOTKEY_KEY", "sk-secret")

	path := writeConfig(t, "api_key: ${TEST_GLOTKEY_KEY}\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", cfg.APIKey)
}

func TestLoad_EnvOverlayWins(t *testing.T) {
	t.Setenv("GLOTKEY_MODEL", "mistral")

	path := writeConfig(t, "model: llama3\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mistral", cfg.Model)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "shortcut: [broken\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{
			name:    "unknown provider",
			mutate:  func(c *config.Config) { c.Provider = "fax" },
			wantErr: "unknown provider",
		},
		{
			name:    "missing endpoint",
			mutate:  func(c *config.Config) { c.Endpoint = "" },
			wantErr: "endpoint",
		},
		{
			name:    "missing target language",
			mutate:  func(c *config.Config) { c.TargetLang = "" },
			wantErr: "target_lang",
		},
		{
			name:    "bad shortcut",
			mutate:  func(c *config.Config) { c.Shortcut = "ctrl+nope" },
			wantErr: "shortcut",
		},
		{
			name:    "bad settle delay",
			mutate:  func(c *config.Config) { c.SettleDelay = "fast" },
			wantErr: "settle_delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := config.Default()
	want.Provider = "lmstudio"
	want.Endpoint = "http://localhost:1234"

	require.NoError(t, want.Save(path))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettleDuration_FallsBackToDefault(t *testing.T) {
	cfg := config.Default()
	cfg.SettleDelay = ""

	assert.Equal(t, 100*time.Millisecond, cfg.SettleDuration())
}
