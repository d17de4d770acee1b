package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsir.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_AppliesDefaultsToPartialFile(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	path := writeConfig(t, `
engine:
  text_field: title
summarizer:
  max_sentences: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "title", cfg.Engine.TextField)
	assert.Equal(t, 10000, cfg.Engine.MaxVocabulary)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.Equal(t, 2, cfg.Summarizer.MaxSentences)
	assert.Equal(t, 30, cfg.Summarizer.MinSentenceLength)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative vocabulary", "engine:\n  max_vocabulary: -1\n"},
		{"negative top k", "search:\n  top_k: -3\n"},
		{"negative sentences", "summarizer:\n  max_sentences: -1\n"},
		{"negative length", "summarizer:\n  min_sentence_length: -1\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"malformed yaml", "engine: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverridesLogLevel(t *testing.T) {
	t.Setenv(LogLevelEnv, "debug")
	cfg, err := Load(writeConfig(t, "log:\n  level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.Search.TopK = 7
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadDefault_WritesUserConfig(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "newsir", "config.yaml"), path)
	assert.Equal(t, Default(), cfg)
	assert.FileExists(t, path)
}
