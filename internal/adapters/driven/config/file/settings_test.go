package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_EnvWinsOverStore(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("confluence.url", "https://from-file.atlassian.net"))
	require.NoError(t, store.Set("openai.model", "text-embedding-3-large"))

	t.Setenv("CONFLUENCE_URL", "https://from-env.atlassian.net")

	settings := LoadSettings(store)

	assert.Equal(t, "https://from-env.atlassian.net", settings.ConfluenceURL)
	assert.Equal(t, "text-embedding-3-large", settings.OpenAIModel)
}

func TestLoadSettings_NumericTuning(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("segment.chunk_size", 256))
	require.NoError(t, store.Set("segment.overlap", 32))
	require.NoError(t, store.Set("search.top_k", 8))

	settings := LoadSettings(store)

	assert.Equal(t, 256, settings.ChunkSize)
	assert.Equal(t, 32, settings.Overlap)
	assert.Equal(t, 8, settings.TopK)
}

func TestLoadSettings_NilStore(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	settings := LoadSettings(nil)

	assert.Equal(t, "sk-env", settings.OpenAIAPIKey)
	assert.Zero(t, settings.ChunkSize)
}

func TestSettings_Validate(t *testing.T) {
	t.Run("reports missing wiki settings", func(t *testing.T) {
		err := Settings{}.Validate("wiki")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CONFLUENCE_URL")
		assert.Contains(t, err.Error(), "CONFLUENCE_EMAIL")
		assert.Contains(t, err.Error(), "CONFLUENCE_API_TOKEN")
	})

	t.Run("complete settings pass", func(t *testing.T) {
		s := Settings{
			ConfluenceURL:      "https://example.atlassian.net",
			ConfluenceEmail:    "bot@example.com",
			ConfluenceAPIToken: "token",
			PineconeAPIKey:     "pc-key",
			PineconeHost:       "https://idx.pinecone.io",
			OpenAIAPIKey:       "sk-key",
		}

		assert.NoError(t, s.Validate("wiki", "vector", "embedding"))
	})

	t.Run("only requested backends are checked", func(t *testing.T) {
		s := Settings{OpenAIAPIKey: "sk-key"}

		assert.NoError(t, s.Validate("embedding"))
		assert.Error(t, s.Validate("vector"))
	})
}
