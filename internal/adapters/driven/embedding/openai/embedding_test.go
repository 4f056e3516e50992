package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbeddingService(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := NewEmbeddingService(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})

	t.Run("default model and dimensions", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "sk-test"})
		require.NoError(t, err)
		assert.Equal(t, "text-embedding-3-small", svc.ModelName())
		assert.Equal(t, 1536, svc.Dimensions())
	})

	t.Run("known model dimensions", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", Model: "text-embedding-3-large"})
		require.NoError(t, err)
		assert.Equal(t, 3072, svc.Dimensions())
	})

	t.Run("dimension override", func(t *testing.T) {
		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", Dimensions: 256})
		require.NoError(t, err)
		assert.Equal(t, 256, svc.Dimensions())
	})
}

// embedServer returns a test server that answers /embeddings with one
// vector per input, tracking how many requests arrived.
func embedServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		requests.Add(1)

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := embeddingResponse{}
		for i := range req.Input {
			resp.Data = append(resp.Data, embeddingData{
				Embedding: []float64{float64(i), 0.5},
				Index:     i,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
}

func TestEmbeddingService_Embed(t *testing.T) {
	var requests atomic.Int32
	server := embedServer(t, &requests)
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	vector, err := svc.Embed(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0.5}, vector)
	assert.Equal(t, int32(1), requests.Load())
}

func TestEmbeddingService_EmbedBatch(t *testing.T) {
	t.Run("empty input makes no requests", func(t *testing.T) {
		var requests atomic.Int32
		server := embedServer(t, &requests)
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
		require.NoError(t, err)

		vectors, err := svc.EmbedBatch(context.Background(), nil)

		require.NoError(t, err)
		assert.Nil(t, vectors)
		assert.Equal(t, int32(0), requests.Load())
	})

	t.Run("preserves input order", func(t *testing.T) {
		var requests atomic.Int32
		server := embedServer(t, &requests)
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
		require.NoError(t, err)

		vectors, err := svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})

		require.NoError(t, err)
		require.Len(t, vectors, 3)
		assert.Equal(t, float32(0), vectors[0][0])
		assert.Equal(t, float32(2), vectors[2][0])
	})

	t.Run("large batches are paged", func(t *testing.T) {
		var requests atomic.Int32
		server := embedServer(t, &requests)
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
		require.NoError(t, err)

		texts := make([]string, BatchLimit+50)
		for i := range texts {
			texts[i] = "text"
		}

		vectors, err := svc.EmbedBatch(context.Background(), texts)

		require.NoError(t, err)
		assert.Len(t, vectors, BatchLimit+50)
		assert.Equal(t, int32(2), requests.Load())
	})
}

func TestEmbeddingService_ShortResponse(t *testing.T) {
	// A response with fewer data items than inputs must not yield nil
	// vectors for the missing positions.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := embeddingResponse{Data: []embeddingData{
			{Embedding: []float64{0.1, 0.2}, Index: 0},
		}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 embeddings for 3 inputs")
}

func TestEmbeddingService_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "sk-bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Embed(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key")
}

func TestEmbeddingService_Ping(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/models", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-test", BaseURL: server.URL})
		require.NoError(t, err)

		assert.NoError(t, svc.Ping(context.Background()))
	})

	t.Run("bad key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		svc, err := NewEmbeddingService(Config{APIKey: "sk-bad", BaseURL: server.URL})
		require.NoError(t, err)

		assert.Error(t, svc.Ping(context.Background()))
	})
}
