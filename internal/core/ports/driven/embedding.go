package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from VectorIndex which stores and searches vectors.
// EmbeddingService generates vectors; VectorIndex stores them.
//
// Unlike the wiki and vector adapters, embedding failures are not degraded:
// callers cannot proceed without a vector, so errors propagate.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, preserving input
	// order. Implementations page requests internally to respect upstream
	// request-size limits.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1536, 3072).
	// This must match the VectorIndex configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
