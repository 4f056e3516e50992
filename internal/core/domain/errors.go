package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Adapters translate upstream 404s into this; callers treat it as a
	// normal "no value" outcome rather than a failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid caller input.
	// Returned immediately, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Vector indexing and semantic retrieval are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	// Similarity retrieval degrades to wiki search results only.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrWikiUnavailable indicates the wiki source is not configured.
	ErrWikiUnavailable = errors.New("wiki source unavailable")

	// ErrRateLimited indicates the upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
