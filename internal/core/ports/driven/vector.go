package driven

import "context"

// IndexEntry is an id plus vector plus metadata triple stored in the
// vector index. Upserts with the same id replace prior content.
type IndexEntry struct {
	// ID identifies the entry, derived from page id and chunk index.
	ID string

	// Vector is the embedding values.
	Vector []float32

	// Metadata carries page id, title, space, url, chunk index and a
	// short text preview for result display.
	Metadata EntryMetadata
}

// EntryMetadata is the per-entry payload stored alongside a vector.
type EntryMetadata struct {
	PageID     string `json:"page_id"`
	PageTitle  string `json:"page_title"`
	SpaceKey   string `json:"space"`
	URL        string `json:"url"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
}

// VectorMatch is a similarity query result.
type VectorMatch struct {
	// ID is the matched entry id.
	ID string

	// Score is the similarity score, higher is closer.
	Score float64

	// Metadata is the stored entry metadata.
	Metadata EntryMetadata
}

// UpsertResult reports the outcome of an upsert call.
type UpsertResult struct {
	// Count is the number of entries written.
	Count int
}

// IndexStats is an index-level summary.
type IndexStats struct {
	// VectorCount is the total number of stored vectors.
	VectorCount int

	// Dimension is the configured vector dimensionality.
	Dimension int

	// Namespaces lists the namespaces present with their vector counts.
	Namespaces map[string]int
}

// VectorIndex stores embeddings in a namespace and answers similarity
// queries. All operations accept an optional namespace override; the empty
// string selects the adapter's configured default namespace.
type VectorIndex interface {
	// Upsert writes or replaces entries. Empty input is a no-op returning
	// a zero count, not an error.
	Upsert(ctx context.Context, entries []IndexEntry, namespace string) (UpsertResult, error)

	// Query returns up to topK matches sorted by descending similarity.
	// When scoreThreshold is non-nil, matches below it are excluded.
	Query(ctx context.Context, vector []float32, topK int, scoreThreshold *float64, namespace string) ([]VectorMatch, error)

	// Delete removes entries by id, or everything in the namespace when
	// deleteAll is set. Exactly one of the two modes must be chosen;
	// otherwise domain.ErrInvalidInput is returned.
	Delete(ctx context.Context, ids []string, deleteAll bool, namespace string) error

	// Fetch returns the entries for the given ids. Missing ids are simply
	// absent from the result, not an error.
	Fetch(ctx context.Context, ids []string, namespace string) (map[string]IndexEntry, error)

	// UpdateMetadata replaces the metadata of an existing entry.
	UpdateMetadata(ctx context.Context, id string, metadata EntryMetadata, namespace string) error

	// Stats returns an index-level summary.
	Stats(ctx context.Context) (IndexStats, error)

	// Close releases resources.
	Close() error
}
