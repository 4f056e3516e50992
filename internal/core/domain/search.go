package domain

// Relevance is a coarse confidence label distinguishing vector-confirmed
// matches from raw wiki-search fallback matches.
type Relevance string

const (
	// RelevanceHigh marks results sourced from vector similarity.
	RelevanceHigh Relevance = "high"

	// RelevanceMedium marks results sourced from a raw wiki search match
	// with no vector confirmation.
	RelevanceMedium Relevance = "medium"
)

// RetrievalResult is a single ranked answer produced by a search.
// Results are transient per query and never persisted.
type RetrievalResult struct {
	// ID is the underlying page identifier.
	ID string

	// Title is the page title.
	Title string

	// SpaceKey is the key of the containing space.
	SpaceKey string

	// URL is the web link to the page.
	URL string

	// Score is the similarity score for vector-sourced results, 1.0 for
	// wiki-search fallback results.
	Score float64

	// Relevance is the confidence tier for this result.
	Relevance Relevance

	// Preview is a short excerpt of the matched content.
	Preview string
}

// SearchResponse is the full answer set for one query.
type SearchResponse struct {
	// Query echoes the original query text.
	Query string

	// Results is the merged, deduplicated result list. All entries share
	// one relevance tier; vector and wiki results are never blended.
	Results []RetrievalResult

	// TotalFound is len(Results).
	TotalFound int

	// Sources is the set of distinct space keys represented in Results.
	Sources []string
}

// SyncReport summarises one synchronisation run.
type SyncReport struct {
	// SpacesSynced is the number of spaces targeted by the run.
	SpacesSynced int

	// DocumentsIndexed is the number of pages whose content was ingested.
	DocumentsIndexed int

	// ChunksCreated is the total number of chunks upserted.
	ChunksCreated int

	// SyncType is "full" or "incremental". Both currently fetch the same
	// page set; the flag only labels the run.
	SyncType string
}
