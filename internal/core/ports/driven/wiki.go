package driven

import (
	"context"
	"time"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
)

// WikiSource provides paginated access to the remote wiki corpus.
// Implementations handle pagination internally: listing operations fetch
// pages of a fixed size until a short page signals end-of-results, since
// the upstream API does not reliably report totals.
//
// Transport failures surface as errors; callers decide whether to degrade
// to an empty result set or propagate.
type WikiSource interface {
	// ListSpaces returns all spaces visible to the configured identity.
	ListSpaces(ctx context.Context) ([]domain.Space, error)

	// ListPages returns summaries for every page in a space.
	ListPages(ctx context.Context, spaceKey string) ([]domain.PageSummary, error)

	// GetPage fetches a page's full content and revision metadata.
	// Returns domain.ErrNotFound if the page does not exist.
	GetPage(ctx context.Context, id string) (*domain.Page, error)

	// SearchPages runs a structured text search, optionally scoped to a
	// space, ordered by last-modified descending.
	SearchPages(ctx context.Context, query, spaceKey string) ([]domain.PageSummary, error)

	// RecentlyModified returns pages modified since the given time,
	// ordered by last-modified descending.
	RecentlyModified(ctx context.Context, since time.Time, limit int) ([]domain.PageSummary, error)

	// PageChildren returns direct child pages.
	PageChildren(ctx context.Context, id string) ([]domain.PageSummary, error)

	// PageAncestors returns the ancestor path from root to parent.
	PageAncestors(ctx context.Context, id string) ([]domain.PageSummary, error)

	// Close releases resources.
	Close() error
}
