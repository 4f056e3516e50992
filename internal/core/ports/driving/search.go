package driving

import (
	"context"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
)

// SearchOptions configures a knowledge search.
type SearchOptions struct {
	// SpaceKey scopes the search to one space when non-empty.
	SpaceKey string

	// TopK is the maximum number of results (default 5).
	TopK int
}

// KnowledgeSearch answers queries against the knowledge base.
type KnowledgeSearch interface {
	// Search runs a wiki search plus vector similarity query and returns
	// a single merged, ranked answer set.
	Search(ctx context.Context, query string, opts SearchOptions) (*domain.SearchResponse, error)
}

// SpaceDirectory exposes the wiki's space and recency views.
type SpaceDirectory interface {
	// Spaces lists all known spaces.
	Spaces(ctx context.Context) ([]domain.Space, error)

	// RecentUpdates lists pages modified in the last N days.
	RecentUpdates(ctx context.Context, days, limit int) ([]domain.PageSummary, error)
}
