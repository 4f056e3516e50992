package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driven"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driving"
	"github.com/kognita-labs/kognita-cli/internal/logger"
	"github.com/kognita-labs/kognita-cli/internal/segment"
)

// Ensure RetrievalService implements the interfaces.
var (
	_ driving.KnowledgeSearch = (*RetrievalService)(nil)
	_ driving.SpaceDirectory  = (*RetrievalService)(nil)
)

// DefaultTopK is the result count when the caller does not specify one.
const DefaultTopK = 5

// candidateLimit bounds how many wiki search hits are fetched in full.
const candidateLimit = 10

// RetrievalService answers queries by combining a live wiki search with a
// vector similarity query. Fresh wiki hits are pushed through the ingest
// pipeline as a side effect, so searching keeps the index warm.
type RetrievalService struct {
	wiki        driven.WikiSource
	vectorIndex driven.VectorIndex
	embedding   driven.EmbeddingService
	ingester    driving.KnowledgeSync
}

// NewRetrievalService creates a new retrieval service. The ingester is
// optional; when nil, search skips the incremental indexing side effect.
func NewRetrievalService(
	wiki driven.WikiSource,
	vectorIndex driven.VectorIndex,
	embedding driven.EmbeddingService,
	ingester driving.KnowledgeSync,
) *RetrievalService {
	return &RetrievalService{
		wiki:        wiki,
		vectorIndex: vectorIndex,
		embedding:   embedding,
		ingester:    ingester,
	}
}

// Search runs the full retrieval flow: wiki text search, candidate
// hydration, best-effort incremental indexing, vector query, then merge.
// Wiki or vector failures degrade to an empty contribution from that leg;
// the response is never an error for transport problems alone.
func (r *RetrievalService) Search(
	ctx context.Context, query string, opts driving.SearchOptions,
) (*domain.SearchResponse, error) {
	logger.Section("Search")
	logger.Debug("Query: %q space=%q", query, opts.SpaceKey)

	query = strings.TrimSpace(query)
	response := &domain.SearchResponse{
		Query:   query,
		Results: []domain.RetrievalResult{},
		Sources: []string{},
	}
	if query == "" {
		return response, nil
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	// Step 1: live wiki search for fresh candidates.
	candidates := r.wikiCandidates(ctx, query, opts.SpaceKey)

	// Step 2: hydrate candidates; individual failures are skipped.
	docs := r.hydrateCandidates(ctx, candidates)

	// Step 3: best-effort incremental indexing of what we just fetched.
	if len(docs) > 0 && r.ingester != nil {
		if _, err := r.ingester.Ingest(ctx, docs); err != nil {
			logger.Warn("Search: failed to index %d documents: %v", len(docs), err)
		}
	}

	// Step 4: vector similarity query; degrades to no matches.
	matches := r.vectorMatches(ctx, query, topK)

	// Step 5: merge, preferring vector matches.
	response.Results = mergeResults(docs, matches, topK)
	response.TotalFound = len(response.Results)
	response.Sources = distinctSpaces(response.Results)

	logger.Info("Search: %d results from %d space(s)", response.TotalFound, len(response.Sources))
	return response, nil
}

// wikiCandidates returns at most candidateLimit fresh search hits.
// Transport failure yields an empty candidate list.
func (r *RetrievalService) wikiCandidates(ctx context.Context, query, spaceKey string) []domain.PageSummary {
	if r.wiki == nil {
		logger.Debug("Search: wiki source not configured")
		return nil
	}

	candidates, err := r.wiki.SearchPages(ctx, query, spaceKey)
	if err != nil {
		logger.Warn("Search: wiki search failed: %v", err)
		return nil
	}

	if len(candidates) > candidateLimit {
		candidates = candidates[:candidateLimit]
	}
	logger.Debug("Search: %d wiki candidates", len(candidates))
	return candidates
}

// hydrateCandidates fetches full content for each candidate. Pages that
// have vanished or fail to fetch are skipped, never aborting the loop.
func (r *RetrievalService) hydrateCandidates(
	ctx context.Context, candidates []domain.PageSummary,
) []domain.Document {
	docs := make([]domain.Document, 0, len(candidates))

	for _, c := range candidates {
		if c.ID == "" {
			continue
		}

		page, err := r.wiki.GetPage(ctx, c.ID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Debug("Search: fetch page %s: %v", c.ID, err)
			}
			continue
		}

		docs = append(docs, DocumentFromPage(page))
	}

	return docs
}

// vectorMatches embeds the query and asks the index for topK neighbours.
// Any failure on this leg degrades to an empty match list.
func (r *RetrievalService) vectorMatches(ctx context.Context, query string, topK int) []driven.VectorMatch {
	if r.vectorIndex == nil || r.embedding == nil {
		logger.Debug("Search: vector leg not configured")
		return nil
	}

	vector, err := r.embedding.Embed(ctx, query)
	if err != nil {
		logger.Warn("Search: query embedding failed: %v", err)
		return nil
	}

	matches, err := r.vectorIndex.Query(ctx, vector, topK, nil, "")
	if err != nil {
		logger.Warn("Search: vector query failed: %v", err)
		return nil
	}

	logger.Debug("Search: %d vector matches", len(matches))
	return matches
}

// mergeResults builds the final ranked list. Vector matches win: up to
// topK of them, deduplicated by page id, tagged high relevance. Only when
// no vector match survives does the raw wiki candidate list serve as a
// medium-relevance fallback. The two sources are never blended.
func mergeResults(docs []domain.Document, matches []driven.VectorMatch, topK int) []domain.RetrievalResult {
	seen := make(map[string]bool)
	results := make([]domain.RetrievalResult, 0, topK)

	for _, m := range matches {
		if len(results) >= topK {
			break
		}
		pageID := m.Metadata.PageID
		if pageID == "" || seen[pageID] {
			continue
		}
		seen[pageID] = true

		results = append(results, domain.RetrievalResult{
			ID:        pageID,
			Title:     m.Metadata.PageTitle,
			SpaceKey:  m.Metadata.SpaceKey,
			URL:       m.Metadata.URL,
			Score:     m.Score,
			Relevance: domain.RelevanceHigh,
			Preview:   m.Metadata.Text,
		})
	}

	if len(results) > 0 {
		return results
	}

	for _, doc := range docs {
		if len(results) >= topK {
			break
		}
		if doc.ID == "" || seen[doc.ID] {
			continue
		}
		seen[doc.ID] = true

		results = append(results, domain.RetrievalResult{
			ID:        doc.ID,
			Title:     doc.Title,
			SpaceKey:  doc.SpaceKey,
			URL:       doc.URL,
			Score:     1.0,
			Relevance: domain.RelevanceMedium,
			Preview:   segment.Preview(doc.Content, PreviewLength),
		})
	}

	return results
}

// distinctSpaces collects the space keys represented in the results,
// preserving first-seen order.
func distinctSpaces(results []domain.RetrievalResult) []string {
	seen := make(map[string]bool)
	sources := make([]string, 0, len(results))

	for _, res := range results {
		key := res.SpaceKey
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		sources = append(sources, key)
	}

	return sources
}

// Spaces lists all spaces visible to the configured identity.
func (r *RetrievalService) Spaces(ctx context.Context) ([]domain.Space, error) {
	if r.wiki == nil {
		return nil, domain.ErrWikiUnavailable
	}
	return r.wiki.ListSpaces(ctx)
}

// RecentUpdates lists pages modified in the last N days.
func (r *RetrievalService) RecentUpdates(ctx context.Context, days, limit int) ([]domain.PageSummary, error) {
	if r.wiki == nil {
		return nil, domain.ErrWikiUnavailable
	}
	if days <= 0 {
		days = 7
	}
	if limit <= 0 {
		limit = 20
	}

	since := time.Now().AddDate(0, 0, -days)
	return r.wiki.RecentlyModified(ctx, since, limit)
}
