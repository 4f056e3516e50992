package services

import (
	"context"
	"sync"
	"time"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockWiki implements driven.WikiSource for testing.
type mockWiki struct {
	spaces  []domain.Space
	pages   map[string][]domain.PageSummary // keyed by space
	content map[string]*domain.Page         // keyed by page id
	hits    []domain.PageSummary
	recent  []domain.PageSummary

	listSpacesErr error
	listPagesErr  error
	getPageErr    error
	searchErr     error
	recentErr     error

	mu       sync.Mutex
	getCalls []string
}

func (m *mockWiki) ListSpaces(_ context.Context) ([]domain.Space, error) {
	if m.listSpacesErr != nil {
		return nil, m.listSpacesErr
	}
	return m.spaces, nil
}

func (m *mockWiki) ListPages(_ context.Context, spaceKey string) ([]domain.PageSummary, error) {
	if m.listPagesErr != nil {
		return nil, m.listPagesErr
	}
	return m.pages[spaceKey], nil
}

func (m *mockWiki) GetPage(_ context.Context, id string) (*domain.Page, error) {
	m.mu.Lock()
	m.getCalls = append(m.getCalls, id)
	m.mu.Unlock()

	if m.getPageErr != nil {
		return nil, m.getPageErr
	}
	page, ok := m.content[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return page, nil
}

func (m *mockWiki) SearchPages(_ context.Context, _, _ string) ([]domain.PageSummary, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.hits, nil
}

func (m *mockWiki) RecentlyModified(_ context.Context, _ time.Time, _ int) ([]domain.PageSummary, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	return m.recent, nil
}

func (m *mockWiki) PageChildren(_ context.Context, _ string) ([]domain.PageSummary, error) {
	return nil, nil
}

func (m *mockWiki) PageAncestors(_ context.Context, _ string) ([]domain.PageSummary, error) {
	return nil, nil
}

func (m *mockWiki) Close() error { return nil }

// mockEmbedding implements driven.EmbeddingService for testing.
// Embed returns a fixed-size vector derived from the text length so
// different chunks stay distinguishable.
type mockEmbedding struct {
	embedErr error

	mu    sync.Mutex
	calls int
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return []float32{float32(len(text)), 0.5, 0.25}, nil
}

func (m *mockEmbedding) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (m *mockEmbedding) Dimensions() int              { return 3 }
func (m *mockEmbedding) ModelName() string            { return "mock-embedding" }
func (m *mockEmbedding) Ping(_ context.Context) error { return nil }
func (m *mockEmbedding) Close() error                 { return nil }

func (m *mockEmbedding) embedCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	matches []driven.VectorMatch

	upsertErr error
	queryErr  error

	mu       sync.Mutex
	upserted []driven.IndexEntry
	upserts  int
}

func (m *mockVectorIndex) Upsert(_ context.Context, entries []driven.IndexEntry, _ string) (driven.UpsertResult, error) {
	if m.upsertErr != nil {
		return driven.UpsertResult{}, m.upsertErr
	}
	m.mu.Lock()
	m.upserted = append(m.upserted, entries...)
	m.upserts++
	m.mu.Unlock()
	return driven.UpsertResult{Count: len(entries)}, nil
}

func (m *mockVectorIndex) Query(_ context.Context, _ []float32, topK int, _ *float64, _ string) ([]driven.VectorMatch, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if topK < len(m.matches) {
		return m.matches[:topK], nil
	}
	return m.matches, nil
}

func (m *mockVectorIndex) Delete(_ context.Context, _ []string, _ bool, _ string) error {
	return nil
}

func (m *mockVectorIndex) Fetch(_ context.Context, _ []string, _ string) (map[string]driven.IndexEntry, error) {
	return nil, nil
}

func (m *mockVectorIndex) UpdateMetadata(_ context.Context, _ string, _ driven.EntryMetadata, _ string) error {
	return nil
}

func (m *mockVectorIndex) Stats(_ context.Context) (driven.IndexStats, error) {
	return driven.IndexStats{}, nil
}

func (m *mockVectorIndex) Close() error { return nil }

func (m *mockVectorIndex) upsertedEntries() []driven.IndexEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]driven.IndexEntry(nil), m.upserted...)
}

func (m *mockVectorIndex) upsertCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upserts
}
