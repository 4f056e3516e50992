package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driven"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driving"
	"github.com/kognita-labs/kognita-cli/internal/logger"
	"github.com/kognita-labs/kognita-cli/internal/segment"
)

// Ensure IngestService implements the interface.
var _ driving.KnowledgeSync = (*IngestService)(nil)

// PreviewLength caps the text preview stored in entry metadata.
const PreviewLength = 200

// maxConcurrentFetches bounds the page-fetch fan-out during sync.
const maxConcurrentFetches = 4

// maxConcurrentEmbeds bounds the per-chunk embedding fan-out.
const maxConcurrentEmbeds = 4

// IngestService turns wiki pages into vector index entries. It chains the
// segmenter, embedding service and vector index; the wiki source is only
// needed for Sync.
type IngestService struct {
	wiki        driven.WikiSource
	vectorIndex driven.VectorIndex
	embedding   driven.EmbeddingService
	segmenter   *segment.Segmenter

	// Status tracking
	mu          sync.RWMutex
	activeSyncs map[string]*driving.SyncStatus
}

// NewIngestService creates a new ingest service. The wiki source may be
// nil when only Ingest is used.
func NewIngestService(
	wiki driven.WikiSource,
	vectorIndex driven.VectorIndex,
	embedding driven.EmbeddingService,
	segmenter *segment.Segmenter,
) *IngestService {
	if segmenter == nil {
		segmenter = segment.New()
	}
	return &IngestService{
		wiki:        wiki,
		vectorIndex: vectorIndex,
		embedding:   embedding,
		segmenter:   segmenter,
		activeSyncs: make(map[string]*driving.SyncStatus),
	}
}

// Ingest chunks, embeds and upserts the given documents. Content must
// already be normalised (DocumentFromPage does that); re-normalising here
// would decode escaped entities a second level and corrupt pages that
// mention markup in their text. Chunks are embedded one call per chunk
// with a bounded fan-out; the final upsert waits for every embedding.
// Documents producing no chunks are skipped. Returns the total number of
// chunks indexed.
//
// Embedding failures propagate: nothing can be indexed without a vector.
// A vector index failure propagates after the count is known, so callers
// can report partial progress.
func (s *IngestService) Ingest(ctx context.Context, docs []domain.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	if s.embedding == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}
	if s.vectorIndex == nil {
		return 0, domain.ErrVectorIndexUnavailable
	}

	var entries []driven.IndexEntry

	for i := range docs {
		doc := &docs[i]

		chunks := s.segmenter.Split(doc.Content)
		if len(chunks) == 0 {
			logger.Debug("Ingest: page %s produced no chunks", doc.ID)
			continue
		}

		docEntries, err := s.embedChunks(ctx, doc, chunks)
		if err != nil {
			return 0, fmt.Errorf("ingest page %s: %w", doc.ID, err)
		}
		entries = append(entries, docEntries...)
	}

	if len(entries) == 0 {
		return 0, nil
	}

	result, err := s.vectorIndex.Upsert(ctx, entries, "")
	if err != nil {
		return 0, fmt.Errorf("upsert entries: %w", err)
	}

	logger.Debug("Ingest: upserted %d entries", result.Count)
	return len(entries), nil
}

// embedChunks embeds each chunk of one document concurrently and builds
// the index entries. Entry order within the slice follows chunk order,
// though the index itself is keyed by id and order is not significant.
func (s *IngestService) embedChunks(
	ctx context.Context, doc *domain.Document, chunks []string,
) ([]driven.IndexEntry, error) {
	entries := make([]driven.IndexEntry, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmbeds)

	for i, text := range chunks {
		g.Go(func() error {
			vector, err := s.embedding.Embed(gctx, text)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}

			chunk := domain.Chunk{PageID: doc.ID, Index: i, Text: text}
			entries[i] = driven.IndexEntry{
				ID:     chunk.EntryID(),
				Vector: vector,
				Metadata: driven.EntryMetadata{
					PageID:     doc.ID,
					PageTitle:  doc.Title,
					SpaceKey:   doc.SpaceKey,
					URL:        doc.URL,
					ChunkIndex: i,
					Text:       segment.Preview(text, PreviewLength),
				},
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Sync ingests every page of the given space, or of all known spaces when
// spaceKey is empty. Failures in one space or page are logged and skipped;
// sibling work continues. fullSync only labels the run: both modes fetch
// the same page set.
func (s *IngestService) Sync(ctx context.Context, spaceKey string, fullSync bool) (*domain.SyncReport, error) {
	if s.wiki == nil {
		return nil, domain.ErrWikiUnavailable
	}

	spaceKeys, err := s.resolveSpaces(ctx, spaceKey)
	if err != nil {
		return nil, err
	}

	syncType := "incremental"
	if fullSync {
		syncType = "full"
	}

	status := &driving.SyncStatus{
		RunID:    uuid.New().String(),
		SpaceKey: spaceKey,
		Running:  true,
	}
	s.setStatus(spaceKey, status)
	defer s.clearStatus(spaceKey)

	logger.Section("Sync")
	logger.Info("Starting %s sync of %d space(s)", syncType, len(spaceKeys))

	report := &domain.SyncReport{
		SpacesSynced: len(spaceKeys),
		SyncType:     syncType,
	}

	for _, key := range spaceKeys {
		docs, skipped := s.fetchSpaceDocuments(ctx, key)
		status.ErrorCount += skipped

		if len(docs) == 0 {
			continue
		}

		count, err := s.Ingest(ctx, docs)
		if err != nil {
			logger.Warn("Sync: space %s failed: %v", key, err)
			status.ErrorCount++
			continue
		}

		report.DocumentsIndexed += len(docs)
		report.ChunksCreated += count
		status.DocumentsProcessed += len(docs)
	}

	logger.Info("Sync complete: %d documents, %d chunks, %d errors",
		report.DocumentsIndexed, report.ChunksCreated, status.ErrorCount)
	status.Running = false

	return report, nil
}

// resolveSpaces expands an empty key into every known space key.
func (s *IngestService) resolveSpaces(ctx context.Context, spaceKey string) ([]string, error) {
	if spaceKey != "" {
		return []string{spaceKey}, nil
	}

	spaces, err := s.wiki.ListSpaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}

	keys := make([]string, 0, len(spaces))
	for _, sp := range spaces {
		if sp.Key != "" {
			keys = append(keys, sp.Key)
		}
	}
	return keys, nil
}

// fetchSpaceDocuments lists a space and fetches each page's full content
// with a bounded fan-out. Pages that fail to fetch are skipped; the
// returned count reports how many were skipped. A listing failure skips
// the whole space.
func (s *IngestService) fetchSpaceDocuments(ctx context.Context, spaceKey string) ([]domain.Document, int) {
	pages, err := s.wiki.ListPages(ctx, spaceKey)
	if err != nil {
		logger.Warn("Sync: list pages for space %s: %v", spaceKey, err)
		return nil, 1
	}

	var (
		mu      sync.Mutex
		docs    []domain.Document
		skipped int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, summary := range pages {
		g.Go(func() error {
			page, err := s.wiki.GetPage(gctx, summary.ID)
			if err != nil {
				logger.Debug("Sync: skipping page %s: %v", summary.ID, err)
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil // failures never cancel sibling fetches
			}

			doc := DocumentFromPage(page)
			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}

	// Goroutines only return nil; Wait is for completion.
	_ = g.Wait()

	return docs, skipped
}

// Status returns progress for the sync run targeting a space, or an idle
// status when none is running.
func (s *IngestService) Status(_ context.Context, spaceKey string) (*driving.SyncStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.activeSyncs[spaceKey]; ok {
		// Return a copy to avoid race conditions.
		copied := *status
		return &copied, nil
	}

	return &driving.SyncStatus{SpaceKey: spaceKey, Running: false}, nil
}

func (s *IngestService) setStatus(spaceKey string, status *driving.SyncStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSyncs[spaceKey] = status
}

func (s *IngestService) clearStatus(spaceKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeSyncs, spaceKey)
}

// DocumentFromPage normalises a fetched page into an indexable document.
func DocumentFromPage(page *domain.Page) domain.Document {
	return domain.Document{
		ID:        page.ID,
		Title:     page.Title,
		Content:   segment.Normalise(page.RawBody),
		SpaceKey:  page.SpaceKey,
		URL:       page.URL,
		Version:   page.Version,
		UpdatedAt: page.UpdatedAt,
	}
}
