package driving

import (
	"context"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
)

// KnowledgeSync re-ingests wiki content into the vector index.
type KnowledgeSync interface {
	// Sync ingests every page of the given space, or of all spaces when
	// spaceKey is empty. fullSync labels the run; both modes currently
	// fetch the same page set.
	Sync(ctx context.Context, spaceKey string, fullSync bool) (*domain.SyncReport, error)

	// Ingest normalises, chunks, embeds and upserts the given documents.
	// Returns the total number of chunks indexed.
	Ingest(ctx context.Context, docs []domain.Document) (int, error)

	// Status returns progress for the sync run targeting a space, or an
	// idle status when none is running.
	Status(ctx context.Context, spaceKey string) (*SyncStatus, error)
}

// SyncStatus represents the current state of a sync run.
type SyncStatus struct {
	// RunID uniquely identifies the sync run.
	RunID string

	// SpaceKey identifies the space being synced.
	SpaceKey string

	// Running indicates if sync is currently in progress.
	Running bool

	// DocumentsProcessed is the count of pages processed so far.
	DocumentsProcessed int

	// ErrorCount is the number of pages or spaces skipped due to errors.
	ErrorCount int
}
