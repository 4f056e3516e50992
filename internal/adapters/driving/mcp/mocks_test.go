package mcp

import (
	"context"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.KnowledgeSearch.
type mockSearchService struct {
	response *domain.SearchResponse
	err      error
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	_ driving.SearchOptions,
) (*domain.SearchResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}
	return &domain.SearchResponse{Query: query, Results: []domain.RetrievalResult{}, Sources: []string{}}, nil
}

// mockSyncService is a mock implementation of driving.KnowledgeSync.
type mockSyncService struct {
	report  *domain.SyncReport
	status  *driving.SyncStatus
	ingests int
	err     error
}

func (m *mockSyncService) Sync(_ context.Context, _ string, _ bool) (*domain.SyncReport, error) {
	return m.report, m.err
}

func (m *mockSyncService) Ingest(_ context.Context, _ []domain.Document) (int, error) {
	return m.ingests, m.err
}

func (m *mockSyncService) Status(_ context.Context, _ string) (*driving.SyncStatus, error) {
	return m.status, m.err
}

// mockDirectoryService is a mock implementation of driving.SpaceDirectory.
type mockDirectoryService struct {
	spaces  []domain.Space
	updates []domain.PageSummary
	err     error
}

func (m *mockDirectoryService) Spaces(_ context.Context) ([]domain.Space, error) {
	return m.spaces, m.err
}

func (m *mockDirectoryService) RecentUpdates(_ context.Context, _, _ int) ([]domain.PageSummary, error) {
	return m.updates, m.err
}
