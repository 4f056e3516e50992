package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
)

func validPorts() *Ports {
	return &Ports{
		Search:    &mockSearchService{},
		Sync:      &mockSyncService{},
		Directory: &mockDirectoryService{},
	}
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		ports := validPorts()
		ports.Search = &mockSearchService{
			response: &domain.SearchResponse{
				Query: "deploy process",
				Results: []domain.RetrievalResult{
					{
						ID:        "12345",
						Title:     "Deploy Runbook",
						SpaceKey:  "ENG",
						URL:       "https://example.atlassian.net/wiki/spaces/ENG/pages/12345",
						Score:     0.92,
						Relevance: domain.RelevanceHigh,
						Preview:   "Run the deploy script...",
					},
				},
				TotalFound: 1,
				Sources:    []string{"ENG"},
			},
		}

		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "deploy process"}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "deploy process", output.Query)
		assert.Equal(t, 1, output.TotalFound)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "12345", output.Results[0].ID)
		assert.Equal(t, "Deploy Runbook", output.Results[0].Title)
		assert.Equal(t, "ENG", output.Results[0].Space)
		assert.Equal(t, 0.92, output.Results[0].Score)
		assert.Equal(t, "high", output.Results[0].Relevance)
		assert.Equal(t, []string{"ENG"}, output.Sources)
		assert.Equal(t, SearchMetadata{
			SearchStrategy:   "hybrid",
			VectorSearch:     true,
			ConfluenceSearch: true,
		}, output.Metadata)
	})

	t.Run("empty results keep sources non-nil", func(t *testing.T) {
		ports := validPorts()
		ports.Search = &mockSearchService{
			response: &domain.SearchResponse{Query: "nothing", Results: []domain.RetrievalResult{}},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "nothing"})

		require.NoError(t, err)
		assert.Empty(t, output.Results)
		assert.NotNil(t, output.Sources)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		ports := validPorts()
		ports.Search = &mockSearchService{err: errors.New("search failed")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleSync(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sync report", func(t *testing.T) {
		ports := validPorts()
		ports.Sync = &mockSyncService{
			report: &domain.SyncReport{
				SpacesSynced:     2,
				DocumentsIndexed: 40,
				ChunksCreated:    180,
				SyncType:         "full",
			},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSync(ctx, nil, SyncInput{FullSync: true})

		require.NoError(t, err)
		assert.Equal(t, 2, output.SpacesSynced)
		assert.Equal(t, 40, output.DocumentsIndexed)
		assert.Equal(t, 180, output.ChunksCreated)
		assert.Equal(t, "full", output.SyncType)
	})

	t.Run("returns error on sync failure", func(t *testing.T) {
		ports := validPorts()
		ports.Sync = &mockSyncService{err: errors.New("embedding unavailable")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleSync(ctx, nil, SyncInput{SpaceKey: "ENG"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding unavailable")
	})
}

func TestServer_handleSpaceInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("lists spaces", func(t *testing.T) {
		ports := validPorts()
		ports.Directory = &mockDirectoryService{
			spaces: []domain.Space{
				{Key: "ENG", Name: "Engineering", Type: "global"},
				{Key: "HR", Name: "People", Type: "global"},
			},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleSpaceInfo(ctx, nil, SpaceInfoInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Spaces, 2)
		assert.Equal(t, "ENG", output.Spaces[0].Key)
		assert.Equal(t, "Engineering", output.Spaces[0].Name)
	})
}

func TestServer_handleRecentUpdates(t *testing.T) {
	ctx := context.Background()

	t.Run("lists recent pages with timestamps", func(t *testing.T) {
		updated := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
		ports := validPorts()
		ports.Directory = &mockDirectoryService{
			updates: []domain.PageSummary{
				{ID: "99", Title: "Release Notes", SpaceKey: "ENG", UpdatedAt: updated},
			},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleRecentUpdates(ctx, nil, RecentUpdatesInput{Days: 7})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Updates, 1)
		assert.Equal(t, "99", output.Updates[0].ID)
		assert.Equal(t, "2026-08-20T09:30:00Z", output.Updates[0].UpdatedAt)
	})

	t.Run("zero time omits timestamp", func(t *testing.T) {
		ports := validPorts()
		ports.Directory = &mockDirectoryService{
			updates: []domain.PageSummary{{ID: "1", Title: "No Version"}},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleRecentUpdates(ctx, nil, RecentUpdatesInput{})

		require.NoError(t, err)
		assert.Empty(t, output.Updates[0].UpdatedAt)
	})

	t.Run("returns error on directory failure", func(t *testing.T) {
		ports := validPorts()
		ports.Directory = &mockDirectoryService{err: errors.New("wiki down")}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleRecentUpdates(ctx, nil, RecentUpdatesInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "wiki down")
	})
}
