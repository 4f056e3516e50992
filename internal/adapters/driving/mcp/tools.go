package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kognita-labs/kognita-cli/internal/core/ports/driving"
)

// SearchInput is the input schema for the search_knowledge tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"the question or phrase to search the knowledge base for"`
	SpaceKey string `json:"space_key,omitempty" jsonschema:"optional space key to scope the search"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search_knowledge tool.
type SearchOutput struct {
	Query      string               `json:"query"`
	Results    []SearchResultOutput `json:"results"`
	TotalFound int                  `json:"total_found"`
	Sources    []string             `json:"sources"`
	Metadata   SearchMetadata       `json:"metadata"`
}

// SearchMetadata describes how a search was answered. Both retrieval legs
// run on every query, so the strategy is always hybrid.
type SearchMetadata struct {
	SearchStrategy   string `json:"search_strategy"`
	VectorSearch     bool   `json:"vector_search"`
	ConfluenceSearch bool   `json:"confluence_search"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Space     string  `json:"space"`
	URL       string  `json:"url,omitempty"`
	Score     float64 `json:"score"`
	Relevance string  `json:"relevance"`
	Preview   string  `json:"preview,omitempty"`
}

// SyncInput is the input schema for the sync_knowledge_source tool.
type SyncInput struct {
	SpaceKey string `json:"space_key,omitempty" jsonschema:"optional space key; all spaces are synced when omitted"`
	FullSync bool   `json:"full_sync,omitempty" jsonschema:"label the run as a full re-sync instead of incremental"`
}

// SyncOutput is the output schema for the sync_knowledge_source tool.
type SyncOutput struct {
	SpacesSynced     int    `json:"spaces_synced"`
	DocumentsIndexed int    `json:"documents_indexed"`
	ChunksCreated    int    `json:"chunks_created"`
	SyncType         string `json:"sync_type"`
}

// SpaceInfoInput is the input schema for the get_space_info tool.
type SpaceInfoInput struct{}

// SpaceInfoOutput is the output schema for the get_space_info tool.
type SpaceInfoOutput struct {
	Spaces []SpaceOutput `json:"spaces"`
	Count  int           `json:"count"`
}

// SpaceOutput represents a single wiki space.
type SpaceOutput struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// RecentUpdatesInput is the input schema for the get_recent_updates tool.
type RecentUpdatesInput struct {
	Days  int `json:"days,omitempty" jsonschema:"look-back window in days (default 7)"`
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of pages to return (default 20)"`
}

// RecentUpdatesOutput is the output schema for the get_recent_updates tool.
type RecentUpdatesOutput struct {
	Updates []PageUpdateOutput `json:"updates"`
	Count   int                `json:"count"`
}

// PageUpdateOutput represents a recently modified page.
type PageUpdateOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Space     string `json:"space"`
	URL       string `json:"url,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the wiki knowledge base using hybrid keyword and semantic retrieval",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_knowledge_source",
		Description: "Re-ingest wiki content into the vector index, optionally scoped to one space",
	}, s.handleSync)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_space_info",
		Description: "List all wiki spaces available to the knowledge base",
	}, s.handleSpaceInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_recent_updates",
		Description: "List wiki pages modified within a recent time window",
	}, s.handleRecentUpdates)
}

// handleSearch handles the search_knowledge tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := driving.SearchOptions{
		SpaceKey: input.SpaceKey,
		TopK:     input.TopK,
	}

	resp, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Query:      resp.Query,
		Results:    make([]SearchResultOutput, len(resp.Results)),
		TotalFound: resp.TotalFound,
		Sources:    resp.Sources,
		Metadata: SearchMetadata{
			SearchStrategy:   "hybrid",
			VectorSearch:     true,
			ConfluenceSearch: true,
		},
	}
	if output.Sources == nil {
		output.Sources = []string{}
	}

	for i, r := range resp.Results {
		output.Results[i] = SearchResultOutput{
			ID:        r.ID,
			Title:     r.Title,
			Space:     r.SpaceKey,
			URL:       r.URL,
			Score:     r.Score,
			Relevance: string(r.Relevance),
			Preview:   r.Preview,
		}
	}

	return nil, output, nil
}

// handleSync handles the sync_knowledge_source tool invocation.
func (s *Server) handleSync(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SyncInput,
) (*mcp.CallToolResult, SyncOutput, error) {
	report, err := s.ports.Sync.Sync(ctx, input.SpaceKey, input.FullSync)
	if err != nil {
		return nil, SyncOutput{}, err
	}

	output := SyncOutput{
		SpacesSynced:     report.SpacesSynced,
		DocumentsIndexed: report.DocumentsIndexed,
		ChunksCreated:    report.ChunksCreated,
		SyncType:         report.SyncType,
	}
	return nil, output, nil
}

// handleSpaceInfo handles the get_space_info tool invocation.
func (s *Server) handleSpaceInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SpaceInfoInput,
) (*mcp.CallToolResult, SpaceInfoOutput, error) {
	spaces, err := s.ports.Directory.Spaces(ctx)
	if err != nil {
		return nil, SpaceInfoOutput{}, err
	}

	output := SpaceInfoOutput{
		Spaces: make([]SpaceOutput, len(spaces)),
		Count:  len(spaces),
	}
	for i, sp := range spaces {
		output.Spaces[i] = SpaceOutput{Key: sp.Key, Name: sp.Name, Type: sp.Type}
	}
	return nil, output, nil
}

// handleRecentUpdates handles the get_recent_updates tool invocation.
func (s *Server) handleRecentUpdates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecentUpdatesInput,
) (*mcp.CallToolResult, RecentUpdatesOutput, error) {
	pages, err := s.ports.Directory.RecentUpdates(ctx, input.Days, input.Limit)
	if err != nil {
		return nil, RecentUpdatesOutput{}, err
	}

	output := RecentUpdatesOutput{
		Updates: make([]PageUpdateOutput, len(pages)),
		Count:   len(pages),
	}
	for i, p := range pages {
		updated := ""
		if !p.UpdatedAt.IsZero() {
			updated = p.UpdatedAt.Format(time.RFC3339)
		}
		output.Updates[i] = PageUpdateOutput{
			ID:        p.ID,
			Title:     p.Title,
			Space:     p.SpaceKey,
			URL:       p.URL,
			UpdatedAt: updated,
		}
	}
	return nil, output, nil
}
