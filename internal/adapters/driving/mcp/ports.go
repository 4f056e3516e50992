package mcp

import (
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search answers knowledge queries.
	Search driving.KnowledgeSearch

	// Sync re-ingests wiki content into the vector index.
	Sync driving.KnowledgeSync

	// Directory exposes space listings and recent updates.
	Directory driving.SpaceDirectory
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Sync == nil {
		return ErrMissingSyncService
	}
	if p.Directory == nil {
		return ErrMissingDirectoryService
	}
	return nil
}
