// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Kognita. It enables AI assistants to search and sync the wiki knowledge
// base through structured tools.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingSyncService is returned when the sync service is not provided.
var ErrMissingSyncService = errors.New("mcp: sync service is required")

// ErrMissingDirectoryService is returned when the directory service is not provided.
var ErrMissingDirectoryService = errors.New("mcp: directory service is required")
