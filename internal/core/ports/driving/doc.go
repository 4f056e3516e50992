// Package driving provides interfaces exposed to primary adapters (CLI, MCP).
package driving
