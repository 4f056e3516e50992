package mcp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName = "kognita"

	// Version is the MCP server version.
	Version = "0.1.0"
)

// Server exposes the knowledge tools over the Model Context Protocol.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer wires the driving ports into an MCP server with the tool set
// registered. All ports are required.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: Version,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled, then shuts the listener down.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
