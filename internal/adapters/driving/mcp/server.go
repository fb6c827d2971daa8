// Package mcp exposes the retrieval service as Model Context Protocol
// tools, so agent hosts can query and maintain the notes corpus.
package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sph3inz/MindFeed/internal/core/ports/driving"
)

// Version is the MCP server version.
const Version = "0.1.0"

// ErrMissingRetrievalService indicates the server was built without its
// retrieval service.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// Server is the MCP server for MindFeed.
type Server struct {
	retrieval driving.RetrievalService
	server    *mcp.Server
}

// NewServer creates a new MCP server over the retrieval service.
func NewServer(retrieval driving.RetrievalService) (*Server, error) {
	if retrieval == nil {
		return nil, ErrMissingRetrievalService
	}

	impl := &mcp.Implementation{
		Name:    "mindfeed",
		Version: Version,
	}

	s := &Server{
		retrieval: retrieval,
		server:    mcp.NewServer(impl, nil),
	}
	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
