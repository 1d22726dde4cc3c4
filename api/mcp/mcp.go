// Package mcp provides an MCP (Model Context Protocol) server exposing the
// engram memory tools to agents.
//
// The five tools mirror the automatic lifecycle hooks' primitives but are
// invoked explicitly by the agent. Each tool is gated independently on
// backend availability: when the gate reports unreachable the tool answers
// with a fixed human-readable message instead of an error, and once past the
// gate any backend failure propagates to the caller.
package mcp

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/engram-memory/engram/pkg/availability"
	"github.com/engram-memory/engram/pkg/memory"
	"github.com/engram-memory/engram/pkg/utils"
)

// Gate is the reachability check consulted before every tool call.
// *availability.Gate satisfies it.
type Gate interface {
	Available(ctx context.Context) bool
}

type Config struct {
	// Backend executes the memory operations.
	Backend memory.Backend

	// Gate short-circuits tools when the backend is unreachable.
	Gate Gate

	// Noop for an empty MCP server with no tools configured.
	Noop bool

	// Logger is the configured zap logger.
	Logger *zap.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the memory tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "engram",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	if c.Noop {
		// return the empty MCP server with no tools configured
		// if the noop flag is set
		return s, nil
	}

	if c.Backend == nil {
		return nil, errors.New("memory backend is required")
	}
	if c.Gate == nil {
		return nil, errors.New("availability gate is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        storeToolName,
		Description: storeDescription,
	}, s.handleStore)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        searchToolName,
		Description: searchDescription,
	}, s.handleSearch)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        recallToolName,
		Description: recallDescription,
	}, s.handleRecall)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        forgetToolName,
		Description: forgetDescription,
	}, s.handleForget)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        statsToolName,
		Description: statsDescription,
	}, s.handleStats)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// unavailable builds the fixed short-circuit result used by every tool.
func unavailable() *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: availability.UnavailableMessage},
		},
	}
}

// textResult wraps plain text in a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errorResult wraps an input-validation message in an IsError tool result.
func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
