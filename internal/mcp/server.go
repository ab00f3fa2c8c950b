// ABOUTME: MCP server for materials integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts over the repository.

package mcp

import (
	"context"

	"github.com/harper/materials/internal/repository"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

type Server struct {
	server *mcp.Server
	repo   *repository.Repository
	log    logrus.FieldLogger
}

func NewServer(repo *repository.Repository, log logrus.FieldLogger) *Server {
	s := &Server{repo: repo, log: log.WithField("component", "mcp")}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "materials",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
