// ABOUTME: MCP resources for exposing materials as readable resources.
// ABOUTME: Allows AI agents to access a material via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/materials/internal/ui"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourcePrefix = "materials://material/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: resourcePrefix + "{id}",
			Name:        "Material",
			Description: "Access individual materials by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, ok := strings.CutPrefix(req.Params.URI, resourcePrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	m, err := s.repo.Find(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     ui.MaterialMarkdown(m),
			},
		},
	}, nil
}
