// ABOUTME: MCP tools for adding, listing, and rendering materials.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/materials/internal/filter"
	"github.com/harper/materials/internal/models"
	"github.com/harper/materials/internal/render"
	"github.com/harper/materials/internal/repository"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// add_material
	s.server.AddTool(&mcp.Tool{
		Name:        "add_material",
		Description: "Add a tech material with contributor, resource name, link and tags",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"contributor": {"type": "string", "description": "Who is sharing it"},
				"resource_name": {"type": "string", "description": "Name of the resource"},
				"link": {"type": "string", "description": "Where to find it"},
				"tags": {"type": "string", "description": "Comma separated tags"}
			},
			"required": ["resource_name"]
		}`),
	}, s.handleAddMaterial)

	// list_materials
	s.server.AddTool(&mcp.Tool{
		Name:        "list_materials",
		Description: "List materials, optionally filtered by a case-insensitive search query",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Matches contributor, resource name and tags"}
			}
		}`),
	}, s.handleListMaterials)

	// get_material
	s.server.AddTool(&mcp.Tool{
		Name:        "get_material",
		Description: "Get a material by ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Material ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetMaterial)

	// render_materials
	s.server.AddTool(&mcp.Tool{
		Name:        "render_materials",
		Description: "Render materials as escaped HTML cards",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Optional search query"}
			}
		}`),
	}, s.handleRenderMaterials)
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// Tool handlers.
func (s *Server) handleAddMaterial(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Contributor  string `json:"contributor"`
		ResourceName string `json:"resource_name"`
		Link         string `json:"link"`
		Tags         string `json:"tags"`
	}
	if err := decodeArgs(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	form := models.Form{
		Contributor:  params.Contributor,
		ResourceName: params.ResourceName,
		Link:         params.Link,
		Tags:         params.Tags,
	}
	m := form.Material()
	if err := s.repo.Add(ctx, m); err != nil {
		var persistErr *repository.PersistError
		if errors.As(err, &persistErr) {
			return toolError("failed to add material: %v", err), nil
		}
		s.log.WithError(err).Warn("reload after add")
	}

	return toolText(fmt.Sprintf("Added material %s", m.ID.String())), nil
}

func (s *Server) handleListMaterials(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query string `json:"query"`
	}
	if err := decodeArgs(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	ms := filter.Filter(s.repo.Materials(), params.Query)
	data, err := json.MarshalIndent(ms, "", "  ")
	if err != nil {
		return toolError("failed to encode materials: %v", err), nil
	}
	return toolText(string(data)), nil
}

func (s *Server) handleGetMaterial(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	m, err := s.repo.Find(strings.TrimSpace(params.ID))
	if err != nil {
		return toolError("failed to get material: %v", err), nil
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return toolError("failed to encode material: %v", err), nil
	}
	return toolText(string(data)), nil
}

func (s *Server) handleRenderMaterials(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query string `json:"query"`
	}
	if err := decodeArgs(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	var buf render.Buffer
	buf.Replace(render.Render(filter.Filter(s.repo.Materials(), params.Query)))
	return toolText(buf.String()), nil
}
