// ABOUTME: MCP prompts for curating the materials collection.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/materials/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "suggest-tags",
		Description: "Suggest tags for a resource, reusing tags already in the collection",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "resource_name",
				Description: "Name of the resource",
				Required:    true,
			},
			{
				Name:        "link",
				Description: "Link to the resource",
				Required:    false,
			},
		},
	}, s.getSuggestTagsPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "review-collection",
		Description: "Review the collection for duplicates and missing details",
	}, s.getReviewCollectionPrompt)
}

// knownTags returns the distinct tags in the collection in first-seen order.
func knownTags(ms []models.Material) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, m := range ms {
		for _, tag := range m.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func (s *Server) getSuggestTagsPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := req.Params.Arguments["resource_name"]
	if name == "" {
		name = models.DefaultResourceName
	}
	link := req.Params.Arguments["link"]
	if link == "" {
		link = models.DefaultLink
	}

	existing := "none yet"
	if tags := knownTags(s.repo.Materials()); len(tags) > 0 {
		existing = strings.Join(tags, ", ")
	}

	text := fmt.Sprintf(`Suggest 2 to 5 short, lowercase tags for this tech material:

Resource: %s
Link: %s

Tags already used in the collection: %s

Prefer existing tags where they fit. Answer with a single comma separated
line, then use the add_material tool with that line as the tags argument.`, name, link, existing)

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}, nil
}

func (s *Server) getReviewCollectionPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	text := fmt.Sprintf(`The collection currently holds %d materials.

Use the list_materials tool to read them, then point out:
1. Entries that look like duplicates of each other
2. Entries still showing "%s", "%s" or a "%s" link
3. Tags that mean the same thing but are spelled differently

Do not add anything yourself; list your findings.`,
		len(s.repo.Materials()), models.DefaultResourceName, models.DefaultContributor, models.DefaultLink)

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}, nil
}
