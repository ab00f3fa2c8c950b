// ABOUTME: Material model representing a submitted tech resource.
// ABOUTME: Provides the form constructor and tag-splitting rule.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultResourceName = "No Title"
	DefaultContributor  = "Anonymous"
	DefaultLink         = "#"
)

type Material struct {
	ID           uuid.UUID `json:"id"`
	Contributor  string    `json:"contributor"`
	ResourceName string    `json:"resourceName"`
	Link         string    `json:"link"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewMaterial(contributor, resourceName, link string, tags []string) *Material {
	if tags == nil {
		tags = []string{}
	}
	return &Material{
		ID:           uuid.New(),
		Contributor:  contributor,
		ResourceName: resourceName,
		Link:         link,
		Tags:         tags,
		CreatedAt:    time.Now(),
	}
}

// ParseTags splits a comma-separated string and trims each segment.
// Empty segments are kept, so "a,,b" yields ["a", "", "b"].
func ParseTags(input string) []string {
	parts := strings.Split(input, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Normalized returns a copy with display defaults filled in for empty
// fields and a non-nil tag slice.
func (m Material) Normalized() Material {
	if m.ResourceName == "" {
		m.ResourceName = DefaultResourceName
	}
	if m.Contributor == "" {
		m.Contributor = DefaultContributor
	}
	if m.Link == "" {
		m.Link = DefaultLink
	}
	m.Tags = append([]string{}, m.Tags...)
	return m
}

// SearchText is the lower-cased text the filter matches against.
func (m Material) SearchText() string {
	return strings.ToLower(m.Contributor + " " + m.ResourceName + " " + strings.Join(m.Tags, " "))
}
