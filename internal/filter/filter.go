// ABOUTME: Case-insensitive substring search over materials.
// ABOUTME: Pure function, safe to run on every keystroke.

package filter

import (
	"strings"

	"github.com/harper/materials/internal/models"
)

// Filter returns, in their original order, the materials whose
// contributor, resource name and space-joined tags contain query,
// ignoring case. An empty query returns materials as is.
func Filter(materials []models.Material, query string) []models.Material {
	if query == "" {
		return materials
	}

	q := strings.ToLower(query)
	out := make([]models.Material, 0, len(materials))
	for _, m := range materials {
		if strings.Contains(m.SearchText(), q) {
			out = append(out, m)
		}
	}
	return out
}
