// ABOUTME: Tests for the material filter.
// ABOUTME: Checks identity on empty query, ordering, and case folding.

package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/harper/materials/internal/models"
)

func sample() []models.Material {
	return []models.Material{
		{Contributor: "Alice", ResourceName: "Go Tour", Tags: []string{"go", "intro"}},
		{Contributor: "Bob", ResourceName: "Rust Book", Tags: []string{"rust"}},
		{Contributor: "alice", ResourceName: "Wasm Guide", Tags: []string{"wasm", "rust"}},
		{Contributor: "Carol", ResourceName: "Untagged"},
	}
}

func resourceNames(ms []models.Material) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ResourceName
	}
	return out
}

func TestFilterEmptyQueryReturnsInput(t *testing.T) {
	in := sample()

	got := Filter(in, "")

	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
	if len(got) > 0 && &got[0] != &in[0] {
		t.Error("expected the same slice back for an empty query")
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	upper := Filter(sample(), "ALICE")
	lower := Filter(sample(), "alice")

	if diff := cmp.Diff(upper, lower); diff != "" {
		t.Errorf("case changed the result (-upper +lower):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Go Tour", "Wasm Guide"}, resourceNames(lower)); diff != "" {
		t.Errorf("unexpected matches (-want +got):\n%s", diff)
	}
}

func TestFilterMatchesFields(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"rust", []string{"Rust Book", "Wasm Guide"}},
		{"tour", []string{"Go Tour"}},
		{"bob", []string{"Rust Book"}},
		{"go intro", []string{"Go Tour"}},
		{"intro", []string{"Go Tour"}},
		{"carol untagged", []string{"Untagged"}},
		{"nothing-matches", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := resourceNames(Filter(sample(), tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := sample()
	before := resourceNames(in)

	_ = Filter(in, "rust")

	if diff := cmp.Diff(before, resourceNames(in)); diff != "" {
		t.Errorf("input was modified (-before +after):\n%s", diff)
	}
}

func TestFilterNilTags(t *testing.T) {
	in := []models.Material{{Contributor: "x", ResourceName: "y"}}
	if got := Filter(in, "y"); len(got) != 1 {
		t.Errorf("expected 1 match, got %d", len(got))
	}
}
