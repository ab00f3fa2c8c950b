// ABOUTME: Tests for record decoding at the store boundary.
// ABOUTME: Covers missing fields, wrong types, and round trips.

package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDecodeMissingFields(t *testing.T) {
	m := Decode(Record{})

	if m.ResourceName != "No Title" || m.Contributor != "Anonymous" || m.Link != "#" {
		t.Errorf("expected defaults, got %+v", m)
	}
	if m.Tags == nil || len(m.Tags) != 0 {
		t.Errorf("expected empty non-nil tags, got %#v", m.Tags)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"tags":[]`) {
		t.Errorf("expected empty tags array in %s", data)
	}
}

func TestNormalizedEmptyTagsStayNonNil(t *testing.T) {
	m := Material{Tags: []string{}}.Normalized()
	if m.Tags == nil {
		t.Error("expected non-nil tags")
	}
}

func TestDecodeWrongTypes(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		tags []string
	}{
		{"tags as string", Record{"tags": "go,rust"}, []string{}},
		{"tags as number", Record{"tags": 42}, []string{}},
		{"tags nil", Record{"tags": nil}, []string{}},
		{"mixed elements", Record{"tags": []any{"go", 7, true, "rust"}}, []string{"go", "", "", "rust"}},
		{"typed strings", Record{"tags": []string{"a", "b"}}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Decode(tt.rec)
			if !reflect.DeepEqual(m.Tags, tt.tags) {
				t.Errorf("expected tags %q, got %q", tt.tags, m.Tags)
			}
		})
	}

	m := Decode(Record{"contributor": 12, "resourceName": []int{1}, "link": false})
	if m.Contributor != "Anonymous" || m.ResourceName != "No Title" || m.Link != "#" {
		t.Errorf("expected defaults for wrong-typed fields, got %+v", m)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	orig := NewMaterial("alice", "Go Tour", "https://go.dev", []string{"go", "", "intro"})

	got := Decode(orig.ToRecord())

	if got.ID != orig.ID {
		t.Errorf("expected ID %v, got %v", orig.ID, got.ID)
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("expected CreatedAt %v, got %v", orig.CreatedAt, got.CreatedAt)
	}
	if !reflect.DeepEqual(got.Tags, orig.Tags) {
		t.Errorf("expected tags %q, got %q", orig.Tags, got.Tags)
	}
}
