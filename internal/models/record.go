// ABOUTME: Untyped store records and their decode/normalize step.
// ABOUTME: Converts loosely shaped documents into fully defaulted Materials.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Record is a document as it comes out of a backing store. Fields may be
// absent or carry the wrong type.
type Record map[string]any

// ToRecord converts a Material into the record shape stores persist.
func (m *Material) ToRecord() Record {
	tags := make([]any, len(m.Tags))
	for i, t := range m.Tags {
		tags[i] = t
	}
	r := Record{
		"contributor":  m.Contributor,
		"resourceName": m.ResourceName,
		"link":         m.Link,
		"tags":         tags,
	}
	if m.ID != uuid.Nil {
		r["id"] = m.ID.String()
	}
	if !m.CreatedAt.IsZero() {
		r["createdAt"] = m.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return r
}

// Decode produces a fully defaulted Material from a record. It never
// fails: unusable fields fall back to their defaults.
func Decode(r Record) Material {
	m := Material{
		Contributor:  stringField(r, "contributor"),
		ResourceName: stringField(r, "resourceName"),
		Link:         stringField(r, "link"),
		Tags:         tagsField(r),
	}
	if id, err := uuid.Parse(stringField(r, "id")); err == nil {
		m.ID = id
	}
	if ts, err := time.Parse(time.RFC3339Nano, stringField(r, "createdAt")); err == nil {
		m.CreatedAt = ts
	}
	return m.Normalized()
}

// DecodeAll decodes records in order.
func DecodeAll(records []Record) []Material {
	out := make([]Material, len(records))
	for i, r := range records {
		out[i] = Decode(r)
	}
	return out
}

func stringField(r Record, key string) string {
	s, _ := r[key].(string)
	return s
}

func tagsField(r Record) []string {
	switch v := r["tags"].(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		tags := make([]string, len(v))
		for i, t := range v {
			tags[i], _ = t.(string)
		}
		return tags
	default:
		return []string{}
	}
}
