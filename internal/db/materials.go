// ABOUTME: Document-style storage of material records in SQLite.
// ABOUTME: Each record is kept as a JSON document in insertion order.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/materials/internal/models"
)

var ErrPrefixTooShort = errors.New("prefix must be at least 6 characters")
var ErrAmbiguousPrefix = errors.New("prefix matches multiple materials")
var ErrMaterialNotFound = errors.New("material not found")

// CreateMaterial stores rec as a document. Records without an id get one.
func CreateMaterial(ctx context.Context, db *sql.DB, rec models.Record) error {
	id, _ := rec["id"].(string)
	if id == "" {
		id = uuid.New().String()
		rec = withID(rec, id)
	}

	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal material: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO materials (id, doc, created_at) VALUES (?, ?, ?)`,
		id, string(doc), time.Now().UTC(),
	)
	return err
}

// ListMaterials returns every document in insertion order.
func ListMaterials(ctx context.Context, db *sql.DB) ([]models.Record, error) {
	rows, err := db.QueryContext(ctx, `SELECT doc FROM materials ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanDocs(rows)
}

// GetMaterialByPrefix finds a single document whose id starts with prefix.
func GetMaterialByPrefix(ctx context.Context, db *sql.DB, prefix string) (models.Record, error) {
	if len(prefix) < 6 {
		return nil, ErrPrefixTooShort
	}

	rows, err := db.QueryContext(ctx, `SELECT doc FROM materials WHERE id LIKE ? ORDER BY rowid`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	recs, err := scanDocs(rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrMaterialNotFound
	}
	if len(recs) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(recs))
	}
	return recs[0], nil
}

func scanDocs(rows *sql.Rows) ([]models.Record, error) {
	var recs []models.Record
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var rec models.Record
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			return nil, fmt.Errorf("invalid material document: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

func withID(rec models.Record, id string) models.Record {
	out := make(models.Record, len(rec)+1)
	for k, v := range rec {
		out[k] = v
	}
	out["id"] = id
	return out
}
