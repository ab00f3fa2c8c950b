// ABOUTME: SQLite implementation of the material store interface.
// ABOUTME: Wraps the document functions around an owned connection.

package db

import (
	"context"
	"database/sql"

	"github.com/harper/materials/internal/models"
)

// Store serves material records from a SQLite database.
type Store struct {
	conn *sql.DB
	path string
}

// NewStore opens (and migrates) the database at path.
func NewStore(path string) (*Store, error) {
	conn, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &Store{conn: conn, path: path}, nil
}

func (s *Store) Name() string { return "sqlite:" + s.path }

func (s *Store) List(ctx context.Context) ([]models.Record, error) {
	return ListMaterials(ctx, s.conn)
}

func (s *Store) Create(ctx context.Context, rec models.Record) error {
	return CreateMaterial(ctx, s.conn, rec)
}

// Get looks a material up by id prefix.
func (s *Store) Get(ctx context.Context, prefix string) (models.Record, error) {
	return GetMaterialByPrefix(ctx, s.conn, prefix)
}

func (s *Store) Close() error {
	return s.conn.Close()
}
