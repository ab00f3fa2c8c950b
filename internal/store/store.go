// ABOUTME: Storage interface shared by every material backend.
// ABOUTME: Backends expose list and append over untyped records.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/harper/materials/internal/models"
)

// ErrReadOnly is returned by Create on stores that only serve a baseline.
var ErrReadOnly = errors.New("store is read-only")

// Store is a backing store for material records. List returns records in
// the store's natural order; Create appends one record.
type Store interface {
	Name() string
	List(ctx context.Context) ([]models.Record, error)
	Create(ctx context.Context, rec models.Record) error
	Close() error
}

// Memory is an in-process Store, used when no persistent backend is
// configured and in tests.
type Memory struct {
	mu      sync.Mutex
	name    string
	records []models.Record
	err     error
}

func NewMemory(name string, records ...models.Record) *Memory {
	return &Memory{name: name, records: records}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Memory) Name() string { return m.name }

func (m *Memory) List(ctx context.Context) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.Record(nil), m.records...), nil
}

func (m *Memory) Create(ctx context.Context, rec models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *Memory) Close() error { return nil }
