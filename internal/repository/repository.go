// ABOUTME: Repository owning the in-memory material collection.
// ABOUTME: Merges configured sources in order and persists new materials.

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/harper/materials/internal/models"
	"github.com/harper/materials/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Repository loads materials from an ordered list of sources and appends
// new ones to a single mutable store. The collection it holds is rebuilt
// on every load and handed out only as copies.
type Repository struct {
	sources []store.Store
	mutable store.Store
	log     logrus.FieldLogger

	mu        sync.RWMutex
	materials []models.Material
}

// Option configures a Repository.
type Option func(*Repository)

// WithBaseline adds a read-only source ahead of the mutable store.
// Baselines are merged in the order they are given.
func WithBaseline(s store.Store) Option {
	return func(r *Repository) {
		r.sources = append(r.sources, s)
	}
}

// WithMutable sets the store that receives new materials. It is always
// merged after every baseline.
func WithMutable(s store.Store) Option {
	return func(r *Repository) {
		r.mutable = s
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Repository) {
		r.log = log
	}
}

func New(opts ...Option) *Repository {
	r := &Repository{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(r)
	}
	if r.mutable != nil {
		r.sources = append(r.sources, r.mutable)
	}
	r.log = r.log.WithField("component", "repository")
	return r
}

// Sources returns the configured stores in merge order.
func (r *Repository) Sources() []store.Store {
	return append([]store.Store(nil), r.sources...)
}

// LoadAll reads every source and replaces the in-memory collection with
// their concatenation, in source order. On error the previous collection
// is kept and a *LoadError is returned.
func (r *Repository) LoadAll(ctx context.Context) ([]models.Material, error) {
	results := make([][]models.Record, len(r.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range r.sources {
		g.Go(func() error {
			recs, err := src.List(gctx)
			if err != nil {
				return &LoadError{Source: src.Name(), Err: err}
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.log.WithError(err).Error("load failed")
		return r.Materials(), err
	}

	var merged []models.Material
	for _, recs := range results {
		merged = append(merged, models.DecodeAll(recs)...)
	}
	if merged == nil {
		merged = []models.Material{}
	}

	r.mu.Lock()
	r.materials = merged
	r.mu.Unlock()

	r.log.WithField("count", len(merged)).Debug("materials loaded")
	return r.Materials(), nil
}

// Add persists m to the mutable store and reloads. If persisting fails
// the in-memory collection is left unchanged.
func (r *Repository) Add(ctx context.Context, m *models.Material) error {
	if r.mutable == nil {
		return &PersistError{Store: "repository", Err: ErrNoMutableStore}
	}

	log := r.log.WithField("id", m.ID.String())
	if err := r.mutable.Create(ctx, m.ToRecord()); err != nil {
		log.WithError(err).Error("persist failed")
		return &PersistError{Store: r.mutable.Name(), Err: err}
	}
	log.Info("material added")

	_, err := r.LoadAll(ctx)
	return err
}

// AddAll persists every material and reloads once at the end. Materials
// that fail to persist are skipped; their *PersistError values are joined
// into the returned error together with any reload failure. It returns how
// many were persisted.
func (r *Repository) AddAll(ctx context.Context, ms []*models.Material) (int, error) {
	if r.mutable == nil {
		return 0, &PersistError{Store: "repository", Err: ErrNoMutableStore}
	}

	var errs []error
	added := 0
	for _, m := range ms {
		if err := r.mutable.Create(ctx, m.ToRecord()); err != nil {
			r.log.WithField("id", m.ID.String()).WithError(err).Error("persist failed")
			errs = append(errs, &PersistError{Store: r.mutable.Name(), Err: err})
			continue
		}
		added++
	}
	r.log.WithField("count", added).Info("materials added")

	if added > 0 {
		if _, err := r.LoadAll(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return added, errors.Join(errs...)
}

// Materials returns a copy of the current collection.
func (r *Repository) Materials() []models.Material {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Material, len(r.materials))
	copy(out, r.materials)
	return out
}

// Find returns the material in the live collection whose ID starts with
// prefix. Materials that carry no ID never match.
func (r *Repository) Find(prefix string) (models.Material, error) {
	if len(prefix) < 6 {
		return models.Material{}, ErrPrefixTooShort
	}
	prefix = strings.ToLower(prefix)

	var found []models.Material
	for _, m := range r.Materials() {
		if m.ID == uuid.Nil {
			continue
		}
		if strings.HasPrefix(m.ID.String(), prefix) {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return models.Material{}, ErrNotFound
	case 1:
		return found[0], nil
	default:
		return models.Material{}, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(found))
	}
}

// Close closes every source.
func (r *Repository) Close() error {
	var first error
	for _, s := range r.sources {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
