// ABOUTME: Builds the repository and its stores from configuration.
// ABOUTME: Selects the mutable backend and optional baseline source.

package app

import (
	"fmt"
	"sync"

	"github.com/harper/materials/internal/charm"
	"github.com/harper/materials/internal/config"
	"github.com/harper/materials/internal/db"
	"github.com/harper/materials/internal/localstore"
	"github.com/harper/materials/internal/repository"
	"github.com/harper/materials/internal/static"
	"github.com/harper/materials/internal/store"
	"github.com/harper/materials/internal/ui"
	"github.com/sirupsen/logrus"
)

// Runtime owns everything opened for one process.
type Runtime struct {
	Config   *config.Config
	Repo     *repository.Repository
	Baseline *static.Store
	Mutable  store.Store
	Log      logrus.FieldLogger

	mu    sync.Mutex
	local *localstore.Store
}

// Open opens the configured stores and builds the repository.
func Open(cfg *config.Config, log logrus.FieldLogger) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Log: log}

	mutable, err := rt.openMutable()
	if err != nil {
		return nil, err
	}
	rt.Mutable = mutable

	opts := []repository.Option{repository.WithLogger(log), repository.WithMutable(mutable)}
	if cfg.Baseline != "" {
		rt.Baseline = static.New(cfg.Baseline)
		opts = append(opts, repository.WithBaseline(rt.Baseline))
	}
	rt.Repo = repository.New(opts...)

	log.WithFields(logrus.Fields{
		"store":    mutable.Name(),
		"baseline": cfg.Baseline,
	}).Debug("repository ready")
	return rt, nil
}

func (rt *Runtime) openMutable() (store.Store, error) {
	cfg := rt.Config
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := db.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.StoreCharm:
		c, err := charm.NewClient(cfg.Charm, charm.WithLogger(rt.Log))
		if err != nil {
			return nil, fmt.Errorf("open charm store: %w", err)
		}
		return c, nil
	case config.StoreLocal:
		local, err := rt.localStore()
		if err != nil {
			return nil, err
		}
		return local, nil
	case config.StoreMemory:
		return store.NewMemory("memory"), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func (rt *Runtime) localStore() (*localstore.Store, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.local != nil {
		return rt.local, nil
	}
	local, err := localstore.Open(rt.Config.LocalPath, rt.Log)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	rt.local = local
	return local, nil
}

// ThemeStore returns where the dark-mode flag lives. The memory backend
// keeps no theme; every other backend uses the local store.
func (rt *Runtime) ThemeStore() (ui.ThemeStore, error) {
	if rt.Config.Store == config.StoreMemory {
		return nil, nil
	}
	local, err := rt.localStore()
	if err != nil {
		return nil, err
	}
	return local, nil
}

// Charm returns the charm client when it is the mutable store.
func (rt *Runtime) Charm() (*charm.Client, bool) {
	c, ok := rt.Mutable.(*charm.Client)
	return c, ok
}

// Close closes the repository and any local store opened for the theme.
func (rt *Runtime) Close() error {
	err := rt.Repo.Close()
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.local != nil && rt.Config.Store != config.StoreLocal {
		if cerr := rt.local.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
