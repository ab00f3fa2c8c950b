// ABOUTME: Local key/value store backed by BadgerDB.
// ABOUTME: Keeps all materials under one named key as a JSON array.

package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dgraph-io/badger/v3"
	"github.com/harper/materials/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// MaterialsKey holds the serialized sequence of material records.
	MaterialsKey = "materials"
	// DarkModeKey holds the persisted theme flag.
	DarkModeKey = "darkMode"
)

// Store implements the material store on a local Badger database.
type Store struct {
	db   *badger.DB
	path string
	log  logrus.FieldLogger
}

// Open opens (creating if needed) the Badger database in dir.
func Open(dir string, logger logrus.FieldLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", dir, err)
	}

	return &Store{
		db:   db,
		path: dir,
		log:  logger.WithField("component", "localstore"),
	}, nil
}

// DefaultPath returns the XDG data location for the local store.
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "materials", "local")
}

func (s *Store) Name() string { return "local:" + s.path }

// List returns the stored sequence. A missing key is an empty sequence.
func (s *Store) List(ctx context.Context) ([]models.Record, error) {
	var recs []models.Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		recs, err = readMaterials(txn)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", MaterialsKey, err)
	}
	return recs, nil
}

// Create appends rec to the stored sequence in a single transaction.
func (s *Store) Create(ctx context.Context, rec models.Record) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		recs, err := readMaterials(txn)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(append(recs, rec))
		if err != nil {
			return fmt.Errorf("marshal materials: %w", err)
		}
		return txn.Set([]byte(MaterialsKey), encoded)
	})
	if err != nil {
		s.log.WithError(err).Error("failed to append material")
		return fmt.Errorf("append material: %w", err)
	}
	return nil
}

// LoadDarkMode reports the persisted theme flag; unset means light.
func (s *Store) LoadDarkMode() (bool, error) {
	var dark bool
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(DarkModeKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			dark, _ = strconv.ParseBool(string(val))
			return nil
		})
	})
	return dark, err
}

// SaveDarkMode persists the theme flag.
func (s *Store) SaveDarkMode(dark bool) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(DarkModeKey), []byte(strconv.FormatBool(dark)))
	})
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		s.log.WithError(err).Error("error closing badger db")
		return err
	}
	return nil
}

func readMaterials(txn *badger.Txn) ([]models.Record, error) {
	item, err := txn.Get([]byte(MaterialsKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var recs []models.Record
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &recs)
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", MaterialsKey, err)
	}
	return recs, nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{})   { l.logger.Errorf(f, v...) }
func (l *badgerLogger) Warningf(f string, v ...interface{}) { l.logger.Warningf(f, v...) }
func (l *badgerLogger) Infof(f string, v ...interface{})    { l.logger.Debugf(f, v...) }
func (l *badgerLogger) Debugf(f string, v ...interface{})   { l.logger.Debugf(f, v...) }
