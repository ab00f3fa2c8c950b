// ABOUTME: Read-only baseline store loaded from a JSON or YAML document.
// ABOUTME: The source may be a local file or an http(s) URL.

package static

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/materials/internal/models"
	"github.com/harper/materials/internal/store"
	"gopkg.in/yaml.v3"
)

// maxBodySize caps how much of a remote baseline is read.
const maxBodySize = 10 << 20

// ErrBaselineTooLarge is returned when a remote baseline exceeds 10 MiB.
var ErrBaselineTooLarge = errors.New("baseline exceeds 10 MiB")

// Store serves a fixed baseline collection. It is re-read on every List.
type Store struct {
	source string
	client *http.Client
}

func New(source string) *Store {
	return &Store{source: source, client: http.DefaultClient}
}

// WithHTTPClient overrides the client used for URL sources.
func (s *Store) WithHTTPClient(c *http.Client) *Store {
	s.client = c
	return s
}

func (s *Store) Name() string { return "static:" + s.source }

// IsRemote reports whether the source is fetched over HTTP.
func (s *Store) IsRemote() bool {
	return strings.HasPrefix(s.source, "http://") || strings.HasPrefix(s.source, "https://")
}

// Path returns the local file path, or "" for remote sources.
func (s *Store) Path() string {
	if s.IsRemote() {
		return ""
	}
	return s.source
}

func (s *Store) List(ctx context.Context) ([]models.Record, error) {
	data, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(data, IsYAML(s.source))
}

func (s *Store) Create(ctx context.Context, rec models.Record) error {
	return store.ErrReadOnly
}

func (s *Store) Close() error { return nil }

func (s *Store) read(ctx context.Context) ([]byte, error) {
	if !s.IsRemote() {
		data, err := os.ReadFile(s.source)
		if err != nil {
			return nil, fmt.Errorf("read baseline: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.source, nil)
	if err != nil {
		return nil, fmt.Errorf("build baseline request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch baseline: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch baseline: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read baseline response: %w", err)
	}
	if len(data) > maxBodySize {
		return nil, ErrBaselineTooLarge
	}
	return data, nil
}

// Parse decodes a sequence of records from JSON or YAML.
func Parse(data []byte, asYAML bool) ([]models.Record, error) {
	var recs []models.Record
	if asYAML {
		if err := yaml.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("parse baseline yaml: %w", err)
		}
		return recs, nil
	}
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse baseline json: %w", err)
	}
	return recs, nil
}

// IsYAML reports whether source names a YAML document by its extension.
func IsYAML(source string) bool {
	if i := strings.IndexAny(source, "?#"); i >= 0 && strings.Contains(source, "://") {
		source = source[:i]
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
