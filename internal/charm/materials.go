// ABOUTME: Material operations using Charm KV storage
// ABOUTME: Uses type-prefixed keys (material:uuid) holding JSON documents

package charm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harper/materials/internal/models"
)

const (
	// MaterialPrefix is the key prefix for materials.
	MaterialPrefix = "material:"
)

func materialKey(id string) []byte {
	return []byte(MaterialPrefix + id)
}

func (c *Client) Name() string { return "charm:" + c.dbName }

// Create stores rec under material:<id>, assigning an id if it has none.
func (c *Client) Create(ctx context.Context, rec models.Record) error {
	id, _ := rec["id"].(string)
	if id == "" {
		id = uuid.New().String()
		copied := make(models.Record, len(rec)+1)
		for k, v := range rec {
			copied[k] = v
		}
		copied["id"] = id
		rec = copied
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal material: %w", err)
	}

	err = c.Do(func(b Bucket) error {
		return b.Set(materialKey(id), encoded)
	})
	if err != nil {
		return err
	}
	c.log.WithField("id", id).Debug("material stored")
	return nil
}

// List returns every material ordered by creation time, then key.
func (c *Client) List(ctx context.Context) ([]models.Record, error) {
	type entry struct {
		key string
		rec models.Record
	}
	var entries []entry

	prefix := []byte(MaterialPrefix)
	err := c.DoReadOnly(func(b Bucket) error {
		keys, err := b.Keys()
		if err != nil {
			return err
		}
		for _, key := range keys {
			if !bytes.HasPrefix(key, prefix) {
				continue
			}
			val, err := b.Get(key)
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var rec models.Record
			if err := json.Unmarshal(val, &rec); err != nil {
				c.log.WithError(err).WithField("key", string(key)).Warn("skipping malformed material")
				continue
			}
			entries = append(entries, entry{key: string(key), rec: rec})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ci, cj := createdAt(entries[i].rec), createdAt(entries[j].rec)
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return entries[i].key < entries[j].key
	})

	recs := make([]models.Record, len(entries))
	for i, e := range entries {
		recs[i] = e.rec
	}
	return recs, nil
}

func createdAt(rec models.Record) time.Time {
	s, _ := rec["createdAt"].(string)
	ts, _ := time.Parse(time.RFC3339Nano, s)
	return ts
}
