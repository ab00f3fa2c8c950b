// ABOUTME: Tests for Charm KV material storage
// ABOUTME: Uses an in-memory runner in place of the charm cloud

package charm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harper/materials/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBucket struct {
	mu    sync.Mutex
	data  map[string][]byte
	order []string
	syncs int
}

func newMemBucket() *memBucket {
	return &memBucket{data: map[string][]byte{}}
}

func (b *memBucket) Get(key []byte) ([]byte, error) {
	v, ok := b.data[string(key)]
	if !ok {
		return nil, badger.ErrKeyNotFound
	}
	return v, nil
}

func (b *memBucket) Set(key, value []byte) error {
	if _, ok := b.data[string(key)]; !ok {
		b.order = append(b.order, string(key))
	}
	b.data[string(key)] = value
	return nil
}

func (b *memBucket) Keys() ([][]byte, error) {
	keys := make([][]byte, len(b.order))
	for i, k := range b.order {
		keys[i] = []byte(k)
	}
	return keys, nil
}

func (b *memBucket) Sync() error {
	b.syncs++
	return nil
}

type memRunner struct {
	bucket *memBucket
}

func (r memRunner) Do(name string, fn func(Bucket) error) error {
	r.bucket.mu.Lock()
	defer r.bucket.mu.Unlock()
	return fn(r.bucket)
}

func (r memRunner) DoReadOnly(name string, fn func(Bucket) error) error {
	return r.Do(name, fn)
}

func newTestClient(t *testing.T, autoSync bool) (*Client, *memBucket) {
	t.Helper()
	bucket := newMemBucket()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	c, err := NewClient(Config{DBName: "test", AutoSync: autoSync}, WithRunner(memRunner{bucket}), WithLogger(log))
	require.NoError(t, err)
	return c, bucket
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	c, bucket := newTestClient(t, true)

	older := models.NewMaterial("alice", "Older", "https://a", []string{"go"})
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := models.NewMaterial("bob", "Newer", "https://b", nil)

	require.NoError(t, c.Create(ctx, newer.ToRecord()))
	require.NoError(t, c.Create(ctx, older.ToRecord()))

	recs, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	got := models.DecodeAll(recs)
	assert.Equal(t, "Older", got[0].ResourceName)
	assert.Equal(t, "Newer", got[1].ResourceName)
	assert.Equal(t, 2, bucket.syncs, "expected a sync after each write")
}

func TestCreateAssignsID(t *testing.T) {
	ctx := context.Background()
	c, bucket := newTestClient(t, false)

	require.NoError(t, c.Create(ctx, models.Record{"resourceName": "no id"}))

	require.Len(t, bucket.order, 1)
	assert.Contains(t, bucket.order[0], MaterialPrefix)
	assert.Greater(t, len(bucket.order[0]), len(MaterialPrefix))
	assert.Zero(t, bucket.syncs)
}

func TestListSkipsForeignAndMalformedKeys(t *testing.T) {
	ctx := context.Background()
	c, bucket := newTestClient(t, false)

	_ = bucket.Set([]byte("darkMode"), []byte("true"))
	_ = bucket.Set([]byte(MaterialPrefix+"broken"), []byte("{not json"))
	require.NoError(t, c.Create(ctx, models.Record{"resourceName": "ok"}))

	recs, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "ok", recs[0]["resourceName"])
}

func TestName(t *testing.T) {
	c, _ := newTestClient(t, false)
	assert.Equal(t, "charm:test", c.Name())
}
