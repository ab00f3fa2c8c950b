// ABOUTME: Charm KV client wrapper using transactional Do API
// ABOUTME: Short-lived connections to avoid lock contention with other processes

package charm

import (
	"os"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	charmproto "github.com/charmbracelet/charm/proto"
	"github.com/sirupsen/logrus"
)

const (
	// DBName is the default charm kv database for materials.
	DBName = "materials"
)

// Bucket is the subset of *kv.KV used by the client.
type Bucket interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Keys() ([][]byte, error)
	Sync() error
}

// Runner opens a named database for the duration of fn.
type Runner interface {
	Do(name string, fn func(Bucket) error) error
	DoReadOnly(name string, fn func(Bucket) error) error
}

type charmRunner struct{}

func (charmRunner) Do(name string, fn func(Bucket) error) error {
	return kv.Do(name, func(k *kv.KV) error { return fn(k) })
}

func (charmRunner) DoReadOnly(name string, fn func(Bucket) error) error {
	return kv.DoReadOnly(name, func(k *kv.KV) error { return fn(k) })
}

// Client holds configuration for KV operations.
// It does NOT hold a persistent connection: each operation opens the
// database, performs the operation, and closes it.
type Client struct {
	dbName   string
	autoSync bool
	runner   Runner
	log      logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithDBName sets the database name.
func WithDBName(name string) Option {
	return func(c *Client) {
		c.dbName = name
	}
}

// WithAutoSync enables or disables auto-sync after writes.
func WithAutoSync(enabled bool) Option {
	return func(c *Client) {
		c.autoSync = enabled
	}
}

// WithRunner replaces the charm kv runner.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new client from cfg and the given options.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Host != "" {
		if err := os.Setenv("CHARM_HOST", cfg.Host); err != nil {
			return nil, err
		}
	}

	c := &Client{
		dbName:   cfg.DBName,
		autoSync: cfg.AutoSync,
		runner:   charmRunner{},
		log:      logrus.StandardLogger(),
	}
	if c.dbName == "" {
		c.dbName = DBName
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "charm")
	return c, nil
}

// Do executes a function with write access to the database.
func (c *Client) Do(fn func(Bucket) error) error {
	return c.runner.Do(c.dbName, func(b Bucket) error {
		if err := fn(b); err != nil {
			return err
		}
		if c.autoSync {
			return b.Sync()
		}
		return nil
	})
}

// DoReadOnly executes a function with read-only database access.
func (c *Client) DoReadOnly(fn func(Bucket) error) error {
	return c.runner.DoReadOnly(c.dbName, fn)
}

// Sync triggers a manual sync with the charm server.
func (c *Client) Sync() error {
	return c.runner.Do(c.dbName, func(b Bucket) error {
		return b.Sync()
	})
}

// User returns the current charm user information.
func (c *Client) User() (*charmproto.User, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return nil, err
	}
	return cc.Bio()
}

// Link initiates the charm linking process for this device.
func (c *Client) Link() error {
	_, err := c.User()
	return err
}

// Close is a no-op; connections are closed after each operation.
func (c *Client) Close() error {
	return nil
}
