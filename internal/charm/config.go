// ABOUTME: Configuration for Charm KV backend
// ABOUTME: Holds charm server settings resolved by the config layer

package charm

// Config holds charm sync configuration.
type Config struct {
	// Host is the charm server host (default: charm.2389.dev)
	Host string `mapstructure:"host"`

	// DBName is the charm kv database holding materials.
	DBName string `mapstructure:"db_name"`

	// AutoSync enables automatic sync after writes (default: true)
	AutoSync bool `mapstructure:"auto_sync"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:     "charm.2389.dev",
		DBName:   DBName,
		AutoSync: true,
	}
}
