package config

import "github.com/kyoto-db/kyoto/internal/storage"

// Default configuration values.
const (
	DefaultHost        = "127.0.0.1"
	DefaultPort        = 9736
	DefaultMetricsAddr = "127.0.0.1:9737"

	DefaultAdminRateLimit = 100

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	store := storage.DefaultConfig()
	return &ServerConfig{
		Server: ServerSection{
			Host:        DefaultHost,
			Port:        DefaultPort,
			MetricsAddr: DefaultMetricsAddr,
		},
		Storage: StorageSection{
			Engine: store.Engine,
			Shards: store.Shards,
		},
		Admin: AdminSection{
			RateLimit: DefaultAdminRateLimit,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
