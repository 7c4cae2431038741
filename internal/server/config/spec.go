package config

import (
	"net"
	"strconv"

	"github.com/kyoto-db/kyoto/internal/storage"
)

// ServerConfig is the root configuration for kyoto-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Admin   AdminSection   `koanf:"admin"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the server identity and endpoints.
type ServerSection struct {
	// Host is the address the protocol layer binds to.
	Host string `koanf:"host"`

	// Port is the listening port reported by INFO.
	Port int `koanf:"port"`

	// MetricsAddr is the bind address of the /metrics and /healthz endpoint.
	// Empty disables the endpoint.
	MetricsAddr string `koanf:"metrics_addr"`
}

// StorageSection configures the storage engine.
type StorageSection struct {
	// Engine is the engine kind: single or sharded.
	Engine string `koanf:"engine"`

	// Shards is the shard count of the sharded engine (power of 2).
	Shards int `koanf:"shards"`
}

// AdminSection configures the local management surfaces.
type AdminSection struct {
	// SocketPath is the Unix socket of the local management server.
	// Empty disables it.
	SocketPath string `koanf:"socket_path"`

	// AllowList restricts the HTTP endpoint to these IPs or CIDRs.
	// Empty allows every client.
	AllowList []string `koanf:"allow_list"`

	// TrustedProxies are the IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers identify the client. Empty trusts no proxy.
	TrustedProxies []string `koanf:"trusted_proxies"`

	// RateLimit is the per-client request rate of the HTTP endpoint,
	// in requests per second. 0 disables limiting.
	RateLimit int `koanf:"rate_limit"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ListenAddr returns host:port.
func (s ServerSection) ListenAddr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// EngineConfig converts the section into a storage.Config.
func (s StorageSection) EngineConfig() storage.Config {
	return storage.Config{
		Engine: s.Engine,
		Shards: s.Shards,
	}
}
