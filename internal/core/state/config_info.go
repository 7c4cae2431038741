package state

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/kyoto-db/kyoto/internal/server/config"
)

// ConfigInfo is the server configuration as reported by INFO.
// It is set once at construction.
type ConfigInfo struct {
	mu     sync.Mutex
	host   string
	port   int
	engine string
}

// NewConfigInfo captures the reported parts of cfg.
func NewConfigInfo(cfg *config.ServerConfig) *ConfigInfo {
	return &ConfigInfo{
		host:   cfg.Server.Host,
		port:   cfg.Server.Port,
		engine: cfg.Storage.Engine,
	}
}

// GenerateInfo appends the configuration fragment to buf.
func (c *ConfigInfo) GenerateInfo(buf *bytes.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf.WriteString("# Config\n")
	fmt.Fprintf(buf, "host: %s\n", c.host)
	fmt.Fprintf(buf, "port: %d\n", c.port)
	fmt.Fprintf(buf, "storage_engine: %s\n", c.engine)
}
