package storage

import (
	"github.com/kyoto-db/kyoto/internal/core/domain"
	"github.com/kyoto-db/kyoto/internal/storage/memory"
)

// Engine kinds.
const (
	EngineSingle  = "single"
	EngineSharded = "sharded"
)

// Engine is a thread-safe key to value map.
type Engine interface {
	// Get returns a copy of the value stored under key.
	// The second result is false if the key was never set.
	Get(key string) ([]byte, bool)

	// Set inserts or replaces the value stored under key.
	Set(key string, value []byte) error

	// Len returns the number of stored keys.
	Len() int
}

// Config selects and sizes the storage engine.
type Config struct {
	// Engine is the engine kind (single, sharded).
	Engine string
	// Shards is the shard count for the sharded engine (power of 2).
	Shards int
}

// DefaultConfig returns the default storage configuration.
func DefaultConfig() Config {
	return Config{
		Engine: EngineSingle,
		Shards: memory.DefaultShards,
	}
}

// New creates the engine described by cfg.
func New(cfg Config) (Engine, error) {
	switch cfg.Engine {
	case "", EngineSingle:
		return memory.NewDB(), nil
	case EngineSharded:
		return memory.NewSharded(cfg.Shards), nil
	default:
		return nil, domain.ErrUnknownEngine.WithDetails(cfg.Engine)
	}
}
