package memory

import "github.com/kyoto-db/kyoto/pkg/cmap"

// DefaultShards is the default shard count of the sharded engine.
const DefaultShards = cmap.DefaultShardCount

// Sharded is a storage engine spreading keys over independently locked shards.
type Sharded struct {
	entries *cmap.Map[string, *entry]
}

// NewSharded creates an empty Sharded engine. shards must be a power of 2;
// other values fall back to DefaultShards.
func NewSharded(shards int) *Sharded {
	return &Sharded{
		entries: cmap.NewWithShards[string, *entry](shards),
	}
}

// Get returns a copy of the value stored under key.
func (s *Sharded) Get(key string) ([]byte, bool) {
	e, ok := s.entries.Get(key)
	if !ok {
		return nil, false
	}
	return e.bytes(), true
}

// Set stores a copy of value under key, replacing any previous entry.
func (s *Sharded) Set(key string, value []byte) error {
	s.entries.Set(key, newEntry(value))
	return nil
}

// Len returns the number of stored keys.
func (s *Sharded) Len() int {
	return s.entries.Count()
}

// Shards returns the number of shards.
func (s *Sharded) Shards() int {
	return s.entries.ShardCount()
}
