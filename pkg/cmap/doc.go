// Package cmap provides a sharded concurrent map keyed by strings.
//
// Keys are routed to shards by a seeded murmur3 hash; each shard owns a
// plain map behind its own RWMutex, so operations on keys in different
// shards never contend.
//
// Usage:
//
//	m := cmap.NewWithShards[string, []byte](32)
//	m.Set("key", value)
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Get takes a shard read lock, Set takes
// the shard write lock. Count visits shards one at a time and is therefore
// not an atomic snapshot under concurrent writes.
package cmap
