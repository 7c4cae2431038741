package state

import (
	"bytes"
	"fmt"
	"sync"
)

// DataStats is a copy of the running data statistics.
type DataStats struct {
	TotalKeys         int    `json:"total_keys" yaml:"total_keys"`
	CommandsProcessed uint64 `json:"total_commands_processed" yaml:"total_commands_processed"`
	KeyspaceHits      uint64 `json:"keyspace_hits" yaml:"keyspace_hits"`
	KeyspaceMisses    uint64 `json:"keyspace_misses" yaml:"keyspace_misses"`
}

// DataInfo holds running statistics about stored data.
type DataInfo struct {
	mu    sync.Mutex
	stats DataStats
}

// NewDataInfo creates zeroed statistics.
func NewDataInfo() *DataInfo {
	return &DataInfo{}
}

// RecordGet counts a GET and whether it found its key.
func (d *DataInfo) RecordGet(hit bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.CommandsProcessed++
	if hit {
		d.stats.KeyspaceHits++
	} else {
		d.stats.KeyspaceMisses++
	}
}

// RecordSet counts a successful SET and the key count observed after it.
// Keys are never removed, so the count only moves forward: an observation
// older than the stored one is ignored.
func (d *DataInfo) RecordSet(totalKeys int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.CommandsProcessed++
	if totalKeys > d.stats.TotalKeys {
		d.stats.TotalKeys = totalKeys
	}
}

// RecordCommand counts a command that does not touch the keyspace
// statistics.
func (d *DataInfo) RecordCommand() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.CommandsProcessed++
}

// Stats returns a copy of the current statistics.
func (d *DataInfo) Stats() DataStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// GenerateInfo appends the data fragment to buf.
func (d *DataInfo) GenerateInfo(buf *bytes.Buffer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	buf.WriteString("# Data\n")
	fmt.Fprintf(buf, "total_keys: %d\n", d.stats.TotalKeys)
	fmt.Fprintf(buf, "total_commands_processed: %d\n", d.stats.CommandsProcessed)
	fmt.Fprintf(buf, "keyspace_hits: %d\n", d.stats.KeyspaceHits)
	fmt.Fprintf(buf, "keyspace_misses: %d\n", d.stats.KeyspaceMisses)
}
