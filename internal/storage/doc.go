// Package storage provides the storage engine for Kyoto.
//
// An Engine is a string-keyed map of opaque byte values. Two engines are
// available:
//
//   - single:  one map behind one mutex (memory.DB). Every operation holds
//     exclusive access to the whole map. This is the default.
//   - sharded: keys spread over a pkg/cmap sharded map (memory.Sharded),
//     for workloads where the single lock becomes the bottleneck.
//
// Both engines store private copies of values: a stored entry is never
// mutated, only replaced. Data lives in process memory only.
package storage
