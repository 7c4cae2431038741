// Package memory provides the in-memory storage engines for Kyoto.
//
// DB keeps every entry in one map guarded by one mutex; Sharded spreads
// entries over a pkg/cmap sharded map. Both satisfy storage.Engine.
//
// Thread Safety:
//
// All operations are thread-safe. DB serialises every Get and Set on the
// same mutex, so reads of a key always see the last complete write.
package memory
