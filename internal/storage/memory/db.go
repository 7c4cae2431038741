package memory

import "sync"

// DB is the default storage engine: a single map behind a single mutex.
type DB struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewDB creates an empty DB.
func NewDB() *DB {
	return &DB{
		entries: make(map[string]*entry),
	}
}

// Get returns a copy of the value stored under key.
func (db *DB) Get(key string) ([]byte, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e, ok := db.entries[key]
	if !ok {
		return nil, false
	}
	return e.bytes(), true
}

// Set stores a copy of value under key, replacing any previous entry.
// It never fails today; the error is the reporting channel for future
// constraints such as capacity limits.
func (db *DB) Set(key string, value []byte) error {
	e := newEntry(value)

	db.mu.Lock()
	defer db.mu.Unlock()

	db.entries[key] = e
	return nil
}

// Len returns the number of stored keys.
func (db *DB) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.entries)
}
