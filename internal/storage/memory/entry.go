package memory

import "bytes"

// entry is one stored value. It is immutable once created: overwrites
// replace the entry, they never modify it.
type entry struct {
	data []byte
}

func newEntry(value []byte) *entry {
	return &entry{data: bytes.Clone(value)}
}

// bytes returns a copy of the stored value.
func (e *entry) bytes() []byte {
	return bytes.Clone(e.data)
}
