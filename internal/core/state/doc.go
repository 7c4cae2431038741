// Package state holds the read-mostly sub-states reported by INFO.
//
// Each sub-state owns its own mutex and appends its INFO fragment through
// GenerateInfo, which takes the lock, writes, and releases it before
// returning. No method of this package calls out to other sub-states while
// holding its lock.
package state
