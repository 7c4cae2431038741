// Package server implements the shared server state and command dispatch.
//
// A Server is a cheap handle onto one logical instance: Clone copies the
// handle and every clone shares the same sub-states and storage engine, so
// each worker goroutine can own its clone. Consistency comes from the locks
// inside the sub-states and the engine, never from the handle.
//
// Lock discipline: a command holds at most one lock at a time. GET and SET
// take the engine lock, release it, then take the DataInfo lock to update
// statistics. INFO takes the ConfigInfo, MachineInfo and DataInfo locks one
// after the other in that order.
package server
