// Package state holds the current policy result set shared by the search
// commands and the UI.
//
// # Overview
//
// Store is the single source of truth for what the table shows. Searches run
// concurrently inside bubbletea commands and may finish in any order, so every
// write carries the sequence number assigned when the search was prepared.
//
// # Sequence Rule
//
// The store remembers the highest sequence it has resolved, successful or not:
//
//	store.Replace(2, setB) // applied, resolved = 2
//	store.Replace(1, setA) // ErrStaleResponse, nothing changes
//	store.Fail(1, err)     // ErrStaleResponse, nothing changes
//	store.Fail(3, err)     // applied, records kept, LastError = err
//
// A stale write never touches records, the key index or the error state. The
// caller logs and counts the rejection but never shows it to the operator.
//
// # Update Semantics
//
// Replace is the only writer of records. It swaps in the new set, rebuilds the
// key index, bumps Seq and clears LastError. Fail keeps the previous records
// so the operator still sees the last good table under an error banner.
//
// # Lookup
//
// Records are addressed by their stable key (numero, falling back to id),
// never by position. When a result set carries duplicate keys the first
// occurrence wins; records without a key are listed but cannot be selected.
//
// # Concurrency Model
//
// A sync.RWMutex guards all state. Snapshot and Get return cloned slices, so
// callers may hold them across renders without locking.
package state
