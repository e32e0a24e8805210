package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/five82/apolice/internal/policy"
)

// ErrStaleResponse is returned when a response arrives for a search older
// than one that has already been applied.
var ErrStaleResponse = errors.New("stale search response")

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Records             policy.ResultSet
	Seq                 uint64 // sequence of the search that produced Records
	HasResults          bool   // true once any search succeeded
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // number of consecutive failed searches
}

// IsOffline returns true when the backend has failed several searches in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the current result set and its key index. Responses are applied
// in sequence order: anything at or below the highest resolved sequence is
// rejected.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	index    map[string]int
	resolved uint64
}

// Replace installs set as the current result set when seq is newer than every
// search resolved so far.
func (s *Store) Replace(seq uint64, set policy.ResultSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.resolved {
		return fmt.Errorf("replace seq %d (resolved %d): %w", seq, s.resolved, ErrStaleResponse)
	}
	s.resolved = seq

	s.snapshot.Records = cloneRecords(set)
	if s.snapshot.Records == nil {
		s.snapshot.Records = policy.ResultSet{}
	}
	s.index = buildIndex(s.snapshot.Records)
	s.snapshot.Seq = seq
	s.snapshot.HasResults = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return nil
}

// Fail records a failed search. The previous records are kept.
func (s *Store) Fail(seq uint64, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.resolved {
		return fmt.Errorf("fail seq %d (resolved %d): %w", seq, s.resolved, ErrStaleResponse)
	}
	s.resolved = seq

	if err == nil {
		err = errors.New("search failed")
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	return nil
}

// Get returns the current result set.
func (s *Store) Get() policy.ResultSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.snapshot.Records)
}

// Lookup finds a record by its key. With duplicate keys the first occurrence
// wins.
func (s *Store) Lookup(key string) (policy.Record, bool) {
	if key == "" {
		return policy.Record{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[key]
	if !ok {
		return policy.Record{}, false
	}
	return s.snapshot.Records[i], true
}

// Resolved returns the highest sequence applied so far, successful or not.
func (s *Store) Resolved() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Records = cloneRecords(s.snapshot.Records)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func buildIndex(set policy.ResultSet) map[string]int {
	index := make(map[string]int, len(set))
	for i, rec := range set {
		key := rec.Key()
		if key == "" {
			continue
		}
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = i
	}
	return index
}

func cloneRecords(set policy.ResultSet) policy.ResultSet {
	if set == nil {
		return nil
	}
	dup := make(policy.ResultSet, len(set))
	copy(dup, set)
	return dup
}
