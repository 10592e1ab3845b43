// Package registry tracks the live association between highlighted regions
// and the alerts behind them, one set per open document.
//
// The set is always discarded and rebuilt wholesale: alert spans have no
// stable identity across edits, so any modification clears the whole document
// and the next lint pass repopulates it. Mutations are atomic with respect to
// concurrent lookups.
package registry

import (
	"sync"

	"github.com/vale-lint/valecore/internal/alert"
	"github.com/vale-lint/valecore/internal/document"
)

// Entry associates one rendered region with its source alert.
type Entry struct {
	Range document.Range
	Alert alert.Alert
}

// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	issued  map[string]uint64 // last sequence handed out per document
	applied map[string]uint64 // last sequence whose results were accepted
}

func New() *Registry {
	return &Registry{
		entries: make(map[string][]Entry),
		issued:  make(map[string]uint64),
		applied: make(map[string]uint64),
	}
}

// Begin reserves a sequence number for a new lint pass on the document.
// Overlapping passes race only through ReplaceAll, which drops any result
// carrying a sequence older than the newest accepted one.
func (r *Registry) Begin(documentID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued[documentID]++
	return r.issued[documentID]
}

// ReplaceAll atomically swaps the document's regions for the given entries.
// It reports false, leaving the registry untouched, when seq is stale: a
// newer pass already landed or the document was cleared since seq was issued.
func (r *Registry) ReplaceAll(documentID string, seq uint64, entries []Entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq <= r.applied[documentID] {
		return false
	}
	r.applied[documentID] = seq
	r.entries[documentID] = append([]Entry(nil), entries...)
	return true
}

// Clear drops every region for the document and invalidates all in-flight
// passes, so a slow lint that started before the edit cannot resurrect
// stale regions.
func (r *Registry) Clear(documentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, documentID)
	r.applied[documentID] = r.issued[documentID]
}

// Forget removes all state for a closed document.
func (r *Registry) Forget(documentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, documentID)
	delete(r.issued, documentID)
	delete(r.applied, documentID)
}

// Find returns the alert of the first region containing the point, in
// insertion order. There is no severity-based tie-break.
func (r *Registry) Find(documentID string, point int) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.entries[documentID] {
		if entry.Range.Contains(point) {
			return entry, true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of the document's current region set.
func (r *Registry) Entries(documentID string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.entries[documentID]...)
}

// BySeverity groups the document's ranges per severity class so the editing
// surface can render each class in one batch call.
func (r *Registry) BySeverity(documentID string) map[alert.Severity][]document.Range {
	r.mu.RLock()
	defer r.mu.RUnlock()
	grouped := make(map[alert.Severity][]document.Range)
	for _, entry := range r.entries[documentID] {
		grouped[entry.Alert.Severity] = append(grouped[entry.Alert.Severity], entry.Range)
	}
	return grouped
}

// Len returns the number of regions currently registered for the document.
func (r *Registry) Len(documentID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[documentID])
}
