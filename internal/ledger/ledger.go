// Package ledger keeps a bounded, append-only record of AI remix invocations.
// It backs the teacher monitoring views and per-student history lookups.
package ledger

import (
	"sync"

	"github.com/nextlogicai/nextlogic-be/internal/models"
)

// DefaultCapacity bounds the ledger; the oldest entries are evicted first.
const DefaultCapacity = 100

// Ledger holds usage entries most-recent-first, up to a fixed capacity.
type Ledger struct {
	mu      sync.Mutex
	entries []models.UsageLogEntry
	cap     int
}

// New creates a ledger with the given capacity. Capacities below one fall
// back to DefaultCapacity.
func New(capacity int) *Ledger {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Ledger{cap: capacity}
}

// Append inserts an entry at the head and evicts the tail once the capacity
// is exceeded.
func (l *Ledger) Append(entry models.UsageLogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]models.UsageLogEntry{entry}, l.entries...)
	if len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
}

// RecentForUser returns the most recent entry for the given user, if any.
func (l *Ledger) RecentForUser(userID string) (models.UsageLogEntry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.entries {
		if entry.UserID == userID {
			return entry, true
		}
	}
	return models.UsageLogEntry{}, false
}

// EntriesForUser returns up to limit entries for the given user,
// most recent first.
func (l *Ledger) EntriesForUser(userID string, limit int) []models.UsageLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var entries []models.UsageLogEntry
	for _, entry := range l.entries {
		if entry.UserID != userID {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries
}

// Slice returns a copy of up to n entries, most recent first.
func (l *Ledger) Slice(n int) []models.UsageLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]models.UsageLogEntry, n)
	copy(out, l.entries[:n])
	return out
}

// Len returns the current number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
