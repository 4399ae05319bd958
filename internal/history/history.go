// Package history maintains the append-only draw log atop the state store.
package history

import (
	"spinwheel/internal/models"
	"spinwheel/internal/store"
)

// Log is the bounded draw history. Appends evict oldest-first past the cap;
// clear is the only whole-log mutation. All operations go through the store's
// history lock, so interleaved appends cannot lose entries.
type Log struct {
	Store *store.Store
}

// Append persists one entry and returns the retained sequence.
func (l *Log) Append(entry models.HistoryEntry) ([]models.HistoryEntry, error) {
	return l.AppendBatch([]models.HistoryEntry{entry})
}

// AppendBatch persists several entries as one read-modify-write so a spin's
// results land atomically.
func (l *Log) AppendBatch(entries []models.HistoryEntry) ([]models.HistoryEntry, error) {
	return l.Store.UpdateHistory(func(hist []models.HistoryEntry) []models.HistoryEntry {
		hist = append(hist, entries...)
		if n := len(hist); n > models.MaxHistoryEntries {
			hist = hist[n-models.MaxHistoryEntries:]
		}
		return hist
	})
}

// List returns the most recent limit entries in chronological order. A
// non-positive limit returns the whole retained log.
func (l *Log) List(limit int) []models.HistoryEntry {
	hist := l.Store.ReadHistory()
	if limit > 0 && len(hist) > limit {
		hist = hist[len(hist)-limit:]
	}
	out := make([]models.HistoryEntry, len(hist))
	copy(out, hist)
	return out
}

// Clear irreversibly resets the log to empty.
func (l *Log) Clear() error {
	_, err := l.Store.UpdateHistory(func([]models.HistoryEntry) []models.HistoryEntry {
		return []models.HistoryEntry{}
	})
	return err
}
