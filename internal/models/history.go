package models

// HistoryEntry is one draw outcome. Entries are immutable once appended;
// the log itself is FIFO-capped at MaxHistoryEntries.
type HistoryEntry struct {
	Participant string `json:"participant"`
	Prize       string `json:"prize"`
	Time        int64  `json:"time"`
}

const (
	// MaxHistoryEntries is the retained length of the history log.
	MaxHistoryEntries = 2000

	// SnapshotHistoryLimit is how many recent entries a newly connected
	// display receives.
	SnapshotHistoryLimit = 50

	// FetchHistoryLimit is how many entries GET /history returns.
	FetchHistoryLimit = 200
)
