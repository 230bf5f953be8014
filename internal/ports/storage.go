// Package ports defines the interfaces (contracts) that adapters must
// implement. Domain logic and orchestration depend only on these, never
// on concrete implementations.
package ports

import "github.com/corey/bibstats/internal/domain/bib"

// Fingerprint identifies one on-disk version of a bibliography file.
// A cached parse is valid only while the fingerprint matches.
type Fingerprint struct {
	Size    int64 `json:"size"`
	ModTime int64 `json:"mod_time"` // unix seconds
}

// EntryCache persists parsed bibliography entries so unchanged bib files
// are not reparsed on every run. Saves must be transactional: a crash
// mid-write cannot corrupt previously committed data.
type EntryCache interface {
	// Load returns the cached entries for bibPath if the stored
	// fingerprint matches fp. A miss (absent or stale) is entries=nil,
	// ok=false with a nil error.
	Load(bibPath string, fp Fingerprint) (entries []bib.Entry, ok bool, err error)

	// Save stores entries for bibPath under fp, replacing any prior
	// cached parse for that path.
	Save(bibPath string, fp Fingerprint, entries []bib.Entry) error

	// Wipe removes every cached parse. Idempotent.
	Wipe() error

	// Close releases the backing store.
	Close() error
}
