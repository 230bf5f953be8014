// Package bbolt implements the ports.EntryCache interface using bbolt
// (embedded B+ tree). One bucket holds the cached parses, keyed by the
// absolute bibliography path; each value is a JSON record carrying the
// file fingerprint and the parsed entries. Writes are transactional; a
// crash mid-write cannot corrupt previously committed data.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/corey/bibstats/internal/domain/bib"
	"github.com/corey/bibstats/internal/ports"
	bolt "go.etcd.io/bbolt"
)

var bucketBib = []byte("bib")

// cacheRecord is the stored form of one parsed bibliography.
type cacheRecord struct {
	Fingerprint ports.Fingerprint `json:"fingerprint"`
	Entries     []bib.Entry       `json:"entries"`
}

// Store implements ports.EntryCache backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the cached entries for bibPath when the stored fingerprint
// matches fp. A missing or stale record is a miss, not an error.
func (s *Store) Load(bibPath string, fp ports.Fingerprint) ([]bib.Entry, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBib)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(bibPath)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}

	var rec cacheRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("unmarshal cache record: %w", err)
	}
	if rec.Fingerprint != fp {
		return nil, false, nil // stale: bib file changed since the parse
	}
	return rec.Entries, true, nil
}

// Save stores entries for bibPath under fp, replacing any prior record.
func (s *Store) Save(bibPath string, fp ports.Fingerprint, entries []bib.Entry) error {
	data, err := json.Marshal(cacheRecord{Fingerprint: fp, Entries: entries})
	if err != nil {
		return fmt.Errorf("marshal cache record: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketBib)
		if err != nil {
			return err
		}
		return b.Put([]byte(bibPath), data)
	})
}

// Wipe removes every cached parse. Idempotent.
func (s *Store) Wipe() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(bucketBib)
		if err == bolt.ErrBucketNotFound {
			return nil
		}
		return err
	})
}
