// Package stats tallies scanned citekeys against a parsed bibliography
// and renders the result as JSON or TSV.
package stats

import (
	"sort"

	"github.com/corey/bibstats/internal/domain/bib"
)

// Library indexes bibliography entries by citekey. When the source holds
// two entries with the same key, the first one wins.
type Library map[string]bib.Entry

// NewLibrary builds the key index from parsed entries.
func NewLibrary(entries []bib.Entry) Library {
	lib := make(Library, len(entries))
	for _, e := range entries {
		if _, ok := lib[e.Key]; ok {
			continue
		}
		lib[e.Key] = e
	}
	return lib
}

// Tally counts citations per author, per title.
type Tally map[string]map[string]uint32

// NewTally returns an empty tally.
func NewTally() Tally {
	return make(Tally)
}

// CountUp records one citation of key. It reports false when the key is
// not in the library; the caller warns and continues, and an unresolved
// citekey is never fatal.
func (t Tally) CountUp(key string, lib Library) bool {
	e, ok := lib[key]
	if !ok {
		return false
	}
	works := t[e.Author]
	if works == nil {
		works = make(map[string]uint32)
		t[e.Author] = works
	}
	works[e.Title]++
	return true
}

// Row is one line of the report.
type Row struct {
	Author string `json:"author"`
	Title  string `json:"title"`
	Count  uint32 `json:"count"`
}

// Rows flattens the tally, sorted by author then title so output is
// deterministic across runs.
func (t Tally) Rows() []Row {
	var rows []Row
	for author, works := range t {
		for title, count := range works {
			rows = append(rows, Row{Author: author, Title: title, Count: count})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Author != rows[j].Author {
			return rows[i].Author < rows[j].Author
		}
		return rows[i].Title < rows[j].Title
	})
	return rows
}
