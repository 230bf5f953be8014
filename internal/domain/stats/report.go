package stats

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format selects the report encoding.
type Format int

const (
	// JSONStream writes one JSON object per line (the default).
	JSONStream Format = iota
	// JSONArray writes a single JSON array of objects.
	JSONArray
	// TSV writes numbered tab-separated lines with quoted text fields.
	TSV
)

// Write renders rows to w in the given format.
func Write(w io.Writer, rows []Row, f Format) error {
	switch f {
	case JSONArray:
		return writeJSON(w, rows, true)
	case TSV:
		return writeTSV(w, rows)
	default:
		return writeJSON(w, rows, false)
	}
}

func writeJSON(w io.Writer, rows []Row, asArray bool) error {
	if asArray {
		if _, err := fmt.Fprintln(w, "["); err != nil {
			return err
		}
	}
	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		sep := "\n"
		if asArray && i < len(rows)-1 {
			sep = ",\n"
		}
		if _, err := fmt.Fprintf(w, "%s%s", data, sep); err != nil {
			return err
		}
	}
	if asArray {
		if _, err := fmt.Fprintln(w, "]"); err != nil {
			return err
		}
	}
	return nil
}

func writeTSV(w io.Writer, rows []Row) error {
	for i, row := range rows {
		if _, err := fmt.Fprintf(w, "%d\t%q\t%q\t%d\n", i, row.Author, row.Title, row.Count); err != nil {
			return err
		}
	}
	return nil
}
