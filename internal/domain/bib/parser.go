package bib

import (
	"strings"
	"unicode"

	"github.com/corey/bibstats/internal/textscan"
)

// pubTypes are tried in order; the first keyword that matches wins.
// A failed attempt restores the cursor before the next is tried.
var pubTypes = []struct {
	keyword string
	pt      PubType
}{
	{"book", Book},
	{"article", Article},
	{"inproceedings", InProceedings},
	{"incollection", InCollection},
	{"misc", Misc},
}

// Parse reads entries from the cursor until end of input. At least one
// entry is required: an empty source is a parse failure. The first
// malformed entry aborts the whole parse; callers never see a partial
// entry list.
func Parse(c *textscan.Cursor) ([]Entry, error) {
	var entries []Entry
	for {
		c.SkipWhitespace()
		if len(entries) > 0 && c.EOF() {
			return entries, nil
		}
		e, err := parseEntry(c)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
}

func parseEntry(c *textscan.Cursor) (Entry, error) {
	var e Entry
	if err := c.Expect('@'); err != nil {
		return e, err
	}
	pt, err := parsePubType(c)
	if err != nil {
		return e, err
	}
	c.SkipWhitespace()
	if err := c.Expect('{'); err != nil {
		return e, err
	}
	c.SkipWhitespace()
	// A zero-length key is accepted here, matching long-standing behavior.
	key := c.TakeWhile(isKeyRune)
	c.SkipWhitespace()
	if err := c.Expect(','); err != nil {
		return e, err
	}
	fields, err := parseFields(c)
	if err != nil {
		return e, err
	}
	if err := c.Expect('}'); err != nil {
		return e, err
	}
	return Entry{
		Type:   pt,
		Key:    key,
		Author: fields["author"],
		Title:  fields["title"],
		Date:   fields["date"],
	}, nil
}

// parsePubType is the ordered-choice dispatch over the five keywords,
// case-insensitive. No side effects on failed alternatives: MatchFold
// leaves the cursor untouched unless the whole keyword matches.
func parsePubType(c *textscan.Cursor) (PubType, error) {
	for _, t := range pubTypes {
		if c.MatchFold(t.keyword) {
			return t.pt, nil
		}
	}
	name := c.TakeWhile(isFieldRune)
	return 0, c.Errorf(textscan.ErrUnexpected, "unrecognized publication type %q", name)
}

// parseFields reads one or more "name = value" pairs separated by commas.
// The mapping lives only for this entry: filled, projected, discarded.
func parseFields(c *textscan.Cursor) (map[string]string, error) {
	fields := make(map[string]string)
	for {
		c.SkipWhitespace()
		name := strings.ToLower(c.TakeWhile(isFieldRune))
		c.SkipWhitespace()
		if err := c.Expect('='); err != nil {
			return nil, err
		}
		val, err := parseValue(c)
		if err != nil {
			return nil, err
		}
		if _, dup := fields[name]; dup {
			return nil, c.Errorf(textscan.ErrDuplicateField, "duplicate field %q in entry", name)
		}
		fields[name] = val
		c.SkipWhitespace()
		b, err := c.PeekByte()
		if err != nil {
			return nil, err
		}
		if b != ',' {
			return fields, nil
		}
		if err := c.Expect(','); err != nil {
			return nil, err
		}
	}
}

// parseValue reads a field value: "..." or {...} or a bare digit run.
// Literal braces inside a delimited value are consumed but not copied,
// and they do not nest: the first closing delimiter ends the value.
func parseValue(c *textscan.Cursor) (string, error) {
	c.SkipWhitespace()
	b, err := c.PeekByte()
	if err != nil {
		return "", err
	}
	var closer byte
	switch {
	case b == '"':
		closer = '"'
	case b == '{':
		closer = '}'
	case isDigit(b):
		closer = 0 // bare digit run, no delimiter
	default:
		return "", c.Errorf(textscan.ErrUnexpected, `unexpected token %q, '"' or '{' expected`, b)
	}
	if closer != 0 {
		if _, err := c.NextByte(); err != nil {
			return "", err
		}
	}
	var sb strings.Builder
	for {
		b, err := c.PeekByte()
		if err != nil {
			return "", err // value never terminated
		}
		if closer == 0 {
			if !isDigit(b) {
				break
			}
		} else if b == closer {
			break
		}
		c.NextByte()
		if b != '{' && b != '}' {
			sb.WriteByte(b)
		}
	}
	if closer != 0 {
		if err := c.Expect(closer); err != nil {
			return "", err
		}
	}
	c.SkipWhitespace()
	return sb.String(), nil
}

// isKeyRune: citekeys are unicode alphanumerics plus '-', '_', ':'.
func isKeyRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == ':'
}

// isFieldRune: field names are plain alphanumerics, no extended set.
func isFieldRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
