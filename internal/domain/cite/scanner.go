// Package cite extracts citation keys from free-form document text.
// A single forward pass recognizes \cite commands (with any number of
// bracketed optional arguments) and \ignore{...} blocks; everything else
// is passed over as ordinary text.
package cite

import (
	"unicode"

	"github.com/corey/bibstats/internal/textscan"
)

// Scan returns the citekeys referenced by the document, in order of
// appearance, duplicates preserved. Content inside \ignore{...} blocks
// contributes nothing. An unrecognized backslash command is plain text,
// not an error; only unterminated blocks and key-lists fail the scan.
func Scan(c *textscan.Cursor) ([]string, error) {
	var keys []string
	for {
		if c.EOF() {
			return keys, nil
		}
		b, err := c.NextByte()
		if err != nil {
			return nil, err
		}
		if b != '\\' {
			continue
		}
		if c.Match("ignore") {
			if err := skipIgnoreBlock(c); err != nil {
				return nil, err
			}
			continue
		}
		if !c.Match("cite") {
			continue
		}
		c.SkipWhitespace()
		if err := seekKeyList(c); err != nil {
			return nil, err
		}
		c.SkipWhitespace()
		ks, err := parseKeyList(c)
		if err != nil {
			return nil, err
		}
		c.SkipWhitespace()
		if err := c.Expect('}'); err != nil {
			return nil, err
		}
		keys = append(keys, ks...)
	}
}

// skipIgnoreBlock discards a balanced-brace block. Unlike value parsing
// in the entry grammar, braces here DO nest: a depth counter tracks
// inner {...} groups, so ignored citations with their own braces are
// swallowed whole. An \ignore not followed by '{' has no block.
func skipIgnoreBlock(c *textscan.Cursor) error {
	c.SkipWhitespace()
	b, err := c.NextByte()
	if err != nil {
		return err
	}
	if b != '{' {
		return nil
	}
	depth := 1
	for depth > 0 {
		b, err := c.NextByte()
		if err != nil {
			return c.Errorf(textscan.ErrUnterminated, "unterminated ignore block")
		}
		switch b {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return nil
}

// seekKeyList consumes bytes up to and including the '{' that opens the
// key-list. A signed counter tracks [ and ] so the brace is only taken
// when outside optional arguments: \cite[p. 12]{k} and multiple or
// nested-brace optional arguments all skip correctly.
func seekKeyList(c *textscan.Cursor) error {
	nest := 0
	for {
		b, err := c.NextByte()
		if err != nil {
			return c.Errorf(textscan.ErrMissingKey, "citation without key")
		}
		switch b {
		case '[':
			nest++
		case ']':
			nest--
		case '{':
			if nest <= 0 {
				return nil
			}
		}
	}
}

// parseKeyList reads the comma-separated citekeys of one citation.
// Empty key tokens are dropped, so a bare {} yields zero keys.
func parseKeyList(c *textscan.Cursor) ([]string, error) {
	var keys []string
	for {
		c.SkipWhitespace()
		k := c.TakeWhile(isKeyRune)
		c.SkipWhitespace()
		if k != "" {
			keys = append(keys, k)
		}
		b, err := c.PeekByte()
		if err != nil {
			return nil, c.Errorf(textscan.ErrUnterminated, "unterminated citation key list")
		}
		if b != ',' {
			return keys, nil
		}
		if err := c.Expect(','); err != nil {
			return nil, err
		}
	}
}

// isKeyRune matches the citekey grammar of the entry parser:
// unicode alphanumerics plus '-', '_', ':'.
func isKeyRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == ':'
}
