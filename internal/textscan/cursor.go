// Package textscan provides the byte/rune cursor both parsers read from,
// plus the structured parse error they report with. The cursor is backed
// by a fully-read source: bibliography and document files are small, and
// a flat buffer makes backtracking (Mark/ResetTo, MatchFold) exact: a
// failed match leaves the cursor byte-identical to where it started.
package textscan

import (
	"io"
	"unicode/utf8"
)

// Cursor is a sequential reader over a finite source. One parser owns it
// for the duration of one parse; nothing else advances it.
type Cursor struct {
	src []byte
	off int
}

// New returns a cursor positioned at the start of src.
func New(src []byte) *Cursor {
	return &Cursor{src: src}
}

// FromReader drains r and returns a cursor over its contents.
func FromReader(r io.Reader) (*Cursor, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(src), nil
}

// EOF reports whether the cursor has consumed the entire source.
func (c *Cursor) EOF() bool {
	return c.off >= len(c.src)
}

// PeekByte returns the next byte without consuming it.
func (c *Cursor) PeekByte() (byte, error) {
	if c.EOF() {
		return 0, c.eofError()
	}
	return c.src[c.off], nil
}

// NextByte consumes and returns the next byte.
func (c *Cursor) NextByte() (byte, error) {
	if c.EOF() {
		return 0, c.eofError()
	}
	b := c.src[c.off]
	c.off++
	return b, nil
}

// Expect consumes the next byte and fails if it is not want.
// At end of input the error kind is ErrEOF, so truncated input is
// distinguishable from malformed input.
func (c *Cursor) Expect(want byte) error {
	if c.EOF() {
		return c.Errorf(ErrEOF, "unexpected end of input, %q expected", want)
	}
	if got := c.src[c.off]; got != want {
		return c.Errorf(ErrUnexpected, "unexpected token %q, %q expected", got, want)
	}
	c.off++
	return nil
}

// SkipWhitespace consumes a run of ASCII whitespace (space, tab, CR, LF).
func (c *Cursor) SkipWhitespace() {
	for c.off < len(c.src) {
		switch c.src[c.off] {
		case ' ', '\t', '\r', '\n':
			c.off++
		default:
			return
		}
	}
}

// TakeWhile consumes the maximal run of runes satisfying pred and returns
// it. The run may be empty. Decoding is UTF-8 aware so predicates can use
// the unicode tables.
func (c *Cursor) TakeWhile(pred func(rune) bool) string {
	start := c.off
	for c.off < len(c.src) {
		r, w := utf8.DecodeRune(c.src[c.off:])
		if !pred(r) {
			break
		}
		c.off += w
	}
	return string(c.src[start:c.off])
}

// Match consumes lit if the source continues with it exactly.
// On a failed match the cursor does not move.
func (c *Cursor) Match(lit string) bool {
	if len(c.src)-c.off < len(lit) {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if c.src[c.off+i] != lit[i] {
			return false
		}
	}
	c.off += len(lit)
	return true
}

// MatchFold is Match with ASCII case folding.
func (c *Cursor) MatchFold(lit string) bool {
	if len(c.src)-c.off < len(lit) {
		return false
	}
	for i := 0; i < len(lit); i++ {
		if lowerASCII(c.src[c.off+i]) != lowerASCII(lit[i]) {
			return false
		}
	}
	c.off += len(lit)
	return true
}

func lowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// Mark returns an opaque position token for later ResetTo.
func (c *Cursor) Mark() int {
	return c.off
}

// ResetTo rewinds the cursor to a position previously returned by Mark.
func (c *Cursor) ResetTo(mark int) {
	c.off = mark
}

// Pos returns the current position. Line and column are computed on
// demand; they are only needed when building a diagnostic.
func (c *Cursor) Pos() Position {
	return c.posAt(c.off)
}

func (c *Cursor) posAt(off int) Position {
	line, col := 1, 1
	for _, b := range c.src[:off] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Offset: off, Line: line, Col: col}
}

// Errorf builds a ParseError of the given kind at the current position.
func (c *Cursor) Errorf(kind ErrKind, format string, args ...any) *ParseError {
	return errorf(kind, c.Pos(), format, args...)
}

func (c *Cursor) eofError() *ParseError {
	return c.Errorf(ErrEOF, "unexpected end of input")
}
