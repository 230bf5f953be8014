package textscan

import "fmt"

// ErrKind classifies a parse failure. Truncated input (ErrEOF) is kept
// apart from malformed input (ErrUnexpected) so callers can tell "the
// file ended early" from "the file is wrong".
type ErrKind int

const (
	// ErrUnexpected: the current byte does not match what the grammar
	// requires here (bad delimiter, missing comma, unknown entry type).
	ErrUnexpected ErrKind = iota

	// ErrDuplicateField: the same field name appears twice in one entry.
	ErrDuplicateField

	// ErrUnterminated: an ignore block or citation key-list never
	// reaches its closing delimiter.
	ErrUnterminated

	// ErrMissingKey: a citation command has no key-list opening brace.
	ErrMissingKey

	// ErrEOF: the source ended where more input was required.
	ErrEOF
)

// String returns the kind name.
func (k ErrKind) String() string {
	switch k {
	case ErrUnexpected:
		return "unexpected token"
	case ErrDuplicateField:
		return "duplicate field"
	case ErrUnterminated:
		return "unterminated block"
	case ErrMissingKey:
		return "missing key"
	case ErrEOF:
		return "end of input"
	default:
		return "unknown"
	}
}

// Position locates a parse failure in the source for diagnostics.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Col    int // 1-based, in bytes
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ParseError is the single failure type both parsers return. Every
// grammar failure aborts the enclosing parse; there is no partial result.
type ParseError struct {
	Kind ErrKind
	Msg  string
	Pos  Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func errorf(kind ErrKind, pos Position, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: pos}
}
