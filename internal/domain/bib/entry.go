// Package bib parses a bibliography source into structured entries.
// The grammar is the classic entry shape
//
//	@<type>{<key>, <field> = <value>, ...}
//
// with five recognized entry types, quoted/braced/bare-numeric values,
// and brace stripping inside values. Only author, title, and date are
// projected into an Entry; other fields parse but are discarded.
package bib

// PubType is the closed set of publication types. It is a tagged value,
// not a base type: dispatch happens in the grammar, never via subtyping.
type PubType int

const (
	Book PubType = iota
	Article
	InProceedings
	InCollection
	Misc
)

// String returns the lower-case source keyword for the type.
func (t PubType) String() string {
	switch t {
	case Book:
		return "book"
	case Article:
		return "article"
	case InProceedings:
		return "inproceedings"
	case InCollection:
		return "incollection"
	case Misc:
		return "misc"
	default:
		return "unknown"
	}
}

// Entry is one bibliographic record. Author, Title, and Date are empty
// when the source omits the field. Key uniqueness is not enforced here;
// the library index applies first-wins when keys collide.
type Entry struct {
	Type   PubType `json:"type"`
	Key    string  `json:"key"`
	Author string  `json:"author"`
	Title  string  `json:"title"`
	Date   string  `json:"date"`
}
