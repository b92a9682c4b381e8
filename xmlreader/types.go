// Package xmlreader implements the hand-written, fixed-capacity,
// single-pass pull XML reader of spec.md §4.2-§4.7: a lexer, an escape
// decoder, a namespace-binding stack and the node state machine that
// drives them, exposed through a small pull-style event API.
//
// The package is grounded on the teacher's (ltick-go-ini, a Go port of
// go-yaml's internals) split of a flat scanning/parsing machine into
// cooperating files over one shared state struct, adapted here to XML
// and to idiomatic exported/unexported Go naming instead of the
// teacher's yaml_*/ini_* C-style prefixes.
package xmlreader

import (
	"github.com/xmlpull/xmlschema/internal/breader"
	"github.com/xmlpull/xmlschema/token"
)

// TokenID re-exports token.ID so callers need not import the token
// package just to name attribute/tag token types.
type TokenID = token.ID

// NotAToken re-exports the interner's "unknown" sentinel.
const NotAToken = token.NotAToken

// Limits mirrors the compile-time configuration of spec.md §6. The
// zero value is invalid; use DefaultLimits.
type Limits struct {
	EscLength     int
	AttrsSize     int
	BoundSize     int
	StackSize     int
	TextSize      int
	BoundTextSize int
	IOBufSize     int
}

// DefaultLimits returns the limits named in spec.md §6.
func DefaultLimits() Limits {
	return Limits{
		EscLength:     20,
		AttrsSize:     20,
		BoundSize:     20,
		StackSize:     20,
		TextSize:      1024,
		BoundTextSize: 64,
		IOBufSize:     1024,
	}
}

// Location is a 1-based line, 0-based column pair (spec.md §3).
type Location = breader.Location

// EventKind is the tagged variant of the event kind produced by Bump,
// per spec.md §9's design note recommending a sum type here.
type EventKind int

const (
	// EventOpen is an opening (or self-closing) tag.
	EventOpen EventKind = iota
	// EventText is a run of text content.
	EventText
	// EventClose is a closing tag, including synthetic closes for
	// <tag/> and for tags still open at EOF.
	EventClose
	// EventError marks a fatal condition; the caller must stop
	// calling Bump.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventText:
		return "text"
	case EventClose:
		return "close"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Attr is the attribute view of spec.md §3. Index fields point into
// the reader's text scratch buffer and, like Token fields, are valid
// only until the next Bump call.
type Attr struct {
	Loc            Location
	NamespaceIndex int
	IDIndex        int
	ValueIndex     int
	NamespaceToken TokenID
	IDToken        TokenID
	ValueToken     TokenID
}

// binding records that an alias currently denotes a namespace token.
type binding struct {
	namespaceToken TokenID
	nameOffset     int
}

// stackNode is the per-open-tag bookkeeping of spec.md §3.
type stackNode struct {
	loc            Location
	idToken        TokenID
	namespaceToken TokenID
	boundSize      int
	boundTextSize  int
}

// readerState is the node state machine's own state variable
// (spec.md §4.6).
type readerState int

const (
	stateInText readerState = iota
	stateAtEndOfOpenTag
)

// Lexer token kinds beyond the single-byte tokens (spec.md §4.3,
// §9's suggested {Identifier, Literal, SingleByte(u8)} sum type).
const (
	lexID = 256 + iota
	lexLiteral
)
