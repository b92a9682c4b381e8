package xmlreader

import (
	"fmt"
	"io"
	"os"

	"github.com/xmlpull/xmlschema/internal/breader"
	"github.com/xmlpull/xmlschema/token"
)

// Reader is the node state machine of spec.md §4.6: a single-pass,
// caller-driven pull parser over one document. A Reader is not safe
// for concurrent use and must not outlive the byte source it was
// constructed with (spec.md §5).
type Reader struct {
	src      *breader.Reader
	interner *token.Interner
	limits   Limits
	source   string
	diag     *diagWriter
	extra    bool // extra_messages_allowed hook, spec.md §7

	attrs []Attr
	stack []stackNode
	bound []binding
	boundText []byte

	text         []byte
	textSize     int
	textHash     uint32
	lexTextIndex int

	lexToken int
	lexLoc   Location
	lexSymbol TokenID

	tagLoc    Location
	endingLoc Location

	state            readerState
	wantWarnEndOfTag bool
	xmlnsToken       TokenID

	errors int
	eof    bool

	warnedUnresolved     bool
	warnedUnknownBalance bool
}

// New constructs a Reader over src. interner is the shared symbol
// table (spec.md §9: "process-wide interner ... specify it as a
// handle passed explicitly"). source names the document for
// diagnostics (e.g. a file path).
func New(src io.Reader, source string, interner *token.Interner, limits Limits) *Reader {
	r := &Reader{
		interner:  interner,
		limits:    limits,
		source:    source,
		extra:     true,
		text:      make([]byte, limits.TextSize),
		boundText: make([]byte, 0, limits.BoundTextSize),
		attrs:     make([]Attr, 0, 1+limits.AttrsSize),
		stack:     make([]stackNode, 0, limits.StackSize),
		bound:     make([]binding, 0, limits.BoundSize),
	}
	r.diag = newDiagWriter(os.Stderr, source)
	r.src = breader.New(src, limits.IOBufSize, r.onSaturate)

	r.xmlnsToken = interner.InternString("xmlns")
	r.bound = append(r.bound, binding{namespaceToken: interner.InternString(""), nameOffset: 0})
	r.boundText = append(r.boundText, 0)
	r.state = stateInText
	return r
}

// SetExtraMessagesAllowed toggles the extra_messages_allowed hook of
// spec.md §7, which globally suppresses optional informational
// messages (unresolved-alias / unknown-balance / skip notices).
func (r *Reader) SetExtraMessagesAllowed(allowed bool) {
	r.extra = allowed
}

// SetDiagWriter overrides where diagnostics are written (defaults to
// os.Stderr); used by tests to capture diagnostic output.
func (r *Reader) SetDiagWriter(w io.Writer) {
	r.diag = newDiagWriter(w, r.source)
}

func (r *Reader) onSaturate(loc Location, what string) {
	r.note(loc, "this is the last tracked %s number", what)
}

// Errors returns the running error counter (spec.md §7).
func (r *Reader) Errors() int { return r.errors }

// EOF reports whether the document has been fully consumed.
func (r *Reader) EOF() bool { return r.eof }

// StackDepth returns the current open-tag stack depth.
func (r *Reader) StackDepth() int { return len(r.stack) }

// BoundDepth returns the current size of the namespace-binding stack,
// for the drivers' high-watermark reporting (SPEC_FULL.md §4 item 3).
func (r *Reader) BoundDepth() int { return len(r.bound) }

// BoundTextLen returns the current size of the namespace-binding text
// arena, for the drivers' high-watermark reporting.
func (r *Reader) BoundTextLen() int { return len(r.boundText) }

// TextLen returns the current size of the text scratch buffer, for
// the drivers' high-watermark reporting.
func (r *Reader) TextLen() int { return r.textSize }

// Attrs returns the current tag's attribute view; attrs[0] is the tag
// name after an Open event and after a Close produced by a closing tag
// or by <tag/>. The view is empty for the synthetic Close of a tag
// still open at EOF.
func (r *Reader) Attrs() []Attr { return r.attrs }

// Text returns the token id of the most recently interned identifier,
// literal or text run; right after a Text event this is the whole
// text. It is not reset between events.
func (r *Reader) Text() TokenID { return r.lexSymbol }

// TextBytes returns the raw bytes backing the most recent lexed token
// (valid only until the next Bump call, per spec.md §9's cyclic-view
// design note).
func (r *Reader) TextBytes() []byte {
	end := r.textSize
	if end > r.lexTextIndex {
		end-- // exclude the null terminator written by closeText
	}
	return r.text[r.lexTextIndex:end]
}

// Name resolves a token id to its interned bytes.
func (r *Reader) Name(id TokenID) []byte { return r.interner.Name(id) }

// ---- low-level byte/text primitives ----

func (r *Reader) getc() (int, bool) {
	b, ok := r.src.Get()
	if !ok {
		r.eof = true
		return -1, false
	}
	return int(b), true
}

func (r *Reader) ungetc() {
	r.src.Unget()
}

func (r *Reader) gotNewline() {
	r.src.Newline()
}

func (r *Reader) loc() Location {
	return r.src.Location()
}

// addText appends one byte to the shared text scratch buffer, rolling
// the running hash forward, honoring max_text_size (spec.md §6).
func (r *Reader) addText(c int) {
	r.textHash = 33*r.textHash + uint32(byte(c))
	if r.textSize != r.limits.TextSize-1 {
		r.text[r.textSize] = byte(c)
		r.textSize++
	}
}

// closeText null-terminates and interns the token starting at
// lexTextIndex, or reports a text overflow if the scratch buffer was
// exhausted (spec.md §4.3, §7: Resource/text overflow).
func (r *Reader) closeText() {
	if r.textSize != r.limits.TextSize-1 {
		r.lexSymbol = r.interner.Intern(r.text[r.lexTextIndex:r.textSize], r.textHash)
		r.text[r.textSize] = 0
		r.textSize++ // reserve the terminator slot for the next token
	} else {
		r.textSize = r.lexTextIndex
		r.text[r.lexTextIndex] = 0
		r.lexSymbol = NotAToken
		r.errorAtLex("too much text, please set \"max_text_size\" to %d or more", 2*r.limits.TextSize)
	}
}

// ---- diagnostics ----

func (r *Reader) note(loc Location, format string, a ...interface{}) {
	fmt.Fprintf(r.diag.messg(loc, DiagNote), format+"\n", a...)
}

func (r *Reader) warnOnce(flag *bool, loc Location, format string, a ...interface{}) {
	if *flag {
		return
	}
	*flag = true
	if !r.extra {
		return
	}
	fmt.Fprintf(r.diag.messg(loc, DiagWarningOnce), format+"\n", a...)
}

func (r *Reader) warn(loc Location, format string, a ...interface{}) {
	if !r.extra {
		return
	}
	fmt.Fprintf(r.diag.messg(loc, DiagWarning), format+"\n", a...)
}

func (r *Reader) errorAt(loc Location, format string, a ...interface{}) {
	r.errors++
	fmt.Fprintf(r.diag.messg(loc, DiagError), format+"\n", a...)
}

func (r *Reader) errorAtLex(format string, a ...interface{}) {
	r.errorAt(r.lexLoc, format, a...)
}

func (r *Reader) errorAtTag(format string, a ...interface{}) {
	r.errorAt(r.tagLoc, format, a...)
}

func (r *Reader) errorAtCur(format string, a ...interface{}) {
	r.errorAt(r.loc(), format, a...)
}
