// Package schema implements the schema-mining pass of spec.md §4.8: it
// observes one or more xmlreader event streams and infers struct-like,
// enum-like, number and string declarations from tag/attribute/text
// co-occurrence.
//
// Grounded on original_source/main.cpp's add_mined_item/mined_info_t,
// carried over into the teacher's (ltick-go-ini) file-per-concern
// layout: observation in miner.go, classification in classify.go,
// rendering in render.go.
package schema

import (
	"github.com/xmlpull/xmlschema/token"
	"github.com/xmlpull/xmlschema/xmlreader"
)

// TokenID re-exports token.ID for callers that only import schema.
type TokenID = token.ID

// orderedSet is an insertion-ordered set of token ids: a slice for
// deterministic iteration plus a membership index, mirroring the
// "observation order" determinism spec.md §4.8 calls for.
type orderedSet struct {
	order []TokenID
	index map[TokenID]int
}

func newOrderedSet() orderedSet {
	return orderedSet{index: make(map[TokenID]int)}
}

func (s *orderedSet) add(id TokenID) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
}

// tagInfo is mined_info1_t: the observation state accumulated for one
// effective tag token.
type tagInfo struct {
	members  orderedSet
	isItem   bool
	isNumber bool
	isString bool
}

// Miner accumulates observations across one or more documents, then
// classifies and renders declarations once all documents have been
// fed through Observe (spec.md §4.8's "after all documents processed"
// classification pass).
type Miner struct {
	interner *token.Interner

	tagOrder []TokenID
	tags     map[TokenID]*tagInfo

	numberToken TokenID
	stringToken TokenID
	typeToken   TokenID

	stack []TokenID // the miner's own nesting stack, spec.md §4.8/Miner state
}

// New constructs a Miner sharing interner with one or more xmlreader
// Readers (spec.md §9: "process-wide interner ... specify it as a
// handle passed explicitly").
func New(interner *token.Interner) *Miner {
	return &Miner{
		interner:    interner,
		tags:        make(map[TokenID]*tagInfo),
		numberToken: interner.InternString("<number>"),
		stringToken: interner.InternString("<string>"),
		typeToken:   interner.InternString("type"),
	}
}

func (m *Miner) infoFor(tag TokenID) *tagInfo {
	info, ok := m.tags[tag]
	if !ok {
		info = &tagInfo{members: newOrderedSet()}
		m.tags[tag] = info
		m.tagOrder = append(m.tagOrder, tag)
	}
	return info
}

// isNumberText reports whether text is a non-empty run of ASCII
// digits (original_source/main.cpp's is_number).
func isNumberText(text []byte) bool {
	if len(text) == 0 {
		return false
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isIDText reports whether text contains only [A-Za-z0-9_] (the
// is_id guard of spec.md §9's Open Questions resolution: anything
// else is STRING, not an enumerator).
func isIDText(text []byte) bool {
	for _, c := range text {
		alnum := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !alnum && c != '_' {
			return false
		}
	}
	return true
}

// addItem is add_item/add_mined_item: it records one observation of
// valueToken (classified against valueText) as a member of tagToken.
// Per spec.md §9's resolved Open Question, the member set is
// set-valued: each observation adds its token exactly once, rather
// than replicating the original source's double-increment when
// valueToken gets substituted to the NUMBER/STRING sentinel. Only the
// substituted token is kept, not both it and the original valueToken
// (main.cpp's add_mined_item adds both); this only changes the member
// sets of NUMBER/STRING tags, which are never themselves emitted
// (see DESIGN.md).
func (m *Miner) addItem(tagToken, valueToken TokenID, valueText []byte) {
	info := m.infoFor(tagToken)

	effective := valueToken
	switch {
	case isNumberText(valueText):
		effective = m.numberToken
		info.isNumber = true
	case !isIDText(valueText):
		effective = m.stringToken
		info.isString = true
	}

	info.members.add(effective)
	info.isItem = true
}

// Observe feeds one xmlreader event into the miner, per spec.md §4.8.
// Call it once per Bump result until the reader reaches EOF or
// EventError.
func (m *Miner) Observe(r *xmlreader.Reader, kind xmlreader.EventKind) {
	switch kind {
	case xmlreader.EventOpen:
		attrs := r.Attrs()
		if len(attrs) == 0 {
			return
		}
		tag := attrs[0].IDToken
		for i := 1; i < len(attrs); i++ {
			if attrs[i].IDToken == m.typeToken {
				tag = attrs[i].ValueToken
				break
			}
		}
		for i := 1; i < len(attrs); i++ {
			a := attrs[i]
			if a.IDToken == m.typeToken {
				continue
			}
			m.addItem(tag, a.IDToken, r.Name(a.ValueToken))
		}
		if len(m.stack) != 0 {
			m.infoFor(m.stack[len(m.stack)-1]).members.add(tag)
		}
		m.stack = append(m.stack, tag)

	case xmlreader.EventText:
		if len(m.stack) != 0 {
			text := r.TextBytes()
			textToken := r.Text()
			m.addItem(m.stack[len(m.stack)-1], textToken, text)
		}

	case xmlreader.EventClose:
		if len(m.stack) != 0 {
			m.stack = m.stack[:len(m.stack)-1]
		}
	}
}

// MineDocument drives r to completion, feeding every event to Observe,
// stopping early if r reports a fatal error. It keeps calling Bump
// past the point where the reader first notices end-of-file, since
// each call only unwinds one level of synthetic Close for tags still
// open at EOF (spec.md §5: "every Open has exactly one matching
// Close"); it stops once the stack has fully drained and the reader
// is at EOF. It returns the number of errors accumulated.
func (m *Miner) MineDocument(r *xmlreader.Reader) int {
	for {
		kind := r.Bump()
		if kind == xmlreader.EventError {
			break
		}
		m.Observe(r, kind)
		if r.EOF() && r.StackDepth() == 0 {
			break
		}
	}
	return r.Errors()
}
