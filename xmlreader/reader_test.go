package xmlreader_test

import (
	"strings"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/xmlpull/xmlschema/token"
	"github.com/xmlpull/xmlschema/xmlreader"
)

func Test(t *testing.T) { TestingT(t) }

type S struct{}

var _ = Suite(&S{})

func newReader(doc string) (*xmlreader.Reader, *token.Interner) {
	interner := token.New()
	limits := xmlreader.DefaultLimits()
	r := xmlreader.New(strings.NewReader(doc), "test.xml", interner, limits)
	r.SetDiagWriter(&strings.Builder{})
	return r, interner
}

// events collects a flat trace of the document's event kinds, draining
// past the point where the reader first notices EOF (spec.md §5: every
// Open is matched by exactly one Close, including synthetic ones).
func events(r *xmlreader.Reader) []xmlreader.EventKind {
	var kinds []xmlreader.EventKind
	for {
		k := r.Bump()
		kinds = append(kinds, k)
		if k == xmlreader.EventError {
			break
		}
		if r.EOF() && r.StackDepth() == 0 {
			break
		}
	}
	return kinds
}

func (s *S) TestEmptyElement(c *C) {
	r, _ := newReader(`<root/>`)
	kinds := events(r)
	c.Assert(kinds[0], Equals, xmlreader.EventOpen)
	c.Assert(kinds[1], Equals, xmlreader.EventClose)
}

func (s *S) TestAttributesAndText(c *C) {
	r, interner := newReader(`<a x="1" y="2">  hello   world  </a>`)

	c.Assert(r.Bump(), Equals, xmlreader.EventOpen)
	attrs := r.Attrs()
	c.Assert(len(attrs), Equals, 3) // tag name + 2 attrs
	c.Assert(string(interner.Name(attrs[0].IDToken)), Equals, "a")
	c.Assert(string(interner.Name(attrs[1].IDToken)), Equals, "x")
	c.Assert(string(interner.Name(attrs[1].ValueToken)), Equals, "1")

	c.Assert(r.Bump(), Equals, xmlreader.EventText)
	c.Assert(string(r.TextBytes()), Equals, "hello world") // collapsed/trimmed

	c.Assert(r.Bump(), Equals, xmlreader.EventClose)
}

func (s *S) TestNamespaceBindingAndResolution(c *C) {
	r, interner := newReader(`<n:root xmlns:n="urn:x"><n:child/></n:root>`)

	c.Assert(r.Bump(), Equals, xmlreader.EventOpen)
	root := r.Attrs()
	nsTok := root[0].NamespaceToken
	c.Assert(nsTok, Not(Equals), xmlreader.NotAToken)
	c.Assert(string(interner.Name(nsTok)), Equals, "urn:x")

	c.Assert(r.Bump(), Equals, xmlreader.EventOpen)
	child := r.Attrs()
	c.Assert(child[0].NamespaceToken, Equals, nsTok)

	c.Assert(r.Bump(), Equals, xmlreader.EventClose) // synthetic close of <n:child/>
	c.Assert(r.Bump(), Equals, xmlreader.EventClose) // close of root
}

func (s *S) TestNamedAndNumericEscapes(c *C) {
	r, _ := newReader(`<a>x &amp; y &#65; z</a>`)
	c.Assert(r.Bump(), Equals, xmlreader.EventOpen)
	c.Assert(r.Bump(), Equals, xmlreader.EventText)
	c.Assert(string(r.TextBytes()), Equals, "x & y A z")
}

func (s *S) TestMismatchedCloseReportsError(c *C) {
	r, _ := newReader(`<a></b>`)
	c.Assert(r.Bump(), Equals, xmlreader.EventOpen)
	before := r.Errors()
	c.Assert(r.Bump(), Equals, xmlreader.EventClose)
	c.Assert(r.Errors(), Equals, before+1)
}

func (s *S) TestUnclosedTagAtEOFGetsSyntheticClose(c *C) {
	r, _ := newReader(`<a><b>text`)
	kinds := events(r)
	opens, closes := 0, 0
	for _, k := range kinds {
		switch k {
		case xmlreader.EventOpen:
			opens++
		case xmlreader.EventClose:
			closes++
		}
	}
	c.Assert(opens, Equals, 2)
	c.Assert(closes >= opens, Equals, true)
}

func (s *S) TestCommentIsSkipped(c *C) {
	r, _ := newReader(`<a><!-- comment --></a>`)
	c.Assert(r.Bump(), Equals, xmlreader.EventOpen)
	c.Assert(r.Bump(), Equals, xmlreader.EventClose)
}

func (s *S) TestProcessingInstructionIsIgnored(c *C) {
	r, _ := newReader(`<a><?pi data?></a>`)
	c.Assert(r.Bump(), Equals, xmlreader.EventOpen)
	c.Assert(r.Bump(), Equals, xmlreader.EventClose)
}
