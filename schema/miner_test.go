package schema_test

import (
	"strings"
	"testing"

	"github.com/xmlpull/xmlschema/schema"
	"github.com/xmlpull/xmlschema/token"
	"github.com/xmlpull/xmlschema/xmlreader"
)

func mine(t *testing.T, doc string) (*schema.Miner, *token.Interner, []schema.Declaration) {
	t.Helper()
	interner := token.New()
	m := schema.New(interner)
	r := xmlreader.New(strings.NewReader(doc), "test.xml", interner, xmlreader.DefaultLimits())
	r.SetDiagWriter(&strings.Builder{})
	if errs := m.MineDocument(r); errs != 0 {
		t.Fatalf("MineDocument: %d errors mining %q", errs, doc)
	}
	return m, interner, m.Classify()
}

func declFor(decls []schema.Declaration, interner *token.Interner, name string) (schema.Declaration, bool) {
	for _, d := range decls {
		if string(interner.Name(d.Tag)) == name {
			return d, true
		}
	}
	return schema.Declaration{}, false
}

// Per original_source/main.cpp's add_mined_item, is_number latches
// true for a tag the moment any one observed value is all-digits and
// is never cleared by a later non-numeric sibling; the is_string >
// is_number > is_item > struct priority chain then picks NUMBER here
// even though one sibling ("hi") is not itself numeric.
func TestClassifyMixedNumericAndTextSiblingsIsNumber(t *testing.T) {
	_, interner, decls := mine(t, `<root><item>1</item><item>2</item><item>hi</item></root>`)

	item, ok := declFor(decls, interner, "item")
	if !ok {
		t.Fatalf("no declaration for \"item\"")
	}
	if item.Kind != schema.KindNumber {
		t.Fatalf("item.Kind = %v, want %v", item.Kind, schema.KindNumber)
	}

	root, ok := declFor(decls, interner, "root")
	if !ok {
		t.Fatalf("no declaration for \"root\"")
	}
	if root.Kind != schema.KindStruct {
		t.Fatalf("root.Kind = %v, want %v", root.Kind, schema.KindStruct)
	}
	if len(root.Members) != 1 || string(interner.Name(root.Members[0])) != "item" {
		t.Fatalf("root.Members = %v, want [item]", root.Members)
	}
}

func TestClassifyAllNumericIsNumber(t *testing.T) {
	_, interner, decls := mine(t, `<root><n>1</n><n>2</n></root>`)
	n, ok := declFor(decls, interner, "n")
	if !ok {
		t.Fatalf("no declaration for \"n\"")
	}
	if n.Kind != schema.KindNumber {
		t.Fatalf("n.Kind = %v, want %v", n.Kind, schema.KindNumber)
	}
}

func TestClassifyTextWithSpaceIsString(t *testing.T) {
	_, interner, decls := mine(t, `<root><s>a b</s></root>`)
	s, ok := declFor(decls, interner, "s")
	if !ok {
		t.Fatalf("no declaration for \"s\"")
	}
	if s.Kind != schema.KindString {
		t.Fatalf("s.Kind = %v, want %v", s.Kind, schema.KindString)
	}
}

func TestClassifyPureEnumOfIdentifierTokens(t *testing.T) {
	_, interner, decls := mine(t, `<root><color>red</color><color>green</color></root>`)
	color, ok := declFor(decls, interner, "color")
	if !ok {
		t.Fatalf("no declaration for \"color\"")
	}
	if color.Kind != schema.KindEnum {
		t.Fatalf("color.Kind = %v, want %v", color.Kind, schema.KindEnum)
	}
	if len(color.Members) != 2 {
		t.Fatalf("color.Members = %v, want 2 entries", color.Members)
	}
}

// The "type" attribute overrides which tag an open element's
// observations are attributed to (spec.md §4.8); the other attribute's
// value (x="1") is numeric, so the one member recorded is the <number>
// sentinel, and "item" itself never becomes a declaration.
func TestTypeAttributeOverridesEffectiveTag(t *testing.T) {
	_, interner, decls := mine(t, `<root><item type="widget" x="1"/></root>`)
	widget, ok := declFor(decls, interner, "widget")
	if !ok {
		t.Fatalf("no declaration for \"widget\" (the type= override)")
	}
	if len(widget.Members) != 1 {
		t.Fatalf("widget.Members = %v, want exactly 1 entry", widget.Members)
	}
	if widget.Kind != schema.KindNumber {
		t.Fatalf("widget.Kind = %v, want %v", widget.Kind, schema.KindNumber)
	}
	if _, ok := declFor(decls, interner, "item"); ok {
		t.Fatalf("\"item\" should not appear as its own declaration once type= overrides it")
	}
}

// Two tags sharing an identical member set collapse onto one
// representative declaration (spec.md §4.8's member-set equivalence).
func TestIdenticalMemberSetsShareRepresentative(t *testing.T) {
	_, interner, decls := mine(t, `<root><a><x>1</x></a><b><x>1</x></b></root>`)
	da, ok := declFor(decls, interner, "a")
	if !ok {
		t.Fatalf("no declaration for \"a\"")
	}
	db, ok := declFor(decls, interner, "b")
	if !ok {
		t.Fatalf("no declaration for \"b\"")
	}
	if da.SameAs != db.SameAs {
		t.Fatalf("a.SameAs=%v, b.SameAs=%v, want equal (identical member sets)", da.SameAs, db.SameAs)
	}
	if da.IsRepresentative == db.IsRepresentative {
		t.Fatalf("exactly one of a, b should be the representative, got both %v", da.IsRepresentative)
	}
}

func TestRenderWritesStructAndEnumBlocks(t *testing.T) {
	m, _, decls := mine(t, `<root><color>red</color><color>green</color></root>`)
	var buf strings.Builder
	m.Render(&buf, decls)
	out := buf.String()
	if !strings.Contains(out, "struct root {") {
		t.Fatalf("render missing struct root block: %s", out)
	}
	if !strings.Contains(out, "enum color {") {
		t.Fatalf("render missing enum color block: %s", out)
	}
}

func TestRenderJSONProducesOneEntryPerRepresentative(t *testing.T) {
	m, _, decls := mine(t, `<root><a><x>1</x></a><b><x>1</x></b></root>`)
	var buf strings.Builder
	if err := m.RenderJSON(&buf, decls); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	// root + one representative of {a, b}'s shared member set.
	if got := strings.Count(buf.String(), `"tag"`); got != 2 {
		t.Fatalf("RenderJSON entries = %d, want 2: %s", got, buf.String())
	}
}
