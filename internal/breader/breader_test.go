package breader_test

import (
	"strings"
	"testing"

	"github.com/xmlpull/xmlschema/internal/breader"
)

func TestGetAdvancesColumn(t *testing.T) {
	r := breader.New(strings.NewReader("abc"), 1024, nil)
	for i, want := range []byte("abc") {
		b, ok := r.Get()
		if !ok {
			t.Fatalf("byte %d: unexpected EOF", i)
		}
		if b != want {
			t.Fatalf("byte %d = %q, want %q", i, b, want)
		}
	}
	if _, ok := r.Get(); ok {
		t.Fatalf("expected EOF after consuming all input")
	}
	if !r.EOF() {
		t.Fatalf("EOF() should latch true")
	}
}

func TestUngetThenReget(t *testing.T) {
	r := breader.New(strings.NewReader("xy"), 1024, nil)
	b, _ := r.Get()
	if b != 'x' {
		t.Fatalf("got %q, want 'x'", b)
	}
	r.Unget()
	b, ok := r.Get()
	if !ok || b != 'x' {
		t.Fatalf("re-reading after Unget: got %q, ok=%v", b, ok)
	}
}

func TestUngetAcrossBlockBoundaryIsNoOp(t *testing.T) {
	// A one-byte block forces every Get to refill. After reading 'a' and
	// 'b', the current block holds only 'b': the first Unget steps back
	// within it, and the second would cross into the previous block, so
	// it is ignored (matches the C _ungetc silently ignoring an unget
	// across a block boundary).
	r := breader.New(strings.NewReader("ab"), 1, nil)
	r.Get()
	r.Get()
	r.Unget()
	r.Unget()
	b, ok := r.Get()
	if !ok || b != 'b' {
		t.Fatalf("Unget across a block boundary should be a no-op; got %q, ok=%v", b, ok)
	}
}

func TestNewlineResetsColumnAndTracksLine(t *testing.T) {
	r := breader.New(strings.NewReader("a\nb"), 1024, nil)
	r.Get() // 'a', col=1
	b, _ := r.Get()
	if b != '\n' {
		t.Fatalf("expected newline byte")
	}
	r.Newline()
	loc := r.Location()
	if loc.Line != 2 || loc.Col != 0 {
		t.Fatalf("Location after Newline = %+v, want {Line:2 Col:0}", loc)
	}
	b, ok := r.Get()
	if !ok || b != 'b' {
		t.Fatalf("Get after Newline: got %q, ok=%v", b, ok)
	}
}

func TestShortReadLatchesEOF(t *testing.T) {
	r := breader.New(strings.NewReader(""), 1024, nil)
	if _, ok := r.Get(); ok {
		t.Fatalf("expected immediate EOF on empty source")
	}
	if !r.EOF() {
		t.Fatalf("EOF() should be true")
	}
}
