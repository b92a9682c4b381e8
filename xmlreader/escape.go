package xmlreader

import "strconv"

// namedEscapes are the six built-in character references of spec.md
// §4.4 / §6. The design note in spec.md §9 flags that one of the two
// original source variants substitutes the wrong character for named
// escapes; this table follows the variant the spec says is correct
// (the target character, not the first byte of the escape's own name).
var namedEscapes = map[string]byte{
	"lt":   '<',
	"gt":   '>',
	"apos": '\'',
	"quot": '"',
	"amp":  '&',
	"nbsp": ' ',
}

func isAlnum(c int) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// readEsc consumes an escape from just after '&' up to and including
// ';' (spec.md §4.4). It is called both from plain text scanning and
// from inside a quoted literal.
func (r *Reader) readEsc() {
	loc := r.loc()

	isNumeric := false
	if c, ok := r.getc(); ok && c == '#' {
		isNumeric = true
	} else if ok {
		r.ungetc()
	}

	var name [64]byte
	escLen := 0
	overrun := false
	for {
		c, ok := r.getc()
		if !ok {
			r.errorAt(loc, "missing \";\" in escape")
			break
		}
		if c == ';' {
			break
		}
		if escLen == r.limits.EscLength {
			overrun = true
			r.errorAt(loc, "escape must be shorter %d symbols", escLen)
			for ok && isAlnum(c) {
				c, ok = r.getc()
			}
			if ok && c != ';' {
				r.ungetc()
			}
			break
		}
		if !isAlnum(c) {
			r.errorAt(loc, "missing \";\" in escape")
			break
		}
		name[escLen] = byte(c)
		escLen++
	}
	text := string(name[:escLen])

	var c byte
	if overrun {
		c = '?'
	} else if isNumeric {
		var v uint64
		var err error
		if len(text) > 0 && (text[0] == 'x' || text[0] == 'X') {
			v, err = strconv.ParseUint(text[1:], 16, 32)
		} else {
			v, err = strconv.ParseUint(text, 10, 32)
		}
		if err != nil {
			r.errorAt(loc, "extra text in escape")
		}
		// spec.md §1: UTF-8 decoding of references above 0x7F is a
		// known, explicit limitation; the value is simply truncated.
		c = byte(v)
	} else {
		if target, ok := namedEscapes[text]; ok {
			c = target
		} else {
			r.errorAt(loc, "unknown escape \"&%s;\"", text)
			c = '?'
		}
	}
	r.addText(int(c))
}
