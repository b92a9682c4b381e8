package xmlreader

// isPunct reports the ASCII punctuation class used by the C source's
// ispunct(): printable, non-space, non-alphanumeric.
func isPunct(c int) bool {
	return (c >= 0x21 && c <= 0x2F) ||
		(c >= 0x3A && c <= 0x40) ||
		(c >= 0x5B && c <= 0x60) ||
		(c >= 0x7B && c <= 0x7E)
}

// isIdentChar reports whether c continues a lexer identifier run
// (spec.md §4.3): any non-space byte that is alphanumeric or one of
// the punctuation exceptions _, -, .
func isIdentChar(c int) bool {
	return c > ' ' && (!isPunct(c) || c == '_' || c == '-' || c == '.')
}

// nextLex is the tag-context lexer (spec.md §4.3). It skips
// whitespace, tracking newlines, then classifies the first non-space
// byte as an identifier, a quoted literal, or a single-character
// token, recording lexLoc, lexTextIndex and the rolling text hash.
func (r *Reader) nextLex() {
	r.lexTextIndex = r.textSize
	r.textHash = 0

	for {
		loc0 := r.loc()
		c, ok := r.getc()
		if !ok {
			return
		}
		if c == '\n' {
			r.gotNewline()
			continue
		}
		if c <= ' ' {
			continue
		}
		r.lexLoc = loc0

		if isIdentChar(c) {
			for isIdentChar(c) {
				r.addText(c)
				c, ok = r.getc()
				if !ok {
					break
				}
			}
			if ok {
				r.ungetc()
			}
			r.closeText()
			r.lexToken = lexID
			return
		}

		if c == '"' {
			for {
				c, ok = r.getc()
				if !ok {
					r.errorAtLex("literal not closed")
					break
				}
				if c == '"' {
					break
				}
				if c >= ' ' || c == '\t' {
					if c == '&' {
						r.readEsc()
					} else {
						r.addText(c)
					}
					continue
				}
				r.errorAtLex("literal not closed")
				break
			}
			r.closeText()
			r.lexToken = lexLiteral
			return
		}

		r.lexToken = c
		return
	}
}
