package xmlreader

// FindAttr is a linear search over the current tag's real attributes
// (attrs[1:], attrs[0] being the tag name itself), per spec.md §4.7.
// It returns nil, and optionally warns, when nothing matches.
func (r *Reader) FindAttr(id, namespace TokenID) *Attr {
	if len(r.attrs) > 1 {
		for i := 1; i < len(r.attrs); i++ {
			a := &r.attrs[i]
			if a.IDToken == id && a.NamespaceToken == namespace {
				return a
			}
		}
		r.warn(r.attrs[0].Loc, "no attribute \"%s:%s\" found in <%s:%s>",
			r.Name(namespace), r.Name(id),
			r.Name(r.attrs[0].NamespaceToken), r.Name(r.attrs[0].IDToken))
		return nil
	}
	r.warn(r.lexLoc, "here should be a tag with attribute \"%s:%s\"", r.Name(namespace), r.Name(id))
	return nil
}

// BumpTagAt skips every subtree deeper than level, then bumps once
// more; it returns the tag view of the Open event found at that depth,
// or nil once the document can no longer reach it (EOF, or the stack
// has already unwound past level), per spec.md §4.7.
func (r *Reader) BumpTagAt(level int) []Attr {
	for !r.eof && level <= r.StackDepth() {
		r.IgnoreRestAt(level + 1)
		switch r.Bump() {
		case EventOpen:
			return r.Attrs()
		case EventError:
			return nil
		}
	}
	return nil
}

// FindTagAt combines BumpTagAt with name matching: it keeps skipping
// siblings at level until one matches (id, namespace), or the document
// runs out (spec.md §4.7).
func (r *Reader) FindTagAt(id, namespace TokenID, level int) []Attr {
	for {
		attrs := r.BumpTagAt(level)
		if attrs == nil {
			return nil
		}
		if len(attrs) != 0 && attrs[0].IDToken == id && attrs[0].NamespaceToken == namespace {
			return attrs
		}
	}
}

// FindTagRecursive descends into subtrees (unlike BumpTagAt/FindTagAt,
// which only look at siblings of one level), returning the first Open
// event at depth >= minLevel whose tag matches (id, namespace), per
// spec.md §4.7.
func (r *Reader) FindTagRecursive(id, namespace TokenID, minLevel int) []Attr {
	startLoc := r.tagLoc
	for !r.eof && minLevel <= r.StackDepth() {
		switch r.Bump() {
		case EventOpen:
			if r.attrs[0].IDToken == id && r.attrs[0].NamespaceToken == namespace {
				return r.Attrs()
			}
		case EventError:
			return nil
		}
	}
	r.warn(startLoc, "no tag \"%s:%s\" found", r.Name(namespace), r.Name(id))
	r.note(r.tagLoc, "up to here")
	return nil
}

// IgnoreRestAt consumes and discards events until the open-tag stack
// unwinds below level, i.e. it skips the remaining siblings and all of
// their descendants at the current depth (spec.md §4.7). It warns about
// each dropped element whose depth is no deeper than the starting depth
// and no deeper than any element it already warned about, so a caller
// skipping unknown structure doesn't do so silently; deeper elements
// and text are dropped without a warning.
func (r *Reader) IgnoreRestAt(level int) {
	shallowestSeen := r.StackDepth()
	for !r.eof && level <= r.StackDepth() {
		kind := r.Bump()
		if kind == EventError {
			return
		}
		if kind == EventOpen && r.StackDepth() <= shallowestSeen {
			shallowestSeen = r.StackDepth()
			r.warn(r.attrs[0].Loc, "<%s:%s> is skipped",
				r.Name(r.attrs[0].NamespaceToken), r.Name(r.attrs[0].IDToken))
		}
	}
}
