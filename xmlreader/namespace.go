package xmlreader

import "bytes"

// cstr returns the null-terminated run of text starting at index,
// the addressing scheme spec.md §9 calls for: attribute/binding
// fields are indices into a shared text buffer rather than owned
// slices.
func (r *Reader) cstr(index int) []byte {
	end := index
	for end < len(r.text) && r.text[end] != 0 {
		end++
	}
	return r.text[index:end]
}

// bindNamespace pushes a binding for the alias found at nameIndex in
// the text buffer (spec.md §4.5). Overflow of either the binding
// stack or its text arena is a recoverable resource error.
func (r *Reader) bindNamespace(nameIndex int, namespaceToken TokenID) {
	alias := r.cstr(nameIndex)
	if len(r.bound) == r.limits.BoundSize {
		r.errorAtTag("too many bindings, please set \"max_bound_size\" to %d or more", 2*r.limits.BoundSize)
		return
	}
	nameOffset := len(r.boundText)
	newSize := nameOffset + len(alias) + 1 // +1 for the stored terminator
	if newSize > r.limits.BoundTextSize {
		r.errorAtTag("too much bound text, please set \"max_bound_text_size\" to %d or more", 2*r.limits.BoundTextSize)
		return
	}
	r.boundText = append(r.boundText, alias...)
	r.boundText = append(r.boundText, 0)
	r.bound = append(r.bound, binding{namespaceToken: namespaceToken, nameOffset: nameOffset})
}

// boundAlias returns the null-terminated alias text stored for a
// binding at the given index in r.boundText.
func (r *Reader) boundAlias(nameOffset int) []byte {
	end := nameOffset
	for end < len(r.boundText) && r.boundText[end] != 0 {
		end++
	}
	return r.boundText[nameOffset:end]
}

// resolveNamespaces runs over the completed attribute array (attrs[0]
// included, per spec.md §4.6) before the tag is reported, matching
// each attribute's alias against the current binding stack top-down.
func (r *Reader) resolveNamespaces() {
	for i := range r.attrs {
		a := &r.attrs[i]
		alias := r.cstr(a.NamespaceIndex)
		resolved := false
		for j := len(r.bound) - 1; j >= 0; j-- {
			if bytes.Equal(alias, r.boundAlias(r.bound[j].nameOffset)) {
				a.NamespaceToken = r.bound[j].namespaceToken
				resolved = true
				break
			}
		}
		if !resolved {
			r.warn(a.Loc, "namespace alias \"%s\" is unknown", alias)
			if !r.warnedUnresolved {
				r.warnedUnresolved = true
				r.note(a.Loc, "tags/attributes with unresolved aliases are ignored")
			}
		}
	}
}

// unbindTo restores the binding stack and its text arena to the sizes
// recorded when the corresponding open tag was entered (spec.md §4.6
// balance checking).
func (r *Reader) unbindTo(n stackNode) {
	r.bound = r.bound[:n.boundSize]
	r.boundText = r.boundText[:n.boundTextSize]
}
