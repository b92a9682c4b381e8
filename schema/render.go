package schema

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
)

// Render writes the declarations of decls, restricted to
// representatives, as the textual declaration stream of spec.md §4.8
// (original_source/main.cpp's printf render loop, adapted to Go's
// "specify semantic content, not exact text" instruction).
func (m *Miner) Render(w io.Writer, decls []Declaration) {
	for _, d := range decls {
		if !d.IsRepresentative {
			continue
		}
		switch d.Kind {
		case KindStruct:
			fmt.Fprintf(w, "struct %s {\n", m.interner.Name(d.Tag))
			for _, member := range d.Members {
				fmt.Fprintf(w, "  %s: %s\n", m.interner.Name(member), m.refType(member))
			}
			fmt.Fprintf(w, "}\n\n")
		case KindEnum:
			fmt.Fprintf(w, "enum %s {\n", m.interner.Name(d.Tag))
			for _, member := range d.Members {
				fmt.Fprintf(w, "  %s\n", m.interner.Name(member))
			}
			fmt.Fprintf(w, "}\n\n")
		}
	}
}

// refType resolves how a struct member token should be printed: the
// sentinel name for NUMBER/STRING, or the representative tag name for
// a nested ENUM/STRUCT, or "unknown" if the token was never itself
// observed as a tag (original_source/main.cpp's mined_info lookup
// falling through to "type_unknown").
func (m *Miner) refType(member TokenID) string {
	info, ok := m.tags[member]
	if !ok {
		return "unknown"
	}
	rep := member
	key := memberKey(info.members.order)
	for _, tag := range m.tagOrder {
		if memberKey(m.tags[tag].members.order) == key {
			rep = tag
			break
		}
	}
	switch {
	case info.isString:
		return "string"
	case info.isNumber:
		return "number"
	case info.isItem:
		return "enum " + string(m.interner.Name(rep))
	default:
		return "struct " + string(m.interner.Name(rep))
	}
}

// jsonMember and jsonDeclaration are the shapes -json output encodes
// with segmentio/encoding/json, SPEC_FULL.md §3/§5.
type jsonMember struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type jsonDeclaration struct {
	Tag     string       `json:"tag"`
	Kind    string       `json:"kind"`
	Members []jsonMember `json:"members,omitempty"`
}

// RenderJSON writes the same representative declarations as a JSON
// array, an alternate machine-readable rendering (SPEC_FULL.md §5).
func (m *Miner) RenderJSON(w io.Writer, decls []Declaration) error {
	out := make([]jsonDeclaration, 0, len(decls))
	for _, d := range decls {
		if !d.IsRepresentative || (d.Kind != KindStruct && d.Kind != KindEnum) {
			continue // NUMBER and STRING are not emitted, only referenced (spec.md §4.8)
		}
		jd := jsonDeclaration{
			Tag:  string(m.interner.Name(d.Tag)),
			Kind: d.Kind.String(),
		}
		for _, member := range d.Members {
			jd.Members = append(jd.Members, jsonMember{
				Name: string(m.interner.Name(member)),
				Type: m.refType(member),
			})
		}
		out = append(out, jd)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
