package schema

import "sort"

// Kind is the classification a tag ends up in (spec.md §4.8).
type Kind int

const (
	KindStruct Kind = iota
	KindEnum
	KindString
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Declaration is one emitted tag's classification result, alongside
// the data needed to render it (spec.md §4.8 Output).
type Declaration struct {
	Tag       TokenID
	Kind      Kind
	SameAs    TokenID   // the representative tag for this member-set equivalence class
	IsRepresentative bool
	Members   []TokenID // insertion order, for STRUCT member listing and ENUM value listing
}

// memberKey turns a tag's member set into a comparable, order-
// independent key (original_source/main.cpp builds member_set_t by
// walking a sorted map; a sorted copy here gives the same equivalence
// regardless of observation order).
func memberKey(members []TokenID) string {
	sorted := append([]TokenID(nil), members...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	key := make([]byte, 0, len(sorted)*4)
	for _, id := range sorted {
		key = append(key, byte(id>>24), byte(id>>16), byte(id>>8), byte(id))
	}
	return string(key)
}

// Classify runs the after-all-documents classification pass of
// spec.md §4.8: every observed tag is assigned a Kind, and tags
// sharing an identical member set collapse onto one representative
// declaration (the first such tag inserted), in m.tagOrder iteration
// order (matching original_source/main.cpp's insertion-ordered
// mined_info map).
func (m *Miner) Classify() []Declaration {
	type equivalence struct {
		sameAs TokenID
		kind   Kind
	}
	kinds := make(map[string]equivalence)
	decls := make([]Declaration, 0, len(m.tagOrder))

	for _, tag := range m.tagOrder {
		info := m.tags[tag]

		var kind Kind
		switch {
		case info.isString:
			kind = KindString
		case info.isNumber:
			kind = KindNumber
		case info.isItem:
			kind = KindEnum
		default:
			kind = KindStruct
		}

		key := memberKey(info.members.order)
		eq, seen := kinds[key]
		representative := !seen
		if !seen {
			eq = equivalence{sameAs: tag, kind: kind}
			kinds[key] = eq
		}

		decls = append(decls, Declaration{
			Tag:              tag,
			Kind:             eq.kind,
			SameAs:           eq.sameAs,
			IsRepresentative: representative,
			Members:          info.members.order,
		})
	}
	return decls
}
