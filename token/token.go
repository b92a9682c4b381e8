// Package token implements the process-wide string interner shared by
// the xmlreader and schema packages.
//
// It mirrors the symbol table of original_source/main.c and main.cpp
// (xml_token_by_str / xml_token_name): an open hash table of fixed
// directory size resolving collisions by chaining, insertion-order-dense
// ids, and a one-way "used" flag kept for statistics rather than
// correctness.
package token

import "github.com/haraldrudell/parl/perrors"

// ID is a small non-negative integer uniquely identifying an interned
// byte string. NotAToken is the reserved "unknown" sentinel.
type ID uint16

// NotAToken is the sentinel value meaning "unknown" / "unresolved".
const NotAToken ID = 0

// defaultHashtabSize is the directory size from spec.md §6
// (symbol_hashtab_size).
const defaultHashtabSize = 5051

// maxID is the largest id an ID can hold; Intern reports allocation
// failure by returning NotAToken once this many strings are interned.
const maxID = ^ID(0)

type entry struct {
	bytes []byte
	next  uint32 // 1-based index into entries, 0 = end of chain
	used  bool
	isTag bool
}

// Interner is the shared symbol table. The zero value is not usable;
// construct with New. An Interner is not safe for concurrent use
// without external synchronization (spec.md §5).
type Interner struct {
	table   []uint32 // 1-based entry index per hash slot, 0 = empty
	entries []entry
}

// New returns an Interner with the default 5051-slot directory.
func New() *Interner {
	return NewSize(defaultHashtabSize)
}

// NewSize returns an Interner with a caller-chosen directory size,
// for tests that want to exercise collision behavior with a small
// table.
func NewSize(hashtabSize int) *Interner {
	if hashtabSize < 1 {
		hashtabSize = defaultHashtabSize
	}
	return &Interner{table: make([]uint32, hashtabSize)}
}

// Hash computes the 33*h+b multiplicative hash (seed 0) specified in
// spec.md §3.
func Hash(s []byte) uint32 {
	var h uint32
	for _, b := range s {
		h = 33*h + uint32(b)
	}
	return h
}

// Intern returns the existing id for s if present, otherwise inserts a
// copy of s and returns its new id. hash may be 0 to request that
// Intern compute the hash itself (the empty string also hashes to 0,
// so this is never ambiguous: recomputing an already-zero hash is a
// no-op). Returns NotAToken if the table has no room for another id
// (fatal to the caller per spec.md §4.1).
func (in *Interner) Intern(s []byte, hash uint32) ID {
	if hash == 0 {
		hash = Hash(s)
	}
	slot := hash % uint32(len(in.table))
	for i := in.table[slot]; i != 0; i = in.entries[i-1].next {
		if string(in.entries[i-1].bytes) == string(s) {
			return ID(i)
		}
	}
	if len(in.entries) >= int(maxID) {
		return NotAToken
	}
	cp := make([]byte, len(s))
	copy(cp, s)
	in.entries = append(in.entries, entry{bytes: cp, next: in.table[slot]})
	id := ID(len(in.entries))
	in.table[slot] = uint32(id)
	return id
}

// InternString is a convenience wrapper computing the hash for you.
func (in *Interner) InternString(s string) ID {
	return in.Intern([]byte(s), 0)
}

// Name returns the interned bytes for id, or an empty placeholder for
// an unknown id. Marks the entry "used" for statistics.
func (in *Interner) Name(id ID) []byte {
	if id == NotAToken || int(id) > len(in.entries) {
		return nil
	}
	e := &in.entries[id-1]
	e.used = true
	return e.bytes
}

// Mark records that id was observed as a tag name, when tag is true.
// Used by the reader driver's tag-usage marking mode (SPEC_FULL.md §4.1).
func (in *Interner) Mark(id ID, tag bool) {
	if id == NotAToken || int(id) > len(in.entries) {
		return
	}
	if tag {
		in.entries[id-1].isTag = true
	}
}

// IsTag reports whether id was ever Mark-ed as a tag name.
func (in *Interner) IsTag(id ID) bool {
	if id == NotAToken || int(id) > len(in.entries) {
		return false
	}
	return in.entries[id-1].isTag
}

// Len returns the number of distinct interned strings.
func (in *Interner) Len() int {
	return len(in.entries)
}

// Stats reports hash table observability data: fill is the number of
// occupied slots, avgChain and worstChain are the average and worst
// chain lengths among occupied slots.
type Stats struct {
	TableSize  int
	Symbols    int
	Fill       int
	AvgChain   int
	WorstChain int
}

// Stats computes the fill ratio and chain length statistics called for
// by spec.md §4.1 and the original drivers' hash table report.
func (in *Interner) Stats() Stats {
	st := Stats{TableSize: len(in.table), Symbols: len(in.entries)}
	for _, head := range in.table {
		if head == 0 {
			continue
		}
		st.Fill++
		n := 0
		for i := head; i != 0; i = in.entries[i-1].next {
			n++
		}
		if n > st.WorstChain {
			st.WorstChain = n
		}
	}
	if st.Fill > 0 {
		st.AvgChain = (st.Symbols + st.Fill/2) / st.Fill
	}
	return st
}

// ErrAllocation builds a stack-traced error (via perrors) describing an
// Intern call that returned NotAToken because the table is full. Intern
// itself only returns NotAToken; no caller in this module returns
// ErrAllocation.
func ErrAllocation(s []byte) error {
	return perrors.Errorf("token: interner has no room left for %q", s)
}
