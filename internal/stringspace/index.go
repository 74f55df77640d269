package stringspace

import (
	"bytes"
	"sort"
)

// descriptor is the fixed-shape record identifying one entry's bytes inside
// the arena, plus its metadata. The descriptor owns no bytes.
type descriptor struct {
	Offset    int
	Length    int
	Frequency int
	Age       int
}

// Entry is the value-copy representation of a stored string and its
// metadata, returned to callers outside the engine. Unlike a descriptor, an
// Entry owns its bytes: it remains valid indefinitely, even across arena
// growth/relocation.
type Entry struct {
	Bytes     []byte
	Frequency int
	Age       int
}

// index is the ordered sequence of descriptors, kept sorted ascending by
// the lexicographic order of the entry bytes they describe. It does not own
// the arena; every lookup that needs bytes must be handed one.
type index struct {
	descriptors []*descriptor
	cache       []Entry // memoized "all strings" view; nil when invalidated.
}

func newIndex() *index {
	return &index{}
}

func (ix *index) len() int {
	return len(ix.descriptors)
}

// invalidate drops the memoized all-strings cache. Called after every
// mutation.
func (ix *index) invalidate() {
	ix.cache = nil
}

// bytesOf returns the live bytes described by d, read from a.
func bytesOf(a *arena, d *descriptor) []byte {
	return a.view(d.Offset, d.Length)
}

// find reports whether a descriptor's bytes equal b. pos is that
// descriptor's index when found, and otherwise the insertion position that
// keeps the index sorted.
func (ix *index) find(a *arena, b []byte) (pos int, found bool) {
	n := len(ix.descriptors)
	pos = sort.Search(n, func(i int) bool {
		return bytes.Compare(bytesOf(a, ix.descriptors[i]), b) >= 0
	})

	if pos < n && bytes.Equal(bytesOf(a, ix.descriptors[pos]), b) {
		return pos, true
	}

	return pos, false
}

// insertAt inserts d at position pos, shifting subsequent descriptors right.
func (ix *index) insertAt(pos int, d *descriptor) {
	ix.descriptors = append(ix.descriptors, nil)
	copy(ix.descriptors[pos+1:], ix.descriptors[pos:])
	ix.descriptors[pos] = d
	ix.invalidate()
}

// leftmostGTE returns the index of the leftmost descriptor whose bytes are
// >= q, lexicographically. Returns len(descriptors) if none is.
func (ix *index) leftmostGTE(a *arena, q []byte) int {
	n := len(ix.descriptors)

	return sort.Search(n, func(i int) bool {
		return bytes.Compare(bytesOf(a, ix.descriptors[i]), q) >= 0
	})
}

// allEntries returns a copy of every entry in index order (lexicographic),
// building and memoizing the cache if it was invalidated.
func (ix *index) allEntries(a *arena) []Entry {
	if ix.cache != nil {
		return ix.cache
	}

	out := make([]Entry, len(ix.descriptors))
	for i, d := range ix.descriptors {
		out[i] = entryFromDescriptor(a, d)
	}

	ix.cache = out

	return out
}

// entryFromDescriptor copies the live bytes and metadata of d into a
// caller-owned Entry.
func entryFromDescriptor(a *arena, d *descriptor) Entry {
	b := make([]byte, d.Length)
	copy(b, a.view(d.Offset, d.Length))

	return Entry{Bytes: b, Frequency: d.Frequency, Age: d.Age}
}

// checkSorted reports whether the index is strictly ascending and
// duplicate-free. It exists for tests asserting the invariants of spec §8;
// it is never called on the hot path.
func (ix *index) checkSorted(a *arena) bool {
	for i := 1; i < len(ix.descriptors); i++ {
		prev := bytesOf(a, ix.descriptors[i-1])
		cur := bytesOf(a, ix.descriptors[i])

		if bytes.Compare(prev, cur) >= 0 {
			return false
		}
	}

	return true
}
