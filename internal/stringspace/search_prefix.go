package stringspace

import (
	"bytes"
	"sort"
)

// PrefixSearch returns every entry whose bytes start with q, sorted by
// (frequency descending, age descending). q must be 1-50 bytes.
func (e *Engine) PrefixSearch(q []byte) ([]Entry, error) {
	if len(q) == 0 {
		return nil, ErrEmptyQuery
	}

	out := e.prefixSearchNoSort(q)

	sort.SliceStable(out, func(i, j int) bool {
		return lessByFreqThenAge(out[i], out[j])
	})

	return out, nil
}

// prefixSearchNoSort returns every entry starting with q in index order
// (lexicographic), without sorting by metadata. Used internally by the
// BestCompletions ranker's progressive collection step.
func (e *Engine) prefixSearchNoSort(q []byte) []Entry {
	start := e.index.leftmostGTE(e.arena, q)

	var out []Entry

	for i := start; i < e.index.len(); i++ {
		d := e.index.descriptors[i]
		b := bytesOf(e.arena, d)

		if !bytes.HasPrefix(b, q) {
			break
		}

		out = append(out, entryFromDescriptor(e.arena, d))
	}

	return out
}

// lessByFreqThenAge orders a before b when a has higher frequency, or equal
// frequency and higher (more recent) age.
func lessByFreqThenAge(a, b Entry) bool {
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}

	return a.Age > b.Age
}
