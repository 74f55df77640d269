package stringspace

import "sort"

// fuzzyPrefilterSurvives applies the pruning rules of spec §4.C.4 before a
// full subsequence check is attempted. qRunes and sRunes must already be
// decoded to code points.
func fuzzyPrefilterSurvives(qRunes, sRunes []rune) bool {
	lq, ls := len(qRunes), len(sRunes)

	if ls < lq {
		return false
	}

	switch {
	case lq <= 2 && ls > 8*lq:
		return false
	case lq == 3 && ls > 5*lq:
		return false
	case lq >= 4 && ls > 4*lq:
		return false
	}

	return runeSetSubset(qRunes, sRunes)
}

// runeSetSubset reports whether every distinct rune in q also occurs in s.
func runeSetSubset(q, s []rune) bool {
	sSet := make(map[rune]struct{}, len(s))
	for _, r := range s {
		sSet[r] = struct{}{}
	}

	for _, r := range q {
		if _, ok := sSet[r]; !ok {
			return false
		}
	}

	return true
}

// fuzzySubsequenceMatch greedily matches each rune of q, in order, against
// the earliest unused occurrence in s. It returns the matched positions
// (one per rune of q, in s's code-point index space) and whether every
// rune of q was matched. Matching is case-sensitive.
func fuzzySubsequenceMatch(q, s []rune) (positions []int, ok bool) {
	if len(q) == 0 {
		return nil, false
	}

	qi := 0
	positions = make([]int, 0, len(q))

	for si, r := range s {
		if qi >= len(q) {
			break
		}

		if r == q[qi] {
			positions = append(positions, si)
			qi++
		}
	}

	return positions, qi == len(q)
}

// fuzzyRawScore computes the span-plus-length raw score of §4.C.4.
// Lower is better.
func fuzzyRawScore(positions []int, sLenRunes int) float64 {
	first := positions[0]
	last := positions[len(positions)-1]
	span := float64(last - first + 1)

	return span + 0.1*float64(sLenRunes)
}

// fuzzyMatchCandidate runs the pre-filter then the subsequence match for
// one candidate. ok is false if the candidate was pruned or did not match.
func fuzzyMatchCandidate(qRunes []rune, sRunes []rune) (raw float64, ok bool) {
	if !fuzzyPrefilterSurvives(qRunes, sRunes) {
		return 0, false
	}

	positions, matched := fuzzySubsequenceMatch(qRunes, sRunes)
	if !matched {
		return 0, false
	}

	return fuzzyRawScore(positions, len(sRunes)), true
}

// fuzzySubsequenceResultCap bounds the standalone fuzzy-subsequence
// primitive's result count, per §6.3.
const fuzzySubsequenceResultCap = 10

// FuzzySubsequenceSearch returns the entries whose raw fuzzy-subsequence
// score is lowest, capped at 10 and sorted by (score ascending, frequency
// descending, age descending). Unlike the ranker's fuzzy step, it does not
// apply the length pre-filter: every entry containing q as a subsequence
// is scored.
func (e *Engine) FuzzySubsequenceSearch(q []byte) ([]Entry, error) {
	if len(q) == 0 {
		return nil, ErrEmptyQuery
	}

	qRunes := []rune(string(q))

	var scored []scoredEntry

	for _, d := range e.index.descriptors {
		sRunes := []rune(string(bytesOf(e.arena, d)))

		positions, matched := fuzzySubsequenceMatch(qRunes, sRunes)
		if !matched {
			continue
		}

		raw := fuzzyRawScore(positions, len(sRunes))

		entry := entryFromDescriptor(e.arena, d)
		scored = append(scored, scoredEntry{Entry: entry, score: raw})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score < scored[j].score
		}

		return lessByFreqThenAge(scored[i].Entry, scored[j].Entry)
	})

	if len(scored) > fuzzySubsequenceResultCap {
		scored = scored[:fuzzySubsequenceResultCap]
	}

	out := make([]Entry, len(scored))
	for i, s := range scored {
		out[i] = s.Entry
	}

	return out, nil
}
