package stringspace_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/stringspace/internal/stringspace"
)

// fixedClock returns a constant "days since epoch" value, for deterministic
// age assertions.
type fixedClock int

func (c fixedClock) TodayDays() int { return int(c) }

func newTestEngine(today int) *stringspace.Engine {
	return stringspace.NewEngine(0, fixedClock(today))
}

func prefixSearchMust(t *testing.T, e *stringspace.Engine, q []byte) []stringspace.Entry {
	t.Helper()

	entries, err := e.PrefixSearch(q)
	require.NoError(t, err)

	return entries
}

func Test_Insert_NewEntry_StartsAtFrequencyOne(t *testing.T) {
	t.Parallel()

	e := newTestEngine(100)

	created, err := e.Insert([]byte("hello"))
	require.NoError(t, err)
	require.True(t, created)

	entries := prefixSearchMust(t, e, []byte("hello"))
	require.Len(t, entries, 1)
	require.Equal(t, 1, entries[0].Frequency)
	require.Equal(t, 100, entries[0].Age)
}

func Test_Insert_ExistingEntry_IncrementsFrequencyAndRefreshesAge(t *testing.T) {
	t.Parallel()

	e := newTestEngine(100)

	_, err := e.Insert([]byte("hello"))
	require.NoError(t, err)

	e.SetClockDays(105)

	created, err := e.Insert([]byte("hello"))
	require.NoError(t, err)
	require.False(t, created)

	require.Equal(t, 1, e.Len())

	entries := prefixSearchMust(t, e, []byte("hello"))
	require.Equal(t, 2, entries[0].Frequency)
	require.Equal(t, 105, entries[0].Age)
}

func Test_Insert_RejectsInvalidLengths(t *testing.T) {
	t.Parallel()

	e := newTestEngine(0)

	_, err := e.Insert([]byte("ab"))
	require.ErrorIs(t, err, stringspace.ErrEntryTooShort)

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}

	_, err = e.Insert(long)
	require.ErrorIs(t, err, stringspace.ErrEntryTooLong)
}

func Test_Insert_RejectsWhitespace(t *testing.T) {
	t.Parallel()

	e := newTestEngine(0)

	_, err := e.Insert([]byte("has space"))
	require.ErrorIs(t, err, stringspace.ErrEntryHasWhitespace)
}

func Test_Insert_RejectsEmpty(t *testing.T) {
	t.Parallel()

	e := newTestEngine(0)

	_, err := e.Insert(nil)
	require.ErrorIs(t, err, stringspace.ErrEmptyBytes)
}

func Test_Index_StaysSortedAndUnique_AfterManyInserts(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	words := []string{"ssh", "ssp", "ssl", "sshfs", "ssmtp", "ssh-keygen", "ssh-copy-id", "aaa", "zzz", "mid"}
	for _, w := range words {
		_, err := e.Insert([]byte(w))
		require.NoError(t, err)
	}

	// Re-insert a few to exercise the update path too.
	for _, w := range []string{"ssh", "zzz"} {
		_, err := e.Insert([]byte(w))
		require.NoError(t, err)
	}

	require.True(t, e.CheckSorted())
	require.Equal(t, len(words), e.Len())
}

func Test_Growth_RelocatesAndPreservesAllEntries(t *testing.T) {
	t.Parallel()

	// Capacity exactly matches "aaa"+"bbb"+"ccc" (9 bytes); a fourth
	// insert forces the arena to grow and relocate.
	e := stringspace.NewEngine(9, fixedClock(1))

	for _, w := range []string{"aaa", "bbb", "ccc"} {
		_, err := e.Insert([]byte(w))
		require.NoError(t, err)
	}

	_, err := e.Insert([]byte("ddd"))
	require.NoError(t, err)

	require.True(t, e.CheckSorted())
	require.Equal(t, 4, e.Len())

	got := e.AllEntriesBytes()
	want := [][]byte{[]byte("aaa"), []byte("bbb"), []byte("ccc"), []byte("ddd")}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func Test_PrefixSearch_ReturnsExactlyMatchingEntries(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	for _, w := range []string{"ssh", "ssp", "ssl", "sshfs", "other", "ssmtp"} {
		_, err := e.Insert([]byte(w))
		require.NoError(t, err)
	}

	got, err := e.PrefixSearch([]byte("ss"))
	require.NoError(t, err)
	require.Len(t, got, 5)

	for _, en := range got {
		require.Truef(t, len(en.Bytes) >= 2 && string(en.Bytes[:2]) == "ss", "unexpected entry %q", en.Bytes)
	}
}

func Test_SubstringSearch_FindsEmbeddedMatches(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	for _, w := range []string{"foobar", "barfoo", "unrelated", "foo"} {
		_, err := e.Insert([]byte(w))
		require.NoError(t, err)
	}

	got, err := e.SubstringSearch([]byte("foo"))
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func Test_SimilarSearch_FindsTypoCorrection(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	_, err := e.Insert([]byte("world"))
	require.NoError(t, err)

	got, err := e.SimilarSearch([]byte("wrold"), 0.7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "world", string(got[0].Bytes))
}

func Test_FuzzySubsequenceSearch_RanksAbbreviationFirst(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	for _, w := range []string{"openai/gpt-4o-2024-08-06", "openai/gpt-5", "anthropic/claude-3-opus"} {
		_, err := e.Insert([]byte(w))
		require.NoError(t, err)
	}

	got, err := e.FuzzySubsequenceSearch([]byte("g4"))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	require.Equal(t, "openai/gpt-4o-2024-08-06", string(got[0].Bytes))
}

func Test_BestCompletions_EmptyQuery_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	_, err := e.Insert([]byte("hello"))
	require.NoError(t, err)

	got, err := e.BestCompletions(nil, 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func Test_BestCompletions_EmptyStore_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	got, err := e.BestCompletions([]byte("a"), 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func Test_BestCompletions_SingleCharQuery_SortsByFrequencyOnly(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	for _, w := range []string{"ace", "act", "api", "app"} {
		_, err := e.Insert([]byte(w))
		require.NoError(t, err)
	}

	// Bump "app"'s frequency so it should sort first.
	_, err := e.Insert([]byte("app"))
	require.NoError(t, err)

	got, err := e.BestCompletions([]byte("a"), 10)
	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Equal(t, "app", string(got[0].Bytes))
}

func Test_BestCompletions_PrefixFamily_ReturnsAllSharedStem(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	words := []string{"ssh", "ssp", "ssl", "sshfs", "ssmtp", "ssh-keygen", "ssh-copy-id"}
	for _, w := range words {
		_, err := e.Insert([]byte(w))
		require.NoError(t, err)
	}

	got, err := e.BestCompletions([]byte("ss"), 10)
	require.NoError(t, err)
	require.Len(t, got, len(words))
}

func Test_BestCompletions_TypoCorrection_FindsJaroWinklerMatch(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	_, err := e.Insert([]byte("world"))
	require.NoError(t, err)

	got, err := e.BestCompletions([]byte("wrold"), 5)
	require.NoError(t, err)

	found := false

	for _, en := range got {
		if string(en.Bytes) == "world" {
			found = true
		}
	}

	require.True(t, found)
}

func Test_BestCompletions_FinalScores_AreWithinBounds(t *testing.T) {
	t.Parallel()

	e := newTestEngine(1)

	for _, w := range []string{"alpha", "alphabet", "album", "almost", "already", "alter"} {
		_, err := e.Insert([]byte(w))
		require.NoError(t, err)
	}

	got, err := e.BestCompletions([]byte("alp"), 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	scores := e.BestCompletionsScores([]byte("alp"), 10)
	require.NotEmpty(t, scores)

	for _, s := range scores {
		require.GreaterOrEqual(t, s, 0.0)
		require.LessOrEqual(t, s, 2.0)
	}
}
