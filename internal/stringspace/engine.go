package stringspace

import (
	"sync/atomic"
	"time"
	"unicode/utf8"
)

// Clock yields "days since epoch", used to stamp an entry's Age on insert
// and re-insert. Production code uses SystemClock; tests supply a fixed
// clock for determinism.
type Clock interface {
	TodayDays() int
}

// SystemClock implements Clock using the wall clock, measuring days since
// the Unix epoch.
type SystemClock struct{}

// TodayDays returns the number of whole days since 1970-01-01 UTC.
func (SystemClock) TodayDays() int {
	return int(nowUnix() / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// nowUnix is a var so tests can stub it without touching the Clock
// interface boundary used by production callers.
var nowUnix = func() int64 { return time.Now().Unix() }

// Engine owns the arena and index for one StringSpace and answers all five
// query families over them. An Engine is not safe for concurrent use; see
// internal/wire for the serialization this spec requires.
type Engine struct {
	arena *arena
	index *index
	clock Clock

	// insertedSinceSave counts entries added since the last successful
	// save, per §4.E's "saves happen eagerly after any insert batch that
	// added >= 1 new entry".
	insertedSinceSave atomic.Int64
}

// NewEngine constructs an empty engine with the given initial arena
// capacity in bytes. A zero or negative capacity
// falls back to the default.
func NewEngine(initialCapacity int, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}

	if initialCapacity <= 0 {
		initialCapacity = defaultCapacity
	}

	return &Engine{
		arena: newArena(initialCapacity),
		index: newIndex(),
		clock: clock,
	}
}

// Len returns the number of live entries.
func (e *Engine) Len() int {
	return e.index.len()
}

// validateEntryBytes checks the length bound, whitespace-freedom, and
// UTF-8 validity invariants §3 requires of every stored entry.
func validateEntryBytes(b []byte) error {
	if len(b) == 0 {
		return ErrEmptyBytes
	}

	if len(b) < MinEntryLen {
		return ErrEntryTooShort
	}

	if len(b) > MaxEntryLen {
		return ErrEntryTooLong
	}

	if !utf8.Valid(b) {
		return ErrInvalidUTF8
	}

	for _, r := range b {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			return ErrEntryHasWhitespace
		}
	}

	return nil
}

// Insert adds a new entry or, if bytes already exist, increments its
// frequency and refreshes its age to today. It returns true if a new entry
// was created (the caller should trigger a save), false if an existing one
// was updated.
func (e *Engine) Insert(b []byte) (created bool, err error) {
	if err := validateEntryBytes(b); err != nil {
		return false, err
	}

	today := e.clock.TodayDays()

	pos, found := e.index.find(e.arena, b)
	if found {
		d := e.index.descriptors[pos]
		d.Frequency++
		d.Age = today

		e.index.invalidate()

		return false, nil
	}

	e.arena.reserve(len(b), e.index.descriptors)

	offset := e.arena.append(b)

	d := &descriptor{Offset: offset, Length: len(b), Frequency: 1, Age: today}
	e.index.insertAt(pos, d)

	e.insertedSinceSave.Add(1)

	return true, nil
}

// InsertWords inserts each of words, stopping for no individual failure;
// it returns the number of words that were valid entries (inserted as new
// or updated in place) and the total considered. This matches the `insert`
// wire operation's "Inserted X of Y words" response shape.
func (e *Engine) InsertWords(words [][]byte) (accepted, total int) {
	total = len(words)

	for _, w := range words {
		if _, err := e.Insert(w); err == nil {
			accepted++
		}
	}

	return accepted, total
}

// allEntries returns every live entry, value-copied, in lexicographic
// order.
func (e *Engine) allEntries() []Entry {
	return e.index.allEntries(e.arena)
}
