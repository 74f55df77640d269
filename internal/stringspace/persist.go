package stringspace

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

// WarnFunc receives a human-readable warning. LoadFromFile uses it to
// report skipped malformed lines without failing the whole load, per
// §7's "data corruption on load" category.
type WarnFunc func(msg string)

// LoadFromFile builds a fresh Engine from the line-oriented persistence
// format of §4.E/§6.2, one entry per line ("bytes frequency age"). A
// missing file is not an error: it yields an empty engine, since the most
// common reason a configured data file doesn't exist yet is that the
// store has never been saved. Any other read failure aborts, per §7.
//
// Malformed lines are skipped and reported via warn (which may be nil).
// Entries are inserted in the order they appear in the file; since save
// writes them in sorted order, a round-tripped file re-inserts cheaply.
func LoadFromFile(path string, initialCapacity int, clock Clock, warn WarnFunc) (*Engine, error) {
	e := NewEngine(initialCapacity, clock)

	f, err := os.Open(path) //nolint:gosec // path is operator-configured
	if err != nil {
		if os.IsNotExist(err) {
			return e, nil
		}

		return nil, fmt.Errorf("stringspace: opening data file: %w", err)
	}

	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)

	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if line == "" {
			continue
		}

		b, freq, age, ok := parseLine(line)
		if !ok {
			if warn != nil {
				warn(fmt.Sprintf("stringspace: skipping malformed line %d in %s", lineNo, path))
			}

			continue
		}

		if err := e.insertLoaded(b, freq, age); err != nil {
			if warn != nil {
				warn(fmt.Sprintf("stringspace: skipping invalid entry on line %d in %s: %v", lineNo, path, err))
			}

			continue
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stringspace: reading data file: %w", err)
	}

	return e, nil
}

// parseLine splits one persistence line into its three space-separated
// fields. Entry bytes never contain whitespace (validated on insert), so a
// well-formed line has exactly three fields.
func parseLine(line string) (b []byte, frequency, age int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, 0, 0, false
	}

	freq, err := strconv.Atoi(fields[1])
	if err != nil || freq < 0 {
		return nil, 0, 0, false
	}

	a, err := strconv.Atoi(fields[2])
	if err != nil || a < 0 {
		return nil, 0, 0, false
	}

	return []byte(fields[0]), freq, a, true
}

// insertLoaded adds an entry with explicit frequency/age, bypassing the
// clock. Used only while loading from a persisted file.
func (e *Engine) insertLoaded(b []byte, frequency, age int) error {
	if err := validateEntryBytes(b); err != nil {
		return err
	}

	pos, found := e.index.find(e.arena, b)
	if found {
		d := e.index.descriptors[pos]
		d.Frequency = frequency
		d.Age = age

		e.index.invalidate()

		return nil
	}

	e.arena.reserve(len(b), e.index.descriptors)

	offset := e.arena.append(b)

	d := &descriptor{Offset: offset, Length: len(b), Frequency: frequency, Age: age}
	e.index.insertAt(pos, d)

	return nil
}

// Save writes every live entry to path, one per line in index
// (lexicographic) order, using an atomic rename so a concurrent reader
// never observes a partially written file.
func (e *Engine) Save(path string) error {
	var sb strings.Builder

	for _, d := range e.index.descriptors {
		sb.Write(bytesOf(e.arena, d))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(d.Frequency))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(d.Age))
		sb.WriteByte('\n')
	}

	if err := atomic.WriteFile(path, strings.NewReader(sb.String())); err != nil {
		return fmt.Errorf("stringspace: saving data file: %w", err)
	}

	e.insertedSinceSave.Store(0)

	return nil
}

// NeedsSave reports whether at least one new entry was added since the
// last successful Save, per §4.E's eager save-after-insert-batch trigger.
func (e *Engine) NeedsSave() bool {
	return e.insertedSinceSave.Load() > 0
}
