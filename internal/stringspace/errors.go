package stringspace

import "errors"

// Entry length bounds, per the data model.
const (
	MinEntryLen = 3
	MaxEntryLen = 50
)

// Arena alignment and sizing constants.
const (
	arenaAlignment  = 4096
	defaultCapacity = 4096
)

// Age window used by the fusion ranker's age factor.
const ageWindowDays = 365

// DefaultBestCompletionsLimit is the limit applied when a caller does not
// supply one to BestCompletions.
const DefaultBestCompletionsLimit = 15

// Sentinel errors returned at the engine boundary. Callers should use
// errors.Is to check error types.
var (
	// ErrEmptyBytes indicates an entry with no bytes was rejected.
	ErrEmptyBytes = errors.New("stringspace: entry bytes are empty")

	// ErrEntryTooShort indicates an entry shorter than MinEntryLen was rejected.
	ErrEntryTooShort = errors.New("stringspace: entry shorter than minimum length")

	// ErrEntryTooLong indicates an entry longer than MaxEntryLen was rejected.
	ErrEntryTooLong = errors.New("stringspace: entry longer than maximum length")

	// ErrEntryHasWhitespace indicates entry bytes contain whitespace, which
	// would corrupt the line-oriented persistence format.
	ErrEntryHasWhitespace = errors.New("stringspace: entry bytes contain whitespace")

	// ErrInvalidUTF8 indicates entry bytes are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("stringspace: entry bytes are not valid UTF-8")

	// ErrEmptyQuery indicates a search was attempted with an empty query.
	ErrEmptyQuery = errors.New("stringspace: query is empty")

	// ErrAllocationFailed indicates the arena could not grow. This is fatal:
	// per the error taxonomy, callers should treat it as unrecoverable.
	ErrAllocationFailed = errors.New("stringspace: arena allocation failed")
)
