package wire

import (
	"strconv"
	"strings"
)

// opSpec describes one recognized operation: its parameter-count bounds
// and the function that executes it. maxParams of -1 means unbounded.
type opSpec struct {
	minParams int
	maxParams int
	handle    func(s *Server, params []string) string
}

// opTable is the operation table of spec §6.1. It is built once; Server
// dispatch only ever reads from it.
var opTable = map[string]opSpec{
	"prefix":            {1, 1, handlePrefix},
	"substring":         {1, 1, handleSubstring},
	"similar":           {2, 2, handleSimilar},
	"fuzzy-subsequence": {1, 1, handleFuzzySubsequence},
	"best-completions":  {1, 2, handleBestCompletions},
	"insert":            {1, -1, handleInsert},
	"data-file":         {0, 0, handleDataFile},
}

// dispatch routes one decoded request to its handler, enforcing the
// parameter-count and unknown-operation error shapes of spec §6.1.
func (s *Server) dispatch(op string, params []string) string {
	spec, ok := opTable[op]
	if !ok {
		return unknownOperationError(op)
	}

	if len(params) < spec.minParams || (spec.maxParams >= 0 && len(params) > spec.maxParams) {
		return invalidParamsError(len(params))
	}

	return spec.handle(s, params)
}

func handlePrefix(s *Server, params []string) string {
	entries, err := s.engine.PrefixSearch([]byte(params[0]))
	if err != nil {
		return errorResponse(err)
	}

	return formatMatches(entries)
}

func handleSubstring(s *Server, params []string) string {
	entries, err := s.engine.SubstringSearch([]byte(params[0]))
	if err != nil {
		return errorResponse(err)
	}

	return formatMatches(entries)
}

func handleSimilar(s *Server, params []string) string {
	threshold, err := strconv.ParseFloat(params[1], 64)
	if err != nil {
		return "ERROR - invalid threshold"
	}

	entries, err := s.engine.SimilarSearch([]byte(params[0]), threshold)
	if err != nil {
		return errorResponse(err)
	}

	return formatMatches(entries)
}

func handleFuzzySubsequence(s *Server, params []string) string {
	entries, err := s.engine.FuzzySubsequenceSearch([]byte(params[0]))
	if err != nil {
		return errorResponse(err)
	}

	return formatMatches(entries)
}

func handleBestCompletions(s *Server, params []string) string {
	limit := s.defaultLimit

	if len(params) == 2 {
		n, err := strconv.Atoi(params[1])
		if err != nil {
			return "ERROR - invalid limit"
		}

		limit = n
	}

	entries, err := s.engine.BestCompletions([]byte(params[0]), limit)
	if err != nil {
		return errorResponse(err)
	}

	return formatMatches(entries)
}

func handleInsert(s *Server, params []string) string {
	var words [][]byte

	for _, p := range params {
		for _, w := range strings.Fields(p) {
			words = append(words, []byte(w))
		}
	}

	accepted, total := s.engine.InsertWords(words)

	if accepted > 0 {
		s.saveIfNeeded()
	}

	return "OK\nInserted " + strconv.Itoa(accepted) + " of " + strconv.Itoa(total) + " words"
}

func handleDataFile(s *Server, _ []string) string {
	return s.dataFilePath
}

// errorResponse renders an engine-level error (invalid input, per §7's
// taxonomy) as a dashed-prefix response containing err.Error() verbatim.
// The engine's sentinel errors are unwrapped single-line messages, so the
// response stays single-line.
func errorResponse(err error) string {
	return "ERROR - " + err.Error()
}
