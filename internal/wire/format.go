package wire

import (
	"strconv"
	"strings"

	"github.com/calvinalkan/stringspace/internal/stringspace"
)

// formatMatches renders a result set as newline-separated lines of
// "<bytes> <frequency> <age>", the response shape spec §6.1 specifies for
// prefix, substring, similar, fuzzy-subsequence, and best-completions.
func formatMatches(entries []stringspace.Entry) string {
	lines := make([]string, len(entries))

	for i, e := range entries {
		var sb strings.Builder

		sb.Write(e.Bytes)
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(e.Frequency))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(e.Age))

		lines[i] = sb.String()
	}

	return strings.Join(lines, "\n")
}
