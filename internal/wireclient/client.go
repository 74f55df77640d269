// Package wireclient is a minimal Go client for the stringspace wire
// protocol, used by cmd/stringspace-cli and cmd/stringspace-bench. It
// plays the role spec.md §1 assigns to "the language-neutral client
// library that mirrors the wire protocol" — this is the Go-side instance
// of that collaborator, grounded in the same dial/frame/read-response
// shape cmd/sloty uses against pkg/slotcache.
package wireclient

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/calvinalkan/stringspace/internal/wire"
)

// Client holds one persistent connection to a stringspace server.
type Client struct {
	conn net.Conn
}

// Dial opens a connection to addr with the given timeout.
func Dial(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("wireclient: dial %s: %w", addr, err)
	}

	return &Client{conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// call sends one framed request and returns the framed response payload.
func (c *Client) call(op string, params ...string) (string, error) {
	if err := wire.WriteFrame(c.conn, wire.EncodeRequest(op, params)); err != nil {
		return "", fmt.Errorf("wireclient: send %s: %w", op, err)
	}

	resp, err := wire.ReadFrame(c.conn)
	if err != nil {
		return "", fmt.Errorf("wireclient: receive %s response: %w", op, err)
	}

	return string(resp), nil
}

// Match is one line of a match-list response.
type Match struct {
	Bytes     string
	Frequency int
	Age       int
}

// parseMatches parses the newline-separated "<bytes> <frequency> <age>"
// response body shared by prefix, substring, similar, fuzzy-subsequence,
// and best-completions.
func parseMatches(body string) []Match {
	if body == "" {
		return nil
	}

	lines := strings.Split(body, "\n")
	out := make([]Match, 0, len(lines))

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}

		freq, _ := strconv.Atoi(fields[1])
		age, _ := strconv.Atoi(fields[2])

		out = append(out, Match{Bytes: fields[0], Frequency: freq, Age: age})
	}

	return out
}

// isError reports whether resp is one of the dashed-prefix error
// responses of spec §6.1.
func isError(resp string) error {
	if strings.HasPrefix(resp, "ERROR - ") {
		return fmt.Errorf("wireclient: %s", strings.TrimPrefix(resp, "ERROR - "))
	}

	return nil
}

// Prefix runs the prefix operation.
func (c *Client) Prefix(query string) ([]Match, error) {
	resp, err := c.call("prefix", query)
	if err != nil {
		return nil, err
	}

	if err := isError(resp); err != nil {
		return nil, err
	}

	return parseMatches(resp), nil
}

// Substring runs the substring operation.
func (c *Client) Substring(query string) ([]Match, error) {
	resp, err := c.call("substring", query)
	if err != nil {
		return nil, err
	}

	if err := isError(resp); err != nil {
		return nil, err
	}

	return parseMatches(resp), nil
}

// Similar runs the similar (Jaro-Winkler) operation.
func (c *Client) Similar(query string, threshold float64) ([]Match, error) {
	resp, err := c.call("similar", query, strconv.FormatFloat(threshold, 'f', -1, 64))
	if err != nil {
		return nil, err
	}

	if err := isError(resp); err != nil {
		return nil, err
	}

	return parseMatches(resp), nil
}

// FuzzySubsequence runs the fuzzy-subsequence operation.
func (c *Client) FuzzySubsequence(query string) ([]Match, error) {
	resp, err := c.call("fuzzy-subsequence", query)
	if err != nil {
		return nil, err
	}

	if err := isError(resp); err != nil {
		return nil, err
	}

	return parseMatches(resp), nil
}

// BestCompletions runs the best-completions operation. A limit <= 0 omits
// the optional parameter, letting the server apply its default.
func (c *Client) BestCompletions(query string, limit int) ([]Match, error) {
	var resp string

	var err error

	if limit > 0 {
		resp, err = c.call("best-completions", query, strconv.Itoa(limit))
	} else {
		resp, err = c.call("best-completions", query)
	}

	if err != nil {
		return nil, err
	}

	if err := isError(resp); err != nil {
		return nil, err
	}

	return parseMatches(resp), nil
}

// Insert runs the insert operation, returning the accepted and total word
// counts parsed from the "OK\nInserted X of Y words" response.
func (c *Client) Insert(words ...string) (accepted, total int, err error) {
	resp, err := c.call("insert", strings.Join(words, " "))
	if err != nil {
		return 0, 0, err
	}

	if err := isError(resp); err != nil {
		return 0, 0, err
	}

	lines := strings.SplitN(resp, "\n", 2)
	if len(lines) != 2 {
		return 0, 0, fmt.Errorf("wireclient: malformed insert response %q", resp)
	}

	fields := strings.Fields(lines[1])
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("wireclient: malformed insert response %q", resp)
	}

	accepted, _ = strconv.Atoi(fields[1])
	total, _ = strconv.Atoi(fields[3])

	return accepted, total, nil
}

// DataFile runs the data-file operation.
func (c *Client) DataFile() (string, error) {
	resp, err := c.call("data-file")
	if err != nil {
		return "", err
	}

	if err := isError(resp); err != nil {
		return "", err
	}

	return resp, nil
}
