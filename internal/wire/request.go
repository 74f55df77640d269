package wire

import "strings"

// paramSeparator delimits the operation name from its parameters, and
// parameters from each other, inside a frame payload. Parameters are not
// escaped, so a parameter that itself contains NUL is split at it on
// decode.
const paramSeparator = "\x00"

// EncodeRequest builds the payload for one (operation, params) request.
func EncodeRequest(op string, params []string) []byte {
	parts := append([]string{op}, params...)

	return []byte(strings.Join(parts, paramSeparator))
}

// DecodeRequest splits a frame payload back into its operation name and
// parameters.
func DecodeRequest(payload []byte) (op string, params []string) {
	parts := strings.Split(string(payload), paramSeparator)
	if len(parts) == 0 {
		return "", nil
	}

	return parts[0], parts[1:]
}
