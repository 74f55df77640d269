package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// maxFrameSize bounds a single frame's payload, guarding against a
// misbehaving or malicious peer claiming an enormous length prefix.
const maxFrameSize = 16 << 20 // 16 MiB

// ErrFrameTooLarge indicates a peer declared a frame length above
// maxFrameSize.
var ErrFrameTooLarge = errors.New("wire: frame too large")

// ReadFrame reads one length-delimited frame: a 4-byte big-endian length
// prefix followed by that many bytes of payload.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte

	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}

	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > maxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}

	payload := make([]byte, n)

	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("wire: reading frame payload: %w", err)
	}

	return payload, nil
}

// WriteFrame writes payload as one length-delimited frame.
func WriteFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte

	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))

	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("wire: writing frame length: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("wire: writing frame payload: %w", err)
	}

	return nil
}
