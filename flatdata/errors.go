package flatdata

import (
	"errors"
	"fmt"
)

// Standard errors for reading and writing flat buffers.
var (
	ErrOutOfBounds       = errors.New("out of bounds: read spans past the end of the buffer")
	ErrMalformedBuffer   = errors.New("malformed buffer: structure invalid or truncated")
	ErrProtocolViolation = errors.New("protocol violation: builder calls out of order")
)

// ProtocolError describes a Builder misuse. Builders panic with it; Build turns the panic back
// into an ordinary error.
type ProtocolError struct {
	Op     string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrProtocolViolation, e.Op, e.Reason)
}

func (e *ProtocolError) Unwrap() error {
	return ErrProtocolViolation
}

func outOfBounds(pos int64, width int, size int) error {
	return fmt.Errorf("%w: %d bytes at %d, buffer holds %d", ErrOutOfBounds, width, pos, size)
}

func outOfBoundsElem(i, n int) error {
	return fmt.Errorf("%w: element %d of a %d element vector", ErrOutOfBounds, i, n)
}

// truncated is used where a structural read runs off the end: the buffer is malformed, and the
// failure is still an out-of-bounds read for callers that only check for that.
func truncated(what string, pos int64, size int) error {
	return fmt.Errorf("%w: %s at %d: %w", ErrMalformedBuffer, what, pos,
		fmt.Errorf("%w: buffer holds %d", ErrOutOfBounds, size))
}
