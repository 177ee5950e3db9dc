package flatdata

import (
	"errors"

	"github.com/rony4d/creature-flatdata/utils/fast"
)

// Build acts as a bridge between panicking Builder code and ordinary error returns.
//
// It creates a Builder, runs the caller's construction logic, finishes the buffer with the
// returned root and hands back the finished bytes. Builder misuse (ProtocolError) and
// oversized buffers surface as errors; any other panic is re-raised untouched.
func Build(initialSize int, build func(b *Builder) (UOffset, error)) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !(errors.Is(e, ErrProtocolViolation) || errors.Is(e, fast.ErrTooLarge)) {
				panic(r)
			}
			buf, err = nil, e
		}
	}()

	b := NewBuilder(initialSize)

	root, err := build(b)
	if err != nil {
		return nil, err
	}

	b.Finish(root)
	return b.FinishedBytes(), nil
}

// VtableCount reports how many distinct vtables the Builder has written so far.
func (b *Builder) VtableCount() int {
	return b.vtables.Len()
}
