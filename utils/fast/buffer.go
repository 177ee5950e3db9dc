package fast

// buffer.go provides the two byte-slice primitives the flat buffer runtime is built on.
//
// Purpose:
// - Writer accumulates bytes from the END of its slice towards the front. Flat buffers are laid
//   out back-to-front: children are written first and end up at higher addresses than the
//   parents that reference them.
// - Reader gives positional, little-endian reads over a finished slice. Unlike the writer it
//   never panics: every read reports whether the requested span lies inside the slice, so
//   callers can turn a short buffer into an error instead of a crash.

import (
	"encoding/binary"
	"errors"
	"math"
)

// MaxSize is the largest buffer a Writer will grow to. Offsets in the format are 32 bits wide
// and signed offsets must stay positive, so everything has to fit below 2GiB.
const MaxSize = math.MaxInt32

// ErrTooLarge is the panic value used when a Writer would have to grow beyond MaxSize.
var ErrTooLarge = errors.New("buffer too large: cannot grow beyond 2GiB")

type Writer struct {
	// buf holds the written bytes in buf[head:].
	buf []byte
	// head is the index of the first written byte. It only ever moves towards 0.
	head int
}

type Reader struct {
	// buf is the underlying data source. It is never modified.
	buf []byte
}

// NewWriter creates a Writer with room for `capacity` bytes before it has to grow.
func NewWriter(capacity int) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{
		buf:  make([]byte, capacity),
		head: capacity,
	}
}

// NewReader creates a Reader over the provided byte slice.
func NewReader(bb []byte) Reader {
	return Reader{buf: bb}
}

// Len returns the number of bytes written so far.
// Because writing happens back-to-front, Len is also the "offset from the end" of the next
// byte that will be written, which is how the builder addresses objects.
func (w *Writer) Len() int {
	return len(w.buf) - w.head
}

// Reserve makes sure at least n more bytes can be prepended without reallocating.
//
// Growing doubles the slice and copies the existing content to the END of the new slice,
// so every offset measured from the end stays valid.
func (w *Writer) Reserve(n int) {
	if n <= w.head {
		return
	}
	used := w.Len()
	if used+n > MaxSize {
		panic(ErrTooLarge)
	}
	size := len(w.buf)
	if size == 0 {
		size = 1
	}
	for size-used < n {
		size *= 2
	}
	if size > MaxSize {
		size = MaxSize
	}
	grown := make([]byte, size)
	copy(grown[size-used:], w.buf[w.head:])
	w.buf = grown
	w.head = size - used
}

// Pad prepends n zero bytes.
func (w *Writer) Pad(n int) {
	w.Reserve(n)
	for i := 0; i < n; i++ {
		w.head--
		w.buf[w.head] = 0
	}
}

// PrependByte writes a single byte in front of everything written so far.
func (w *Writer) PrependByte(v byte) {
	w.Reserve(1)
	w.head--
	w.buf[w.head] = v
}

// PrependUint16 writes v as 2 little-endian bytes.
func (w *Writer) PrependUint16(v uint16) {
	w.Reserve(2)
	w.head -= 2
	binary.LittleEndian.PutUint16(w.buf[w.head:], v)
}

// PrependUint32 writes v as 4 little-endian bytes.
func (w *Writer) PrependUint32(v uint32) {
	w.Reserve(4)
	w.head -= 4
	binary.LittleEndian.PutUint32(w.buf[w.head:], v)
}

// PrependUint64 writes v as 8 little-endian bytes.
func (w *Writer) PrependUint64(v uint64) {
	w.Reserve(8)
	w.head -= 8
	binary.LittleEndian.PutUint64(w.buf[w.head:], v)
}

// Prepend writes a slice of bytes (bulk write) in front of the buffer, keeping its order.
func (w *Writer) Prepend(v []byte) {
	w.Reserve(len(v))
	w.head -= len(v)
	copy(w.buf[w.head:], v)
}

// Bytes returns the written content.
//
// Note: the returned slice *shares memory* with the Writer. It stays valid until the next
// call that grows the buffer.
func (w *Writer) Bytes() []byte {
	return w.buf[w.head:]
}

// Reset forgets everything written while keeping the allocated capacity.
func (w *Writer) Reset() {
	w.head = len(w.buf)
}

// Len returns the size of the underlying buffer.
func (r Reader) Len() int {
	return len(r.buf)
}

// Bytes returns the entire underlying buffer of the Reader.
func (r Reader) Bytes() []byte {
	return r.buf
}

// Has reports whether the span [pos, pos+n) lies inside the buffer.
// The arithmetic is done in 64 bits so huge positions can not wrap around.
func (r Reader) Has(pos int64, n int) bool {
	return pos >= 0 && n >= 0 && pos+int64(n) <= int64(len(r.buf))
}

// Read returns the n bytes starting at pos.
//
// Note: the returned slice *shares memory* with the original buffer.
func (r Reader) Read(pos int64, n int) ([]byte, bool) {
	if !r.Has(pos, n) {
		return nil, false
	}
	return r.buf[pos : pos+int64(n)], true
}

// Uint8 reads the byte at pos.
func (r Reader) Uint8(pos int64) (uint8, bool) {
	if !r.Has(pos, 1) {
		return 0, false
	}
	return r.buf[pos], true
}

// Uint16 reads a little-endian uint16 at pos.
func (r Reader) Uint16(pos int64) (uint16, bool) {
	if !r.Has(pos, 2) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(r.buf[pos:]), true
}

// Uint32 reads a little-endian uint32 at pos.
func (r Reader) Uint32(pos int64) (uint32, bool) {
	if !r.Has(pos, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(r.buf[pos:]), true
}

// Uint64 reads a little-endian uint64 at pos.
func (r Reader) Uint64(pos int64) (uint64, bool) {
	if !r.Has(pos, 8) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(r.buf[pos:]), true
}
