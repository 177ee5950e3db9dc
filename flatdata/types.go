// Package flatdata implements a zero-copy table serialization format wire compatible with
// FlatBuffers.
//
// A finished buffer is read in place through a View: the root offset sits in the first four
// bytes, every table starts with a signed offset to its vtable, and the vtable lists the byte
// offset of each field inside the table (0 when the field is absent). Nothing is decoded up
// front; every field access is a handful of bounds-checked reads.
//
// Buffers are produced by a Builder, which writes back-to-front: children are finished first,
// parents store 32-bit offsets relative to the referencing field, and identical vtables are
// written once and shared.
package flatdata

type (
	// UOffset is an unsigned offset. Inside a buffer it is relative to the position it is stored
	// at; as a Builder return value it is measured from the end of the buffer.
	UOffset uint32
	// SOffset is the signed table-to-vtable offset: vtable = table - SOffset.
	SOffset int32
	// VOffset is a 16-bit offset stored in vtables.
	VOffset uint16
)

// Scalar widths, in bytes.
const (
	SizeByte    = 1
	SizeBool    = 1
	SizeUint8   = 1
	SizeInt8    = 1
	SizeUint16  = 2
	SizeInt16   = 2
	SizeUint32  = 4
	SizeInt32   = 4
	SizeUint64  = 8
	SizeInt64   = 8
	SizeFloat32 = 4
	SizeFloat64 = 8
	SizeUOffset = 4
	SizeSOffset = 4
	SizeVOffset = 2
)

// VtableMetadataFields is the number of uint16 entries in front of the per-slot entries:
// the vtable size and the inline object size.
const VtableMetadataFields = 2

// SlotOffset returns the byte offset of a field slot inside a vtable.
func SlotOffset(slot int) VOffset {
	return VOffset((VtableMetadataFields + slot) * SizeVOffset)
}

// Offset is a typed reference to an object written by a Builder. The type parameter only
// documents what the offset points at; the zero value means "not set".
type Offset[T any] UOffset

// IsSet reports whether the offset refers to a written object.
func (o Offset[T]) IsSet() bool {
	return o != 0
}

// VectorOf is the type parameter used for offsets to vectors of E.
type VectorOf[E any] struct{}

// String is the type parameter used for offsets to strings.
type String struct{}
