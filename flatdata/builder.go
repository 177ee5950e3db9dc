package flatdata

import (
	"fmt"
	"math"

	"github.com/rony4d/creature-flatdata/utils/fast"
)

// builderState tracks what the Builder is in the middle of. Objects and vectors can not nest:
// children have to be finished before the parent is started.
type builderState int

const (
	stateIdle builderState = iota
	stateObject
	stateVector
	stateFinished
)

func (s builderState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateObject:
		return "building object"
	case stateVector:
		return "building vector"
	case stateFinished:
		return "finished"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Builder lays out a flat buffer back-to-front.
//
// Positions handed out by the Builder (the UOffset returned from EndObject, EndVector,
// CreateString, ...) are measured from the END of the buffer, because the front keeps moving
// while data is prepended. They become relative offsets when a parent stores them.
//
// A Builder is not safe for concurrent use. Misuse (adding a field while no object is open,
// starting an object inside another one, writing after Finish) panics with a *ProtocolError;
// wrap construction in Build to get those back as errors.
type Builder struct {
	w        *fast.Writer
	minAlign int

	// slots holds, for the open object, the position of every field written so far
	// (0 = not written).
	slots     []UOffset
	objectEnd UOffset

	vtables *vtableIndex
	state   builderState
}

// NewBuilder creates a Builder whose buffer starts out with room for initialSize bytes.
func NewBuilder(initialSize int) *Builder {
	return &Builder{
		w:        fast.NewWriter(initialSize),
		minAlign: 1,
		vtables:  newVtableIndex(),
	}
}

// Reset clears the Builder so it can produce another buffer, reusing its memory. Buffers
// returned by FinishedBytes before the reset must not be used afterwards.
func (b *Builder) Reset() {
	b.w.Reset()
	b.minAlign = 1
	b.slots = b.slots[:0]
	b.objectEnd = 0
	b.vtables.Clear()
	b.state = stateIdle
}

// Offset returns the number of bytes written so far, which is also the position of the most
// recently written byte measured from the end.
func (b *Builder) Offset() UOffset {
	return UOffset(b.w.Len())
}

// FinishedBytes returns the finished buffer. The root offset is at index 0.
func (b *Builder) FinishedBytes() []byte {
	b.require(stateFinished, "FinishedBytes")
	return b.w.Bytes()
}

func (b *Builder) require(want builderState, op string) {
	if b.state != want {
		panic(&ProtocolError{Op: op, Reason: fmt.Sprintf("builder is %v, want %v", b.state, want)})
	}
}

func (b *Builder) requireWritable(op string) {
	if b.state == stateFinished {
		panic(&ProtocolError{Op: op, Reason: "buffer already finished"})
	}
}

// Prep pads the buffer so that, after additionalBytes more bytes are written, the next `size`
// bytes are aligned to `size`. Alignment is relative to the end of the buffer; Finish pads the
// front so that it also holds in absolute terms.
func (b *Builder) Prep(size, additionalBytes int) {
	if size > b.minAlign {
		b.minAlign = size
	}
	alignSize := (^(b.w.Len() + additionalBytes) + 1) & (size - 1)
	b.w.Reserve(alignSize + size + additionalBytes)
	b.w.Pad(alignSize)
}

// ----------------------------------------------------------------------------
// Objects
// ----------------------------------------------------------------------------

// StartObject opens a table with numFields slots.
func (b *Builder) StartObject(numFields int) {
	b.require(stateIdle, "StartObject")
	if numFields < 0 {
		panic(&ProtocolError{Op: "StartObject", Reason: fmt.Sprintf("negative field count %d", numFields)})
	}
	if cap(b.slots) < numFields {
		b.slots = make([]UOffset, numFields)
	} else {
		b.slots = b.slots[:numFields]
		for i := range b.slots {
			b.slots[i] = 0
		}
	}
	b.objectEnd = b.Offset()
	b.state = stateObject
}

// Slot records that the value just prepended belongs to field `slot`.
func (b *Builder) Slot(slot int) {
	b.checkSlot("Slot", slot)
	b.slots[slot] = b.Offset()
}

func (b *Builder) checkSlot(op string, slot int) {
	b.require(stateObject, op)
	if slot < 0 || slot >= len(b.slots) {
		panic(&ProtocolError{Op: op, Reason: fmt.Sprintf("slot %d outside object with %d fields", slot, len(b.slots))})
	}
}

// EndObject closes the open table and returns its position.
//
// Layout, in memory order: [vtable (if new)] [soffset to vtable] [fields ...].
// The vtable is looked up before anything is written, so the soffset goes in with its final
// value and no committed byte is revisited.
func (b *Builder) EndObject() UOffset {
	b.require(stateObject, "EndObject")

	b.Prep(SizeSOffset, 0)
	objectOffset := b.Offset() + SizeSOffset
	objectSize := objectOffset - b.objectEnd
	if objectSize > math.MaxUint16 {
		panic(&ProtocolError{Op: "EndObject", Reason: fmt.Sprintf("inline object size %d exceeds 64KiB", objectSize)})
	}

	// Trailing absent fields are left out of the vtable; readers treat slots past its end as
	// absent.
	n := len(b.slots)
	for n > 0 && b.slots[n-1] == 0 {
		n--
	}
	vt := encodeVtable(b.slots[:n], objectOffset, objectSize)

	if existing, ok := b.vtables.Get(vt); ok {
		// Shared vtable: it was written earlier, so it sits at a higher address and the
		// soffset is negative.
		b.w.PrependUint32(uint32(SOffset(existing) - SOffset(objectOffset)))
	} else {
		// New vtable directly in front of the object.
		vtOffset := objectOffset + UOffset(len(vt))
		b.w.PrependUint32(uint32(SOffset(vtOffset) - SOffset(objectOffset)))
		b.w.Prepend(vt)
		b.vtables.Put(vt, vtOffset)
	}

	b.slots = b.slots[:0]
	b.state = stateIdle
	return objectOffset
}

// encodeVtable renders the vtable bytes for an object ending at objectOffset:
// [vtable size][object size][field offset per slot].
func encodeVtable(slots []UOffset, objectOffset, objectSize UOffset) []byte {
	vt := make([]byte, (VtableMetadataFields+len(slots))*SizeVOffset)
	putUint16(vt[0:], uint16(len(vt)))
	putUint16(vt[2:], uint16(objectSize))
	for i, at := range slots {
		var off UOffset
		if at != 0 {
			off = objectOffset - at
		}
		putUint16(vt[int(SlotOffset(i)):], uint16(off))
	}
	return vt
}

func putUint16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

// ----------------------------------------------------------------------------
// Fields
// ----------------------------------------------------------------------------

// AddOffsetSlot stores a reference to an already finished object in field `slot`. Values equal
// to def (normally 0, "not set") are not written.
func (b *Builder) AddOffsetSlot(slot int, off, def UOffset) {
	b.checkSlot("AddOffsetSlot", slot)
	if off == def {
		return
	}
	b.PrependUOffset(off)
	b.slots[slot] = b.Offset()
}

func (b *Builder) AddBoolSlot(slot int, v, def bool) {
	b.checkSlot("AddBoolSlot", slot)
	if v == def {
		return
	}
	b.PrependBool(v)
	b.slots[slot] = b.Offset()
}

func (b *Builder) AddUint8Slot(slot int, v, def uint8) {
	b.checkSlot("AddUint8Slot", slot)
	if v == def {
		return
	}
	b.PrependUint8(v)
	b.slots[slot] = b.Offset()
}

func (b *Builder) AddInt16Slot(slot int, v, def int16) {
	b.checkSlot("AddInt16Slot", slot)
	if v == def {
		return
	}
	b.PrependInt16(v)
	b.slots[slot] = b.Offset()
}

func (b *Builder) AddUint32Slot(slot int, v, def uint32) {
	b.checkSlot("AddUint32Slot", slot)
	if v == def {
		return
	}
	b.PrependUint32(v)
	b.slots[slot] = b.Offset()
}

func (b *Builder) AddInt32Slot(slot int, v, def int32) {
	b.checkSlot("AddInt32Slot", slot)
	if v == def {
		return
	}
	b.PrependInt32(v)
	b.slots[slot] = b.Offset()
}

func (b *Builder) AddInt64Slot(slot int, v, def int64) {
	b.checkSlot("AddInt64Slot", slot)
	if v == def {
		return
	}
	b.PrependInt64(v)
	b.slots[slot] = b.Offset()
}

func (b *Builder) AddFloat32Slot(slot int, v, def float32) {
	b.checkSlot("AddFloat32Slot", slot)
	if v == def {
		return
	}
	b.PrependFloat32(v)
	b.slots[slot] = b.Offset()
}

func (b *Builder) AddFloat64Slot(slot int, v, def float64) {
	b.checkSlot("AddFloat64Slot", slot)
	if v == def {
		return
	}
	b.PrependFloat64(v)
	b.slots[slot] = b.Offset()
}

// ----------------------------------------------------------------------------
// Aligned prepends
// ----------------------------------------------------------------------------

// PrependUOffset writes a reference to the object at off (measured from the end), converted to
// an offset relative to where it is stored.
func (b *Builder) PrependUOffset(off UOffset) {
	b.requireWritable("PrependUOffset")
	b.Prep(SizeUOffset, 0)
	if off == 0 || off > b.Offset() {
		panic(&ProtocolError{Op: "PrependUOffset", Reason: fmt.Sprintf("offset %d does not refer to a written object", off)})
	}
	b.w.PrependUint32(uint32(b.Offset() - off + SizeUOffset))
}

func (b *Builder) PrependBool(v bool) {
	var x uint8
	if v {
		x = 1
	}
	b.PrependUint8(x)
}

func (b *Builder) PrependUint8(v uint8) {
	b.requireWritable("PrependUint8")
	b.Prep(SizeUint8, 0)
	b.w.PrependByte(v)
}

func (b *Builder) PrependInt16(v int16) {
	b.requireWritable("PrependInt16")
	b.Prep(SizeInt16, 0)
	b.w.PrependUint16(uint16(v))
}

func (b *Builder) PrependUint32(v uint32) {
	b.requireWritable("PrependUint32")
	b.Prep(SizeUint32, 0)
	b.w.PrependUint32(v)
}

func (b *Builder) PrependInt32(v int32) {
	b.PrependUint32(uint32(v))
}

func (b *Builder) PrependInt64(v int64) {
	b.requireWritable("PrependInt64")
	b.Prep(SizeInt64, 0)
	b.w.PrependUint64(uint64(v))
}

func (b *Builder) PrependFloat32(v float32) {
	b.PrependUint32(math.Float32bits(v))
}

func (b *Builder) PrependFloat64(v float64) {
	b.requireWritable("PrependFloat64")
	b.Prep(SizeFloat64, 0)
	b.w.PrependUint64(math.Float64bits(v))
}

// ----------------------------------------------------------------------------
// Vectors and strings
// ----------------------------------------------------------------------------

// StartVector opens a vector of numElems elements of elemSize bytes. Elements are then
// prepended last to first.
func (b *Builder) StartVector(elemSize, numElems, alignment int) UOffset {
	b.require(stateIdle, "StartVector")
	b.state = stateVector
	b.Prep(SizeUint32, elemSize*numElems)
	b.Prep(alignment, elemSize*numElems)
	return b.Offset()
}

// EndVector writes the element count and returns the vector's position.
func (b *Builder) EndVector(numElems int) UOffset {
	b.require(stateVector, "EndVector")
	b.w.PrependUint32(uint32(numElems))
	b.state = stateIdle
	return b.Offset()
}

// CreateString writes a zero-terminated, length-prefixed string.
func (b *Builder) CreateString(s string) UOffset {
	b.require(stateIdle, "CreateString")
	b.state = stateVector
	b.Prep(SizeUOffset, len(s)+SizeByte)
	b.w.PrependByte(0)
	b.w.Prepend([]byte(s))
	return b.EndVector(len(s))
}

// CreateByteVector writes a [ubyte] vector.
func (b *Builder) CreateByteVector(v []byte) UOffset {
	b.require(stateIdle, "CreateByteVector")
	b.state = stateVector
	b.Prep(SizeUOffset, len(v)*SizeByte)
	b.w.Prepend(v)
	return b.EndVector(len(v))
}

// CreateInt32Vector writes an [int] vector.
func (b *Builder) CreateInt32Vector(v []int32) UOffset {
	b.StartVector(SizeInt32, len(v), SizeInt32)
	for i := len(v) - 1; i >= 0; i-- {
		b.PrependInt32(v[i])
	}
	return b.EndVector(len(v))
}

// CreateFloat32Vector writes a [float] vector.
func (b *Builder) CreateFloat32Vector(v []float32) UOffset {
	b.StartVector(SizeFloat32, len(v), SizeFloat32)
	for i := len(v) - 1; i >= 0; i-- {
		b.PrependFloat32(v[i])
	}
	return b.EndVector(len(v))
}

// CreateOffsetVector writes a vector of references to finished objects, e.g. [Table].
func (b *Builder) CreateOffsetVector(offs []UOffset) UOffset {
	b.StartVector(SizeUOffset, len(offs), SizeUOffset)
	for i := len(offs) - 1; i >= 0; i-- {
		b.PrependUOffset(offs[i])
	}
	return b.EndVector(len(offs))
}

// ----------------------------------------------------------------------------
// Finishing
// ----------------------------------------------------------------------------

// Finish writes the root offset so that it ends up at index 0 of FinishedBytes. No further
// writes are accepted afterwards.
func (b *Builder) Finish(root UOffset) {
	b.require(stateIdle, "Finish")
	b.Prep(b.minAlign, SizeUOffset)
	b.PrependUOffset(root)
	b.state = stateFinished
}
