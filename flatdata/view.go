package flatdata

import (
	"fmt"
	"math"

	"github.com/rony4d/creature-flatdata/utils/fast"
)

// View is a read-only window over a finished buffer.
//
// All methods are pure: they never modify the buffer and return the same result for the same
// arguments, so a View (and the Tables derived from it) can be shared between goroutines.
type View struct {
	r fast.Reader
}

// NewView wraps a finished buffer. The slice is not copied.
func NewView(buf []byte) View {
	return View{r: fast.NewReader(buf)}
}

// Bytes returns the underlying buffer.
func (v View) Bytes() []byte {
	return v.r.Bytes()
}

// Len returns the size of the underlying buffer.
func (v View) Len() int {
	return v.r.Len()
}

// ReadRootOffset returns the absolute position of the root table.
func (v View) ReadRootOffset() (UOffset, error) {
	if v.Len() < SizeUOffset {
		return 0, fmt.Errorf("%w: %d bytes can not hold a root offset", ErrMalformedBuffer, v.Len())
	}
	off, _ := v.r.Uint32(0)
	// The root table starts with its soffset, so at least that much has to be there.
	if !v.r.Has(int64(off), SizeSOffset) {
		return 0, truncated("root table", int64(off), v.Len())
	}
	return UOffset(off), nil
}

// ResolveIndirect reads the relative offset stored at pos and returns the absolute position it
// points to.
func (v View) ResolveIndirect(pos UOffset) (UOffset, error) {
	off, err := v.GetUOffset(pos)
	if err != nil {
		return 0, err
	}
	target := int64(pos) + int64(off)
	// Everything an offset can point at (table, vector, string) starts with 4 bytes.
	if !v.r.Has(target, SizeUOffset) || target > math.MaxUint32 {
		return 0, truncated("indirect target", target, v.Len())
	}
	return UOffset(target), nil
}

// Vtable returns the absolute position of the vtable of the table at tablePos, and the
// vtable's declared byte size.
func (v View) Vtable(tablePos UOffset) (UOffset, VOffset, error) {
	soff, err := v.GetSOffset(tablePos)
	if err != nil {
		return 0, 0, err
	}
	vt := int64(tablePos) - int64(soff)
	if !v.r.Has(vt, VtableMetadataFields*SizeVOffset) {
		return 0, 0, truncated("vtable", vt, v.Len())
	}
	size, _ := v.r.Uint16(vt)
	if size < VtableMetadataFields*SizeVOffset || size%SizeVOffset != 0 {
		return 0, 0, fmt.Errorf("%w: vtable at %d declares %d bytes", ErrMalformedBuffer, vt, size)
	}
	if !v.r.Has(vt, int(size)) {
		return 0, 0, truncated("vtable body", vt, v.Len())
	}
	return UOffset(vt), VOffset(size), nil
}

// FieldOffset returns the byte offset of field `slot` inside the table at tablePos, or 0 when
// the field is absent. Slots past the end of the vtable are absent too: the buffer was
// written against an older, shorter schema.
func (v View) FieldOffset(tablePos UOffset, slot int) (VOffset, error) {
	if slot < 0 {
		return 0, nil
	}
	vt, size, err := v.Vtable(tablePos)
	if err != nil {
		return 0, err
	}
	entry := SlotOffset(slot)
	if int(entry) >= int(size) {
		return 0, nil
	}
	return v.GetVOffset(vt + UOffset(entry))
}

// ----------------------------------------------------------------------------
// Scalar reads at absolute positions
// ----------------------------------------------------------------------------

func (v View) GetByte(pos UOffset) (byte, error) {
	return v.GetUint8(pos)
}

func (v View) GetBool(pos UOffset) (bool, error) {
	b, err := v.GetUint8(pos)
	return b != 0, err
}

func (v View) GetUint8(pos UOffset) (uint8, error) {
	b, ok := v.r.Uint8(int64(pos))
	if !ok {
		return 0, outOfBounds(int64(pos), SizeUint8, v.Len())
	}
	return b, nil
}

func (v View) GetInt8(pos UOffset) (int8, error) {
	b, err := v.GetUint8(pos)
	return int8(b), err
}

func (v View) GetUint16(pos UOffset) (uint16, error) {
	n, ok := v.r.Uint16(int64(pos))
	if !ok {
		return 0, outOfBounds(int64(pos), SizeUint16, v.Len())
	}
	return n, nil
}

func (v View) GetInt16(pos UOffset) (int16, error) {
	n, err := v.GetUint16(pos)
	return int16(n), err
}

func (v View) GetUint32(pos UOffset) (uint32, error) {
	n, ok := v.r.Uint32(int64(pos))
	if !ok {
		return 0, outOfBounds(int64(pos), SizeUint32, v.Len())
	}
	return n, nil
}

func (v View) GetInt32(pos UOffset) (int32, error) {
	n, err := v.GetUint32(pos)
	return int32(n), err
}

func (v View) GetUint64(pos UOffset) (uint64, error) {
	n, ok := v.r.Uint64(int64(pos))
	if !ok {
		return 0, outOfBounds(int64(pos), SizeUint64, v.Len())
	}
	return n, nil
}

func (v View) GetInt64(pos UOffset) (int64, error) {
	n, err := v.GetUint64(pos)
	return int64(n), err
}

func (v View) GetFloat32(pos UOffset) (float32, error) {
	n, err := v.GetUint32(pos)
	return math.Float32frombits(n), err
}

func (v View) GetFloat64(pos UOffset) (float64, error) {
	n, err := v.GetUint64(pos)
	return math.Float64frombits(n), err
}

func (v View) GetUOffset(pos UOffset) (UOffset, error) {
	n, err := v.GetUint32(pos)
	return UOffset(n), err
}

func (v View) GetSOffset(pos UOffset) (SOffset, error) {
	n, err := v.GetInt32(pos)
	return SOffset(n), err
}

func (v View) GetVOffset(pos UOffset) (VOffset, error) {
	n, err := v.GetUint16(pos)
	return VOffset(n), err
}

// GetBytes returns n bytes starting at pos, sharing memory with the buffer.
func (v View) GetBytes(pos UOffset, n int) ([]byte, error) {
	b, ok := v.r.Read(int64(pos), n)
	if !ok {
		return nil, outOfBounds(int64(pos), n, v.Len())
	}
	return b, nil
}
