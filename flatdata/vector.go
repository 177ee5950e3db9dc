package flatdata

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Vector is a view of a length-prefixed array inside a buffer. Start is the absolute position of
// the first element; the uint32 element count sits just before it.
type Vector struct {
	View  View
	Start UOffset
	n     int
}

// VectorAt follows the offset stored at pos to a vector.
func (v View) VectorAt(pos UOffset) (Vector, error) {
	target, err := v.ResolveIndirect(pos)
	if err != nil {
		return Vector{}, err
	}
	n, err := v.GetUint32(target)
	if err != nil {
		return Vector{}, err
	}
	start := int64(target) + SizeUOffset
	// Every element takes at least one byte.
	if int64(n) > int64(v.Len())-start {
		return Vector{}, truncated(fmt.Sprintf("vector of %d elements", n), start, v.Len())
	}
	return Vector{View: v, Start: UOffset(start), n: int(n)}, nil
}

// Len returns the number of elements.
func (vec Vector) Len() int {
	return vec.n
}

func (vec Vector) elem(i, size int) (UOffset, error) {
	if i < 0 || i >= vec.n {
		return 0, outOfBoundsElem(i, vec.n)
	}
	pos := int64(vec.Start) + int64(i)*int64(size)
	if !vec.View.r.Has(pos, size) {
		return 0, outOfBounds(pos, size, vec.View.Len())
	}
	return UOffset(pos), nil
}

// Bytes returns the raw element data without copying. The whole span is bounds checked, so a
// truncated vector fails here instead of on some later element.
func (vec Vector) Bytes(elemSize int) ([]byte, error) {
	span := int64(vec.n) * int64(elemSize)
	if span > math.MaxInt32 {
		return nil, outOfBounds(int64(vec.Start), math.MaxInt32, vec.View.Len())
	}
	return vec.View.GetBytes(vec.Start, int(span))
}

func (vec Vector) Uint8(i int) (uint8, error) {
	pos, err := vec.elem(i, SizeUint8)
	if err != nil {
		return 0, err
	}
	return vec.View.GetUint8(pos)
}

func (vec Vector) Int32(i int) (int32, error) {
	pos, err := vec.elem(i, SizeInt32)
	if err != nil {
		return 0, err
	}
	return vec.View.GetInt32(pos)
}

func (vec Vector) Float32(i int) (float32, error) {
	pos, err := vec.elem(i, SizeFloat32)
	if err != nil {
		return 0, err
	}
	return vec.View.GetFloat32(pos)
}

// Table resolves element i of a vector of table offsets.
func (vec Vector) Table(i int) (Table, error) {
	pos, err := vec.elem(i, SizeUOffset)
	if err != nil {
		return Table{}, err
	}
	child, err := vec.View.ResolveIndirect(pos)
	if err != nil {
		return Table{}, err
	}
	return Table{View: vec.View, Pos: child}, nil
}

// String resolves element i of a vector of strings.
func (vec Vector) String(i int) (string, error) {
	pos, err := vec.elem(i, SizeUOffset)
	if err != nil {
		return "", err
	}
	s, err := vec.View.VectorAt(pos)
	if err != nil {
		return "", err
	}
	b, err := s.Bytes(SizeByte)
	return string(b), err
}

// Int32s copies the vector out as []int32.
func (vec Vector) Int32s() ([]int32, error) {
	raw, err := vec.Bytes(SizeInt32)
	if err != nil {
		return nil, err
	}
	out := make([]int32, vec.n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*SizeInt32:]))
	}
	return out, nil
}

// Float32s copies the vector out as []float32.
func (vec Vector) Float32s() ([]float32, error) {
	raw, err := vec.Bytes(SizeFloat32)
	if err != nil {
		return nil, err
	}
	out := make([]float32, vec.n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*SizeFloat32:]))
	}
	return out, nil
}
