package flatdata

// Typed wrappers used by bindings. They only attach a type to the UOffset the Builder returns,
// so a mesh offset can not end up in a skeleton slot by accident.

func NewString(b *Builder, s string) Offset[String] {
	return Offset[String](b.CreateString(s))
}

func NewFloat32Vector(b *Builder, v []float32) Offset[VectorOf[float32]] {
	return Offset[VectorOf[float32]](b.CreateFloat32Vector(v))
}

func NewInt32Vector(b *Builder, v []int32) Offset[VectorOf[int32]] {
	return Offset[VectorOf[int32]](b.CreateInt32Vector(v))
}

// NewTableVector writes a vector referencing already finished tables of type T.
func NewTableVector[T any](b *Builder, offs []Offset[T]) Offset[VectorOf[T]] {
	raw := make([]UOffset, len(offs))
	for i, o := range offs {
		raw[i] = UOffset(o)
	}
	return Offset[VectorOf[T]](b.CreateOffsetVector(raw))
}

// AddOffset stores a typed reference in field slot. Unset offsets are skipped.
func AddOffset[T any](b *Builder, slot int, off Offset[T]) {
	b.AddOffsetSlot(slot, UOffset(off), 0)
}

// EndTable closes the open object and types the result.
func EndTable[T any](b *Builder) Offset[T] {
	return Offset[T](b.EndObject())
}

// Finished is Build for bindings that return a typed root.
func Finished[T any](initialSize int, build func(b *Builder) (Offset[T], error)) ([]byte, error) {
	return Build(initialSize, func(b *Builder) (UOffset, error) {
		root, err := build(b)
		return UOffset(root), err
	})
}

// VectorSlotLen returns the element count of a vector field, 0 when absent.
func (t Table) VectorSlotLen(slot int) (int, error) {
	vec, ok, err := t.VectorSlot(slot)
	if err != nil || !ok {
		return 0, err
	}
	return vec.Len(), nil
}

// Float32VectorSlot copies out a [float] field. Absent vectors read as nil.
func (t Table) Float32VectorSlot(slot int) ([]float32, error) {
	vec, ok, err := t.VectorSlot(slot)
	if err != nil || !ok {
		return nil, err
	}
	return vec.Float32s()
}

// Int32VectorSlot copies out an [int] field. Absent vectors read as nil.
func (t Table) Int32VectorSlot(slot int) ([]int32, error) {
	vec, ok, err := t.VectorSlot(slot)
	if err != nil || !ok {
		return nil, err
	}
	return vec.Int32s()
}

// GetVectorSlotTable wraps element i of the table vector in field slot in binding T.
func GetVectorSlotTable[T any, PT Binding[T]](t Table, slot, i int) (*T, error) {
	vec, ok, err := t.VectorSlot(slot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, outOfBoundsElem(i, 0)
	}
	return GetVectorTable[T, PT](vec, i)
}
