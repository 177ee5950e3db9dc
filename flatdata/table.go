package flatdata

// Table is the accessor base shared by all generated bindings: a buffer plus the absolute
// position of one table inside it. It owns no data and is cheap to copy.
type Table struct {
	View View
	Pos  UOffset
}

// Offset returns the byte offset of field `slot` relative to the table start, 0 when absent.
func (t Table) Offset(slot int) (VOffset, error) {
	return t.View.FieldOffset(t.Pos, slot)
}

// Field returns the absolute position of field `slot`. ok is false when the field is absent.
func (t Table) Field(slot int) (pos UOffset, ok bool, err error) {
	o, err := t.Offset(slot)
	if err != nil || o == 0 {
		return 0, false, err
	}
	return t.Pos + UOffset(o), true, nil
}

// Indirect follows the relative offset stored at absolute position pos.
func (t Table) Indirect(pos UOffset) (UOffset, error) {
	return t.View.ResolveIndirect(pos)
}

// TableSlot follows an offset field to a child table.
func (t Table) TableSlot(slot int) (Table, bool, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return Table{}, false, err
	}
	child, err := t.View.ResolveIndirect(pos)
	if err != nil {
		return Table{}, false, err
	}
	return Table{View: t.View, Pos: child}, true, nil
}

// StringSlot reads a string field. Absent strings read as "".
func (t Table) StringSlot(slot int) (string, error) {
	b, err := t.ByteVectorSlot(slot)
	return string(b), err
}

// ByteVectorSlot returns the bytes of a string or [ubyte] field without copying them.
func (t Table) ByteVectorSlot(slot int) ([]byte, error) {
	vec, ok, err := t.VectorSlot(slot)
	if err != nil || !ok {
		return nil, err
	}
	return vec.Bytes(SizeByte)
}

// VectorSlot follows an offset field to a vector.
func (t Table) VectorSlot(slot int) (Vector, bool, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return Vector{}, false, err
	}
	vec, err := t.View.VectorAt(pos)
	if err != nil {
		return Vector{}, false, err
	}
	return vec, true, nil
}

// ----------------------------------------------------------------------------
// Scalar slots: the default is returned when the field is absent
// ----------------------------------------------------------------------------

func (t Table) BoolSlot(slot int, def bool) (bool, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return def, err
	}
	return t.View.GetBool(pos)
}

func (t Table) Uint8Slot(slot int, def uint8) (uint8, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return def, err
	}
	return t.View.GetUint8(pos)
}

func (t Table) Int16Slot(slot int, def int16) (int16, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return def, err
	}
	return t.View.GetInt16(pos)
}

func (t Table) Uint32Slot(slot int, def uint32) (uint32, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return def, err
	}
	return t.View.GetUint32(pos)
}

func (t Table) Int32Slot(slot int, def int32) (int32, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return def, err
	}
	return t.View.GetInt32(pos)
}

func (t Table) Int64Slot(slot int, def int64) (int64, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return def, err
	}
	return t.View.GetInt64(pos)
}

func (t Table) Float32Slot(slot int, def float32) (float32, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return def, err
	}
	return t.View.GetFloat32(pos)
}

func (t Table) Float64Slot(slot int, def float64) (float64, error) {
	pos, ok, err := t.Field(slot)
	if err != nil || !ok {
		return def, err
	}
	return t.View.GetFloat64(pos)
}

// ----------------------------------------------------------------------------
// Generic binding glue
// ----------------------------------------------------------------------------

// Binding is implemented by pointers to generated table types.
type Binding[T any] interface {
	*T
	Init(t Table)
}

// GetRoot wraps the root table of buf in binding T.
func GetRoot[T any, PT Binding[T]](buf []byte) (*T, error) {
	v := NewView(buf)
	pos, err := v.ReadRootOffset()
	if err != nil {
		return nil, err
	}
	obj := PT(new(T))
	obj.Init(Table{View: v, Pos: pos})
	return obj, nil
}

// GetTable follows an offset field to a child table and wraps it in binding T. An absent field
// returns nil with no error.
func GetTable[T any, PT Binding[T]](t Table, slot int) (*T, error) {
	child, ok, err := t.TableSlot(slot)
	if err != nil || !ok {
		return nil, err
	}
	obj := PT(new(T))
	obj.Init(child)
	return obj, nil
}

// GetVectorTable wraps element i of a vector of tables in binding T.
func GetVectorTable[T any, PT Binding[T]](vec Vector, i int) (*T, error) {
	child, err := vec.Table(i)
	if err != nil {
		return nil, err
	}
	obj := PT(new(T))
	obj.Init(child)
	return obj, nil
}
