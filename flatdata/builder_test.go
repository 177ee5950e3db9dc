package flatdata

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rootSlots mirrors the three offset fields of the rig root table: mesh, skeleton, animation.
const rootSlots = 3

// buildRoot writes up to three single-field child tables and a root table referencing the ones
// selected by set. Child i stores the tag i+1 in its only field. The returned child offsets are
// the Builder's end-relative positions (0 for children that were not written).
func buildRoot(t testing.TB, set [rootSlots]bool) ([]byte, [rootSlots]UOffset) {
	var children [rootSlots]UOffset
	buf, err := Build(0, func(b *Builder) (UOffset, error) {
		for i := range set {
			if !set[i] {
				continue
			}
			b.StartObject(1)
			b.AddInt32Slot(0, int32(i+1), 0)
			children[i] = b.EndObject()
		}

		b.StartObject(rootSlots)
		// Reverse declaration order, as generated Create functions do.
		for i := rootSlots - 1; i >= 0; i-- {
			b.AddOffsetSlot(i, children[i], 0)
		}
		return b.EndObject(), nil
	})
	require.NoError(t, err)
	return buf, children
}

func subsetName(set [rootSlots]bool) string {
	return fmt.Sprintf("mesh=%v,skeleton=%v,animation=%v", set[0], set[1], set[2])
}

func allSubsets() [][rootSlots]bool {
	var out [][rootSlots]bool
	for mask := 0; mask < 1<<rootSlots; mask++ {
		var set [rootSlots]bool
		for i := range set {
			set[i] = mask&(1<<i) != 0
		}
		out = append(out, set)
	}
	return out
}

// TestBuilder_RoundTrip builds every combination of present children and checks that exactly the
// written ones come back.
func TestBuilder_RoundTrip(t *testing.T) {
	for _, set := range allSubsets() {
		t.Run(subsetName(set), func(t *testing.T) {
			require := require.New(t)
			buf, _ := buildRoot(t, set)

			v := NewView(buf)
			pos, err := v.ReadRootOffset()
			require.NoError(err)
			root := Table{View: v, Pos: pos}

			for i := 0; i < rootSlots; i++ {
				child, ok, err := root.TableSlot(i)
				require.NoError(err)
				require.Equal(set[i], ok, "slot %d presence", i)
				if !ok {
					continue
				}
				tag, err := child.Int32Slot(0, 0)
				require.NoError(err)
				require.Equal(int32(i+1), tag, "slot %d tag", i)
			}
		})
	}
}

// TestBuilder_OffsetArithmetic checks that a child is found exactly at field position plus the
// stored relative offset, and that this agrees with the position the Builder handed out.
func TestBuilder_OffsetArithmetic(t *testing.T) {
	for _, set := range allSubsets() {
		t.Run(subsetName(set), func(t *testing.T) {
			require := require.New(t)
			buf, children := buildRoot(t, set)
			v := NewView(buf)
			p, err := v.ReadRootOffset()
			require.NoError(err)

			for i := 0; i < rootSlots; i++ {
				k, err := v.FieldOffset(p, i)
				require.NoError(err)
				if !set[i] {
					require.Zero(k)
					continue
				}
				r, err := v.GetUOffset(p + UOffset(k))
				require.NoError(err)

				resolved, err := v.ResolveIndirect(p + UOffset(k))
				require.NoError(err)
				require.Equal(p+UOffset(k)+r, resolved)
				require.Equal(UOffset(len(buf))-children[i], resolved, "end-relative position of child %d", i)
			}
		})
	}
}

func TestBuilder_Absence(t *testing.T) {
	require := require.New(t)
	buf, _ := buildRoot(t, [rootSlots]bool{})

	v := NewView(buf)
	pos, err := v.ReadRootOffset()
	require.NoError(err)

	for i := 0; i < rootSlots; i++ {
		off, err := v.FieldOffset(pos, i)
		require.NoError(err)
		require.Zero(off, "slot %d", i)

		_, ok, err := Table{View: v, Pos: pos}.TableSlot(i)
		require.NoError(err)
		require.False(ok)
	}

	// Trailing absent slots are trimmed, so the vtable is only the two metadata entries and
	// carries no slot entries at all. All three slots above read 0 because they lie past the
	// vtable's end, which FieldOffset treats exactly like a 0 entry.
	vt, size, err := v.Vtable(pos)
	require.NoError(err)
	require.Equal(VOffset(VtableMetadataFields*SizeVOffset), size)
	objSize, err := v.GetUint16(vt + SizeVOffset)
	require.NoError(err)
	require.Equal(uint16(SizeSOffset), objSize, "an empty table is only its soffset")
}

func TestBuilder_VtableDedup(t *testing.T) {
	require := require.New(t)

	var first, second UOffset
	var vtables int
	buf, err := Build(0, func(b *Builder) (UOffset, error) {
		b.StartObject(2)
		b.AddInt32Slot(0, 11, 0)
		first = b.EndObject()

		b.StartObject(2)
		b.AddInt32Slot(0, 22, 0)
		second = b.EndObject()

		vtables = b.VtableCount()

		b.StartObject(2)
		b.AddOffsetSlot(1, second, 0)
		b.AddOffsetSlot(0, first, 0)
		return b.EndObject(), nil
	})
	require.NoError(err)
	require.Equal(1, vtables, "identical layouts share one vtable")

	v := NewView(buf)
	firstPos := UOffset(len(buf)) - first
	secondPos := UOffset(len(buf)) - second

	vt1, _, err := v.Vtable(firstPos)
	require.NoError(err)
	vt2, _, err := v.Vtable(secondPos)
	require.NoError(err)
	require.Equal(vt1, vt2)

	// The second table points forward at the vtable written with the first one.
	soff, err := v.GetSOffset(secondPos)
	require.NoError(err)
	require.Less(int32(soff), int32(0))

	for pos, want := range map[UOffset]int32{firstPos: 11, secondPos: 22} {
		n, err := Table{View: v, Pos: pos}.Int32Slot(0, 0)
		require.NoError(err)
		require.Equal(want, n)
	}
}

// paddedPair writes two single int64 field tables. The second starts at an offset that is not
// 8 aligned, so its field is preceded by alignment padding and its inline size differs from the
// first table's even though the field layout is the same.
func paddedPair(b *Builder) (first, second UOffset) {
	b.StartObject(1)
	b.AddInt64Slot(0, 7, 0)
	first = b.EndObject()

	b.StartObject(1)
	b.AddInt64Slot(0, 9, 0)
	second = b.EndObject()
	return first, second
}

func TestBuilder_VtableDedupAcrossPadding(t *testing.T) {
	require := require.New(t)

	var first, second UOffset
	var vtables int
	buf, err := Build(0, func(b *Builder) (UOffset, error) {
		first, second = paddedPair(b)
		vtables = b.VtableCount()

		b.StartObject(2)
		b.AddOffsetSlot(1, second, 0)
		b.AddOffsetSlot(0, first, 0)
		return b.EndObject(), nil
	})
	require.NoError(err)
	require.Equal(1, vtables, "padding in front of the first field must not split the vtable")

	v := NewView(buf)
	firstPos := UOffset(len(buf)) - first
	secondPos := UOffset(len(buf)) - second

	vt1, _, err := v.Vtable(firstPos)
	require.NoError(err)
	vt2, _, err := v.Vtable(secondPos)
	require.NoError(err)
	require.Equal(vt1, vt2)

	for pos, want := range map[UOffset]int64{firstPos: 7, secondPos: 9} {
		n, err := Table{View: v, Pos: pos}.Int64Slot(0, 0)
		require.NoError(err)
		require.Equal(want, n)
	}
}

func TestBuilder_DistinctLayoutsDoNotShare(t *testing.T) {
	_, err := Build(0, func(b *Builder) (UOffset, error) {
		b.StartObject(2)
		b.AddInt32Slot(0, 1, 0)
		a := b.EndObject()

		b.StartObject(2)
		b.AddInt32Slot(1, 1, 0)
		c := b.EndObject()

		b.StartObject(2)
		b.AddInt32Slot(1, 1, 0)
		b.AddInt32Slot(0, 1, 0)
		d := b.EndObject()

		require.Equal(t, 3, b.VtableCount())

		b.StartObject(3)
		b.AddOffsetSlot(2, d, 0)
		b.AddOffsetSlot(1, c, 0)
		b.AddOffsetSlot(0, a, 0)
		return b.EndObject(), nil
	})
	require.NoError(t, err)
}

func TestBuilder_DefaultsElided(t *testing.T) {
	require := require.New(t)
	buf, err := Build(0, func(b *Builder) (UOffset, error) {
		b.StartObject(4)
		b.AddInt32Slot(0, 5, 5)
		b.AddFloat32Slot(1, 0.5, 0)
		b.AddBoolSlot(2, false, false)
		b.AddInt16Slot(3, -3, 0)
		return b.EndObject(), nil
	})
	require.NoError(err)

	v := NewView(buf)
	pos, err := v.ReadRootOffset()
	require.NoError(err)
	tab := Table{View: v, Pos: pos}

	off, err := tab.Offset(0)
	require.NoError(err)
	require.Zero(off, "value equal to its default is not stored")

	n, err := tab.Int32Slot(0, 5)
	require.NoError(err)
	require.Equal(int32(5), n)

	f, err := tab.Float32Slot(1, 0)
	require.NoError(err)
	require.Equal(float32(0.5), f)

	bl, err := tab.BoolSlot(2, false)
	require.NoError(err)
	require.False(bl)

	s, err := tab.Int16Slot(3, 0)
	require.NoError(err)
	require.Equal(int16(-3), s)
}

func TestBuilder_Vectors(t *testing.T) {
	require := require.New(t)

	points := []float32{0, 1.5, -2.25, 3}
	indices := []int32{0, 1, 2, 2, 3, 0}

	buf, err := Build(0, func(b *Builder) (UOffset, error) {
		names := []UOffset{b.CreateString("root"), b.CreateString(""), b.CreateString("tip")}

		var bones []UOffset
		for i, n := range names {
			b.StartObject(2)
			b.AddInt32Slot(1, int32(i), -1)
			b.AddOffsetSlot(0, n, 0)
			bones = append(bones, b.EndObject())
		}

		pts := b.CreateFloat32Vector(points)
		idx := b.CreateInt32Vector(indices)
		raw := b.CreateByteVector([]byte{0xDE, 0xAD})
		boneVec := b.CreateOffsetVector(bones)
		nameVec := b.CreateOffsetVector(names)

		b.StartObject(5)
		b.AddOffsetSlot(4, nameVec, 0)
		b.AddOffsetSlot(3, boneVec, 0)
		b.AddOffsetSlot(2, raw, 0)
		b.AddOffsetSlot(1, idx, 0)
		b.AddOffsetSlot(0, pts, 0)
		return b.EndObject(), nil
	})
	require.NoError(err)

	v := NewView(buf)
	pos, err := v.ReadRootOffset()
	require.NoError(err)
	tab := Table{View: v, Pos: pos}

	vec, ok, err := tab.VectorSlot(0)
	require.NoError(err)
	require.True(ok)
	gotPoints, err := vec.Float32s()
	require.NoError(err)
	require.Equal(points, gotPoints)
	f, err := vec.Float32(2)
	require.NoError(err)
	require.Equal(float32(-2.25), f)

	vec, _, err = tab.VectorSlot(1)
	require.NoError(err)
	gotIndices, err := vec.Int32s()
	require.NoError(err)
	require.Equal(indices, gotIndices)
	_, err = vec.Int32(len(indices))
	require.ErrorIs(err, ErrOutOfBounds)

	raw, err := tab.ByteVectorSlot(2)
	require.NoError(err)
	require.Equal([]byte{0xDE, 0xAD}, raw)

	vec, _, err = tab.VectorSlot(3)
	require.NoError(err)
	require.Equal(3, vec.Len())
	for i, want := range []string{"root", "", "tip"} {
		bone, err := vec.Table(i)
		require.NoError(err)
		name, err := bone.StringSlot(0)
		require.NoError(err)
		require.Equal(want, name)
		id, err := bone.Int32Slot(1, -1)
		require.NoError(err)
		require.Equal(int32(i), id)
	}

	vec, _, err = tab.VectorSlot(4)
	require.NoError(err)
	s, err := vec.String(2)
	require.NoError(err)
	require.Equal("tip", s)

	// Strings keep their terminating zero right after the content.
	strVec, err := v.VectorAt(vec.Start)
	require.NoError(err)
	term, err := v.GetByte(strVec.Start + UOffset(strVec.Len()))
	require.NoError(err)
	require.Zero(term)
}

// TestBuilder_Truncation cuts a finished buffer at every length and checks that walking it either
// fails with a bounds error or returns exactly what the full buffer holds, never something else.
func TestBuilder_Truncation(t *testing.T) {
	buf, _ := buildRoot(t, [rootSlots]bool{true, true, true})

	walk := func(b []byte) ([]int32, error) {
		var tags []int32
		v := NewView(b)
		pos, err := v.ReadRootOffset()
		if err != nil {
			return nil, err
		}
		root := Table{View: v, Pos: pos}
		for i := 0; i < rootSlots; i++ {
			child, ok, err := root.TableSlot(i)
			if err != nil {
				return tags, err
			}
			if !ok {
				return tags, errors.New("child missing")
			}
			tag, err := child.Int32Slot(0, 0)
			if err != nil {
				return tags, err
			}
			tags = append(tags, tag)
		}
		return tags, nil
	}

	full, err := walk(buf)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, full)

	for n := len(buf) - 1; n >= 0; n-- {
		got, err := walk(buf[:n])
		require.Error(t, err, "truncated to %d bytes", n)
		if n < SizeUOffset {
			assert.ErrorIs(t, err, ErrMalformedBuffer, "truncated to %d bytes", n)
		} else {
			assert.ErrorIs(t, err, ErrOutOfBounds, "truncated to %d bytes", n)
		}
		for i, tag := range got {
			assert.Equal(t, full[i], tag, "value %d read before the failure must be intact", i)
		}
	}
}

func TestBuilder_ProtocolViolations(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) (UOffset, error)
	}{
		{
			name: "add field while idle",
			build: func(b *Builder) (UOffset, error) {
				b.AddInt32Slot(0, 1, 0)
				return 0, nil
			},
		},
		{
			name: "add offset while idle",
			build: func(b *Builder) (UOffset, error) {
				s := b.CreateString("x")
				b.AddOffsetSlot(0, s, 0)
				return 0, nil
			},
		},
		{
			name: "end object while idle",
			build: func(b *Builder) (UOffset, error) {
				return b.EndObject(), nil
			},
		},
		{
			name: "nested start object",
			build: func(b *Builder) (UOffset, error) {
				b.StartObject(1)
				b.StartObject(1)
				return 0, nil
			},
		},
		{
			name: "string inside object",
			build: func(b *Builder) (UOffset, error) {
				b.StartObject(1)
				b.CreateString("child must come first")
				return b.EndObject(), nil
			},
		},
		{
			name: "vector inside object",
			build: func(b *Builder) (UOffset, error) {
				b.StartObject(1)
				b.CreateInt32Vector([]int32{1})
				return b.EndObject(), nil
			},
		},
		{
			name: "finish while mid-object",
			build: func(b *Builder) (UOffset, error) {
				b.StartObject(1)
				return 4, nil
			},
		},
		{
			name: "slot outside object",
			build: func(b *Builder) (UOffset, error) {
				b.StartObject(2)
				b.AddInt32Slot(2, 1, 0)
				return b.EndObject(), nil
			},
		},
		{
			name: "reference to unwritten object",
			build: func(b *Builder) (UOffset, error) {
				b.StartObject(1)
				b.AddOffsetSlot(0, 1024, 0)
				return b.EndObject(), nil
			},
		},
		{
			name: "unset root",
			build: func(b *Builder) (UOffset, error) {
				return 0, nil
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := Build(0, tt.build)
			require.ErrorIs(t, err, ErrProtocolViolation)
			require.Nil(t, buf)

			var perr *ProtocolError
			require.ErrorAs(t, err, &perr)
			require.NotEmpty(t, perr.Op)
		})
	}
}

func TestBuilder_FinishedState(t *testing.T) {
	b := NewBuilder(0)
	require.Panics(t, func() { b.FinishedBytes() }, "no bytes before Finish")

	b.StartObject(0)
	root := b.EndObject()
	b.Finish(root)
	require.NotEmpty(t, b.FinishedBytes())

	require.Panics(t, func() { b.PrependInt32(1) })
	require.Panics(t, func() { b.StartObject(1) })
	require.Panics(t, func() { b.Finish(root) })

	// Reset makes the Builder usable again and forgets old vtables.
	b.Reset()
	require.Zero(t, b.VtableCount())
	b.StartObject(0)
	b.Finish(b.EndObject())
	require.Equal(t, 1, b.VtableCount())
}

func TestBuild_ForeignPanicsPropagate(t *testing.T) {
	require.PanicsWithValue(t, "boom", func() {
		_, _ = Build(0, func(b *Builder) (UOffset, error) {
			panic("boom")
		})
	})
}

func TestBuild_CallerError(t *testing.T) {
	want := errors.New("source rejected")
	buf, err := Build(0, func(b *Builder) (UOffset, error) {
		return 0, want
	})
	require.ErrorIs(t, err, want)
	require.Nil(t, buf)
}

func TestBuilder_Alignment(t *testing.T) {
	require := require.New(t)
	buf, err := Build(0, func(b *Builder) (UOffset, error) {
		b.StartObject(3)
		b.AddUint8Slot(0, 7, 0)
		b.AddInt64Slot(1, -9, 0)
		b.AddFloat64Slot(2, 2.5, 0)
		return b.EndObject(), nil
	})
	require.NoError(err)
	require.Zero(len(buf)%8, "buffer length is a multiple of the largest scalar")

	v := NewView(buf)
	pos, err := v.ReadRootOffset()
	require.NoError(err)
	tab := Table{View: v, Pos: pos}

	for slot, width := range map[int]int{1: SizeInt64, 2: SizeFloat64} {
		at, ok, err := tab.Field(slot)
		require.NoError(err)
		require.True(ok)
		require.Zero(int(at)%width, "slot %d aligned to %d", slot, width)
	}

	u8, err := tab.Uint8Slot(0, 0)
	require.NoError(err)
	require.Equal(uint8(7), u8)
	i64, err := tab.Int64Slot(1, 0)
	require.NoError(err)
	require.Equal(int64(-9), i64)
	f64, err := tab.Float64Slot(2, 0)
	require.NoError(err)
	require.Equal(2.5, f64)
}
