package flatdata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handBuilt is a buffer laid out by hand:
//
//	[0..4)   root offset = 12
//	[4..12)  vtable: size 8, object size 8, slot 0 absent, slot 1 at +4
//	[12..16) soffset 8 -> vtable at 12-8 = 4
//	[16..20) int32 42 (slot 1)
var handBuilt = []byte{
	0x0C, 0x00, 0x00, 0x00,
	0x08, 0x00, 0x08, 0x00, 0x00, 0x00, 0x04, 0x00,
	0x08, 0x00, 0x00, 0x00,
	0x2A, 0x00, 0x00, 0x00,
}

func TestView_HandBuilt(t *testing.T) {
	require := require.New(t)
	v := NewView(handBuilt)

	root, err := v.ReadRootOffset()
	require.NoError(err)
	require.Equal(UOffset(12), root)

	vt, size, err := v.Vtable(root)
	require.NoError(err)
	require.Equal(UOffset(4), vt)
	require.Equal(VOffset(8), size)

	tests := []struct {
		slot int
		want VOffset
	}{
		{slot: 0, want: 0}, // absent in the vtable
		{slot: 1, want: 4},
		{slot: 2, want: 0}, // past the end of the vtable
		{slot: 40, want: 0},
		{slot: -1, want: 0},
	}
	for _, tt := range tests {
		got, err := v.FieldOffset(root, tt.slot)
		require.NoError(err, "slot %d", tt.slot)
		require.Equal(tt.want, got, "slot %d", tt.slot)
	}

	tab := Table{View: v, Pos: root}
	n, err := tab.Int32Slot(1, -1)
	require.NoError(err)
	require.Equal(int32(42), n)

	n, err = tab.Int32Slot(0, -1)
	require.NoError(err)
	require.Equal(int32(-1), n, "absent scalar reads as its default")
}

func TestView_ReadRootOffset(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		for n := 0; n < SizeUOffset; n++ {
			_, err := NewView(make([]byte, n)).ReadRootOffset()
			require.ErrorIs(t, err, ErrMalformedBuffer, "len %d", n)
		}
	})

	t.Run("root past the end", func(t *testing.T) {
		_, err := NewView([]byte{0xFF, 0, 0, 0, 0, 0, 0, 0}).ReadRootOffset()
		require.ErrorIs(t, err, ErrMalformedBuffer)
		require.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestView_Scalars(t *testing.T) {
	require := require.New(t)
	buf := []byte{
		0x01,                   // bool / uint8
		0xFE,                   // int8 -2
		0x34, 0x12,             // uint16 0x1234
		0x00, 0x00, 0x80, 0x3F, // float32 1.0
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0xBF, // float64 -1.0
	}
	v := NewView(buf)

	b, err := v.GetBool(0)
	require.NoError(err)
	require.True(b)

	i8, err := v.GetInt8(1)
	require.NoError(err)
	require.Equal(int8(-2), i8)

	u16, err := v.GetUint16(2)
	require.NoError(err)
	require.Equal(uint16(0x1234), u16)

	f32, err := v.GetFloat32(4)
	require.NoError(err)
	require.Equal(float32(1), f32)

	f64, err := v.GetFloat64(8)
	require.NoError(err)
	require.Equal(float64(-1), f64)

	// Every width fails at the first position where it would spill over.
	_, err = v.GetUint8(UOffset(len(buf)))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = v.GetUint16(UOffset(len(buf) - 1))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = v.GetUint32(UOffset(len(buf) - 3))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = v.GetUint64(UOffset(len(buf) - 7))
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = v.GetUint32(math.MaxUint32)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestView_MalformedVtable(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		oob  bool
	}{
		{
			name: "vtable size below metadata",
			buf:  []byte{8, 0, 0, 0, 2, 0, 4, 0, 4, 0, 0, 0},
		},
		{
			name: "odd vtable size",
			buf:  []byte{8, 0, 0, 0, 5, 0, 4, 0, 4, 0, 0, 0},
		},
		{
			name: "vtable runs past the end",
			buf:  []byte{8, 0, 0, 0, 64, 0, 4, 0, 4, 0, 0, 0},
			oob:  true,
		},
		{
			name: "vtable before the buffer start",
			buf:  []byte{4, 0, 0, 0, 100, 0, 0, 0},
			oob:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(tt.buf)
			root, err := v.ReadRootOffset()
			require.NoError(t, err)

			_, err = v.FieldOffset(root, 0)
			require.ErrorIs(t, err, ErrMalformedBuffer)
			if tt.oob {
				require.ErrorIs(t, err, ErrOutOfBounds)
			}
		})
	}
}

func TestView_ResolveIndirect(t *testing.T) {
	require := require.New(t)
	// offset 4 stored at 0 -> target 4, which holds a 4-byte value.
	v := NewView([]byte{4, 0, 0, 0, 7, 0, 0, 0})

	got, err := v.ResolveIndirect(0)
	require.NoError(err)
	require.Equal(UOffset(4), got)

	// Pointing past the end is rejected instead of producing a position nobody can read.
	bad := NewView([]byte{8, 0, 0, 0, 7, 0, 0, 0})
	_, err = bad.ResolveIndirect(0)
	require.ErrorIs(err, ErrOutOfBounds)

	_, err = v.ResolveIndirect(6)
	require.ErrorIs(err, ErrOutOfBounds)
}

func TestView_Idempotent(t *testing.T) {
	before := append([]byte(nil), handBuilt...)
	v := NewView(handBuilt)

	for i := 0; i < 3; i++ {
		root, err := v.ReadRootOffset()
		require.NoError(t, err)
		off, err := v.FieldOffset(root, 1)
		require.NoError(t, err)
		require.Equal(t, VOffset(4), off)
	}
	require.Equal(t, before, handBuilt, "reads must not modify the buffer")
}

// oversized holds a vector whose count claims far more elements than the buffer has room for:
//
//	[0..4)   offset 4 -> vector at 4
//	[4..8)   count 0x40000001
//	[8..12)  int32 42 (element 0)
//	[12..16) padding
var oversized = []byte{
	0x04, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x40,
	0x2A, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

func TestView_OversizedVectorCount(t *testing.T) {
	require := require.New(t)
	v := NewView(oversized)

	_, err := v.VectorAt(0)
	require.ErrorIs(err, ErrMalformedBuffer)
	require.ErrorIs(err, ErrOutOfBounds)

	// Element positions are computed without wrapping: index 0x40000000 of an int32 vector lies
	// 4GiB past the start and must not alias element 0.
	vec := Vector{View: v, Start: 8, n: 0x40000001}
	n, err := vec.Int32(0)
	require.NoError(err)
	require.Equal(int32(42), n)

	for _, i := range []int{2, 0x40000000} {
		_, err = vec.Int32(i)
		require.ErrorIs(err, ErrOutOfBounds, "element %d", i)
		_, err = vec.Float32(i)
		require.ErrorIs(err, ErrOutOfBounds, "element %d", i)
		_, err = vec.Table(i)
		require.ErrorIs(err, ErrOutOfBounds, "element %d", i)
		_, err = vec.String(i)
		require.ErrorIs(err, ErrOutOfBounds, "element %d", i)
	}

	_, err = vec.Bytes(SizeInt32)
	require.ErrorIs(err, ErrOutOfBounds)
	_, err = vec.Int32s()
	require.ErrorIs(err, ErrOutOfBounds)
}
