package creature

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/creature-flatdata/creature/schema"
	"github.com/rony4d/creature-flatdata/flatdata"
)

func loadRig(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "rig.json"))
	require.NoError(t, err)
	return data
}

func TestParseJSON(t *testing.T) {
	require := require.New(t)
	doc, err := ParseJSON(loadRig(t))
	require.NoError(err)

	require.Len(doc.Mesh.Points, 12)
	require.Equal([]int32{0, 1, 2, 0, 2, 3}, doc.Mesh.Indices)
	require.Len(doc.Mesh.Uvs, 8)

	// Named entries keep document order, not key order.
	require.Len(doc.Mesh.Regions, 2)
	require.Equal("body", doc.Mesh.Regions[0].Name)
	require.Equal("arm", doc.Mesh.Regions[1].Name)
	require.Equal(Region{
		Name:         "arm",
		StartPtIndex: 2,
		EndPtIndex:   3,
		StartIndex:   3,
		EndIndex:     5,
		ID:           1,
		Weights:      []BoneWeights{{Bone: "spine", Weights: []float32{1, 1}}},
	}, doc.Mesh.Regions[1])

	require.Len(doc.Skeleton, 2)
	require.Equal("root", doc.Skeleton[0].Name)
	require.Equal([]int32{1}, doc.Skeleton[0].Children)
	require.Nil(doc.Skeleton[1].Children, "empty arrays are nil")
	require.Len(doc.Skeleton[1].RestParentMat, 16)

	require.Len(doc.Animation, 2)
	walk := doc.Animation[0]
	require.Equal("walk", walk.Name)
	require.Len(walk.Bones, 2)
	require.Equal(int32(1), walk.Bones[1].Time)
	require.Equal(BonePose{Name: "spine", StartPt: []float32{0.25, 0.5}, EndPt: []float32{0.5, 1}}, walk.Bones[1].Bones[1])
	require.Equal([]MeshOpacity{{Name: "body", Opacity: 100}, {Name: "arm", Opacity: 50}}, walk.MeshOpacities[1].Meshes)
	require.Nil(doc.Animation[1].MeshOpacities)

	require.Equal([]MeshSample{
		{Time: 0, Meshes: []MeshPose{{Name: "body", UseDq: true}}},
		{Time: 1, Meshes: []MeshPose{{
			Name:                  "body",
			UseDq:                 true,
			UseLocalDisplacements: true,
			LocalDisplacements:    []float32{0, 0, 0.125, 0, 0, 0, 0, 0},
		}}},
	}, walk.Meshes)
	require.Equal([]UvSwapSample{
		{Time: 0, UvSwaps: []UvSwapKey{{Name: "arm", LocalOffset: []float32{0, 0}, GlobalOffset: []float32{0.5, 0}, Scale: []float32{1, 1}, Enabled: true}}},
		{Time: 1, UvSwaps: []UvSwapKey{{Name: "arm", LocalOffset: []float32{0, 0}, GlobalOffset: []float32{0.5, 0.5}, Scale: []float32{1, 1}}}},
	}, walk.UvSwaps)
	require.Nil(doc.Animation[1].Meshes, "idle has no meshes section")
	require.Nil(doc.Animation[1].UvSwaps)

	require.Equal([]UvSwapMesh{{
		Name: "arm",
		Items: []UvSwapItem{
			{LocalOffset: []float32{0, 0}, GlobalOffset: []float32{0.5, 0}, Scale: []float32{1, 1}, Tag: 0},
			{LocalOffset: []float32{0, 0}, GlobalOffset: []float32{0.5, 0.5}, Scale: []float32{1, 1}, Tag: 1},
		},
	}}, doc.UvSwapItems)
	require.Equal([]AnchorPoint{{Point: []float32{0, -0.25}, AnimClipName: "walk"}}, doc.AnchorPoints)
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "not json", json: `{"mesh":`},
		{name: "top level array", json: `[]`},
		{name: "missing mesh", json: `{"skeleton":{},"animation":{}}`},
		{name: "missing skeleton", json: `{"mesh":{},"animation":{}}`},
		{name: "missing animation", json: `{"mesh":{},"skeleton":{}}`},
		{name: "mesh not an object", json: `{"mesh":[],"skeleton":{},"animation":{}}`},
		{name: "points not numbers", json: `{"mesh":{"points":[1,"x"]},"skeleton":{},"animation":{}}`},
		{name: "id out of range", json: `{"mesh":{},"skeleton":{"b":{"id":4294967296}},"animation":{}}`},
		{name: "bad time key", json: `{"mesh":{},"skeleton":{},"animation":{"c":{"bones":{"t0":{}}}}}`},
		{name: "use_dq not a bool", json: `{"mesh":{},"skeleton":{},"animation":{"c":{"meshes":{"0":{"body":{"use_dq":1}}}}}}`},
		{name: "uv swap enabled not a bool", json: `{"mesh":{},"skeleton":{},"animation":{"c":{"uv_swaps":{"0":{"arm":{"enabled":"yes"}}}}}}`},
		{name: "bad mesh time key", json: `{"mesh":{},"skeleton":{},"animation":{"c":{"meshes":{"1.5":{}}}}}`},
		{name: "clip name not a string", json: `{"mesh":{},"skeleton":{},"animation":{},"anchor_points_items":{"AnchorPoints":[{"anim_clip_name":3}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.json))
			require.ErrorIs(t, err, ErrInvalidCreatureJSON)
		})
	}
}

func TestParseJSON_OptionalSections(t *testing.T) {
	doc, err := ParseJSON([]byte(`{"mesh":{},"skeleton":{},"animation":{}}`))
	require.NoError(t, err)
	require.Equal(t, &Document{}, doc)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	require := require.New(t)
	doc, err := ParseJSON(loadRig(t))
	require.NoError(err)

	buf, err := Encode(doc)
	require.NoError(err)

	got, err := Decode(buf)
	require.NoError(err)
	require.Equal(doc, got)

	// Mesh deformation and uv swap tracks are read back through the bindings as well.
	root, err := schema.GetRootAsRootData(buf)
	require.NoError(err)
	anim, err := root.DataAnimation()
	require.NoError(err)
	clip, err := anim.Clips(0)
	require.NoError(err)

	meshes, err := clip.Meshes()
	require.NoError(err)
	require.NotNil(meshes)
	sample, err := meshes.TimeSamples(1)
	require.NoError(err)
	mesh, err := sample.Meshes(0)
	require.NoError(err)
	useLocal, err := mesh.UseLocalDisplacements()
	require.NoError(err)
	require.True(useLocal)
	post, err := mesh.PostDisplacements()
	require.NoError(err)
	require.Nil(post, "displacements left out of the export stay absent")

	swaps, err := clip.UvSwaps()
	require.NoError(err)
	require.NotNil(swaps)
	swapSample, err := swaps.TimeSamples(0)
	require.NoError(err)
	swap, err := swapSample.UvSwaps(0)
	require.NoError(err)
	enabled, err := swap.Enabled()
	require.NoError(err)
	require.True(enabled)

	// Encoding is deterministic.
	again, err := Encode(got)
	require.NoError(err)
	require.Equal(buf, again)
}

func TestEncode_OptionalTablesAbsent(t *testing.T) {
	require := require.New(t)
	buf, err := Encode(&Document{Skeleton: []Bone{{Name: "root"}}})
	require.NoError(err)

	root, err := schema.GetRootAsRootData(buf)
	require.NoError(err)

	mesh, err := root.DataMesh()
	require.NoError(err)
	require.NotNil(mesh)
	uv, err := root.DataUvSwapItem()
	require.NoError(err)
	require.Nil(uv)
	anchors, err := root.DataAnchorPoints()
	require.NoError(err)
	require.Nil(anchors)

	_, err = Encode(nil)
	require.ErrorIs(err, ErrNilDocument)
}

// TestDecode_LegacyRoot reads a root table written with only the mesh, skeleton and animation
// slots.
func TestDecode_LegacyRoot(t *testing.T) {
	require := require.New(t)
	buf, err := flatdata.Finished(0, func(b *flatdata.Builder) (flatdata.Offset[schema.RootData], error) {
		bones := flatdata.NewTableVector(b, []flatdata.Offset[schema.SkeletonBone]{})
		skeleton := schema.CreateSkeleton(b, bones)

		b.StartObject(schema.LegacyRootDataFields)
		schema.RootDataAddDataSkeleton(b, skeleton)
		return schema.RootDataEnd(b), nil
	})
	require.NoError(err)

	doc, err := Decode(buf)
	require.NoError(err)
	require.Equal(&Document{}, doc)
}

func TestDecode_Truncated(t *testing.T) {
	doc, err := ParseJSON(loadRig(t))
	require.NoError(t, err)
	buf, err := Encode(doc)
	require.NoError(t, err)

	// Cutting the buffer short must never panic, and a cut through the root header must fail.
	for n := 0; n < len(buf); n += 7 {
		got, err := Decode(buf[:n])
		if err == nil {
			assert.NotNil(t, got)
		}
	}
	_, err = Decode(buf[:3])
	require.ErrorIs(t, err, flatdata.ErrMalformedBuffer)
}

func TestConverter_ConvertFile(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "rig.bin")
	require.NoError(os.WriteFile(out, []byte("stale"), 0o644))

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	conv := NewConverter(log)

	buf, err := conv.ConvertFile(filepath.Join("testdata", "rig.json"), out)
	require.NoError(err)

	written, err := os.ReadFile(out)
	require.NoError(err)
	require.Equal(buf, written)

	last := hook.LastEntry()
	require.NotNil(last)
	require.Equal(logrus.InfoLevel, last.Level)
	require.Equal(len(buf), last.Data["size"])
	require.Equal(out, last.Data["output"])

	doc, err := Decode(written)
	require.NoError(err)
	require.Len(doc.Animation, 2)
}

func TestConverter_ConvertFile_Errors(t *testing.T) {
	dir := t.TempDir()
	log, hook := logtest.NewNullLogger()
	conv := NewConverter(log)

	_, err := conv.ConvertFile(filepath.Join(dir, "missing.json"), filepath.Join(dir, "out.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"mesh":{}}`), 0o644))
	_, err = conv.ConvertFile(bad, filepath.Join(dir, "out.bin"))
	require.ErrorIs(t, err, ErrInvalidCreatureJSON)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	_, err = os.Stat(filepath.Join(dir, "out.bin"))
	require.True(t, os.IsNotExist(err), "nothing is written on failure")
}
