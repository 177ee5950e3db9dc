package schema

import (
	"github.com/rony4d/creature-flatdata/flatdata"
)

// ----------------------------------------------------------------------------
// Mesh
// ----------------------------------------------------------------------------

const (
	meshPoints = iota
	meshIndices
	meshUvs
	meshRegions
	meshFields
)

type Mesh struct {
	tab flatdata.Table
}

func (rcv *Mesh) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *Mesh) Table() flatdata.Table {
	return rcv.tab
}

// Points returns the rest pose vertex positions, three floats per point.
func (rcv *Mesh) Points() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(meshPoints)
}

func (rcv *Mesh) Indices() ([]int32, error) {
	return rcv.tab.Int32VectorSlot(meshIndices)
}

func (rcv *Mesh) Uvs() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(meshUvs)
}

func (rcv *Mesh) RegionsLength() (int, error) {
	return rcv.tab.VectorSlotLen(meshRegions)
}

func (rcv *Mesh) Regions(i int) (*MeshRegion, error) {
	return flatdata.GetVectorSlotTable[MeshRegion](rcv.tab, meshRegions, i)
}

func CreateMesh(b *flatdata.Builder,
	points flatdata.Offset[flatdata.VectorOf[float32]],
	indices flatdata.Offset[flatdata.VectorOf[int32]],
	uvs flatdata.Offset[flatdata.VectorOf[float32]],
	regions flatdata.Offset[flatdata.VectorOf[MeshRegion]],
) flatdata.Offset[Mesh] {
	MeshStart(b)
	MeshAddRegions(b, regions)
	MeshAddUvs(b, uvs)
	MeshAddIndices(b, indices)
	MeshAddPoints(b, points)
	return MeshEnd(b)
}

func MeshStart(b *flatdata.Builder) {
	b.StartObject(meshFields)
}

func MeshAddPoints(b *flatdata.Builder, points flatdata.Offset[flatdata.VectorOf[float32]]) {
	flatdata.AddOffset(b, meshPoints, points)
}

func MeshAddIndices(b *flatdata.Builder, indices flatdata.Offset[flatdata.VectorOf[int32]]) {
	flatdata.AddOffset(b, meshIndices, indices)
}

func MeshAddUvs(b *flatdata.Builder, uvs flatdata.Offset[flatdata.VectorOf[float32]]) {
	flatdata.AddOffset(b, meshUvs, uvs)
}

func MeshAddRegions(b *flatdata.Builder, regions flatdata.Offset[flatdata.VectorOf[MeshRegion]]) {
	flatdata.AddOffset(b, meshRegions, regions)
}

func MeshEnd(b *flatdata.Builder) flatdata.Offset[Mesh] {
	return flatdata.EndTable[Mesh](b)
}

// ----------------------------------------------------------------------------
// MeshRegion
// ----------------------------------------------------------------------------

const (
	meshRegionName = iota
	meshRegionStartPtIndex
	meshRegionEndPtIndex
	meshRegionStartIndex
	meshRegionEndIndex
	meshRegionID
	meshRegionWeights
	meshRegionFields
)

// MeshRegion is a named, separately skinned part of the mesh. Point and index ranges are
// inclusive.
type MeshRegion struct {
	tab flatdata.Table
}

func (rcv *MeshRegion) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *MeshRegion) Name() (string, error) {
	return rcv.tab.StringSlot(meshRegionName)
}

func (rcv *MeshRegion) StartPtIndex() (int32, error) {
	return rcv.tab.Int32Slot(meshRegionStartPtIndex, 0)
}

func (rcv *MeshRegion) EndPtIndex() (int32, error) {
	return rcv.tab.Int32Slot(meshRegionEndPtIndex, 0)
}

func (rcv *MeshRegion) StartIndex() (int32, error) {
	return rcv.tab.Int32Slot(meshRegionStartIndex, 0)
}

func (rcv *MeshRegion) EndIndex() (int32, error) {
	return rcv.tab.Int32Slot(meshRegionEndIndex, 0)
}

func (rcv *MeshRegion) ID() (int32, error) {
	return rcv.tab.Int32Slot(meshRegionID, 0)
}

func (rcv *MeshRegion) WeightsLength() (int, error) {
	return rcv.tab.VectorSlotLen(meshRegionWeights)
}

func (rcv *MeshRegion) Weights(i int) (*MeshRegionBone, error) {
	return flatdata.GetVectorSlotTable[MeshRegionBone](rcv.tab, meshRegionWeights, i)
}

func MeshRegionStart(b *flatdata.Builder) {
	b.StartObject(meshRegionFields)
}

func MeshRegionAddName(b *flatdata.Builder, name flatdata.Offset[flatdata.String]) {
	flatdata.AddOffset(b, meshRegionName, name)
}

func MeshRegionAddStartPtIndex(b *flatdata.Builder, v int32) {
	b.AddInt32Slot(meshRegionStartPtIndex, v, 0)
}

func MeshRegionAddEndPtIndex(b *flatdata.Builder, v int32) {
	b.AddInt32Slot(meshRegionEndPtIndex, v, 0)
}

func MeshRegionAddStartIndex(b *flatdata.Builder, v int32) {
	b.AddInt32Slot(meshRegionStartIndex, v, 0)
}

func MeshRegionAddEndIndex(b *flatdata.Builder, v int32) {
	b.AddInt32Slot(meshRegionEndIndex, v, 0)
}

func MeshRegionAddID(b *flatdata.Builder, v int32) {
	b.AddInt32Slot(meshRegionID, v, 0)
}

func MeshRegionAddWeights(b *flatdata.Builder, weights flatdata.Offset[flatdata.VectorOf[MeshRegionBone]]) {
	flatdata.AddOffset(b, meshRegionWeights, weights)
}

func MeshRegionEnd(b *flatdata.Builder) flatdata.Offset[MeshRegion] {
	return flatdata.EndTable[MeshRegion](b)
}

// ----------------------------------------------------------------------------
// MeshRegionBone
// ----------------------------------------------------------------------------

const (
	meshRegionBoneName = iota
	meshRegionBoneWeights
	meshRegionBoneFields
)

// MeshRegionBone holds the per point influence of one bone on a region.
type MeshRegionBone struct {
	tab flatdata.Table
}

func (rcv *MeshRegionBone) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *MeshRegionBone) Name() (string, error) {
	return rcv.tab.StringSlot(meshRegionBoneName)
}

func (rcv *MeshRegionBone) Weights() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(meshRegionBoneWeights)
}

func CreateMeshRegionBone(b *flatdata.Builder,
	name flatdata.Offset[flatdata.String],
	weights flatdata.Offset[flatdata.VectorOf[float32]],
) flatdata.Offset[MeshRegionBone] {
	b.StartObject(meshRegionBoneFields)
	flatdata.AddOffset(b, meshRegionBoneWeights, weights)
	flatdata.AddOffset(b, meshRegionBoneName, name)
	return flatdata.EndTable[MeshRegionBone](b)
}
