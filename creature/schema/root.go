// Package schema holds the table bindings for Creature rig buffers.
//
// Every table type wraps a flatdata.Table. Readers navigate a finished buffer in place, starting
// from GetRootAsRootData; writers go bottom-up through the Create/Start/Add/End functions, which
// follow the calling convention of flatc generated code. Slot numbers are part of the wire
// format and must never be reordered.
package schema

import (
	"github.com/rony4d/creature-flatdata/flatdata"
)

const (
	rootDataMesh = iota
	rootDataSkeleton
	rootDataAnimation
	rootDataUvSwapItem
	rootDataAnchorPoints
	rootDataFields
)

// LegacyRootDataFields is the slot count of root tables written before uv swap items and
// anchor points existed. Such buffers read the newer slots as absent.
const LegacyRootDataFields = rootDataUvSwapItem

// RootData is the root table of a rig buffer.
type RootData struct {
	tab flatdata.Table
}

func GetRootAsRootData(buf []byte) (*RootData, error) {
	return flatdata.GetRoot[RootData](buf)
}

func (rcv *RootData) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *RootData) Table() flatdata.Table {
	return rcv.tab
}

// DataMesh returns the mesh table, nil when the buffer has none.
func (rcv *RootData) DataMesh() (*Mesh, error) {
	return flatdata.GetTable[Mesh](rcv.tab, rootDataMesh)
}

func (rcv *RootData) DataSkeleton() (*Skeleton, error) {
	return flatdata.GetTable[Skeleton](rcv.tab, rootDataSkeleton)
}

func (rcv *RootData) DataAnimation() (*Animation, error) {
	return flatdata.GetTable[Animation](rcv.tab, rootDataAnimation)
}

func (rcv *RootData) DataUvSwapItem() (*UvSwapItemHolder, error) {
	return flatdata.GetTable[UvSwapItemHolder](rcv.tab, rootDataUvSwapItem)
}

func (rcv *RootData) DataAnchorPoints() (*AnchorPointsHolder, error) {
	return flatdata.GetTable[AnchorPointsHolder](rcv.tab, rootDataAnchorPoints)
}

func CreateRootData(b *flatdata.Builder,
	mesh flatdata.Offset[Mesh],
	skeleton flatdata.Offset[Skeleton],
	animation flatdata.Offset[Animation],
	uvSwapItem flatdata.Offset[UvSwapItemHolder],
	anchorPoints flatdata.Offset[AnchorPointsHolder],
) flatdata.Offset[RootData] {
	RootDataStart(b)
	RootDataAddDataAnchorPoints(b, anchorPoints)
	RootDataAddDataUvSwapItem(b, uvSwapItem)
	RootDataAddDataAnimation(b, animation)
	RootDataAddDataSkeleton(b, skeleton)
	RootDataAddDataMesh(b, mesh)
	return RootDataEnd(b)
}

func RootDataStart(b *flatdata.Builder) {
	b.StartObject(rootDataFields)
}

func RootDataAddDataMesh(b *flatdata.Builder, mesh flatdata.Offset[Mesh]) {
	flatdata.AddOffset(b, rootDataMesh, mesh)
}

func RootDataAddDataSkeleton(b *flatdata.Builder, skeleton flatdata.Offset[Skeleton]) {
	flatdata.AddOffset(b, rootDataSkeleton, skeleton)
}

func RootDataAddDataAnimation(b *flatdata.Builder, animation flatdata.Offset[Animation]) {
	flatdata.AddOffset(b, rootDataAnimation, animation)
}

func RootDataAddDataUvSwapItem(b *flatdata.Builder, items flatdata.Offset[UvSwapItemHolder]) {
	flatdata.AddOffset(b, rootDataUvSwapItem, items)
}

func RootDataAddDataAnchorPoints(b *flatdata.Builder, points flatdata.Offset[AnchorPointsHolder]) {
	flatdata.AddOffset(b, rootDataAnchorPoints, points)
}

func RootDataEnd(b *flatdata.Builder) flatdata.Offset[RootData] {
	return flatdata.EndTable[RootData](b)
}

func FinishRootDataBuffer(b *flatdata.Builder, root flatdata.Offset[RootData]) {
	b.Finish(flatdata.UOffset(root))
}
