package schema

import (
	"github.com/rony4d/creature-flatdata/flatdata"
)

// ----------------------------------------------------------------------------
// UV swap items
// ----------------------------------------------------------------------------

const (
	uvSwapItemHolderMeshes = iota
	uvSwapItemHolderFields
)

type UvSwapItemHolder struct {
	tab flatdata.Table
}

func (rcv *UvSwapItemHolder) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *UvSwapItemHolder) MeshesLength() (int, error) {
	return rcv.tab.VectorSlotLen(uvSwapItemHolderMeshes)
}

func (rcv *UvSwapItemHolder) Meshes(i int) (*UvSwapItemMesh, error) {
	return flatdata.GetVectorSlotTable[UvSwapItemMesh](rcv.tab, uvSwapItemHolderMeshes, i)
}

func CreateUvSwapItemHolder(b *flatdata.Builder,
	meshes flatdata.Offset[flatdata.VectorOf[UvSwapItemMesh]],
) flatdata.Offset[UvSwapItemHolder] {
	b.StartObject(uvSwapItemHolderFields)
	flatdata.AddOffset(b, uvSwapItemHolderMeshes, meshes)
	return flatdata.EndTable[UvSwapItemHolder](b)
}

const (
	uvSwapItemMeshName = iota
	uvSwapItemMeshItems
	uvSwapItemMeshFields
)

// UvSwapItemMesh lists the alternative texture regions a mesh region can switch to.
type UvSwapItemMesh struct {
	tab flatdata.Table
}

func (rcv *UvSwapItemMesh) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *UvSwapItemMesh) Name() (string, error) {
	return rcv.tab.StringSlot(uvSwapItemMeshName)
}

func (rcv *UvSwapItemMesh) ItemsLength() (int, error) {
	return rcv.tab.VectorSlotLen(uvSwapItemMeshItems)
}

func (rcv *UvSwapItemMesh) Items(i int) (*UvSwapItemData, error) {
	return flatdata.GetVectorSlotTable[UvSwapItemData](rcv.tab, uvSwapItemMeshItems, i)
}

func CreateUvSwapItemMesh(b *flatdata.Builder,
	name flatdata.Offset[flatdata.String],
	items flatdata.Offset[flatdata.VectorOf[UvSwapItemData]],
) flatdata.Offset[UvSwapItemMesh] {
	b.StartObject(uvSwapItemMeshFields)
	flatdata.AddOffset(b, uvSwapItemMeshItems, items)
	flatdata.AddOffset(b, uvSwapItemMeshName, name)
	return flatdata.EndTable[UvSwapItemMesh](b)
}

const (
	uvSwapItemDataLocalOffset = iota
	uvSwapItemDataGlobalOffset
	uvSwapItemDataScale
	uvSwapItemDataTag
	uvSwapItemDataFields
)

type UvSwapItemData struct {
	tab flatdata.Table
}

func (rcv *UvSwapItemData) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *UvSwapItemData) LocalOffset() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(uvSwapItemDataLocalOffset)
}

func (rcv *UvSwapItemData) GlobalOffset() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(uvSwapItemDataGlobalOffset)
}

func (rcv *UvSwapItemData) Scale() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(uvSwapItemDataScale)
}

func (rcv *UvSwapItemData) Tag() (int32, error) {
	return rcv.tab.Int32Slot(uvSwapItemDataTag, 0)
}

func CreateUvSwapItemData(b *flatdata.Builder,
	localOffset flatdata.Offset[flatdata.VectorOf[float32]],
	globalOffset flatdata.Offset[flatdata.VectorOf[float32]],
	scale flatdata.Offset[flatdata.VectorOf[float32]],
	tag int32,
) flatdata.Offset[UvSwapItemData] {
	b.StartObject(uvSwapItemDataFields)
	b.AddInt32Slot(uvSwapItemDataTag, tag, 0)
	flatdata.AddOffset(b, uvSwapItemDataScale, scale)
	flatdata.AddOffset(b, uvSwapItemDataGlobalOffset, globalOffset)
	flatdata.AddOffset(b, uvSwapItemDataLocalOffset, localOffset)
	return flatdata.EndTable[UvSwapItemData](b)
}

// ----------------------------------------------------------------------------
// Anchor points
// ----------------------------------------------------------------------------

const (
	anchorPointsHolderAnchorPoints = iota
	anchorPointsHolderFields
)

type AnchorPointsHolder struct {
	tab flatdata.Table
}

func (rcv *AnchorPointsHolder) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnchorPointsHolder) AnchorPointsLength() (int, error) {
	return rcv.tab.VectorSlotLen(anchorPointsHolderAnchorPoints)
}

func (rcv *AnchorPointsHolder) AnchorPoints(i int) (*AnchorPointData, error) {
	return flatdata.GetVectorSlotTable[AnchorPointData](rcv.tab, anchorPointsHolderAnchorPoints, i)
}

func CreateAnchorPointsHolder(b *flatdata.Builder,
	points flatdata.Offset[flatdata.VectorOf[AnchorPointData]],
) flatdata.Offset[AnchorPointsHolder] {
	b.StartObject(anchorPointsHolderFields)
	flatdata.AddOffset(b, anchorPointsHolderAnchorPoints, points)
	return flatdata.EndTable[AnchorPointsHolder](b)
}

const (
	anchorPointDataPoint = iota
	anchorPointDataAnimClipName
	anchorPointDataFields
)

// AnchorPointData pins the rig origin to Point while AnimClipName plays.
type AnchorPointData struct {
	tab flatdata.Table
}

func (rcv *AnchorPointData) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnchorPointData) Point() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(anchorPointDataPoint)
}

func (rcv *AnchorPointData) AnimClipName() (string, error) {
	return rcv.tab.StringSlot(anchorPointDataAnimClipName)
}

func CreateAnchorPointData(b *flatdata.Builder,
	point flatdata.Offset[flatdata.VectorOf[float32]],
	animClipName flatdata.Offset[flatdata.String],
) flatdata.Offset[AnchorPointData] {
	b.StartObject(anchorPointDataFields)
	flatdata.AddOffset(b, anchorPointDataAnimClipName, animClipName)
	flatdata.AddOffset(b, anchorPointDataPoint, point)
	return flatdata.EndTable[AnchorPointData](b)
}
