package schema

import (
	"github.com/rony4d/creature-flatdata/flatdata"
)

const (
	skeletonBones = iota
	skeletonFields
)

type Skeleton struct {
	tab flatdata.Table
}

func (rcv *Skeleton) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *Skeleton) Table() flatdata.Table {
	return rcv.tab
}

func (rcv *Skeleton) BonesLength() (int, error) {
	return rcv.tab.VectorSlotLen(skeletonBones)
}

func (rcv *Skeleton) Bones(i int) (*SkeletonBone, error) {
	return flatdata.GetVectorSlotTable[SkeletonBone](rcv.tab, skeletonBones, i)
}

func CreateSkeleton(b *flatdata.Builder, bones flatdata.Offset[flatdata.VectorOf[SkeletonBone]]) flatdata.Offset[Skeleton] {
	b.StartObject(skeletonFields)
	flatdata.AddOffset(b, skeletonBones, bones)
	return flatdata.EndTable[Skeleton](b)
}

const (
	skeletonBoneName = iota
	skeletonBoneID
	skeletonBoneRestParentMat
	skeletonBoneLocalRestStartPt
	skeletonBoneLocalRestEndPt
	skeletonBoneChildren
	skeletonBoneFields
)

// SkeletonBone is one bone of the rest pose. Children lists the ids of its direct children.
type SkeletonBone struct {
	tab flatdata.Table
}

func (rcv *SkeletonBone) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *SkeletonBone) Name() (string, error) {
	return rcv.tab.StringSlot(skeletonBoneName)
}

func (rcv *SkeletonBone) ID() (int32, error) {
	return rcv.tab.Int32Slot(skeletonBoneID, 0)
}

// RestParentMat is a 4x4 matrix, 16 floats.
func (rcv *SkeletonBone) RestParentMat() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(skeletonBoneRestParentMat)
}

func (rcv *SkeletonBone) LocalRestStartPt() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(skeletonBoneLocalRestStartPt)
}

func (rcv *SkeletonBone) LocalRestEndPt() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(skeletonBoneLocalRestEndPt)
}

func (rcv *SkeletonBone) Children() ([]int32, error) {
	return rcv.tab.Int32VectorSlot(skeletonBoneChildren)
}

func SkeletonBoneStart(b *flatdata.Builder) {
	b.StartObject(skeletonBoneFields)
}

func SkeletonBoneAddName(b *flatdata.Builder, name flatdata.Offset[flatdata.String]) {
	flatdata.AddOffset(b, skeletonBoneName, name)
}

func SkeletonBoneAddID(b *flatdata.Builder, id int32) {
	b.AddInt32Slot(skeletonBoneID, id, 0)
}

func SkeletonBoneAddRestParentMat(b *flatdata.Builder, mat flatdata.Offset[flatdata.VectorOf[float32]]) {
	flatdata.AddOffset(b, skeletonBoneRestParentMat, mat)
}

func SkeletonBoneAddLocalRestStartPt(b *flatdata.Builder, pt flatdata.Offset[flatdata.VectorOf[float32]]) {
	flatdata.AddOffset(b, skeletonBoneLocalRestStartPt, pt)
}

func SkeletonBoneAddLocalRestEndPt(b *flatdata.Builder, pt flatdata.Offset[flatdata.VectorOf[float32]]) {
	flatdata.AddOffset(b, skeletonBoneLocalRestEndPt, pt)
}

func SkeletonBoneAddChildren(b *flatdata.Builder, children flatdata.Offset[flatdata.VectorOf[int32]]) {
	flatdata.AddOffset(b, skeletonBoneChildren, children)
}

func SkeletonBoneEnd(b *flatdata.Builder) flatdata.Offset[SkeletonBone] {
	return flatdata.EndTable[SkeletonBone](b)
}
