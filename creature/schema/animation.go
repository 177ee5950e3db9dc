package schema

import (
	"github.com/rony4d/creature-flatdata/flatdata"
)

// ----------------------------------------------------------------------------
// Animation, AnimationClip
// ----------------------------------------------------------------------------

const (
	animationClips = iota
	animationFields
)

type Animation struct {
	tab flatdata.Table
}

func (rcv *Animation) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *Animation) Table() flatdata.Table {
	return rcv.tab
}

func (rcv *Animation) ClipsLength() (int, error) {
	return rcv.tab.VectorSlotLen(animationClips)
}

func (rcv *Animation) Clips(i int) (*AnimationClip, error) {
	return flatdata.GetVectorSlotTable[AnimationClip](rcv.tab, animationClips, i)
}

func CreateAnimation(b *flatdata.Builder, clips flatdata.Offset[flatdata.VectorOf[AnimationClip]]) flatdata.Offset[Animation] {
	b.StartObject(animationFields)
	flatdata.AddOffset(b, animationClips, clips)
	return flatdata.EndTable[Animation](b)
}

const (
	animationClipName = iota
	animationClipBones
	animationClipMeshes
	animationClipUvSwaps
	animationClipMeshOpacities
	animationClipFields
)

type AnimationClip struct {
	tab flatdata.Table
}

func (rcv *AnimationClip) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationClip) Name() (string, error) {
	return rcv.tab.StringSlot(animationClipName)
}

func (rcv *AnimationClip) Bones() (*AnimationBonesList, error) {
	return flatdata.GetTable[AnimationBonesList](rcv.tab, animationClipBones)
}

func (rcv *AnimationClip) Meshes() (*AnimationMeshList, error) {
	return flatdata.GetTable[AnimationMeshList](rcv.tab, animationClipMeshes)
}

func (rcv *AnimationClip) UvSwaps() (*AnimationUvSwapList, error) {
	return flatdata.GetTable[AnimationUvSwapList](rcv.tab, animationClipUvSwaps)
}

func (rcv *AnimationClip) MeshOpacities() (*AnimationMeshOpacityList, error) {
	return flatdata.GetTable[AnimationMeshOpacityList](rcv.tab, animationClipMeshOpacities)
}

func CreateAnimationClip(b *flatdata.Builder,
	name flatdata.Offset[flatdata.String],
	bones flatdata.Offset[AnimationBonesList],
	meshes flatdata.Offset[AnimationMeshList],
	uvSwaps flatdata.Offset[AnimationUvSwapList],
	meshOpacities flatdata.Offset[AnimationMeshOpacityList],
) flatdata.Offset[AnimationClip] {
	b.StartObject(animationClipFields)
	flatdata.AddOffset(b, animationClipMeshOpacities, meshOpacities)
	flatdata.AddOffset(b, animationClipUvSwaps, uvSwaps)
	flatdata.AddOffset(b, animationClipMeshes, meshes)
	flatdata.AddOffset(b, animationClipBones, bones)
	flatdata.AddOffset(b, animationClipName, name)
	return flatdata.EndTable[AnimationClip](b)
}

// ----------------------------------------------------------------------------
// Bone tracks
// ----------------------------------------------------------------------------

const (
	animationBonesListTimeSamples = iota
	animationBonesListFields
)

type AnimationBonesList struct {
	tab flatdata.Table
}

func (rcv *AnimationBonesList) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationBonesList) TimeSamplesLength() (int, error) {
	return rcv.tab.VectorSlotLen(animationBonesListTimeSamples)
}

func (rcv *AnimationBonesList) TimeSamples(i int) (*AnimationBonesTimeSample, error) {
	return flatdata.GetVectorSlotTable[AnimationBonesTimeSample](rcv.tab, animationBonesListTimeSamples, i)
}

func CreateAnimationBonesList(b *flatdata.Builder,
	samples flatdata.Offset[flatdata.VectorOf[AnimationBonesTimeSample]],
) flatdata.Offset[AnimationBonesList] {
	b.StartObject(animationBonesListFields)
	flatdata.AddOffset(b, animationBonesListTimeSamples, samples)
	return flatdata.EndTable[AnimationBonesList](b)
}

const (
	animationBonesTimeSampleTime = iota
	animationBonesTimeSampleBones
	animationBonesTimeSampleFields
)

// AnimationBonesTimeSample is the pose of every animated bone at one frame.
type AnimationBonesTimeSample struct {
	tab flatdata.Table
}

func (rcv *AnimationBonesTimeSample) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationBonesTimeSample) Time() (int32, error) {
	return rcv.tab.Int32Slot(animationBonesTimeSampleTime, 0)
}

func (rcv *AnimationBonesTimeSample) BonesLength() (int, error) {
	return rcv.tab.VectorSlotLen(animationBonesTimeSampleBones)
}

func (rcv *AnimationBonesTimeSample) Bones(i int) (*AnimationBone, error) {
	return flatdata.GetVectorSlotTable[AnimationBone](rcv.tab, animationBonesTimeSampleBones, i)
}

func CreateAnimationBonesTimeSample(b *flatdata.Builder,
	time int32,
	bones flatdata.Offset[flatdata.VectorOf[AnimationBone]],
) flatdata.Offset[AnimationBonesTimeSample] {
	b.StartObject(animationBonesTimeSampleFields)
	flatdata.AddOffset(b, animationBonesTimeSampleBones, bones)
	b.AddInt32Slot(animationBonesTimeSampleTime, time, 0)
	return flatdata.EndTable[AnimationBonesTimeSample](b)
}

const (
	animationBoneName = iota
	animationBoneStartPt
	animationBoneEndPt
	animationBoneFields
)

type AnimationBone struct {
	tab flatdata.Table
}

func (rcv *AnimationBone) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationBone) Name() (string, error) {
	return rcv.tab.StringSlot(animationBoneName)
}

func (rcv *AnimationBone) StartPt() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(animationBoneStartPt)
}

func (rcv *AnimationBone) EndPt() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(animationBoneEndPt)
}

func CreateAnimationBone(b *flatdata.Builder,
	name flatdata.Offset[flatdata.String],
	startPt flatdata.Offset[flatdata.VectorOf[float32]],
	endPt flatdata.Offset[flatdata.VectorOf[float32]],
) flatdata.Offset[AnimationBone] {
	b.StartObject(animationBoneFields)
	flatdata.AddOffset(b, animationBoneEndPt, endPt)
	flatdata.AddOffset(b, animationBoneStartPt, startPt)
	flatdata.AddOffset(b, animationBoneName, name)
	return flatdata.EndTable[AnimationBone](b)
}

// ----------------------------------------------------------------------------
// Mesh deformation tracks
// ----------------------------------------------------------------------------

const (
	animationMeshListTimeSamples = iota
	animationMeshListFields
)

type AnimationMeshList struct {
	tab flatdata.Table
}

func (rcv *AnimationMeshList) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationMeshList) TimeSamplesLength() (int, error) {
	return rcv.tab.VectorSlotLen(animationMeshListTimeSamples)
}

func (rcv *AnimationMeshList) TimeSamples(i int) (*AnimationMeshTimeSample, error) {
	return flatdata.GetVectorSlotTable[AnimationMeshTimeSample](rcv.tab, animationMeshListTimeSamples, i)
}

func CreateAnimationMeshList(b *flatdata.Builder,
	samples flatdata.Offset[flatdata.VectorOf[AnimationMeshTimeSample]],
) flatdata.Offset[AnimationMeshList] {
	b.StartObject(animationMeshListFields)
	flatdata.AddOffset(b, animationMeshListTimeSamples, samples)
	return flatdata.EndTable[AnimationMeshList](b)
}

const (
	animationMeshTimeSampleTime = iota
	animationMeshTimeSampleMeshes
	animationMeshTimeSampleFields
)

type AnimationMeshTimeSample struct {
	tab flatdata.Table
}

func (rcv *AnimationMeshTimeSample) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationMeshTimeSample) Time() (int32, error) {
	return rcv.tab.Int32Slot(animationMeshTimeSampleTime, 0)
}

func (rcv *AnimationMeshTimeSample) MeshesLength() (int, error) {
	return rcv.tab.VectorSlotLen(animationMeshTimeSampleMeshes)
}

func (rcv *AnimationMeshTimeSample) Meshes(i int) (*AnimationMesh, error) {
	return flatdata.GetVectorSlotTable[AnimationMesh](rcv.tab, animationMeshTimeSampleMeshes, i)
}

func CreateAnimationMeshTimeSample(b *flatdata.Builder,
	time int32,
	meshes flatdata.Offset[flatdata.VectorOf[AnimationMesh]],
) flatdata.Offset[AnimationMeshTimeSample] {
	b.StartObject(animationMeshTimeSampleFields)
	flatdata.AddOffset(b, animationMeshTimeSampleMeshes, meshes)
	b.AddInt32Slot(animationMeshTimeSampleTime, time, 0)
	return flatdata.EndTable[AnimationMeshTimeSample](b)
}

const (
	animationMeshName = iota
	animationMeshUseDq
	animationMeshUseLocalDisplacements
	animationMeshUsePostDisplacements
	animationMeshLocalDisplacements
	animationMeshPostDisplacements
	animationMeshFields
)

// AnimationMesh is the deformation state of one mesh region at a frame. Displacements are
// flattened xy pairs, present only when the exporter wrote them.
type AnimationMesh struct {
	tab flatdata.Table
}

func (rcv *AnimationMesh) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationMesh) Name() (string, error) {
	return rcv.tab.StringSlot(animationMeshName)
}

func (rcv *AnimationMesh) UseDq() (bool, error) {
	return rcv.tab.BoolSlot(animationMeshUseDq, false)
}

func (rcv *AnimationMesh) UseLocalDisplacements() (bool, error) {
	return rcv.tab.BoolSlot(animationMeshUseLocalDisplacements, false)
}

func (rcv *AnimationMesh) UsePostDisplacements() (bool, error) {
	return rcv.tab.BoolSlot(animationMeshUsePostDisplacements, false)
}

func (rcv *AnimationMesh) LocalDisplacements() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(animationMeshLocalDisplacements)
}

func (rcv *AnimationMesh) PostDisplacements() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(animationMeshPostDisplacements)
}

func AnimationMeshStart(b *flatdata.Builder) {
	b.StartObject(animationMeshFields)
}

func AnimationMeshAddName(b *flatdata.Builder, name flatdata.Offset[flatdata.String]) {
	flatdata.AddOffset(b, animationMeshName, name)
}

func AnimationMeshAddUseDq(b *flatdata.Builder, v bool) {
	b.AddBoolSlot(animationMeshUseDq, v, false)
}

func AnimationMeshAddUseLocalDisplacements(b *flatdata.Builder, v bool) {
	b.AddBoolSlot(animationMeshUseLocalDisplacements, v, false)
}

func AnimationMeshAddUsePostDisplacements(b *flatdata.Builder, v bool) {
	b.AddBoolSlot(animationMeshUsePostDisplacements, v, false)
}

func AnimationMeshAddLocalDisplacements(b *flatdata.Builder, v flatdata.Offset[flatdata.VectorOf[float32]]) {
	flatdata.AddOffset(b, animationMeshLocalDisplacements, v)
}

func AnimationMeshAddPostDisplacements(b *flatdata.Builder, v flatdata.Offset[flatdata.VectorOf[float32]]) {
	flatdata.AddOffset(b, animationMeshPostDisplacements, v)
}

func AnimationMeshEnd(b *flatdata.Builder) flatdata.Offset[AnimationMesh] {
	return flatdata.EndTable[AnimationMesh](b)
}

// ----------------------------------------------------------------------------
// UV swap tracks
// ----------------------------------------------------------------------------

const (
	animationUvSwapListTimeSamples = iota
	animationUvSwapListFields
)

type AnimationUvSwapList struct {
	tab flatdata.Table
}

func (rcv *AnimationUvSwapList) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationUvSwapList) TimeSamplesLength() (int, error) {
	return rcv.tab.VectorSlotLen(animationUvSwapListTimeSamples)
}

func (rcv *AnimationUvSwapList) TimeSamples(i int) (*AnimationUvSwapTimeSample, error) {
	return flatdata.GetVectorSlotTable[AnimationUvSwapTimeSample](rcv.tab, animationUvSwapListTimeSamples, i)
}

func CreateAnimationUvSwapList(b *flatdata.Builder,
	samples flatdata.Offset[flatdata.VectorOf[AnimationUvSwapTimeSample]],
) flatdata.Offset[AnimationUvSwapList] {
	b.StartObject(animationUvSwapListFields)
	flatdata.AddOffset(b, animationUvSwapListTimeSamples, samples)
	return flatdata.EndTable[AnimationUvSwapList](b)
}

const (
	animationUvSwapTimeSampleTime = iota
	animationUvSwapTimeSampleUvSwaps
	animationUvSwapTimeSampleFields
)

type AnimationUvSwapTimeSample struct {
	tab flatdata.Table
}

func (rcv *AnimationUvSwapTimeSample) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationUvSwapTimeSample) Time() (int32, error) {
	return rcv.tab.Int32Slot(animationUvSwapTimeSampleTime, 0)
}

func (rcv *AnimationUvSwapTimeSample) UvSwapsLength() (int, error) {
	return rcv.tab.VectorSlotLen(animationUvSwapTimeSampleUvSwaps)
}

func (rcv *AnimationUvSwapTimeSample) UvSwaps(i int) (*AnimationUvSwap, error) {
	return flatdata.GetVectorSlotTable[AnimationUvSwap](rcv.tab, animationUvSwapTimeSampleUvSwaps, i)
}

func CreateAnimationUvSwapTimeSample(b *flatdata.Builder,
	time int32,
	uvSwaps flatdata.Offset[flatdata.VectorOf[AnimationUvSwap]],
) flatdata.Offset[AnimationUvSwapTimeSample] {
	b.StartObject(animationUvSwapTimeSampleFields)
	flatdata.AddOffset(b, animationUvSwapTimeSampleUvSwaps, uvSwaps)
	b.AddInt32Slot(animationUvSwapTimeSampleTime, time, 0)
	return flatdata.EndTable[AnimationUvSwapTimeSample](b)
}

const (
	animationUvSwapName = iota
	animationUvSwapLocalOffset
	animationUvSwapGlobalOffset
	animationUvSwapScale
	animationUvSwapEnabled
	animationUvSwapFields
)

type AnimationUvSwap struct {
	tab flatdata.Table
}

func (rcv *AnimationUvSwap) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationUvSwap) Name() (string, error) {
	return rcv.tab.StringSlot(animationUvSwapName)
}

func (rcv *AnimationUvSwap) LocalOffset() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(animationUvSwapLocalOffset)
}

func (rcv *AnimationUvSwap) GlobalOffset() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(animationUvSwapGlobalOffset)
}

func (rcv *AnimationUvSwap) Scale() ([]float32, error) {
	return rcv.tab.Float32VectorSlot(animationUvSwapScale)
}

func (rcv *AnimationUvSwap) Enabled() (bool, error) {
	return rcv.tab.BoolSlot(animationUvSwapEnabled, false)
}

func CreateAnimationUvSwap(b *flatdata.Builder,
	name flatdata.Offset[flatdata.String],
	localOffset flatdata.Offset[flatdata.VectorOf[float32]],
	globalOffset flatdata.Offset[flatdata.VectorOf[float32]],
	scale flatdata.Offset[flatdata.VectorOf[float32]],
	enabled bool,
) flatdata.Offset[AnimationUvSwap] {
	b.StartObject(animationUvSwapFields)
	flatdata.AddOffset(b, animationUvSwapScale, scale)
	flatdata.AddOffset(b, animationUvSwapGlobalOffset, globalOffset)
	flatdata.AddOffset(b, animationUvSwapLocalOffset, localOffset)
	flatdata.AddOffset(b, animationUvSwapName, name)
	b.AddBoolSlot(animationUvSwapEnabled, enabled, false)
	return flatdata.EndTable[AnimationUvSwap](b)
}

// ----------------------------------------------------------------------------
// Mesh opacity tracks
// ----------------------------------------------------------------------------

const (
	animationMeshOpacityListTimeSamples = iota
	animationMeshOpacityListFields
)

type AnimationMeshOpacityList struct {
	tab flatdata.Table
}

func (rcv *AnimationMeshOpacityList) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationMeshOpacityList) TimeSamplesLength() (int, error) {
	return rcv.tab.VectorSlotLen(animationMeshOpacityListTimeSamples)
}

func (rcv *AnimationMeshOpacityList) TimeSamples(i int) (*AnimationMeshOpacityTimeSample, error) {
	return flatdata.GetVectorSlotTable[AnimationMeshOpacityTimeSample](rcv.tab, animationMeshOpacityListTimeSamples, i)
}

func CreateAnimationMeshOpacityList(b *flatdata.Builder,
	samples flatdata.Offset[flatdata.VectorOf[AnimationMeshOpacityTimeSample]],
) flatdata.Offset[AnimationMeshOpacityList] {
	b.StartObject(animationMeshOpacityListFields)
	flatdata.AddOffset(b, animationMeshOpacityListTimeSamples, samples)
	return flatdata.EndTable[AnimationMeshOpacityList](b)
}

const (
	animationMeshOpacityTimeSampleTime = iota
	animationMeshOpacityTimeSampleMeshOpacities
	animationMeshOpacityTimeSampleFields
)

type AnimationMeshOpacityTimeSample struct {
	tab flatdata.Table
}

func (rcv *AnimationMeshOpacityTimeSample) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationMeshOpacityTimeSample) Time() (int32, error) {
	return rcv.tab.Int32Slot(animationMeshOpacityTimeSampleTime, 0)
}

func (rcv *AnimationMeshOpacityTimeSample) MeshOpacitiesLength() (int, error) {
	return rcv.tab.VectorSlotLen(animationMeshOpacityTimeSampleMeshOpacities)
}

func (rcv *AnimationMeshOpacityTimeSample) MeshOpacities(i int) (*AnimationMeshOpacity, error) {
	return flatdata.GetVectorSlotTable[AnimationMeshOpacity](rcv.tab, animationMeshOpacityTimeSampleMeshOpacities, i)
}

func CreateAnimationMeshOpacityTimeSample(b *flatdata.Builder,
	time int32,
	opacities flatdata.Offset[flatdata.VectorOf[AnimationMeshOpacity]],
) flatdata.Offset[AnimationMeshOpacityTimeSample] {
	b.StartObject(animationMeshOpacityTimeSampleFields)
	flatdata.AddOffset(b, animationMeshOpacityTimeSampleMeshOpacities, opacities)
	b.AddInt32Slot(animationMeshOpacityTimeSampleTime, time, 0)
	return flatdata.EndTable[AnimationMeshOpacityTimeSample](b)
}

const (
	animationMeshOpacityName = iota
	animationMeshOpacityOpacity
	animationMeshOpacityFields
)

type AnimationMeshOpacity struct {
	tab flatdata.Table
}

func (rcv *AnimationMeshOpacity) Init(t flatdata.Table) {
	rcv.tab = t
}

func (rcv *AnimationMeshOpacity) Name() (string, error) {
	return rcv.tab.StringSlot(animationMeshOpacityName)
}

// Opacity is a percentage, 100 being fully opaque.
func (rcv *AnimationMeshOpacity) Opacity() (float32, error) {
	return rcv.tab.Float32Slot(animationMeshOpacityOpacity, 0)
}

func CreateAnimationMeshOpacity(b *flatdata.Builder,
	name flatdata.Offset[flatdata.String],
	opacity float32,
) flatdata.Offset[AnimationMeshOpacity] {
	b.StartObject(animationMeshOpacityFields)
	b.AddFloat32Slot(animationMeshOpacityOpacity, opacity, 0)
	flatdata.AddOffset(b, animationMeshOpacityName, name)
	return flatdata.EndTable[AnimationMeshOpacity](b)
}
