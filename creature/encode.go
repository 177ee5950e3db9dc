package creature

import (
	"errors"

	"github.com/rony4d/creature-flatdata/creature/schema"
	"github.com/rony4d/creature-flatdata/flatdata"
)

// DefaultBufferSize is the Builder's starting capacity. Rigs are rarely smaller.
const DefaultBufferSize = 64 * 1024

var ErrNilDocument = errors.New("nil document")

// Encode lays out doc as a finished rig buffer. Children are written before the tables that
// reference them: mesh, skeleton, animation, uv swap items, anchor points, then the root.
// uv swap items and anchor points are left out of the root when the document has none.
func Encode(doc *Document) ([]byte, error) {
	return EncodeSized(doc, DefaultBufferSize)
}

// EncodeSized is Encode with an explicit initial Builder capacity.
func EncodeSized(doc *Document, initialSize int) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	return flatdata.Finished(initialSize, func(b *flatdata.Builder) (flatdata.Offset[schema.RootData], error) {
		e := encoder{b: b}
		mesh := e.mesh(&doc.Mesh)
		skeleton := e.skeleton(doc.Skeleton)
		animation := e.animation(doc.Animation)

		var uvSwaps flatdata.Offset[schema.UvSwapItemHolder]
		if len(doc.UvSwapItems) > 0 {
			uvSwaps = e.uvSwapItems(doc.UvSwapItems)
		}
		var anchors flatdata.Offset[schema.AnchorPointsHolder]
		if len(doc.AnchorPoints) > 0 {
			anchors = e.anchorPoints(doc.AnchorPoints)
		}

		return schema.CreateRootData(b, mesh, skeleton, animation, uvSwaps, anchors), nil
	})
}

type encoder struct {
	b *flatdata.Builder
}

func (e encoder) str(s string) flatdata.Offset[flatdata.String] {
	return flatdata.NewString(e.b, s)
}

func (e encoder) floats(v []float32) flatdata.Offset[flatdata.VectorOf[float32]] {
	return flatdata.NewFloat32Vector(e.b, v)
}

func (e encoder) mesh(m *Mesh) flatdata.Offset[schema.Mesh] {
	b := e.b
	regions := make([]flatdata.Offset[schema.MeshRegion], 0, len(m.Regions))
	for i := range m.Regions {
		r := &m.Regions[i]

		weights := make([]flatdata.Offset[schema.MeshRegionBone], 0, len(r.Weights))
		for _, w := range r.Weights {
			name := e.str(w.Bone)
			values := e.floats(w.Weights)
			weights = append(weights, schema.CreateMeshRegionBone(b, name, values))
		}

		name := e.str(r.Name)
		weightList := flatdata.NewTableVector(b, weights)

		schema.MeshRegionStart(b)
		schema.MeshRegionAddName(b, name)
		schema.MeshRegionAddStartPtIndex(b, r.StartPtIndex)
		schema.MeshRegionAddEndPtIndex(b, r.EndPtIndex)
		schema.MeshRegionAddStartIndex(b, r.StartIndex)
		schema.MeshRegionAddEndIndex(b, r.EndIndex)
		schema.MeshRegionAddID(b, r.ID)
		schema.MeshRegionAddWeights(b, weightList)
		regions = append(regions, schema.MeshRegionEnd(b))
	}

	points := e.floats(m.Points)
	indices := flatdata.NewInt32Vector(b, m.Indices)
	uvs := e.floats(m.Uvs)
	regionList := flatdata.NewTableVector(b, regions)
	return schema.CreateMesh(b, points, indices, uvs, regionList)
}

func (e encoder) skeleton(bones []Bone) flatdata.Offset[schema.Skeleton] {
	b := e.b
	list := make([]flatdata.Offset[schema.SkeletonBone], 0, len(bones))
	for i := range bones {
		bone := &bones[i]
		name := e.str(bone.Name)
		mat := e.floats(bone.RestParentMat)
		start := e.floats(bone.LocalRestStartPt)
		end := e.floats(bone.LocalRestEndPt)
		children := flatdata.NewInt32Vector(b, bone.Children)

		schema.SkeletonBoneStart(b)
		schema.SkeletonBoneAddName(b, name)
		schema.SkeletonBoneAddID(b, bone.ID)
		schema.SkeletonBoneAddRestParentMat(b, mat)
		schema.SkeletonBoneAddLocalRestStartPt(b, start)
		schema.SkeletonBoneAddLocalRestEndPt(b, end)
		schema.SkeletonBoneAddChildren(b, children)
		list = append(list, schema.SkeletonBoneEnd(b))
	}
	return schema.CreateSkeleton(b, flatdata.NewTableVector(b, list))
}

func (e encoder) animation(clips []Clip) flatdata.Offset[schema.Animation] {
	b := e.b
	list := make([]flatdata.Offset[schema.AnimationClip], 0, len(clips))
	for i := range clips {
		clip := &clips[i]
		bones := e.boneSamples(clip.Bones)
		meshes := e.meshSamples(clip.Meshes)
		uvSwaps := e.uvSwapSamples(clip.UvSwaps)
		opacities := e.opacitySamples(clip.MeshOpacities)
		name := e.str(clip.Name)
		list = append(list, schema.CreateAnimationClip(b, name, bones, meshes, uvSwaps, opacities))
	}
	return schema.CreateAnimation(b, flatdata.NewTableVector(b, list))
}

func (e encoder) boneSamples(samples []BonesSample) flatdata.Offset[schema.AnimationBonesList] {
	b := e.b
	list := make([]flatdata.Offset[schema.AnimationBonesTimeSample], 0, len(samples))
	for _, s := range samples {
		poses := make([]flatdata.Offset[schema.AnimationBone], 0, len(s.Bones))
		for _, pose := range s.Bones {
			name := e.str(pose.Name)
			start := e.floats(pose.StartPt)
			end := e.floats(pose.EndPt)
			poses = append(poses, schema.CreateAnimationBone(b, name, start, end))
		}
		list = append(list, schema.CreateAnimationBonesTimeSample(b, s.Time, flatdata.NewTableVector(b, poses)))
	}
	return schema.CreateAnimationBonesList(b, flatdata.NewTableVector(b, list))
}

func (e encoder) meshSamples(samples []MeshSample) flatdata.Offset[schema.AnimationMeshList] {
	b := e.b
	list := make([]flatdata.Offset[schema.AnimationMeshTimeSample], 0, len(samples))
	for _, s := range samples {
		meshes := make([]flatdata.Offset[schema.AnimationMesh], 0, len(s.Meshes))
		for _, m := range s.Meshes {
			name := e.str(m.Name)
			// Displacements the export left out stay absent rather than empty.
			var local, post flatdata.Offset[flatdata.VectorOf[float32]]
			if m.LocalDisplacements != nil {
				local = e.floats(m.LocalDisplacements)
			}
			if m.PostDisplacements != nil {
				post = e.floats(m.PostDisplacements)
			}

			schema.AnimationMeshStart(b)
			schema.AnimationMeshAddName(b, name)
			schema.AnimationMeshAddUseDq(b, m.UseDq)
			schema.AnimationMeshAddUseLocalDisplacements(b, m.UseLocalDisplacements)
			schema.AnimationMeshAddUsePostDisplacements(b, m.UsePostDisplacements)
			schema.AnimationMeshAddLocalDisplacements(b, local)
			schema.AnimationMeshAddPostDisplacements(b, post)
			meshes = append(meshes, schema.AnimationMeshEnd(b))
		}
		list = append(list, schema.CreateAnimationMeshTimeSample(b, s.Time, flatdata.NewTableVector(b, meshes)))
	}
	return schema.CreateAnimationMeshList(b, flatdata.NewTableVector(b, list))
}

func (e encoder) uvSwapSamples(samples []UvSwapSample) flatdata.Offset[schema.AnimationUvSwapList] {
	b := e.b
	list := make([]flatdata.Offset[schema.AnimationUvSwapTimeSample], 0, len(samples))
	for _, s := range samples {
		swaps := make([]flatdata.Offset[schema.AnimationUvSwap], 0, len(s.UvSwaps))
		for _, u := range s.UvSwaps {
			name := e.str(u.Name)
			local := e.floats(u.LocalOffset)
			global := e.floats(u.GlobalOffset)
			scale := e.floats(u.Scale)
			swaps = append(swaps, schema.CreateAnimationUvSwap(b, name, local, global, scale, u.Enabled))
		}
		list = append(list, schema.CreateAnimationUvSwapTimeSample(b, s.Time, flatdata.NewTableVector(b, swaps)))
	}
	return schema.CreateAnimationUvSwapList(b, flatdata.NewTableVector(b, list))
}

func (e encoder) opacitySamples(samples []OpacitySample) flatdata.Offset[schema.AnimationMeshOpacityList] {
	b := e.b
	list := make([]flatdata.Offset[schema.AnimationMeshOpacityTimeSample], 0, len(samples))
	for _, s := range samples {
		meshes := make([]flatdata.Offset[schema.AnimationMeshOpacity], 0, len(s.Meshes))
		for _, m := range s.Meshes {
			meshes = append(meshes, schema.CreateAnimationMeshOpacity(b, e.str(m.Name), m.Opacity))
		}
		list = append(list, schema.CreateAnimationMeshOpacityTimeSample(b, s.Time, flatdata.NewTableVector(b, meshes)))
	}
	return schema.CreateAnimationMeshOpacityList(b, flatdata.NewTableVector(b, list))
}

func (e encoder) uvSwapItems(meshes []UvSwapMesh) flatdata.Offset[schema.UvSwapItemHolder] {
	b := e.b
	list := make([]flatdata.Offset[schema.UvSwapItemMesh], 0, len(meshes))
	for _, m := range meshes {
		items := make([]flatdata.Offset[schema.UvSwapItemData], 0, len(m.Items))
		for _, it := range m.Items {
			local := e.floats(it.LocalOffset)
			global := e.floats(it.GlobalOffset)
			scale := e.floats(it.Scale)
			items = append(items, schema.CreateUvSwapItemData(b, local, global, scale, it.Tag))
		}
		name := e.str(m.Name)
		list = append(list, schema.CreateUvSwapItemMesh(b, name, flatdata.NewTableVector(b, items)))
	}
	return schema.CreateUvSwapItemHolder(b, flatdata.NewTableVector(b, list))
}

func (e encoder) anchorPoints(points []AnchorPoint) flatdata.Offset[schema.AnchorPointsHolder] {
	b := e.b
	list := make([]flatdata.Offset[schema.AnchorPointData], 0, len(points))
	for _, a := range points {
		point := e.floats(a.Point)
		clip := e.str(a.AnimClipName)
		list = append(list, schema.CreateAnchorPointData(b, point, clip))
	}
	return schema.CreateAnchorPointsHolder(b, flatdata.NewTableVector(b, list))
}
