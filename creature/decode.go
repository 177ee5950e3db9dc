package creature

import (
	"fmt"

	"github.com/rony4d/creature-flatdata/creature/schema"
)

// Decode walks a finished rig buffer and copies it into a Document. Absent tables decode to
// empty values, so buffers that predate uv swap items and anchor points decode fine.
func Decode(buf []byte) (*Document, error) {
	root, err := schema.GetRootAsRootData(buf)
	if err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	doc := new(Document)

	mesh, err := root.DataMesh()
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	if mesh != nil {
		if doc.Mesh, err = decodeMesh(mesh); err != nil {
			return nil, fmt.Errorf("mesh: %w", err)
		}
	}

	skeleton, err := root.DataSkeleton()
	if err != nil {
		return nil, fmt.Errorf("skeleton: %w", err)
	}
	if skeleton != nil {
		if doc.Skeleton, err = decodeSkeleton(skeleton); err != nil {
			return nil, fmt.Errorf("skeleton: %w", err)
		}
	}

	animation, err := root.DataAnimation()
	if err != nil {
		return nil, fmt.Errorf("animation: %w", err)
	}
	if animation != nil {
		if doc.Animation, err = decodeAnimation(animation); err != nil {
			return nil, fmt.Errorf("animation: %w", err)
		}
	}

	uvSwaps, err := root.DataUvSwapItem()
	if err != nil {
		return nil, fmt.Errorf("uv swap items: %w", err)
	}
	if uvSwaps != nil {
		if doc.UvSwapItems, err = decodeUvSwapItems(uvSwaps); err != nil {
			return nil, fmt.Errorf("uv swap items: %w", err)
		}
	}

	anchors, err := root.DataAnchorPoints()
	if err != nil {
		return nil, fmt.Errorf("anchor points: %w", err)
	}
	if anchors != nil {
		if doc.AnchorPoints, err = decodeAnchorPoints(anchors); err != nil {
			return nil, fmt.Errorf("anchor points: %w", err)
		}
	}

	return doc, nil
}

// orNil maps empty slices to nil, the Document convention for "no elements".
func orNil[E any](s []E, err error) ([]E, error) {
	if len(s) == 0 {
		return nil, err
	}
	return s, err
}

// maxPrealloc bounds the capacity reserved up front from an element count read off the wire.
const maxPrealloc = 1 << 12

// decodeList reads n elements with at, stopping at the first error.
func decodeList[E any](what string, n int, err error, at func(i int) (E, error)) ([]E, error) {
	if err != nil || n == 0 {
		return nil, err
	}
	out := make([]E, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		e, err := at(i)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", what, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// reader collects the first error of a sequence of accessor calls on one table.
type reader struct {
	err error
}

func (r *reader) str(s string, err error) string {
	if r.err == nil {
		r.err = err
	}
	return s
}

func (r *reader) i32(v int32, err error) int32 {
	if r.err == nil {
		r.err = err
	}
	return v
}

func (r *reader) bool(v bool, err error) bool {
	if r.err == nil {
		r.err = err
	}
	return v
}

func (r *reader) f32(v float32, err error) float32 {
	if r.err == nil {
		r.err = err
	}
	return v
}

func (r *reader) floats(v []float32, err error) []float32 {
	v, err = orNil(v, err)
	if r.err == nil {
		r.err = err
	}
	return v
}

func (r *reader) ints(v []int32, err error) []int32 {
	v, err = orNil(v, err)
	if r.err == nil {
		r.err = err
	}
	return v
}

func decodeMesh(m *schema.Mesh) (Mesh, error) {
	var r reader
	out := Mesh{
		Points:  r.floats(m.Points()),
		Indices: r.ints(m.Indices()),
		Uvs:     r.floats(m.Uvs()),
	}
	if r.err != nil {
		return Mesh{}, r.err
	}
	n, err := m.RegionsLength()
	out.Regions, err = decodeList("region", n, err, func(i int) (Region, error) {
		t, err := m.Regions(i)
		if err != nil {
			return Region{}, err
		}
		return decodeRegion(t)
	})
	return out, err
}

func decodeRegion(t *schema.MeshRegion) (Region, error) {
	var r reader
	out := Region{
		Name:         r.str(t.Name()),
		StartPtIndex: r.i32(t.StartPtIndex()),
		EndPtIndex:   r.i32(t.EndPtIndex()),
		StartIndex:   r.i32(t.StartIndex()),
		EndIndex:     r.i32(t.EndIndex()),
		ID:           r.i32(t.ID()),
	}
	if r.err != nil {
		return Region{}, r.err
	}
	n, err := t.WeightsLength()
	out.Weights, err = decodeList("weights", n, err, func(i int) (BoneWeights, error) {
		w, err := t.Weights(i)
		if err != nil {
			return BoneWeights{}, err
		}
		var r reader
		bw := BoneWeights{
			Bone:    r.str(w.Name()),
			Weights: r.floats(w.Weights()),
		}
		return bw, r.err
	})
	return out, err
}

func decodeSkeleton(s *schema.Skeleton) ([]Bone, error) {
	n, err := s.BonesLength()
	return decodeList("bone", n, err, func(i int) (Bone, error) {
		t, err := s.Bones(i)
		if err != nil {
			return Bone{}, err
		}
		var r reader
		bone := Bone{
			Name:             r.str(t.Name()),
			ID:               r.i32(t.ID()),
			RestParentMat:    r.floats(t.RestParentMat()),
			LocalRestStartPt: r.floats(t.LocalRestStartPt()),
			LocalRestEndPt:   r.floats(t.LocalRestEndPt()),
			Children:         r.ints(t.Children()),
		}
		return bone, r.err
	})
}

func decodeAnimation(a *schema.Animation) ([]Clip, error) {
	n, err := a.ClipsLength()
	return decodeList("clip", n, err, func(i int) (Clip, error) {
		t, err := a.Clips(i)
		if err != nil {
			return Clip{}, err
		}
		name, err := t.Name()
		if err != nil {
			return Clip{}, err
		}
		clip := Clip{Name: name}

		bones, err := t.Bones()
		if err != nil {
			return Clip{}, err
		}
		if bones != nil {
			if clip.Bones, err = decodeBoneSamples(bones); err != nil {
				return Clip{}, fmt.Errorf("%s: %w", name, err)
			}
		}

		meshes, err := t.Meshes()
		if err != nil {
			return Clip{}, err
		}
		if meshes != nil {
			if clip.Meshes, err = decodeMeshSamples(meshes); err != nil {
				return Clip{}, fmt.Errorf("%s: %w", name, err)
			}
		}

		uvSwaps, err := t.UvSwaps()
		if err != nil {
			return Clip{}, err
		}
		if uvSwaps != nil {
			if clip.UvSwaps, err = decodeUvSwapSamples(uvSwaps); err != nil {
				return Clip{}, fmt.Errorf("%s: %w", name, err)
			}
		}

		opacities, err := t.MeshOpacities()
		if err != nil {
			return Clip{}, err
		}
		if opacities != nil {
			if clip.MeshOpacities, err = decodeOpacitySamples(opacities); err != nil {
				return Clip{}, fmt.Errorf("%s: %w", name, err)
			}
		}
		return clip, nil
	})
}

func decodeBoneSamples(l *schema.AnimationBonesList) ([]BonesSample, error) {
	n, err := l.TimeSamplesLength()
	return decodeList("bone sample", n, err, func(i int) (BonesSample, error) {
		s, err := l.TimeSamples(i)
		if err != nil {
			return BonesSample{}, err
		}
		time, err := s.Time()
		if err != nil {
			return BonesSample{}, err
		}
		nb, err := s.BonesLength()
		poses, err := decodeList("bone", nb, err, func(j int) (BonePose, error) {
			b, err := s.Bones(j)
			if err != nil {
				return BonePose{}, err
			}
			var r reader
			pose := BonePose{
				Name:    r.str(b.Name()),
				StartPt: r.floats(b.StartPt()),
				EndPt:   r.floats(b.EndPt()),
			}
			return pose, r.err
		})
		return BonesSample{Time: time, Bones: poses}, err
	})
}

func decodeMeshSamples(l *schema.AnimationMeshList) ([]MeshSample, error) {
	n, err := l.TimeSamplesLength()
	return decodeList("mesh sample", n, err, func(i int) (MeshSample, error) {
		s, err := l.TimeSamples(i)
		if err != nil {
			return MeshSample{}, err
		}
		time, err := s.Time()
		if err != nil {
			return MeshSample{}, err
		}
		nm, err := s.MeshesLength()
		meshes, err := decodeList("mesh", nm, err, func(j int) (MeshPose, error) {
			m, err := s.Meshes(j)
			if err != nil {
				return MeshPose{}, err
			}
			var r reader
			pose := MeshPose{
				Name:                  r.str(m.Name()),
				UseDq:                 r.bool(m.UseDq()),
				UseLocalDisplacements: r.bool(m.UseLocalDisplacements()),
				UsePostDisplacements:  r.bool(m.UsePostDisplacements()),
				LocalDisplacements:    r.floats(m.LocalDisplacements()),
				PostDisplacements:     r.floats(m.PostDisplacements()),
			}
			return pose, r.err
		})
		return MeshSample{Time: time, Meshes: meshes}, err
	})
}

func decodeUvSwapSamples(l *schema.AnimationUvSwapList) ([]UvSwapSample, error) {
	n, err := l.TimeSamplesLength()
	return decodeList("uv swap sample", n, err, func(i int) (UvSwapSample, error) {
		s, err := l.TimeSamples(i)
		if err != nil {
			return UvSwapSample{}, err
		}
		time, err := s.Time()
		if err != nil {
			return UvSwapSample{}, err
		}
		nu, err := s.UvSwapsLength()
		swaps, err := decodeList("uv swap", nu, err, func(j int) (UvSwapKey, error) {
			u, err := s.UvSwaps(j)
			if err != nil {
				return UvSwapKey{}, err
			}
			var r reader
			key := UvSwapKey{
				Name:         r.str(u.Name()),
				LocalOffset:  r.floats(u.LocalOffset()),
				GlobalOffset: r.floats(u.GlobalOffset()),
				Scale:        r.floats(u.Scale()),
				Enabled:      r.bool(u.Enabled()),
			}
			return key, r.err
		})
		return UvSwapSample{Time: time, UvSwaps: swaps}, err
	})
}

func decodeOpacitySamples(l *schema.AnimationMeshOpacityList) ([]OpacitySample, error) {
	n, err := l.TimeSamplesLength()
	return decodeList("opacity sample", n, err, func(i int) (OpacitySample, error) {
		s, err := l.TimeSamples(i)
		if err != nil {
			return OpacitySample{}, err
		}
		time, err := s.Time()
		if err != nil {
			return OpacitySample{}, err
		}
		nm, err := s.MeshOpacitiesLength()
		meshes, err := decodeList("mesh", nm, err, func(j int) (MeshOpacity, error) {
			o, err := s.MeshOpacities(j)
			if err != nil {
				return MeshOpacity{}, err
			}
			var r reader
			m := MeshOpacity{
				Name:    r.str(o.Name()),
				Opacity: r.f32(o.Opacity()),
			}
			return m, r.err
		})
		return OpacitySample{Time: time, Meshes: meshes}, err
	})
}

func decodeUvSwapItems(h *schema.UvSwapItemHolder) ([]UvSwapMesh, error) {
	n, err := h.MeshesLength()
	return decodeList("mesh", n, err, func(i int) (UvSwapMesh, error) {
		m, err := h.Meshes(i)
		if err != nil {
			return UvSwapMesh{}, err
		}
		name, err := m.Name()
		if err != nil {
			return UvSwapMesh{}, err
		}
		ni, err := m.ItemsLength()
		items, err := decodeList("item", ni, err, func(j int) (UvSwapItem, error) {
			it, err := m.Items(j)
			if err != nil {
				return UvSwapItem{}, err
			}
			var r reader
			item := UvSwapItem{
				LocalOffset:  r.floats(it.LocalOffset()),
				GlobalOffset: r.floats(it.GlobalOffset()),
				Scale:        r.floats(it.Scale()),
				Tag:          r.i32(it.Tag()),
			}
			return item, r.err
		})
		return UvSwapMesh{Name: name, Items: items}, err
	})
}

func decodeAnchorPoints(h *schema.AnchorPointsHolder) ([]AnchorPoint, error) {
	n, err := h.AnchorPointsLength()
	return decodeList("anchor point", n, err, func(i int) (AnchorPoint, error) {
		a, err := h.AnchorPoints(i)
		if err != nil {
			return AnchorPoint{}, err
		}
		var r reader
		point := AnchorPoint{
			Point:        r.floats(a.Point()),
			AnimClipName: r.str(a.AnimClipName()),
		}
		return point, r.err
	})
}
