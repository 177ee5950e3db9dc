package creature

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// ErrInvalidCreatureJSON is returned for input that is not a usable Creature JSON export.
var ErrInvalidCreatureJSON = errors.New("invalid creature json")

// ParseJSON reads a Creature JSON export. Named entries (regions, bones, clips, ...) are JSON
// objects keyed by name; they are kept in document order. mesh, skeleton and animation must be
// present, uv_swap_items and anchor_points_items are optional.
func ParseJSON(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid json", ErrInvalidCreatureJSON)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidCreatureJSON)
	}
	for _, key := range []string{"mesh", "skeleton", "animation"} {
		if !root.Get(key).Exists() {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidCreatureJSON, key)
		}
	}

	p := new(parser)
	doc := &Document{
		Mesh:      p.mesh(root.Get("mesh")),
		Skeleton:  p.skeleton(root.Get("skeleton")),
		Animation: p.animation(root.Get("animation")),
	}
	if v := root.Get("uv_swap_items"); v.Exists() {
		doc.UvSwapItems = p.uvSwapItems(v)
	}
	if v := root.Get("anchor_points_items.AnchorPoints"); v.Exists() {
		doc.AnchorPoints = p.anchorPoints(v)
	}
	if p.err != nil {
		return nil, p.err
	}
	return doc, nil
}

// parser keeps the first error and turns every later read into a no-op, so the walk below can
// be written without checking after each field.
type parser struct {
	err error
}

func (p *parser) fail(path, format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s: %s", ErrInvalidCreatureJSON, path, fmt.Sprintf(format, args...))
	}
}

// each walks an object's members in document order.
func (p *parser) each(v gjson.Result, path string, fn func(name string, v gjson.Result)) {
	if p.err != nil || !v.Exists() {
		return
	}
	if !v.IsObject() {
		p.fail(path, "want an object, got %s", v.Type)
		return
	}
	v.ForEach(func(key, value gjson.Result) bool {
		fn(key.String(), value)
		return p.err == nil
	})
}

func (p *parser) array(v gjson.Result, path string) []gjson.Result {
	if p.err != nil || !v.Exists() {
		return nil
	}
	if !v.IsArray() {
		p.fail(path, "want an array, got %s", v.Type)
		return nil
	}
	return v.Array()
}

func (p *parser) floats(v gjson.Result, path string) []float32 {
	var out []float32
	for i, x := range p.array(v, path) {
		if x.Type != gjson.Number {
			p.fail(path, "element %d is %s, want a number", i, x.Type)
			return nil
		}
		out = append(out, float32(x.Float()))
	}
	return out
}

func (p *parser) ints(v gjson.Result, path string) []int32 {
	var out []int32
	for i, x := range p.array(v, path) {
		out = append(out, p.int32(x, fmt.Sprintf("%s[%d]", path, i)))
	}
	return out
}

func (p *parser) int32(v gjson.Result, path string) int32 {
	if p.err != nil || !v.Exists() {
		return 0
	}
	if v.Type != gjson.Number {
		p.fail(path, "want a number, got %s", v.Type)
		return 0
	}
	n := v.Int()
	if n < math.MinInt32 || n > math.MaxInt32 {
		p.fail(path, "%d does not fit in 32 bits", n)
		return 0
	}
	return int32(n)
}

func (p *parser) float32(v gjson.Result, path string) float32 {
	if p.err != nil || !v.Exists() {
		return 0
	}
	if v.Type != gjson.Number {
		p.fail(path, "want a number, got %s", v.Type)
		return 0
	}
	return float32(v.Float())
}

func (p *parser) bool(v gjson.Result, path string) bool {
	if p.err != nil || !v.Exists() {
		return false
	}
	if !v.IsBool() {
		p.fail(path, "want a bool, got %s", v.Type)
		return false
	}
	return v.Bool()
}

func (p *parser) string(v gjson.Result, path string) string {
	if p.err != nil || !v.Exists() {
		return ""
	}
	if v.Type != gjson.String {
		p.fail(path, "want a string, got %s", v.Type)
		return ""
	}
	return v.String()
}

// frame parses a time sample key. Keys are frame numbers.
func (p *parser) frame(key, path string) int32 {
	if p.err != nil {
		return 0
	}
	n, err := strconv.ParseInt(key, 10, 32)
	if err != nil {
		p.fail(path, "time key %q is not a frame number", key)
		return 0
	}
	return int32(n)
}

func (p *parser) mesh(v gjson.Result) Mesh {
	if !v.IsObject() {
		p.fail("mesh", "want an object, got %s", v.Type)
		return Mesh{}
	}
	m := Mesh{
		Points:  p.floats(v.Get("points"), "mesh.points"),
		Uvs:     p.floats(v.Get("uvs"), "mesh.uvs"),
		Indices: p.ints(v.Get("indices"), "mesh.indices"),
	}
	p.each(v.Get("regions"), "mesh.regions", func(name string, r gjson.Result) {
		path := "mesh.regions." + name
		region := Region{
			Name:         name,
			StartPtIndex: p.int32(r.Get("start_pt_index"), path+".start_pt_index"),
			EndPtIndex:   p.int32(r.Get("end_pt_index"), path+".end_pt_index"),
			StartIndex:   p.int32(r.Get("start_index"), path+".start_index"),
			EndIndex:     p.int32(r.Get("end_index"), path+".end_index"),
			ID:           p.int32(r.Get("id"), path+".id"),
		}
		p.each(r.Get("weights"), path+".weights", func(bone string, w gjson.Result) {
			region.Weights = append(region.Weights, BoneWeights{
				Bone:    bone,
				Weights: p.floats(w, path+".weights."+bone),
			})
		})
		m.Regions = append(m.Regions, region)
	})
	return m
}

func (p *parser) skeleton(v gjson.Result) []Bone {
	var bones []Bone
	p.each(v, "skeleton", func(name string, b gjson.Result) {
		path := "skeleton." + name
		bones = append(bones, Bone{
			Name:             name,
			ID:               p.int32(b.Get("id"), path+".id"),
			RestParentMat:    p.floats(b.Get("restParentMat"), path+".restParentMat"),
			LocalRestStartPt: p.floats(b.Get("localRestStartPt"), path+".localRestStartPt"),
			LocalRestEndPt:   p.floats(b.Get("localRestEndPt"), path+".localRestEndPt"),
			Children:         p.ints(b.Get("children"), path+".children"),
		})
	})
	return bones
}

func (p *parser) animation(v gjson.Result) []Clip {
	var clips []Clip
	p.each(v, "animation", func(name string, c gjson.Result) {
		path := "animation." + name
		clip := Clip{Name: name}

		p.each(c.Get("bones"), path+".bones", func(key string, s gjson.Result) {
			spath := path + ".bones." + key
			sample := BonesSample{Time: p.frame(key, spath)}
			p.each(s, spath, func(bone string, b gjson.Result) {
				sample.Bones = append(sample.Bones, BonePose{
					Name:    bone,
					StartPt: p.floats(b.Get("start_pt"), spath+"."+bone+".start_pt"),
					EndPt:   p.floats(b.Get("end_pt"), spath+"."+bone+".end_pt"),
				})
			})
			clip.Bones = append(clip.Bones, sample)
		})

		p.each(c.Get("meshes"), path+".meshes", func(key string, s gjson.Result) {
			spath := path + ".meshes." + key
			sample := MeshSample{Time: p.frame(key, spath)}
			p.each(s, spath, func(mesh string, m gjson.Result) {
				mpath := spath + "." + mesh
				sample.Meshes = append(sample.Meshes, MeshPose{
					Name:                  mesh,
					UseDq:                 p.bool(m.Get("use_dq"), mpath+".use_dq"),
					UseLocalDisplacements: p.bool(m.Get("use_local_displacements"), mpath+".use_local_displacements"),
					UsePostDisplacements:  p.bool(m.Get("use_post_displacements"), mpath+".use_post_displacements"),
					LocalDisplacements:    p.floats(m.Get("local_displacements"), mpath+".local_displacements"),
					PostDisplacements:     p.floats(m.Get("post_displacements"), mpath+".post_displacements"),
				})
			})
			clip.Meshes = append(clip.Meshes, sample)
		})

		p.each(c.Get("uv_swaps"), path+".uv_swaps", func(key string, s gjson.Result) {
			spath := path + ".uv_swaps." + key
			sample := UvSwapSample{Time: p.frame(key, spath)}
			p.each(s, spath, func(region string, u gjson.Result) {
				upath := spath + "." + region
				sample.UvSwaps = append(sample.UvSwaps, UvSwapKey{
					Name:         region,
					LocalOffset:  p.floats(u.Get("local_offset"), upath+".local_offset"),
					GlobalOffset: p.floats(u.Get("global_offset"), upath+".global_offset"),
					Scale:        p.floats(u.Get("scale"), upath+".scale"),
					Enabled:      p.bool(u.Get("enabled"), upath+".enabled"),
				})
			})
			clip.UvSwaps = append(clip.UvSwaps, sample)
		})

		p.each(c.Get("mesh_opacities"), path+".mesh_opacities", func(key string, s gjson.Result) {
			spath := path + ".mesh_opacities." + key
			sample := OpacitySample{Time: p.frame(key, spath)}
			p.each(s, spath, func(mesh string, o gjson.Result) {
				sample.Meshes = append(sample.Meshes, MeshOpacity{
					Name:    mesh,
					Opacity: p.float32(o.Get("opacity"), spath+"."+mesh+".opacity"),
				})
			})
			clip.MeshOpacities = append(clip.MeshOpacities, sample)
		})

		clips = append(clips, clip)
	})
	return clips
}

func (p *parser) uvSwapItems(v gjson.Result) []UvSwapMesh {
	var meshes []UvSwapMesh
	p.each(v, "uv_swap_items", func(name string, m gjson.Result) {
		path := "uv_swap_items." + name
		mesh := UvSwapMesh{Name: name}
		for i, it := range p.array(m, path) {
			ipath := fmt.Sprintf("%s[%d]", path, i)
			mesh.Items = append(mesh.Items, UvSwapItem{
				LocalOffset:  p.floats(it.Get("local_offset"), ipath+".local_offset"),
				GlobalOffset: p.floats(it.Get("global_offset"), ipath+".global_offset"),
				Scale:        p.floats(it.Get("scale"), ipath+".scale"),
				Tag:          p.int32(it.Get("tag"), ipath+".tag"),
			})
		}
		meshes = append(meshes, mesh)
	})
	return meshes
}

func (p *parser) anchorPoints(v gjson.Result) []AnchorPoint {
	var points []AnchorPoint
	for i, a := range p.array(v, "anchor_points_items.AnchorPoints") {
		path := fmt.Sprintf("anchor_points_items.AnchorPoints[%d]", i)
		points = append(points, AnchorPoint{
			Point:        p.floats(a.Get("point"), path+".point"),
			AnimClipName: p.string(a.Get("anim_clip_name"), path+".anim_clip_name"),
		})
	}
	return points
}
