// Package creature converts Creature rigs between their JSON export, a plain Go value tree
// (Document) and the flat binary form read through the schema package.
package creature

// Document is a whole rig held in memory. Collections keep the order of the JSON export they
// were read from; empty collections are nil.
type Document struct {
	Mesh         Mesh          `json:"mesh"`
	Skeleton     []Bone        `json:"skeleton,omitempty"`
	Animation    []Clip        `json:"animation,omitempty"`
	UvSwapItems  []UvSwapMesh  `json:"uv_swap_items,omitempty"`
	AnchorPoints []AnchorPoint `json:"anchor_points,omitempty"`
}

type Mesh struct {
	Points  []float32 `json:"points,omitempty"`
	Indices []int32   `json:"indices,omitempty"`
	Uvs     []float32 `json:"uvs,omitempty"`
	Regions []Region  `json:"regions,omitempty"`
}

// Region is a separately skinned part of the mesh. Index ranges are inclusive.
type Region struct {
	Name         string        `json:"name"`
	StartPtIndex int32         `json:"start_pt_index"`
	EndPtIndex   int32         `json:"end_pt_index"`
	StartIndex   int32         `json:"start_index"`
	EndIndex     int32         `json:"end_index"`
	ID           int32         `json:"id"`
	Weights      []BoneWeights `json:"weights,omitempty"`
}

// BoneWeights is the influence of one bone on each point of a region.
type BoneWeights struct {
	Bone    string    `json:"bone"`
	Weights []float32 `json:"weights,omitempty"`
}

type Bone struct {
	Name             string    `json:"name"`
	ID               int32     `json:"id"`
	RestParentMat    []float32 `json:"restParentMat,omitempty"`
	LocalRestStartPt []float32 `json:"localRestStartPt,omitempty"`
	LocalRestEndPt   []float32 `json:"localRestEndPt,omitempty"`
	Children         []int32   `json:"children,omitempty"`
}

type Clip struct {
	Name          string          `json:"name"`
	Bones         []BonesSample   `json:"bones,omitempty"`
	Meshes        []MeshSample    `json:"meshes,omitempty"`
	UvSwaps       []UvSwapSample  `json:"uv_swaps,omitempty"`
	MeshOpacities []OpacitySample `json:"mesh_opacities,omitempty"`
}

// BonesSample is the pose of the animated bones at frame Time.
type BonesSample struct {
	Time  int32      `json:"time"`
	Bones []BonePose `json:"bones,omitempty"`
}

type BonePose struct {
	Name    string    `json:"name"`
	StartPt []float32 `json:"start_pt,omitempty"`
	EndPt   []float32 `json:"end_pt,omitempty"`
}

// MeshSample is the deformation state of the animated meshes at frame Time.
type MeshSample struct {
	Time   int32      `json:"time"`
	Meshes []MeshPose `json:"meshes,omitempty"`
}

type MeshPose struct {
	Name                  string    `json:"name"`
	UseDq                 bool      `json:"use_dq"`
	UseLocalDisplacements bool      `json:"use_local_displacements"`
	UsePostDisplacements  bool      `json:"use_post_displacements"`
	LocalDisplacements    []float32 `json:"local_displacements,omitempty"`
	PostDisplacements     []float32 `json:"post_displacements,omitempty"`
}

type UvSwapSample struct {
	Time    int32       `json:"time"`
	UvSwaps []UvSwapKey `json:"uv_swaps,omitempty"`
}

// UvSwapKey places a region's texture window at one frame.
type UvSwapKey struct {
	Name         string    `json:"name"`
	LocalOffset  []float32 `json:"local_offset,omitempty"`
	GlobalOffset []float32 `json:"global_offset,omitempty"`
	Scale        []float32 `json:"scale,omitempty"`
	Enabled      bool      `json:"enabled"`
}

type OpacitySample struct {
	Time   int32         `json:"time"`
	Meshes []MeshOpacity `json:"meshes,omitempty"`
}

type MeshOpacity struct {
	Name    string  `json:"name"`
	Opacity float32 `json:"opacity"`
}

type UvSwapMesh struct {
	Name  string       `json:"name"`
	Items []UvSwapItem `json:"items,omitempty"`
}

type UvSwapItem struct {
	LocalOffset  []float32 `json:"local_offset,omitempty"`
	GlobalOffset []float32 `json:"global_offset,omitempty"`
	Scale        []float32 `json:"scale,omitempty"`
	Tag          int32     `json:"tag"`
}

type AnchorPoint struct {
	Point        []float32 `json:"point,omitempty"`
	AnimClipName string    `json:"anim_clip_name"`
}

// Stats summarizes the size of a document, for logs.
type Stats struct {
	Points       int
	Regions      int
	Bones        int
	Clips        int
	UvSwapMeshes int
	AnchorPoints int
}

func (d *Document) Stats() Stats {
	return Stats{
		Points:       len(d.Mesh.Points) / 3,
		Regions:      len(d.Mesh.Regions),
		Bones:        len(d.Skeleton),
		Clips:        len(d.Animation),
		UvSwapMeshes: len(d.UvSwapItems),
		AnchorPoints: len(d.AnchorPoints),
	}
}
