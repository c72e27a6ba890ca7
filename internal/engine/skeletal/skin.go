package skeletal

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/skelmesh/pkg/math"
)

// minParallelPoints is the point count below which skinning runs on the
// calling goroutine.
const minParallelPoints = 2048

// chunksPerWorker splits the point range finer than the worker count so
// uneven influence counts still balance.
const chunksPerWorker = 4

// SkinVertices blends rest positions through the bone transforms: every
// output point is the weighted sum of its rest position mapped by each
// influencing bone. Points without influences stay at the origin.
func SkinVertices(rest []math.Vec3, influences []VertInfluence, transforms []math.Coords) []math.Vec3 {
	out := make([]math.Vec3, len(rest))
	for _, inf := range influences {
		p := transforms[inf.BoneIndex].UnTransformPoint(rest[inf.PointIndex])
		out[inf.PointIndex] = out[inf.PointIndex].MulAdd(p, inf.Weight)
	}
	return out
}

// Skinner is SkinVertices prepared for one influence set. Influences are
// grouped per point so disjoint point ranges can be skinned concurrently.
type Skinner struct {
	numPoints int
	numBones  int   // 1 + highest bone index referenced
	offsets   []int // influences of point v are [offsets[v], offsets[v+1])
	bones     []int
	weights   []float32
	workers   int
}

// NewSkinner groups influences by point. Influence order within a point is
// preserved. workers <= 0 means one per CPU.
func NewSkinner(numPoints int, influences []VertInfluence, workers int) (*Skinner, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	s := &Skinner{
		numPoints: numPoints,
		offsets:   make([]int, numPoints+1),
		bones:     make([]int, len(influences)),
		weights:   make([]float32, len(influences)),
		workers:   workers,
	}

	for i, inf := range influences {
		if inf.PointIndex < 0 || inf.PointIndex >= numPoints {
			return nil, fmt.Errorf("influence %d: point %d of %d: %w", i, inf.PointIndex, numPoints, ErrInfluenceRange)
		}
		if inf.BoneIndex < 0 {
			return nil, fmt.Errorf("influence %d: bone %d: %w", i, inf.BoneIndex, ErrInfluenceRange)
		}
		s.numBones = max(s.numBones, inf.BoneIndex+1)
		s.offsets[inf.PointIndex+1]++
	}
	for v := 0; v < numPoints; v++ {
		s.offsets[v+1] += s.offsets[v]
	}
	next := make([]int, numPoints)
	copy(next, s.offsets[:numPoints])
	for _, inf := range influences {
		k := next[inf.PointIndex]
		next[inf.PointIndex]++
		s.bones[k] = inf.BoneIndex
		s.weights[k] = inf.Weight
	}
	return s, nil
}

// NumPoints returns the number of points the skinner writes.
func (s *Skinner) NumPoints() int {
	return s.numPoints
}

// Skin writes the blended position of every point into dst. transforms
// must be final for the whole call; Skin returns only after every point is
// written.
func (s *Skinner) Skin(dst, rest []math.Vec3, transforms []math.Coords) error {
	if len(dst) != s.numPoints || len(rest) != s.numPoints {
		return fmt.Errorf("skin %d points into %d from %d rest points: %w",
			s.numPoints, len(dst), len(rest), ErrInfluenceRange)
	}
	if len(transforms) < s.numBones {
		return fmt.Errorf("influences reference %d bones, got %d transforms: %w",
			s.numBones, len(transforms), ErrInfluenceRange)
	}

	if s.workers == 1 || s.numPoints < minParallelPoints {
		s.skinRange(dst, rest, transforms, 0, s.numPoints)
		return nil
	}

	chunk := (s.numPoints + s.workers*chunksPerWorker - 1) / (s.workers * chunksPerWorker)
	var g errgroup.Group
	g.SetLimit(s.workers)
	for start := 0; start < s.numPoints; start += chunk {
		start := start
		end := min(start+chunk, s.numPoints)
		g.Go(func() error {
			s.skinRange(dst, rest, transforms, start, end)
			return nil
		})
	}
	return g.Wait()
}

func (s *Skinner) skinRange(dst, rest []math.Vec3, transforms []math.Coords, start, end int) {
	for v := start; v < end; v++ {
		var acc math.Vec3
		src := rest[v]
		for k := s.offsets[v]; k < s.offsets[v+1]; k++ {
			acc = acc.MulAdd(transforms[s.bones[k]].UnTransformPoint(src), s.weights[k])
		}
		dst[v] = acc
	}
}

// Skin returns the base mesh points deformed into the current pose.
func (inst *Instance) Skin() ([]math.Vec3, error) {
	out := make([]math.Vec3, len(inst.mesh.Points))
	if err := inst.SkinInto(out); err != nil {
		return nil, err
	}
	return out, nil
}

// SkinInto is Skin writing into a caller owned buffer of len(Mesh().Points).
func (inst *Instance) SkinInto(dst []math.Vec3) error {
	transforms := inst.Transforms()
	return inst.skinner.Skin(dst, inst.mesh.Points, transforms)
}

// SkinLOD returns the points of LOD model i in the current pose. A LOD
// without influences is already posed and is returned as a copy.
func (inst *Instance) SkinLOD(i int) ([]math.Vec3, error) {
	if i < 0 || i >= len(inst.mesh.LODs) {
		return nil, fmt.Errorf("LOD %d of %d: %w", i, len(inst.mesh.LODs), ErrNoLOD)
	}
	lod := &inst.mesh.LODs[i]
	out := make([]math.Vec3, len(lod.Points))
	if len(lod.Influences) == 0 {
		copy(out, lod.Points)
		return out, nil
	}
	if err := inst.lodSkinners[i].Skin(out, lod.Points, inst.Transforms()); err != nil {
		return nil, err
	}
	return out, nil
}
