package skeletal

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/skelmesh/internal/logger"
	"github.com/Faultbox/skelmesh/pkg/math"
)

// weightTolerance is how far a vertex weight sum may drift from 1 before it
// is rescaled, and the smallest sum that can be rescaled at all.
const weightTolerance = 0.01

// boneData is the runtime record of one bone.
type boneData struct {
	trackIndex int // index into Animation.RefBones, or NoTrack

	// static, computed once by NewInstance
	refCoords    math.Coords // world frame in rest pose
	refCoordsInv math.Coords

	// recomputed by every UpdatePose
	coords    math.Coords // world frame in the current pose
	transform math.Coords // rest pose world space -> current pose world space

	scale float32 // 1 = unscaled
}

// Instance is a posable, skinnable view of a Mesh. The mesh is never
// modified; normalized influences are kept on the instance.
type Instance struct {
	mesh       *Mesh
	opts       Options
	bones      []boneData
	influences []VertInfluence

	skinner     *Skinner
	lodSkinners []*Skinner
}

// NewInstance builds the reference skeleton for mesh: it maps bones to
// animation tracks by name, computes each bone's rest pose world frame and
// its inverse, and normalizes vertex weights. The instance starts in the
// rest pose.
func NewInstance(mesh *Mesh, opts Options) (*Instance, error) {
	if len(mesh.Bones) == 0 {
		return nil, ErrNoBones
	}
	if err := validateAnimation(mesh.Animation); err != nil {
		return nil, err
	}

	inst := &Instance{
		mesh:  mesh,
		opts:  opts,
		bones: make([]boneData, len(mesh.Bones)),
	}

	mapped := 0
	for i := range mesh.Bones {
		b := &mesh.Bones[i]
		// the root may name itself (index 0) as its parent
		if (i == 0 && b.ParentIndex > 0) || (i > 0 && (b.ParentIndex < 0 || b.ParentIndex >= i)) {
			return nil, fmt.Errorf("bone %d %q has parent %d: %w", i, b.Name, b.ParentIndex, ErrBoneOrder)
		}

		data := &inst.bones[i]
		data.trackIndex = findTrack(mesh.Animation, b.Name)
		if data.trackIndex != NoTrack {
			mapped++
		}

		bo := b.Orientation
		if i == 0 {
			bo = bo.Conjugate()
		}
		bc := math.CoordsFromQuat(b.Position, bo)
		// move bone position to global coordinate space; the root stays as is
		if i > 0 {
			bc = inst.bones[b.ParentIndex].refCoords.UnTransformCoords(bc)
		}
		data.refCoords = bc
		data.refCoordsInv = bc.Invert()
		data.scale = 1
	}

	influences, renormalized, err := normalizeWeights(mesh.Influences, len(mesh.Points), len(mesh.Bones))
	if err != nil {
		return nil, fmt.Errorf("base mesh: %w", err)
	}
	inst.influences = influences
	if inst.skinner, err = NewSkinner(len(mesh.Points), influences, opts.Workers); err != nil {
		return nil, fmt.Errorf("base mesh: %w", err)
	}

	for li := range mesh.LODs {
		lod := &mesh.LODs[li]
		lodInf, n, err := normalizeWeights(lod.Influences, len(lod.Points), len(mesh.Bones))
		if err != nil {
			return nil, fmt.Errorf("LOD %d: %w", li, err)
		}
		renormalized += n
		skinner, err := NewSkinner(len(lod.Points), lodInf, opts.Workers)
		if err != nil {
			return nil, fmt.Errorf("LOD %d: %w", li, err)
		}
		inst.lodSkinners = append(inst.lodSkinners, skinner)
	}

	logger.Debug("skeleton built",
		zap.Int("bones", len(mesh.Bones)),
		zap.Int("mapped_tracks", mapped),
		zap.Int("points", len(mesh.Points)),
		zap.Int("influences", len(influences)),
		zap.Int("renormalized_points", renormalized),
		zap.Int("lods", len(mesh.LODs)),
	)

	inst.UpdatePose(NoSequence, 0)
	return inst, nil
}

// findTrack returns the index of the animation track named like the bone.
func findTrack(anim *Animation, name string) int {
	if anim == nil {
		return NoTrack
	}
	for j, ref := range anim.RefBones {
		if ref == name {
			return j
		}
	}
	return NoTrack
}

func validateAnimation(anim *Animation) error {
	if anim == nil {
		return nil
	}
	for s := range anim.Moves {
		move := &anim.Moves[s]
		if len(move.Tracks) != len(anim.RefBones) {
			return fmt.Errorf("sequence %d %q has %d tracks for %d bones: %w",
				s, move.Name, len(move.Tracks), len(anim.RefBones), ErrInvalidTrack)
		}
		for j := range move.Tracks {
			if err := move.Tracks[j].validate(); err != nil {
				return fmt.Errorf("sequence %d %q track %d: %w", s, move.Name, j, err)
			}
		}
	}
	return nil
}

// normalizeWeights returns a copy of influences in which every point's
// weights sum to 1 within weightTolerance. Points whose sum is already
// within tolerance keep their weights. A sum that is not above
// weightTolerance, NaN included, is ErrZeroWeight. It also reports how many
// points were rescaled.
func normalizeWeights(influences []VertInfluence, numPoints, numBones int) ([]VertInfluence, int, error) {
	out := make([]VertInfluence, len(influences))
	copy(out, influences)

	sums := make([]float32, numPoints)
	for i := range out {
		inf := &out[i]
		if inf.PointIndex < 0 || inf.PointIndex >= numPoints {
			return nil, 0, fmt.Errorf("influence %d: point %d of %d: %w", i, inf.PointIndex, numPoints, ErrInfluenceRange)
		}
		if inf.BoneIndex < 0 || inf.BoneIndex >= numBones {
			return nil, 0, fmt.Errorf("influence %d: bone %d of %d: %w", i, inf.BoneIndex, numBones, ErrInfluenceRange)
		}
		sums[inf.PointIndex] += inf.Weight
	}

	rescaled := make(map[int]struct{})
	for i := range out {
		inf := &out[i]
		sum := sums[inf.PointIndex]
		// NaN sums fail this test too
		if !(sum > weightTolerance) {
			return nil, 0, fmt.Errorf("point %d weight sum %g: %w", inf.PointIndex, sum, ErrZeroWeight)
		}
		if gomath.Abs(float64(sum-1)) <= weightTolerance {
			continue
		}
		inf.Weight /= sum
		rescaled[inf.PointIndex] = struct{}{}
	}
	return out, len(rescaled), nil
}

// Mesh returns the mesh the instance was built from.
func (inst *Instance) Mesh() *Mesh {
	return inst.mesh
}

// Influences returns the normalized influences of the base mesh.
func (inst *Instance) Influences() []VertInfluence {
	return inst.influences
}

// BoneCount returns the number of bones.
func (inst *Instance) BoneCount() int {
	return len(inst.bones)
}

// NumSequences returns the number of animation sequences, 0 without animation.
func (inst *Instance) NumSequences() int {
	if inst.mesh.Animation == nil {
		return 0
	}
	return len(inst.mesh.Animation.Moves)
}

// TrackIndex returns the animation track bound to bone i, or NoTrack.
func (inst *Instance) TrackIndex(i int) int {
	return inst.bones[i].trackIndex
}

// RefCoords returns bone i's rest pose world frame.
func (inst *Instance) RefCoords(i int) math.Coords {
	return inst.bones[i].refCoords
}
