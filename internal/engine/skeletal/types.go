// Package skeletal poses a bone hierarchy from keyframed animation tracks and
// deforms mesh vertices into that pose with linear-blend skinning on the CPU.
package skeletal

import (
	"errors"

	"github.com/Faultbox/skelmesh/pkg/math"
)

// NoTrack marks a bone that has no matching animation track.
const NoTrack = -1

// NoSequence selects the rest pose in UpdatePose.
const NoSequence = -1

// Build errors.
var (
	ErrNoBones        = errors.New("mesh has no bones")
	ErrBoneOrder      = errors.New("bone parent must precede the bone")
	ErrInfluenceRange = errors.New("vertex influence out of range")
	ErrZeroWeight     = errors.New("vertex has zero total influence weight")
	ErrInvalidTrack   = errors.New("invalid animation track")
	ErrNoLOD          = errors.New("LOD model not found")
)

// Bone is a skeleton joint in rest pose. Position and Orientation are
// relative to the parent bone. Bones are stored parent first.
type Bone struct {
	Name        string
	ParentIndex int // -1 for the root
	Position    math.Vec3
	Orientation math.Quat
}

// VertInfluence binds one mesh point to one bone with a weight.
type VertInfluence struct {
	PointIndex int
	BoneIndex  int
	Weight     float32
}

// AnalogTrack holds the keyframes of a single bone within one sequence.
// KeyPos and KeyQuat hold either one entry (constant) or one per KeyTime.
type AnalogTrack struct {
	KeyTime []float32
	KeyPos  []math.Vec3
	KeyQuat []math.Quat
}

// MotionChunk is one animation sequence. Tracks[j] animates the bone named
// Animation.RefBones[j].
type MotionChunk struct {
	Name      string
	Rate      float32 // frames per second
	NumFrames float32 // sequence length in frames
	Tracks    []AnalogTrack
}

// Animation is a set of sequences sharing one bone naming.
type Animation struct {
	RefBones []string
	Moves    []MotionChunk
}

// FindSequence returns the index of the named sequence, or NoSequence.
func (a *Animation) FindSequence(name string) int {
	if a == nil {
		return NoSequence
	}
	for i := range a.Moves {
		if a.Moves[i].Name == name {
			return i
		}
	}
	return NoSequence
}

// LODModel is a reduced vertex set with its own influence mapping.
type LODModel struct {
	Points     []math.Vec3
	Influences []VertInfluence
}

// Mesh is an already parsed skeletal mesh.
type Mesh struct {
	Bones      []Bone
	Points     []math.Vec3
	Influences []VertInfluence
	Animation  *Animation
	LODs       []LODModel
}

// BoneSegment describes one bone of the posed skeleton for debug drawing.
type BoneSegment struct {
	Name         string
	Origin       math.Vec3 // bone world position
	AxisEnd      math.Vec3 // end of the bone's local X axis marker
	ParentOrigin math.Vec3 // parent world position; world origin for the root
}

// Options configures an Instance.
type Options struct {
	// BaseTransform places the whole skeleton. The root bone frame is
	// brought into it with a full inverse, so scaled bases are allowed.
	BaseTransform math.Coords
	// Loop wraps sampling time around the sequence length instead of
	// clamping at the last keyframe.
	Loop bool
	// Workers bounds skinning concurrency. Zero or less means one per CPU.
	Workers int
}

// DefaultOptions returns identity placement, clamped sampling and one
// skinning worker per CPU.
func DefaultOptions() Options {
	return Options{
		BaseTransform: math.IdentityCoords(),
	}
}
