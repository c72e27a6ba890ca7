package skeletal

import (
	"github.com/Faultbox/skelmesh/pkg/math"
)

// UpdatePose recomputes every bone's current world frame and skinning
// transform for sequence seq at the given time (in frames). An out of range
// seq, such as NoSequence, selects the rest pose. Bones are visited in index
// order, so each parent is final before its children read it.
func (inst *Instance) UpdatePose(seq int, time float32) {
	var motion *MotionChunk
	if anim := inst.mesh.Animation; anim != nil && seq >= 0 && seq < len(anim.Moves) {
		motion = &anim.Moves[seq]
	}

	for i := range inst.bones {
		data := &inst.bones[i]
		b := &inst.mesh.Bones[i]

		var bp math.Vec3
		var bo math.Quat
		if motion != nil && data.trackIndex != NoTrack {
			bp, bo = inst.sample(motion, data.trackIndex, time)
		} else {
			bp, bo = b.Position, b.Orientation
		}
		if i == 0 {
			bo = bo.Conjugate()
		}

		bc := math.CoordsFromQuat(bp, bo)
		if i == 0 {
			bc = inst.opts.BaseTransform.TransformCoordsSlow(bc)
		} else {
			bc = inst.bones[b.ParentIndex].coords.UnTransformCoords(bc)
		}
		if data.scale != 1 {
			bc.Scale(data.scale)
		}
		data.coords = bc
		data.transform = bc.UnTransformCoords(data.refCoordsInv)
	}
}

func (inst *Instance) sample(motion *MotionChunk, track int, time float32) (math.Vec3, math.Quat) {
	if inst.opts.Loop {
		return SampleTrackLooped(&motion.Tracks[track], time, motion.NumFrames)
	}
	return SampleTrack(&motion.Tracks[track], time)
}

// SetBaseTransform replaces the frame the root bone is placed through.
// It takes effect on the next UpdatePose.
func (inst *Instance) SetBaseTransform(c math.Coords) {
	inst.opts.BaseTransform = c
}

// SetLooping switches between clamped and looped track sampling.
func (inst *Instance) SetLooping(loop bool) {
	inst.opts.Loop = loop
}

// BoneCoords returns bone i's world frame in the current pose.
func (inst *Instance) BoneCoords(i int) math.Coords {
	return inst.bones[i].coords
}

// SkinningTransform returns the transform taking a rest pose point
// influenced by bone i into the current pose.
func (inst *Instance) SkinningTransform(i int) math.Coords {
	return inst.bones[i].transform
}

// Transforms returns the skinning transforms of all bones, indexed by bone.
func (inst *Instance) Transforms() []math.Coords {
	out := make([]math.Coords, len(inst.bones))
	for i := range inst.bones {
		out[i] = inst.bones[i].transform
	}
	return out
}

// PlacementTransform builds a base transform that puts the skeleton at
// origin, rotated by rot and uniformly scaled by scale. rot turns the
// skeleton the same way a root bone orientation does.
func PlacementTransform(origin math.Vec3, rot math.Quat, scale float32) math.Coords {
	place := math.CoordsFromQuat(origin, rot.Conjugate())
	place.Scale(scale)
	// The root is brought through the inverse of the base transform.
	return place.TransformCoordsSlow(math.IdentityCoords())
}
