package skeletal

import (
	"github.com/Faultbox/skelmesh/pkg/formats"
	"github.com/Faultbox/skelmesh/pkg/math"
)

// MeshFromRig converts a parsed RIG description into a Mesh.
func MeshFromRig(rig *formats.Rig) *Mesh {
	mesh := &Mesh{
		Bones:      make([]Bone, len(rig.Bones)),
		Points:     convertPoints(rig.Points),
		Influences: convertInfluences(rig.Influences),
	}

	for i, rb := range rig.Bones {
		orient := math.QuatIdentity()
		if rb.Orientation != nil {
			orient = math.QuatFromArray(*rb.Orientation)
		}
		mesh.Bones[i] = Bone{
			Name:        rb.Name,
			ParentIndex: rb.Parent,
			Position:    math.Vec3FromArray(rb.Position),
			Orientation: orient,
		}
	}

	if ra := rig.Animation; ra != nil {
		anim := &Animation{
			RefBones: append([]string(nil), ra.RefBones...),
			Moves:    make([]MotionChunk, len(ra.Sequences)),
		}
		for s, seq := range ra.Sequences {
			move := MotionChunk{
				Name:      seq.Name,
				Rate:      seq.Rate,
				NumFrames: seq.Frames,
				Tracks:    make([]AnalogTrack, len(seq.Tracks)),
			}
			for j, rt := range seq.Tracks {
				track := AnalogTrack{
					KeyTime: append([]float32(nil), rt.Times...),
					KeyPos:  convertPoints(rt.Positions),
					KeyQuat: make([]math.Quat, len(rt.Rotations)),
				}
				for k, q := range rt.Rotations {
					track.KeyQuat[k] = math.QuatFromArray(q)
				}
				move.Tracks[j] = track
			}
			anim.Moves[s] = move
		}
		mesh.Animation = anim
	}

	for _, rl := range rig.LODs {
		mesh.LODs = append(mesh.LODs, LODModel{
			Points:     convertPoints(rl.Points),
			Influences: convertInfluences(rl.Influences),
		})
	}

	return mesh
}

func convertPoints(points [][3]float32) []math.Vec3 {
	out := make([]math.Vec3, len(points))
	for i, p := range points {
		out[i] = math.Vec3FromArray(p)
	}
	return out
}

func convertInfluences(influences []formats.RigInfluence) []VertInfluence {
	out := make([]VertInfluence, len(influences))
	for i, inf := range influences {
		out[i] = VertInfluence{
			PointIndex: inf.Point,
			BoneIndex:  inf.Bone,
			Weight:     inf.Weight,
		}
	}
	return out
}
