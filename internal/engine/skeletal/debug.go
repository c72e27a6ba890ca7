package skeletal

import (
	"github.com/Faultbox/skelmesh/pkg/math"
)

// axisMarkerLength is the length of the local X marker in BoneSegment.
const axisMarkerLength = 10

// Skeleton returns the current pose as line segments for debug drawing:
// each bone's local X axis marker and the link to its parent.
func (inst *Instance) Skeleton() []BoneSegment {
	segs := make([]BoneSegment, len(inst.bones))
	for i := range inst.bones {
		bc := inst.bones[i].coords
		seg := BoneSegment{
			Name:    inst.mesh.Bones[i].Name,
			Origin:  bc.Origin,
			AxisEnd: bc.UnTransformPoint(math.Vec3{X: axisMarkerLength}),
		}
		if i > 0 {
			seg.ParentOrigin = inst.bones[inst.mesh.Bones[i].ParentIndex].coords.Origin
		}
		segs[i] = seg
	}
	return segs
}
