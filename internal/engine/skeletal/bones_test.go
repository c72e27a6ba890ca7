package skeletal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/skelmesh/pkg/math"
)

func TestFindBone(t *testing.T) {
	inst := newChain(t)

	tests := []struct {
		name     string
		expected int
	}{
		{"root", 0},
		{"mid", 1},
		{"tip", 2},
		{"Tip", -1},
		{"", -1},
		{"missing", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, inst.FindBone(tt.name))
		})
	}
}

func TestSetBoneScale(t *testing.T) {
	inst := newChain(t)

	inst.SetBoneScale("tip", 0.5)
	scale, ok := inst.BoneScale("tip")
	assert.True(t, ok)
	assert.Equal(t, float32(0.5), scale)

	// Unknown names are ignored.
	before := inst.Transforms()
	inst.SetBoneScale("nope", 3)
	inst.UpdatePose(NoSequence, 0)
	scale, ok = inst.BoneScale("nope")
	assert.False(t, ok)
	assert.Equal(t, float32(1), scale)
	for _, i := range []int{0, 1} {
		assert.Equal(t, before[i], inst.Transforms()[i], "bone %d", i)
	}

	// Scale lives on the instance, never on the mesh.
	other, err := NewInstance(inst.Mesh(), DefaultOptions())
	assert.NoError(t, err)
	scale, _ = other.BoneScale("tip")
	assert.Equal(t, float32(1), scale)

	inst.ResetBoneScales()
	scale, _ = inst.BoneScale("tip")
	assert.Equal(t, float32(1), scale)
}

func TestSkeleton(t *testing.T) {
	inst := newChain(t)
	inst.UpdatePose(0, 1)

	segs := inst.Skeleton()
	assert.Len(t, segs, 3)

	assert.Equal(t, "root", segs[0].Name)
	assertVec(t, math.Vec3{}, segs[0].Origin)
	assertVec(t, math.Vec3{X: axisMarkerLength}, segs[0].AxisEnd)
	assertVec(t, math.Vec3{}, segs[0].ParentOrigin)

	assert.Equal(t, "mid", segs[1].Name)
	assertVec(t, math.Vec3{X: 1}, segs[1].Origin)
	assertVec(t, math.Vec3{X: 1, Y: -axisMarkerLength}, segs[1].AxisEnd)
	assertVec(t, math.Vec3{}, segs[1].ParentOrigin)

	assert.Equal(t, "tip", segs[2].Name)
	assertVec(t, math.Vec3{X: 1, Y: -1}, segs[2].Origin)
	assertVec(t, math.Vec3{X: 1}, segs[2].ParentOrigin)
}
