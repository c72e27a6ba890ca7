package skeletal

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/skelmesh/pkg/math"
)

const eps = 1e-5

// rotZ returns a rotation of deg degrees about +Z.
func rotZ(deg float64) math.Quat {
	return math.QuatFromAxisAngle(math.Vec3{Z: 1}, float32(deg*gomath.Pi/180))
}

// chainMesh is root -> mid -> tip, one unit apart along X, with a Bend
// sequence turning mid 90 degrees about Z at frame 1.
func chainMesh() *Mesh {
	return &Mesh{
		Bones: []Bone{
			{Name: "root", ParentIndex: -1, Orientation: math.QuatIdentity()},
			{Name: "mid", ParentIndex: 0, Position: math.Vec3{X: 1}, Orientation: math.QuatIdentity()},
			{Name: "tip", ParentIndex: 1, Position: math.Vec3{X: 1}, Orientation: math.QuatIdentity()},
		},
		Points: []math.Vec3{{X: 2}, {X: 1}, {X: 1.5}},
		Influences: []VertInfluence{
			{PointIndex: 0, BoneIndex: 2, Weight: 1},
			{PointIndex: 1, BoneIndex: 1, Weight: 1},
			{PointIndex: 2, BoneIndex: 1, Weight: 1},
			{PointIndex: 2, BoneIndex: 2, Weight: 1},
		},
		Animation: &Animation{
			RefBones: []string{"mid", "tip"},
			Moves: []MotionChunk{
				{
					Name:      "Bend",
					Rate:      30,
					NumFrames: 10,
					Tracks: []AnalogTrack{
						{KeyTime: []float32{1}, KeyPos: []math.Vec3{{X: 1}}, KeyQuat: []math.Quat{rotZ(90)}},
						{KeyTime: []float32{1}, KeyPos: []math.Vec3{{X: 1}}, KeyQuat: []math.Quat{math.QuatIdentity()}},
					},
				},
				{
					Name:      "Stretch",
					Rate:      30,
					NumFrames: 4,
					Tracks: []AnalogTrack{
						{KeyTime: []float32{0}, KeyPos: []math.Vec3{{X: 1}}, KeyQuat: []math.Quat{math.QuatIdentity()}},
						{
							KeyTime: []float32{0, 2},
							KeyPos:  []math.Vec3{{X: 1}, {X: 3}},
							KeyQuat: []math.Quat{math.QuatIdentity()},
						},
					},
				},
			},
		},
		LODs: []LODModel{
			{
				Points:     []math.Vec3{{X: 2}},
				Influences: []VertInfluence{{PointIndex: 0, BoneIndex: 2, Weight: 1}},
			},
			{Points: []math.Vec3{{}}},
		},
	}
}

func assertVec(t *testing.T, want, got math.Vec3, msgAndArgs ...any) {
	t.Helper()
	assertVecNear(t, want, got, eps, msgAndArgs...)
}

func assertVecNear(t *testing.T, want, got math.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, delta, msgAndArgs...)
}

func assertCoords(t *testing.T, want, got math.Coords, msgAndArgs ...any) {
	t.Helper()
	assertCoordsNear(t, want, got, eps, msgAndArgs...)
}

func assertCoordsNear(t *testing.T, want, got math.Coords, delta float64, msgAndArgs ...any) {
	t.Helper()
	assertVecNear(t, want.Origin, got.Origin, delta, msgAndArgs...)
	for i := range want.Axis {
		assertVecNear(t, want.Axis[i], got.Axis[i], delta, msgAndArgs...)
	}
}
