package math

import (
	"testing"
)

func TestMat4TransformPointMatchesCoords(t *testing.T) {
	c := testFrame()
	m := c.ToMat4()

	tests := []Vec3{{}, {1, 0, 0}, {0.5, -1, 2}, {-3, 4, 10}}
	for _, p := range tests {
		want := c.UnTransformPoint(p)
		if got := m.TransformPoint(p); !vecNear(got, want, 1e-4) {
			t.Errorf("TransformPoint(%v): got %v, want %v", p, got, want)
		}
	}
}

func TestMat4Layout(t *testing.T) {
	c := Coords{
		Origin: Vec3{10, 20, 30},
		Axis:   [3]Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	}
	m := c.ToMat4()
	if m[12] != 10 || m[13] != 20 || m[14] != 30 || m[15] != 1 {
		t.Errorf("expected translation in elements 12-15, got %v", m[12:])
	}
	if m[3] != 0 || m[7] != 0 || m[11] != 0 {
		t.Errorf("expected zero projective row, got %v %v %v", m[3], m[7], m[11])
	}
}

func TestMat4CoordsRoundTrip(t *testing.T) {
	c := Coords{
		Origin: Vec3{1, 2, 3},
		Axis:   [3]Vec3{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}},
	}
	if got := c.ToMat4().Coords(); got != c {
		t.Errorf("ToMat4().Coords() = %v, want %v", got, c)
	}
}
