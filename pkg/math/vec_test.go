package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	got := a.Add(b)
	want := Vec3{5, 7, 9}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3MulAdd(t *testing.T) {
	got := Vec3{1, 1, 1}.MulAdd(Vec3{1, 2, 3}, 2)
	want := Vec3{3, 5, 7}
	if got != want {
		t.Errorf("Vec3.MulAdd() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("Normalize of zero vector should stay zero")
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3ArrayRoundTrip(t *testing.T) {
	v := Vec3{1, -2, 3.5}
	if got := Vec3FromArray(v.Array()); got != v {
		t.Errorf("Vec3FromArray(Array()) = %v, want %v", got, v)
	}
}

func TestLerpVec3(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}

	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{0.5, Vec3{5, 10, 15}},
		{1, b},
	}
	for _, tt := range tests {
		got := LerpVec3(a, b, tt.t)
		if got != tt.want {
			t.Errorf("LerpVec3(t=%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
