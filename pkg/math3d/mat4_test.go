package math3d

import (
	"math"
	"testing"
)

func TestRotateXNegatedConvention(t *testing.T) {
	// Rx(angle) must match the classic rotation matrix evaluated at -angle.
	angle := math.Pi / 4
	got := RotateX(angle)
	c, s := math.Cos(-angle), math.Sin(-angle)
	want := Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("RotateX(%v)[%d] = %v, want %v", angle, i, got[i], want[i])
		}
	}
}

func TestRotateYZeroIsIdentity(t *testing.T) {
	got := RotateY(0)
	want := Identity()
	if got != want {
		t.Fatalf("RotateY(0) = %v, want identity", got)
	}
}

func TestPerspectiveRejectsEqualNearFar(t *testing.T) {
	_, err := Perspective(math.Pi/2, 1, 1, 1)
	if err == nil {
		t.Fatal("expected error when near == far")
	}
}

func TestPerspectiveValid(t *testing.T) {
	m, err := Perspective(math.Pi/2, 16.0/9.0, 0.1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Get(3, 2) != -1 {
		t.Fatalf("Get(3,2) = %v, want -1", m.Get(3, 2))
	}
}

func TestInverseIdentity(t *testing.T) {
	inv, err := Identity().Inverse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv != Identity() {
		t.Fatalf("inverse of identity = %v, want identity", inv)
	}
}

func TestInverseSingularReturnsError(t *testing.T) {
	var singular Mat4 // all zero
	_, err := singular.Inverse()
	if err == nil {
		t.Fatal("expected error for singular matrix")
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.7)).Mul(Scale(V3(2, 3, 4)))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := m.Mul(inv)
	want := Identity()
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-6 {
			t.Fatalf("m * inv()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMat4FromSliceRoundTrip(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	got := Mat4FromSlice(m[:])
	if got != m {
		t.Fatalf("Mat4FromSlice roundtrip = %v, want %v", got, m)
	}
}
