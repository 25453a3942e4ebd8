package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewVector(t *testing.T) {
	v := NewVector(1, 2, 3)
	if v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Errorf("NewVector(1, 2, 3) = %v; want (1, 2, 3)", v)
	}
	p := NewPlanar(4, 5)
	if p.Z != 0 {
		t.Errorf("NewPlanar(4, 5).Z = %v; want 0", p.Z)
	}
}

func TestVector_String(t *testing.T) {
	v := Vector3D{1.234, 5.678, 0}
	want := "(1.23, 5.68, 0.00)"
	if got := v.String(); got != want {
		t.Errorf("Vector3D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector3D{1, 2, 3}
	v2 := Vector3D{3, 4, 5}

	t.Run("Add", func(t *testing.T) {
		want := Vector3D{4, 6, 8}
		if got := v1.Add(v2); !got.EqWithin(want, Epsilon) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector3D{-2, -2, -2}
		if got := v1.Sub(v2); !got.EqWithin(want, Epsilon) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector3D{2, 4, 6}
		if got := v1.Mul(2); !got.EqWithin(want, Epsilon) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})

	t.Run("Neg", func(t *testing.T) {
		want := Vector3D{-1, -2, -3}
		if got := v1.Neg(); !got.EqWithin(want, Epsilon) {
			t.Errorf("%v.Neg() = %v; want %v", v1, got, want)
		}
	})
}

func TestVector_Products(t *testing.T) {
	x := Vector3D{1, 0, 0}
	y := Vector3D{0, 1, 0}

	t.Run("Dot", func(t *testing.T) {
		if got := x.Dot(y); got != 0 {
			t.Errorf("Dot orthogonal = %v; want 0", got)
		}
		if got := x.Dot(Vector3D{2, 0, 0}); got != 2 {
			t.Errorf("Dot parallel = %v; want 2", got)
		}
	})

	t.Run("Cross", func(t *testing.T) {
		if got := x.Cross(y); !got.EqWithin(Vector3D{0, 0, 1}, Epsilon) {
			t.Errorf("Cross X,Y = %v; want (0, 0, 1)", got)
		}
		if got := y.Cross(x); !got.EqWithin(Vector3D{0, 0, -1}, Epsilon) {
			t.Errorf("Cross Y,X = %v; want (0, 0, -1)", got)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector3D{2, 3, 6}

	t.Run("Len", func(t *testing.T) {
		if got := v.Len(); got != 7 {
			t.Errorf("Len = %v; want 7", got)
		}
	})

	t.Run("LenSqr", func(t *testing.T) {
		if got := v.LenSqr(); got != 49 {
			t.Errorf("LenSqr = %v; want 49", got)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		got := Vector3D{3, 4, 0}.Normalize()
		want := Vector3D{0.6, 0.8, 0}
		if !got.EqWithin(want, Epsilon) {
			t.Errorf("Normalize = %v; want %v", got, want)
		}
		if !floatEquals(got.Len(), 1.0) {
			t.Errorf("Normalize length = %v; want 1", got.Len())
		}
	})

	t.Run("NormalizeZero", func(t *testing.T) {
		got := Zero.Normalize()
		if !got.IsZero() {
			t.Errorf("Normalize(0) = %v; want zero", got)
		}
		if !got.IsFinite() {
			t.Errorf("Normalize(0) produced non finite %v", got)
		}
	})

	t.Run("NormalizeTiny", func(t *testing.T) {
		got := Vector3D{Epsilon / 10, 0, 0}.Normalize()
		if !got.IsZero() {
			t.Errorf("Normalize(tiny) = %v; want zero", got)
		}
	})
}

func TestVector_Distance(t *testing.T) {
	v1 := Vector3D{1, 1, 0}
	v2 := Vector3D{4, 5, 0}

	if got := v1.DistanceTo(v2); got != 5 {
		t.Errorf("DistanceTo = %v; want 5", got)
	}
}

func TestVector_IsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vector3D
		want bool
	}{
		{"zero", Zero, true},
		{"regular", Vector3D{1, -2, 3}, true},
		{"nan", Vector3D{math.NaN(), 0, 0}, false},
		{"inf", Vector3D{0, math.Inf(-1), 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("%v.IsFinite() = %v; want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVector_EqWithin(t *testing.T) {
	v := Vector3D{1, 2, 3}
	tests := []struct {
		name      string
		other     Vector3D
		tolerance float64
		want      bool
	}{
		{"exact", Vector3D{1, 2, 3}, Epsilon, true},
		{"inside epsilon", Vector3D{1 + Epsilon/2, 2 - Epsilon/2, 3}, Epsilon, true},
		{"outside epsilon", Vector3D{1.1, 2, 3}, Epsilon, false},
		{"inside tolerance", Vector3D{1.05, 2, 3}, 0.1, true},
		{"z differs", Vector3D{1, 2, 3.5}, 0.1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.EqWithin(tt.other, tt.tolerance); got != tt.want {
				t.Errorf("%v.EqWithin(%v, %v) = %v; want %v", v, tt.other, tt.tolerance, got, tt.want)
			}
		})
	}
}

func TestVector_Vec3RoundTrip(t *testing.T) {
	v := Vector3D{1, -2, 3}
	if got := FromVec3(v.Vec3()); got != v {
		t.Errorf("FromVec3(Vec3()) = %v; want %v", got, v)
	}
}
