package vecmath

import (
	"math"
	"testing"
)

func TestVec3DotCross(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)

	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot() = %v, want 0", got)
	}

	cross := a.Cross(b)
	want := NewVec3(0, 0, 1)
	if cross != want {
		t.Errorf("Cross() = %v, want %v", cross, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	n := v.Normalize()
	if math.Abs(n.Length()-1.0) > 1e-9 {
		t.Errorf("Normalize() length = %v, want 1", n.Length())
	}

	zero := Vec3{}
	if zero.Normalize() != zero {
		t.Errorf("Normalize() of zero vector = %v, want zero", zero.Normalize())
	}
}

func TestVec3Reflect(t *testing.T) {
	// A ray travelling straight down (0,-1,0) reflecting off a surface
	// with normal (0,1,0) should bounce straight up.
	incoming := NewVec3(0, -1, 0)
	normal := NewVec3(0, 1, 0)
	reflected := incoming.Reflect(normal)

	want := NewVec3(0, 1, 0)
	if reflected.Subtract(want).Length() > 1e-9 {
		t.Errorf("Reflect() = %v, want %v", reflected, want)
	}
}

func TestVec3Clamp(t *testing.T) {
	v := NewVec3(-1, 0.5, 2)
	clamped := v.Clamp(0, 1)
	want := NewVec3(0, 0.5, 1)
	if clamped != want {
		t.Errorf("Clamp() = %v, want %v", clamped, want)
	}
}

func TestVec3Luminance(t *testing.T) {
	white := NewVec3(1, 1, 1)
	if math.Abs(white.Luminance()-1.0) > 1e-9 {
		t.Errorf("Luminance(white) = %v, want 1", white.Luminance())
	}

	black := NewVec3(0, 0, 0)
	if black.Luminance() != 0 {
		t.Errorf("Luminance(black) = %v, want 0", black.Luminance())
	}
}

func TestVec3IsFiniteNonNegative(t *testing.T) {
	if !NewVec3(0, 1, 2).IsFiniteNonNegative() {
		t.Error("expected finite non-negative vector to pass")
	}
	if NewVec3(-1, 0, 0).IsFiniteNonNegative() {
		t.Error("expected negative component to fail")
	}
	if NewVec3(math.Inf(1), 0, 0).IsFiniteNonNegative() {
		t.Error("expected +Inf component to fail")
	}
	if NewVec3(math.NaN(), 0, 0).IsFiniteNonNegative() {
		t.Error("expected NaN component to fail")
	}
}

func TestVec3GammaInverse(t *testing.T) {
	// Property 8: pow(x, 2.2) then pow(x, 1/2.2) recovers x within 1e-4.
	for _, x := range []float64{0.0, 0.1, 0.5, 0.9, 1.0} {
		v := NewVec3(x, x, x)
		round := v.Pow(2.2).Pow(1.0 / 2.2)
		if math.Abs(round.X-x) > 1e-4 {
			t.Errorf("gamma round trip for %v = %v, want ~%v", x, round.X, x)
		}
	}
}
