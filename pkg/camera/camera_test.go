package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/brightlane/pathtracer/pkg/vecmath"
	"github.com/brightlane/pathtracer/pkg/xform"
)

func TestCentrePixelLooksDownForward(t *testing.T) {
	c := New(4, 4, 90, Vertical, xform.Identity())
	ray := c.Ray(2, 2)

	// On a 4x4 image pixel (2,2) sits just below-right of the image centre:
	// its pixel-centre sample (2.5, 2.5) maps to NDC (0.25, -0.25), and
	// tan(90deg/2) = 1 keeps that offset unscaled on the z = -1 plane.
	want := vecmath.NewVec3(0.25, -0.25, -1).Normalize()
	if ray.Direction.Subtract(want).Length() > 1e-9 {
		t.Errorf("centre ray direction = %v, want close to %v", ray.Direction, want)
	}
}

func TestRayDirectionIsUnit(t *testing.T) {
	c := New(16, 9, 60, Horizontal, xform.Identity())
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			r := c.Ray(x, y)
			if math.Abs(r.Direction.Length()-1) > 1e-9 {
				t.Fatalf("ray(%d,%d) direction length = %v, want 1", x, y, r.Direction.Length())
			}
		}
	}
}

func TestRayOriginatesAtTransformPosition(t *testing.T) {
	transform := xform.NewTransform(0, 0, 0, vecmath.NewVec3(1, 2, 3))
	c := New(4, 4, 90, Vertical, transform)
	r := c.Ray(0, 0)
	if r.Origin.Subtract(transform.Position).Length() > 1e-9 {
		t.Errorf("Origin = %v, want %v", r.Origin, transform.Position)
	}
}

func TestSampleAveragesJitteredRays(t *testing.T) {
	c := New(4, 4, 90, Vertical, xform.Identity())
	rng := rand.New(rand.NewSource(1))

	constant := func(vecmath.Ray) vecmath.Vec3 { return vecmath.NewVec3(1, 0, 0) }
	avg := c.Sample(1, 1, 8, rng, constant)

	if avg.Subtract(vecmath.NewVec3(1, 0, 0)).Length() > 1e-9 {
		t.Errorf("Sample() = %v, want (1,0,0) for a constant shader", avg)
	}
}

func TestSampleSingleFallsBackToCentreRay(t *testing.T) {
	c := New(4, 4, 90, Vertical, xform.Identity())
	rng := rand.New(rand.NewSource(1))

	var seen vecmath.Ray
	c.Sample(2, 2, 1, rng, func(r vecmath.Ray) vecmath.Vec3 {
		seen = r
		return vecmath.Vec3{}
	})

	want := c.Ray(2, 2)
	if seen.Direction.Subtract(want.Direction).Length() > 1e-12 {
		t.Errorf("Sample(count=1) used %v, want the pixel-centre ray %v", seen, want)
	}
}
