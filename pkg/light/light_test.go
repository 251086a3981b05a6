package light

import (
	"math"
	"testing"

	"github.com/brightlane/pathtracer/pkg/vecmath"
	"github.com/brightlane/pathtracer/pkg/xform"
)

func TestDirectionalSampleShinesAlongNegativeForward(t *testing.T) {
	transform := xform.Identity() // forward is (0,0,-1) at identity
	l := NewDirectional("sun", transform, vecmath.NewVec3(1, 1, 1), 1.0)

	s := l.SampleFrom(vecmath.NewVec3(0, 0, 0), 0)

	want := transform.Forward().Negate()
	if s.Wi.Subtract(want).Length() > 1e-9 {
		t.Errorf("Wi = %v, want %v", s.Wi, want)
	}
}

func TestPointLightFalloff(t *testing.T) {
	transform := xform.NewTransform(0, 0, 0, vecmath.NewVec3(0, 0, -4))
	l := NewPoint("bulb", transform, vecmath.NewVec3(1, 1, 1), 10)

	s := l.SampleFrom(vecmath.NewVec3(0, 0, 0), 1)

	want := 10.0 / (4.0 + epsilon)
	if math.Abs(s.Li.X-want) > 1e-9 {
		t.Errorf("Li.X = %v, want %v", s.Li.X, want)
	}
	wantWi := vecmath.NewVec3(0, 0, -1)
	if s.Wi.Subtract(wantWi).Length() > 1e-9 {
		t.Errorf("Wi = %v, want %v", s.Wi, wantWi)
	}
}

func TestPointLightFartherIsDimmer(t *testing.T) {
	near := NewPoint("a", xform.NewTransform(0, 0, 0, vecmath.NewVec3(0, 0, -2)), vecmath.NewVec3(1, 1, 1), 10)
	far := NewPoint("b", xform.NewTransform(0, 0, 0, vecmath.NewVec3(0, 0, -8)), vecmath.NewVec3(1, 1, 1), 10)

	nearSample := near.SampleFrom(vecmath.NewVec3(0, 0, 0), 0)
	farSample := far.SampleFrom(vecmath.NewVec3(0, 0, 0), 0)

	if farSample.Li.X >= nearSample.Li.X {
		t.Errorf("far Li = %v, near Li = %v; want far dimmer", farSample.Li.X, nearSample.Li.X)
	}
}

func TestAreaLightCarriesID(t *testing.T) {
	l := NewArea("panel", xform.Identity(), vecmath.NewVec3(1, 1, 1), 5, 0.5)
	s := l.SampleFrom(vecmath.NewVec3(0, 0, 1), 7)
	if s.LightID != 7 {
		t.Errorf("LightID = %d, want 7", s.LightID)
	}
}
