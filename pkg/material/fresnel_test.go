package material

import (
	"math"
	"testing"

	"github.com/brightlane/pathtracer/pkg/vecmath"
)

func TestFresnelEnergyConservation(t *testing.T) {
	normal := vecmath.NewVec3(0, 0, 1)
	iors := []float64{1.1, 1.33, 1.5, 2.0}

	for _, ior := range iors {
		for angle := 0.05; angle < 1.5; angle += 0.1 {
			dir := vecmath.NewVec3(math.Sin(angle), 0, -math.Cos(angle)).Normalize()
			f := ComputeFresnel(dir, normal, ior)
			sum := f.ReflectedRatio + f.RefractedRatio
			if math.Abs(sum-1.0) > 1e-5 {
				t.Errorf("ior=%v angle=%v: Fr+Ft = %v, want 1", ior, angle, sum)
			}
		}
	}
}

func TestFresnelTotalInternalReflection(t *testing.T) {
	// Entering from inside a denser medium at a grazing angle triggers TIR.
	normal := vecmath.NewVec3(0, 0, 1)
	dir := vecmath.NewVec3(math.Sin(1.3), 0, math.Cos(1.3)).Normalize() // D.N > 0: exiting
	f := ComputeFresnel(dir, normal, 1.5)

	if !f.TotalInternal {
		t.Fatal("expected total internal reflection at a grazing exit angle")
	}
	if f.ReflectedRatio != 1 || f.RefractedRatio != 0 {
		t.Errorf("TIR ratios = (%v, %v), want (1, 0)", f.ReflectedRatio, f.RefractedRatio)
	}
}

func TestFresnelNormalIncidenceMatchesSchlick(t *testing.T) {
	normal := vecmath.NewVec3(0, 0, 1)
	dir := vecmath.NewVec3(0, 0, -1)
	ior := 1.5

	f := ComputeFresnel(dir, normal, ior)

	r0 := math.Pow((1-ior)/(1+ior), 2)
	if math.Abs(f.ReflectedRatio-r0) > 1e-6 {
		t.Errorf("normal-incidence Fr = %v, want Schlick R0 = %v", f.ReflectedRatio, r0)
	}
}
