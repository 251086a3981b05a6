package material

import (
	"math"

	"github.com/brightlane/pathtracer/pkg/vecmath"
)

// Fresnel is the outcome of evaluating the full Fresnel equations at a
// dielectric interface: the reflected and refracted directions plus their
// energy ratios, which always sum to 1.
type Fresnel struct {
	Reflected      vecmath.Vec3
	Refracted      vecmath.Vec3
	ReflectedRatio float64 // Fr
	RefractedRatio float64 // Ft = 1 - Fr
	TotalInternal  bool
}

// ComputeFresnel implements spec.md §4.4's dielectric shading: n1=1 outside,
// n2=ior inside, swapping and flipping the normal when the ray exits.
// incident must be the unit incoming ray direction, normal the unit
// outward-facing geometric normal (for a back-face hit, the negation of the
// intersection's ray-facing normal), so that D.N > 0 marks an exiting ray.
func ComputeFresnel(incident, normal vecmath.Vec3, ior float64) Fresnel {
	n1, n2 := 1.0, ior
	n := normal

	dDotN := incident.Dot(n)
	if dDotN > 0 {
		// Exiting the medium: swap indices and flip the normal so it
		// faces back at the incident ray.
		n1, n2 = n2, n1
		n = n.Negate()
		dDotN = -dDotN
	}

	c1 := math.Abs(dDotN)
	eta := n1 / n2
	c2sq := 1 - eta*eta*(1-c1*c1)

	reflected := incident.Subtract(n.Multiply(2 * incident.Dot(n)))

	if c2sq < 0 {
		return Fresnel{
			Reflected:      reflected,
			ReflectedRatio: 1,
			RefractedRatio: 0,
			TotalInternal:  true,
		}
	}

	c2 := math.Sqrt(c2sq)
	refracted := incident.Multiply(eta).Add(n.Multiply(eta*c1 - c2))

	frParallel := (n2*c1 - n1*c2) / (n2*c1 + n1*c2)
	frPerp := (n1*c2 - n2*c1) / (n1*c2 + n2*c1)
	fr := 0.5 * (frParallel*frParallel + frPerp*frPerp)

	return Fresnel{
		Reflected:      reflected,
		Refracted:      refracted,
		ReflectedRatio: fr,
		RefractedRatio: 1 - fr,
	}
}
