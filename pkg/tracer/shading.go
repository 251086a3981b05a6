package tracer

import (
	"math"
	"math/rand"

	"github.com/brightlane/pathtracer/pkg/actor"
	"github.com/brightlane/pathtracer/pkg/material"
	"github.com/brightlane/pathtracer/pkg/obslog"
	"github.com/brightlane/pathtracer/pkg/vecmath"
)

// scatterDirection returns normalize(N + a uniform sample from the [-1, 1]^3
// cube), substituting N when the sum is degenerate, per spec §4.4.
func (tr *Tracer) scatterDirection(n vecmath.Vec3, rng *rand.Rand) vecmath.Vec3 {
	d := n.Add(vecmath.RandomInUnitCube(rng))
	if d.LengthSquared() < minScatterLenSq {
		tr.logDebug("degenerate lambertian scatter, substituting normal", obslog.Float64("lengthSquared", d.LengthSquared()))
		return n
	}
	return d.Normalize()
}

func (tr *Tracer) shadeLambertian(hit actor.Hit, mat material.Material, depth int, rng *rand.Rand) vecmath.Vec3 {
	p := hit.Point.Add(hit.Normal.Multiply(bias))
	d := tr.scatterDirection(hit.Normal, rng)

	incoming := tr.ComputeColor(vecmath.NewRay(p, d), depth+1, rng)
	return incoming.MultiplyVec(mat.Albedo)
}

func (tr *Tracer) shadeMetal(hit actor.Hit, mat material.Material, depth int, rng *rand.Rand) vecmath.Vec3 {
	p := hit.Point.Add(hit.Normal.Multiply(bias))
	reflected := hit.Ray.Direction.Reflect(hit.Normal)
	d := reflected.Add(vecmath.RandomInUnitCube(rng).Multiply(mat.Fuzziness)).Normalize()

	if d.Dot(hit.Normal) <= 0 {
		// Fuzzed ray scattered below the surface: absorbed.
		return vecmath.Vec3{}
	}

	incoming := tr.ComputeColor(vecmath.NewRay(p, d), depth+1, rng)
	return incoming.MultiplyVec(mat.Attenuation)
}

func (tr *Tracer) shadeDielectric(hit actor.Hit, mat material.Material, depth int, rng *rand.Rand) vecmath.Vec3 {
	// ComputeFresnel tells entering from exiting by the sign of D.N, so it
	// takes the outward normal rather than the ray-facing one in the hit.
	outward := hit.Normal
	if !hit.FrontFace {
		outward = outward.Negate()
	}
	f := material.ComputeFresnel(hit.Ray.Direction, outward, mat.IOR)

	reflectP := hit.Point.Add(hit.Normal.Multiply(bias))
	reflectedColor := tr.ComputeColor(vecmath.NewRay(reflectP, f.Reflected.Normalize()), depth+1, rng)

	if f.TotalInternal {
		return reflectedColor.MultiplyVec(mat.Attenuation)
	}

	refractP := hit.Point.Subtract(hit.Normal.Multiply(bias))
	refractedColor := tr.ComputeColor(vecmath.NewRay(refractP, f.Refracted.Normalize()), depth+1, rng)

	combined := reflectedColor.Multiply(f.ReflectedRatio).Add(refractedColor.Multiply(f.RefractedRatio))
	return combined.MultiplyVec(mat.Attenuation)
}

// shadeMedium implements spec §4.4's homogeneous participating-medium ray
// march: find the medium's own exit hit, march N_seg sub-intervals
// accumulating in-scattering against every scene light, then add the
// background beyond the medium attenuated by the accumulated transmittance.
func (tr *Tracer) shadeMedium(hit actor.Hit, mat material.Material, depth int, rng *rand.Rand) vecmath.Vec3 {
	enterP := hit.Point.Add(hit.Ray.Direction.Multiply(bias))
	enterRay := vecmath.NewRay(enterP, hit.Ray.Direction)

	exitHit, ok := hit.Actor.Intersect(enterRay)
	if !ok {
		// Tangential hit: treat as a straight-through pass (spec §7).
		return tr.ComputeColor(vecmath.NewRay(enterP, hit.Ray.Direction), depth+1, rng)
	}

	tExit := exitHit.Distance
	dt := tExit / mediumSegments
	sigmaT := mat.SigmaT()

	tr_ := 1.0
	var lo vecmath.Vec3

	for i := 0; i < mediumSegments; i++ {
		tMid := (float64(i) + 0.5) * dt
		p := enterRay.At(tMid)
		tr_ *= math.Exp(-sigmaT * dt)

		for _, lh := range tr.Scene.SampleLights(p) {
			tL, ok := tr.mediumSegmentLength(hit.Actor, p, lh.Wi)
			if !ok {
				continue
			}

			distToLight := lh.Pos.Subtract(exitHit.Point).Length()
			if tr.Scene.IsOccludedFrom(exitHit.Point, lh.Wi, distToLight) {
				continue
			}

			trL := mediumLightTransmittance(sigmaT, tL)
			// Scattering angle between the light's travel direction (-Wi)
			// and the scattered ray toward the viewer (-D): (-Wi).(-D) = D.Wi.
			cosTheta := hit.Ray.Direction.Dot(lh.Wi)
			phase := mat.MediumPhase(cosTheta)

			scaled := lh.Li.Multiply(tr_ * mat.SigmaS * phase * trL * dt)
			lo = lo.Add(scaled.MultiplyVec(mat.Attenuation))
		}
	}

	beyondP := exitHit.Point.Add(hit.Ray.Direction.Multiply(bias))
	beyond := tr.ComputeColor(vecmath.NewRay(beyondP, hit.Ray.Direction), depth+1, rng)
	lo = lo.Add(beyond.Multiply(tr_))

	return lo
}

// mediumSegmentLength finds the medium's in-volume segment length along a
// light ray from p, by intersecting the same actor again.
func (tr *Tracer) mediumSegmentLength(a *actor.Actor, p, wi vecmath.Vec3) (float64, bool) {
	lightRay := vecmath.NewRay(p.Add(wi.Multiply(bias)), wi)
	h, ok := a.Intersect(lightRay)
	if !ok {
		return 0, false
	}
	return h.Distance, true
}

// mediumLightTransmittance marches [0, tL] in N_seg sub-intervals computing
// exp(-sigma_t * dt) per step, matching the view-ray march's recipe.
func mediumLightTransmittance(sigmaT, tL float64) float64 {
	dt := tL / mediumSegments
	tr := 1.0
	for i := 0; i < mediumSegments; i++ {
		tr *= math.Exp(-sigmaT * dt)
	}
	return tr
}
