// Package atmosphere implements the Rayleigh+Mie sky model of spec §4.6:
// two concentric spheres, ray-marched in-scattering, and a shared phase
// function convention with the participating-medium material. Grounded on
// aurora's Atmosphere class, with the ray-marching loop rebuilt against the
// spec's exact recipe rather than aurora's (incomplete, C++-only) body.
package atmosphere

import (
	"math"

	"github.com/brightlane/pathtracer/pkg/vecmath"
)

// viewSegments is the view-ray march step count (spec §4.6 step 2).
const viewSegments = 32

// lightSegments is the light-ray march step count when the in-atmosphere
// segment toward the sun is not short enough to treat as a single step.
const lightSegments = 4

// shortLightSegment: below this length, a single light-march step is used.
const shortLightSegment = 1e3

// bias is the minimum view-ray segment length worth marching.
const bias = 1e-4

// Atmosphere holds the Rayleigh and Mie scattering parameters and the two
// concentric bounding spheres, matching aurora's AtmosphereData fields.
type Atmosphere struct {
	Center           vecmath.Vec3
	GroundRadius     float64
	AtmosphereRadius float64

	BetaR0 vecmath.Vec3 // per-channel Rayleigh sea-level coefficient
	HR     float64      // Rayleigh scale height

	BetaM0 float64 // Mie sea-level coefficient
	HM     float64 // Mie scale height
	GMie   float64 // Mie Henyey-Greenstein asymmetry
}

// Earth returns the Earth-like atmosphere constants aurora ships by default.
func Earth(center vecmath.Vec3) Atmosphere {
	return Atmosphere{
		Center:           center,
		GroundRadius:     636e4,
		AtmosphereRadius: 642e4,
		BetaR0:           vecmath.NewVec3(3.8e-6, 13.5e-6, 33.1e-6),
		HR:               7994,
		BetaM0:           21e-6,
		HM:               1200,
		GMie:             0.76,
	}
}

// RayleighPhase evaluates 3/(16*pi)*(1+cos^2(theta)).
func RayleighPhase(cosTheta float64) float64 {
	return 3.0 / (16.0 * math.Pi) * (1 + cosTheta*cosTheta)
}

// MiePhase evaluates the Mie phase function with asymmetry g, using the
// same sign convention as the medium's Henyey-Greenstein phase function
// (spec §9 open question: the two must agree within a single build).
func MiePhase(g, cosTheta float64) float64 {
	num := 3.0 / (8.0 * math.Pi) * (1 - g*g) * (1 + cosTheta*cosTheta)
	denom := (2 + g*g) * math.Pow(1+g*g-2*g*cosTheta, 1.5)
	if denom <= 0 {
		return 0
	}
	return num / denom
}

// sphereHit returns the two roots (possibly negative, t0 <= t1) of the ray
// against a sphere of the given radius centred at center, or ok=false if it
// misses entirely.
func sphereHit(origin, dir, center vecmath.Vec3, radius float64) (t0, t1 float64, ok bool) {
	oc := origin.Subtract(center)
	b := dir.Dot(oc)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - c
	if discriminant < 0 {
		return 0, 0, false
	}
	sqrtD := math.Sqrt(discriminant)
	return -b - sqrtD, -b + sqrtD, true
}

// SkyColor ray-marches the atmosphere along ray (origin, dir) toward a
// directional sun light (sunDir points toward the sun, sunColor is the
// light's color*strength), per spec §4.6. The camera is assumed to lie
// inside the atmosphere sphere, at or near the ground sphere's surface.
func (a Atmosphere) SkyColor(origin, dir, sunDir, sunColor vecmath.Vec3) vecmath.Vec3 {
	_, tAtmFar, hitAtm := sphereHit(origin, dir, a.Center, a.AtmosphereRadius)
	if !hitAtm || tAtmFar <= 0 {
		return vecmath.Vec3{}
	}

	tStart := 0.0
	if t0, _, ok := sphereHit(origin, dir, a.Center, a.AtmosphereRadius); ok && t0 > 0 {
		tStart = t0
	}

	tExit := tAtmFar
	if tGround0, _, ok := sphereHit(origin, dir, a.Center, a.GroundRadius); ok && tGround0 > tStart {
		tExit = math.Min(tExit, tGround0)
	}

	tSeg := tExit - tStart
	if tSeg <= bias {
		return vecmath.Vec3{}
	}

	dt := tSeg / viewSegments
	var trView vecmath.Vec3 = vecmath.NewVec3(1, 1, 1)
	var loR, loM vecmath.Vec3

	// Scattering angle between the sunlight's travel direction (-sunDir)
	// and the scattered ray toward the viewer (-dir): dir.sunDir.
	cosTheta := dir.Dot(sunDir)
	phaseR := RayleighPhase(cosTheta)
	phaseM := MiePhase(a.GMie, cosTheta)

	for i := 0; i < viewSegments; i++ {
		tMid := tStart + (float64(i)+0.5)*dt
		p := origin.Add(dir.Multiply(tMid))
		height := p.Subtract(a.Center).Length() - a.GroundRadius
		if height < 0 {
			height = 0
		}

		betaR := a.BetaR0.Multiply(math.Exp(-height / a.HR))
		betaM := a.BetaM0 * math.Exp(-height/a.HM)

		extinction := betaR.Add(vecmath.NewVec3(betaM, betaM, betaM))
		segmentTr := extinction.Multiply(-dt).Exp()
		trView = trView.MultiplyVec(segmentTr)

		trLight := a.lightTransmittance(p, sunDir)

		scatterR := trView.MultiplyVec(betaR).Multiply(phaseR * dt)
		loR = loR.Add(scatterR.MultiplyVec(sunColor).MultiplyVec(trLight))

		scatterM := trView.Multiply(betaM * phaseM * dt)
		loM = loM.Add(scatterM.MultiplyVec(sunColor).MultiplyVec(trLight))
	}

	return loR.Add(loM)
}

// lightTransmittance marches from p toward the sun to the atmosphere
// boundary, returning the per-channel transmittance of that path.
func (a Atmosphere) lightTransmittance(p, sunDir vecmath.Vec3) vecmath.Vec3 {
	_, tFar, ok := sphereHit(p, sunDir, a.Center, a.AtmosphereRadius)
	if !ok || tFar <= 0 {
		return vecmath.Vec3{}
	}

	segments := lightSegments
	if tFar < shortLightSegment {
		segments = 1
	}
	dt := tFar / float64(segments)

	tr := vecmath.NewVec3(1, 1, 1)
	for i := 0; i < segments; i++ {
		tMid := (float64(i) + 0.5) * dt
		mid := p.Add(sunDir.Multiply(tMid))
		height := mid.Subtract(a.Center).Length() - a.GroundRadius
		if height < 0 {
			height = 0
		}
		betaR := a.BetaR0.Multiply(math.Exp(-height / a.HR))
		betaM := a.BetaM0 * math.Exp(-height/a.HM)
		extinction := betaR.Add(vecmath.NewVec3(betaM, betaM, betaM))
		tr = tr.MultiplyVec(extinction.Multiply(-dt).Exp())
	}
	return tr
}
