// Package material implements the four material models this renderer
// supports as a single tagged variant, matched against by the tracer's
// shading dispatch rather than through an interface hierarchy.
package material

import "github.com/brightlane/pathtracer/pkg/vecmath"

// Kind tags which material model a Material value holds.
type Kind int

const (
	// None is the zero value: an actor with no material, rendered as sky
	// (spec §3, §4.4 step 4).
	None Kind = iota
	// Lambertian is a perfectly diffuse surface.
	Lambertian
	// Metal is a specular reflector with optional fuzziness.
	Metal
	// Dielectric is a transparent, refracting/reflecting surface.
	Dielectric
	// Medium is a homogeneous participating medium filling a primitive.
	Medium
)

// Material is the tagged union of the four supported shading models. Only
// the fields relevant to Kind are meaningful.
type Material struct {
	Kind Kind

	// Lambertian, Metal, Dielectric
	Albedo      vecmath.Vec3 // Lambertian
	Attenuation vecmath.Vec3 // Metal, Dielectric, Medium color

	Fuzziness float64 // Metal, >= 0
	IOR       float64 // Dielectric, > 0

	SigmaA float64 // Medium, >= 0
	SigmaS float64 // Medium, >= 0
	G      float64 // Medium, Henyey-Greenstein asymmetry in [-1, 1]
}

// NewLambertian creates a Lambertian material with the given albedo.
func NewLambertian(albedo vecmath.Vec3) Material {
	return Material{Kind: Lambertian, Albedo: albedo}
}

// NewMetal creates a Metal material with the given attenuation and
// fuzziness (>= 0).
func NewMetal(attenuation vecmath.Vec3, fuzziness float64) Material {
	if fuzziness < 0 {
		fuzziness = 0
	}
	return Material{Kind: Metal, Attenuation: attenuation, Fuzziness: fuzziness}
}

// NewDielectric creates a Dielectric material with the given attenuation
// and index of refraction (> 0).
func NewDielectric(attenuation vecmath.Vec3, ior float64) Material {
	return Material{Kind: Dielectric, Attenuation: attenuation, IOR: ior}
}

// NewMedium creates a homogeneous Medium material.
func NewMedium(color vecmath.Vec3, sigmaA, sigmaS, g float64) Material {
	return Material{Kind: Medium, Attenuation: color, SigmaA: sigmaA, SigmaS: sigmaS, G: g}
}

// SigmaT returns the medium's total extinction coefficient (absorption plus
// scattering).
func (m Material) SigmaT() float64 {
	return m.SigmaA + m.SigmaS
}
