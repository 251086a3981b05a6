// Package light implements the three light models this renderer supports —
// directional, point and area — as a tagged variant sampled by the scene's
// shadow-ray machinery, mirroring aurora's Light/DirectionalLight/
// SphericalLight/AreaLight hierarchy without the inheritance.
package light

import (
	"github.com/brightlane/pathtracer/pkg/vecmath"
	"github.com/brightlane/pathtracer/pkg/xform"
)

// Kind tags which light model a Light value holds.
type Kind int

const (
	// Directional is an infinitely distant light shining along a fixed
	// direction, e.g. a sun.
	Directional Kind = iota
	// Point is an isotropic point light falling off with distance.
	Point
	// Area is a simple disc-shaped area light sampled at its centre.
	Area
)

// epsilon avoids division blow-up for a point light coincident with the
// shade point.
const epsilon = 1e-4

// Light is the tagged union of the three supported light models.
type Light struct {
	Name      string
	Kind      Kind
	Transform xform.Transform

	Color     vecmath.Vec3
	Strength  float64 // Directional
	Intensity float64 // Point, Area
	Radius    float64 // Area

	// IsSun marks the (at most one) directional light that couples to
	// the atmosphere model.
	IsSun bool
}

// NewDirectional creates a directional light whose direction is the
// transform's forward axis: the light shines along -forward.
func NewDirectional(name string, transform xform.Transform, color vecmath.Vec3, strength float64) Light {
	return Light{Name: name, Kind: Directional, Transform: transform, Color: color, Strength: strength}
}

// NewPoint creates an isotropic point light at the transform's position.
func NewPoint(name string, transform xform.Transform, color vecmath.Vec3, intensity float64) Light {
	return Light{Name: name, Kind: Point, Transform: transform, Color: color, Intensity: intensity}
}

// NewArea creates a disc area light sampled at its centre.
func NewArea(name string, transform xform.Transform, color vecmath.Vec3, intensity, radius float64) Light {
	return Light{Name: name, Kind: Area, Transform: transform, Color: color, Intensity: intensity, Radius: radius}
}

// Sample is the outcome of sampling a light from a shade point: Wi points
// toward the light from the shade point, Pos is the sampled light-space
// point used to build the shadow ray, and Li is the radiance arriving along
// -Wi before any occlusion test.
type Sample struct {
	Wi      vecmath.Vec3
	Pos     vecmath.Vec3
	Li      vecmath.Vec3
	LightID int
}

// SampleFrom evaluates the light as seen from point p, per spec §3: a
// directional light's direction comes from the transform's forward axis; a
// point or area light's direction and falloff come from its position.
func (l Light) SampleFrom(p vecmath.Vec3, id int) Sample {
	switch l.Kind {
	case Directional:
		wi := l.Transform.Forward().Negate()
		return Sample{
			Wi:      wi,
			Pos:     l.Transform.Position,
			Li:      l.Color.Multiply(l.Strength),
			LightID: id,
		}
	case Point, Area:
		toLight := l.Transform.Position.Subtract(p)
		d := toLight.Length()
		wi := toLight.Multiply(1.0 / d)
		falloff := l.Intensity / (d + epsilon)
		return Sample{
			Wi:      wi,
			Pos:     l.Transform.Position,
			Li:      l.Color.Multiply(falloff),
			LightID: id,
		}
	default:
		return Sample{}
	}
}
