// Package tracer implements the recursive path-tracing kernel of spec §4.4:
// sky background, closest-hit dispatch, and per-material shading including
// the homogeneous participating-medium ray march. Grounded structurally on
// aurora's PathTracer (RenderScene/ComputeColor naming) with the shading
// math taken from aurora's Materials/*.cpp and spec's exact formulas.
package tracer

import (
	"math/rand"

	"github.com/brightlane/pathtracer/pkg/light"
	"github.com/brightlane/pathtracer/pkg/material"
	"github.com/brightlane/pathtracer/pkg/obslog"
	"github.com/brightlane/pathtracer/pkg/scene"
	"github.com/brightlane/pathtracer/pkg/vecmath"
)

// bias is the geometric offset used to push shade points off the surface
// they were hit on, avoiding immediate self-intersection.
const bias = 1e-5

// minScatterLenSq is the minimum squared length a scattered direction may
// have before it is treated as degenerate (spec §4.4).
const minScatterLenSq = 1e-10

// mediumSegments is the number of sub-intervals the medium march divides a
// segment into (spec §4.4).
const mediumSegments = 16

// Config bundles the path tracer's read-only parameters.
type Config struct {
	DepthLimit int
}

// Tracer evaluates ComputeColor against a fixed scene and configuration. It
// holds no mutable state; a Tracer is safe to share read-only across
// worker goroutines, each supplying its own RNG.
type Tracer struct {
	Scene  *scene.Scene
	Config Config
	Logger *obslog.Logger // nil disables logging
}

// New constructs a Tracer bound to a scene and configuration.
func New(s *scene.Scene, cfg Config) *Tracer {
	return &Tracer{Scene: s, Config: cfg}
}

// skyColor is the flat two-color sky gradient spec §4.4 step 2 falls back
// to when the scene carries no atmosphere.
func skyColor(dir vecmath.Vec3) vecmath.Vec3 {
	t := 0.5 * (dir.Y + 1)
	white := vecmath.NewVec3(1, 1, 1)
	blue := vecmath.NewVec3(0.5, 0.7, 1.0)
	return white.Multiply(1 - t).Add(blue.Multiply(t))
}

// background evaluates the sky along ray.Direction, using the scene's
// atmosphere and sun if present, or the flat gradient otherwise.
func (tr *Tracer) background(ray vecmath.Ray) vecmath.Vec3 {
	s := tr.Scene
	if s.Atmosphere == nil {
		return skyColor(ray.Direction)
	}

	sun, ok := tr.sunLight()
	if !ok {
		return skyColor(ray.Direction)
	}

	sample := sun.SampleFrom(ray.Origin, 0)
	return s.Atmosphere.SkyColor(ray.Origin, ray.Direction, sample.Wi, sample.Li)
}

// logDebug is a nil-safe wrapper so shading code never has to branch on
// whether a Logger was supplied.
func (tr *Tracer) logDebug(msg string, fields ...obslog.Field) {
	if tr.Logger != nil {
		tr.Logger.Debug(msg, fields...)
	}
}

func (tr *Tracer) sunLight() (light.Light, bool) {
	for i := range tr.Scene.Lights {
		l := tr.Scene.Lights[i]
		if l.IsSun && l.Name == tr.Scene.SunLightName {
			return l, true
		}
	}
	return light.Light{}, false
}

// ComputeColor is the per-pixel recursive radiance estimator of spec §4.4.
func (tr *Tracer) ComputeColor(ray vecmath.Ray, depth int, rng *rand.Rand) vecmath.Vec3 {
	if depth > tr.Config.DepthLimit {
		return vecmath.Vec3{}
	}

	hit, ok := tr.Scene.IntersectClosest(ray)
	if !ok {
		return tr.background(ray)
	}
	if hit.Actor == nil {
		return tr.background(ray)
	}

	if named, ok := tr.Scene.ActorByName(hit.Actor.Name); ok {
		tr.logDebug("ray hit actor", obslog.String("actor", named.Name), obslog.Float64("distance", hit.Distance))
	}

	mat := hit.Actor.Material
	switch mat.Kind {
	case material.None:
		return tr.background(ray)
	case material.Lambertian:
		return tr.shadeLambertian(hit, mat, depth, rng)
	case material.Metal:
		return tr.shadeMetal(hit, mat, depth, rng)
	case material.Dielectric:
		return tr.shadeDielectric(hit, mat, depth, rng)
	case material.Medium:
		return tr.shadeMedium(hit, mat, depth, rng)
	default:
		return tr.background(ray)
	}
}
