// Package scene collects actors, lights, an optional atmosphere and a
// camera into the read-only world the path tracer shades against.
// Grounded on aurora's Scene (IntersectClosest/IntersectLights/AddActor)
// and df07's scene package for the demo-scene construction idiom.
package scene

import (
	"github.com/brightlane/pathtracer/pkg/actor"
	"github.com/brightlane/pathtracer/pkg/atmosphere"
	"github.com/brightlane/pathtracer/pkg/camera"
	"github.com/brightlane/pathtracer/pkg/light"
	"github.com/brightlane/pathtracer/pkg/vecmath"
)

// Scene is an ordered sequence of actors, an ordered sequence of lights, an
// optional atmosphere and exactly one camera. It is constructed once and
// read-only for the lifetime of a render.
type Scene struct {
	Name string

	Actors []actor.Actor
	Lights []light.Light

	Atmosphere   *atmosphere.Atmosphere
	SunLightName string // name of the light in Lights treated as the sun

	Camera camera.Camera
}

// New constructs an empty scene with the given name and camera.
func New(name string, cam camera.Camera) *Scene {
	return &Scene{Name: name, Camera: cam}
}

// AddActor appends an actor to the scene.
func (s *Scene) AddActor(a actor.Actor) {
	s.Actors = append(s.Actors, a)
}

// AddLight appends a light to the scene.
func (s *Scene) AddLight(l light.Light) {
	s.Lights = append(s.Lights, l)
}

// ActorByName returns the first actor with the given name, or false if
// absent.
func (s *Scene) ActorByName(name string) (*actor.Actor, bool) {
	for i := range s.Actors {
		if s.Actors[i].Name == name {
			return &s.Actors[i], true
		}
	}
	return nil, false
}

// IntersectClosest iterates all actors, keeping the hit with the smallest
// positive distance; ties are broken by insertion order (spec §4.2).
func (s *Scene) IntersectClosest(ray vecmath.Ray) (actor.Hit, bool) {
	var closest actor.Hit
	found := false

	for i := range s.Actors {
		h, ok := s.Actors[i].Intersect(ray)
		if !ok {
			continue
		}
		if !found || h.Distance < closest.Distance {
			closest = h
			found = true
		}
	}
	return closest, found
}

// LightHit is an unoccluded light sample reaching point p, with the
// atmosphere-coupling substitution of §4.2 already applied.
type LightHit struct {
	light.Sample
	LightName string
}

// IntersectLights samples each light, forms a shadow ray from p toward the
// light, and rejects samples occluded by any actor closer than the light
// itself. When the scene has an atmosphere and the light is the marked sun,
// the sample's radiance is replaced by the atmospheric sky color along the
// shadow ray (sun-through-sky), per spec §4.2 and §9.
func (s *Scene) IntersectLights(p vecmath.Vec3) []LightHit {
	var bundle []LightHit

	for i := range s.Lights {
		l := s.Lights[i]
		sample := l.SampleFrom(p, i)

		distToLight := sample.Pos.Subtract(p).Length()
		shadowRay := vecmath.NewRay(p, sample.Wi)

		occluded := false
		for j := range s.Actors {
			h, ok := s.Actors[j].Intersect(shadowRay)
			if ok && h.Distance < distToLight {
				occluded = true
				break
			}
		}
		if occluded {
			continue
		}

		if s.Atmosphere != nil && l.Kind == light.Directional && l.Name == s.SunLightName {
			sample.Li = s.Atmosphere.SkyColor(p, sample.Wi, sample.Wi, sample.Li)
		}

		bundle = append(bundle, LightHit{Sample: sample, LightName: l.Name})
	}
	return bundle
}

// SampleLights evaluates every light from point p without an occlusion
// test, for callers (the medium march) that need to test visibility from a
// different point than the sample origin.
func (s *Scene) SampleLights(p vecmath.Vec3) []LightHit {
	bundle := make([]LightHit, 0, len(s.Lights))
	for i := range s.Lights {
		l := s.Lights[i]
		sample := l.SampleFrom(p, i)
		if s.Atmosphere != nil && l.Kind == light.Directional && l.Name == s.SunLightName {
			sample.Li = s.Atmosphere.SkyColor(p, sample.Wi, sample.Wi, sample.Li)
		}
		bundle = append(bundle, LightHit{Sample: sample, LightName: l.Name})
	}
	return bundle
}

// IsOccludedFrom reports whether any actor lies between p and a point
// distToLight away along direction wi.
func (s *Scene) IsOccludedFrom(p, wi vecmath.Vec3, distToLight float64) bool {
	shadowRay := vecmath.NewRay(p, wi)
	for j := range s.Actors {
		h, ok := s.Actors[j].Intersect(shadowRay)
		if ok && h.Distance < distToLight {
			return true
		}
	}
	return false
}
