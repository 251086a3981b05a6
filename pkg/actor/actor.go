// Package actor binds a geometry, a material and a transform together under
// a name, mirroring aurora's Actor/Component model without the component
// base-class indirection: an Actor here is a plain value, not a composed
// set of interchangeable Component pointers.
package actor

import (
	"github.com/brightlane/pathtracer/pkg/geometry"
	"github.com/brightlane/pathtracer/pkg/material"
	"github.com/brightlane/pathtracer/pkg/vecmath"
	"github.com/brightlane/pathtracer/pkg/xform"
)

// Actor is a named scene object: a shape placed by a transform and shaded by
// a material.
type Actor struct {
	Name      string
	Geometry  geometry.Geometry
	Material  material.Material
	Transform xform.Transform
}

// New constructs an Actor from its three components.
func New(name string, geom geometry.Geometry, mat material.Material, transform xform.Transform) Actor {
	return Actor{Name: name, Geometry: geom, Material: mat, Transform: transform}
}

// Hit extends geometry.Hit with a reference back to the actor that produced
// it, the equivalent of aurora's ActorRayHit carrying hitActor alongside the
// inherited GeometryRayHit fields.
type Hit struct {
	geometry.Hit
	Actor *Actor
}

// Intersect tests the ray against the actor's geometry under its transform,
// returning an actor-tagged hit record on success.
func (a *Actor) Intersect(ray vecmath.Ray) (Hit, bool) {
	h, ok := geometry.Intersect(a.Geometry, ray, a.Transform)
	if !ok {
		return Hit{}, false
	}
	return Hit{Hit: h, Actor: a}, true
}
