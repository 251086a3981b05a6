// Package geometry implements closest-hit intersection for the two analytic
// primitives this renderer supports: spheres and planes. Geometry is a
// tagged variant (Kind + per-kind parameters) rather than a class
// hierarchy, matched against in Intersect.
package geometry

import (
	"math"

	"github.com/brightlane/pathtracer/pkg/vecmath"
	"github.com/brightlane/pathtracer/pkg/xform"
)

// Kind tags which primitive a Geometry value holds.
type Kind int

const (
	// Sphere is a sphere centred at the owning actor's transform position.
	Sphere Kind = iota
	// Plane is an infinite plane through the owning actor's transform
	// position, oriented by the transform's up axis.
	Plane
)

// Geometry is a tagged union of the supported primitives. Radius is only
// meaningful for Kind == Sphere.
type Geometry struct {
	Kind   Kind
	Radius float64
}

// NewSphere creates a sphere primitive of the given radius.
func NewSphere(radius float64) Geometry {
	return Geometry{Kind: Sphere, Radius: radius}
}

// NewPlane creates a plane primitive.
func NewPlane() Geometry {
	return Geometry{Kind: Plane}
}

// Hit is the outcome of a closest-hit query: the struck point, normal, UV,
// distance, and whether the ray approached the front face.
type Hit struct {
	Ray        vecmath.Ray
	Point      vecmath.Vec3
	Normal     vecmath.Vec3
	UV         vecmath.Vec2
	Distance   float64
	FrontFace  bool
	Kind       Kind
}

// eps is the tie-break/backward-rejection threshold: a hit with t <= 0 is
// treated as no-hit.
const eps = 0.0

// Intersect tests ray against the geometry placed by transform, returning
// the nearest non-backward hit.
func Intersect(g Geometry, ray vecmath.Ray, transform xform.Transform) (Hit, bool) {
	switch g.Kind {
	case Sphere:
		return intersectSphere(g, ray, transform)
	case Plane:
		return intersectPlane(ray, transform)
	default:
		return Hit{}, false
	}
}

func intersectSphere(g Geometry, ray vecmath.Ray, transform xform.Transform) (Hit, bool) {
	center := transform.Position
	r := g.Radius

	oc := ray.Origin.Subtract(center)
	b := ray.Direction.Dot(oc)
	c := oc.Dot(oc) - r*r
	discriminant := b*b - c

	if discriminant < 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := -b - sqrtD
	t2 := -b + sqrtD

	if t2 <= eps {
		return Hit{}, false
	}

	var t float64
	frontFace := true
	if t1 > eps {
		t = t1
	} else {
		// Inside the sphere: only the far root is ahead of the ray, and
		// the normal must be flipped to face back at the ray origin.
		t = t2
		frontFace = false
	}

	point := ray.At(t)
	outward := point.Subtract(center).Multiply(1.0 / r)
	normal := outward
	if !frontFace {
		normal = outward.Negate()
	}

	theta := math.Acos(clampUnit(-outward.Y))
	phi := math.Atan2(-outward.Z, outward.X) + math.Pi
	uv := vecmath.NewVec2(phi/(2*math.Pi), theta/math.Pi)

	return Hit{
		Ray:       ray,
		Point:     point,
		Normal:    normal,
		UV:        uv,
		Distance:  t,
		FrontFace: frontFace,
		Kind:      Sphere,
	}, true
}

func intersectPlane(ray vecmath.Ray, transform xform.Transform) (Hit, bool) {
	normal := transform.Up()
	point := transform.Position

	denom := normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-5 {
		return Hit{}, false
	}

	t := point.Subtract(ray.Origin).Dot(normal) / denom
	if t <= eps {
		return Hit{}, false
	}

	frontFace := denom < 0
	hitNormal := normal
	if !frontFace {
		hitNormal = normal.Negate()
	}

	return Hit{
		Ray:       ray,
		Point:     ray.At(t),
		Normal:    hitNormal,
		Distance:  t,
		FrontFace: frontFace,
		Kind:      Plane,
	}, true
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}
