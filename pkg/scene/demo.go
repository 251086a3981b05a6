package scene

import (
	"github.com/brightlane/pathtracer/pkg/actor"
	"github.com/brightlane/pathtracer/pkg/atmosphere"
	"github.com/brightlane/pathtracer/pkg/camera"
	"github.com/brightlane/pathtracer/pkg/geometry"
	"github.com/brightlane/pathtracer/pkg/light"
	"github.com/brightlane/pathtracer/pkg/material"
	"github.com/brightlane/pathtracer/pkg/vecmath"
	"github.com/brightlane/pathtracer/pkg/xform"
)

// NewDemoScene builds the hard-coded scene cmd/tracer renders: four shaded
// spheres (matte, two metals, glass), a ground plane, a medium-filled
// sphere, a sun, a point fill light and a sky atmosphere. Grounded on df07's NewDefaultScene
// idiom (materials first, then actors, then lights).
func NewDemoScene(width, height int) *Scene {
	cam := camera.New(width, height, 40, camera.Vertical, xform.NewTransform(0, 0, 0, vecmath.NewVec3(0, 0.75, 4)))

	s := New("demo", cam)

	lambertianRed := material.NewLambertian(vecmath.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(vecmath.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(vecmath.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(vecmath.NewVec3(1, 1, 1), 1.5)
	fog := material.NewMedium(vecmath.NewVec3(0.8, 0.8, 0.8), 0.1, 0.3, 0)
	groundMat := material.NewLambertian(vecmath.NewVec3(0.5, 0.5, 0.5))

	s.AddActor(actor.New("center", geometry.NewSphere(0.5), lambertianRed, xform.NewTransform(0, 0, 0, vecmath.NewVec3(0, 0.5, -1))))
	s.AddActor(actor.New("left", geometry.NewSphere(0.5), metalSilver, xform.NewTransform(0, 0, 0, vecmath.NewVec3(-1, 0.5, -1))))
	s.AddActor(actor.New("right", geometry.NewSphere(0.5), metalGold, xform.NewTransform(0, 0, 0, vecmath.NewVec3(1, 0.5, -1))))
	s.AddActor(actor.New("glass", geometry.NewSphere(0.4), glass, xform.NewTransform(0, 0, 0, vecmath.NewVec3(0.6, 0.4, 0.1))))
	s.AddActor(actor.New("fog", geometry.NewSphere(0.4), fog, xform.NewTransform(0, 0, 0, vecmath.NewVec3(-0.6, 0.4, 0.1))))
	s.AddActor(actor.New("ground", geometry.NewPlane(), groundMat, xform.Identity()))

	sun := light.NewDirectional("sun", xform.NewTransform(-50, 30, 0, vecmath.NewVec3(0, 50, 0)), vecmath.NewVec3(1, 1, 0.95), 1.0)
	sun.IsSun = true
	s.AddLight(sun)
	s.AddLight(light.NewPoint("fill", xform.NewTransform(0, 0, 0, vecmath.NewVec3(2, 3, 2)), vecmath.NewVec3(1, 1, 1), 8))

	atm := atmosphere.Earth(vecmath.NewVec3(0, -636e4, 0))
	s.Atmosphere = &atm
	s.SunLightName = "sun"

	return s
}
