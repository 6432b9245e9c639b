package scene

import (
	"math/rand"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// NewQuadsScene creates five colored quads facing the camera from every side
func NewQuadsScene(opts Options) *Scene {
	s := newScene(core.NewVec3(0, 0, 9), core.NewVec3(0, 0, 0), 80, 400, 400, renderer.SkyBackground())

	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	s.Add(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)
	return s
}

// NewSimpleLightScene creates noise-textured spheres lit only by a sphere
// light and a quad light
func NewSimpleLightScene(opts Options) *Scene {
	s := newScene(core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0), horizontalFov(20, 16.0/9.0), 400, 225, renderer.SolidBackground(core.Vec3{}))
	s.SamplingConfig.SamplesPerPixel = 50

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, rand.New(rand.NewSource(opts.Seed))))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), light),
	)
	return s
}
