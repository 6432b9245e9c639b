package scene

import (
	"math/rand"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/loaders"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// NewFinalScene combines every primitive, material and texture: a floor of
// random-height boxes, moving, glass, metal and textured spheres, a tinted
// glass volume, scene-wide mist, and a rotated cluster of small spheres
func NewFinalScene(opts Options) *Scene {
	s := newScene(core.NewVec3(478, 278, -600), core.NewVec3(278, 278, 0), 40, 400, 400, renderer.SolidBackground(core.Vec3{}))
	s.SamplingConfig.SamplesPerPixel = 100
	sampler := core.NewSeededSampler(opts.Seed)

	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	floor := geometry.NewHittableList()
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := core.RandomRange(sampler, 1, 101)
			floor.Add(geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	s.Add(geometry.NewBVHFromList(floor, opts.BVH))

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	s.Add(geometry.NewQuad(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), light))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	s.Add(geometry.NewMovingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Blue subsurface: a glass shell filled with a dense medium
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(boundary, geometry.NewConstantMedium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	earth := material.NewImageTexture(loaders.LoadImageOrFallback(earthImage, opts.Logger))
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earth)))

	marble := material.NewNoiseTexture(0.2, rand.New(rand.NewSource(opts.Seed)))
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(marble)))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := geometry.NewHittableList()
	for j := 0; j < 1000; j++ {
		cluster.Add(geometry.NewSphere(core.RandomVec3(sampler, 0, 165), 10, white))
	}
	s.Add(geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBVHFromList(cluster, opts.BVH), 15),
		core.NewVec3(-100, 270, 395),
	))

	return s
}
