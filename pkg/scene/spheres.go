package scene

import (
	"math/rand"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/loaders"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// earthImage is looked up in the working directory, images/ and ../images/
const earthImage = "earthmap.jpg"

// NewSpheresScene creates metal and diffuse spheres resting on a giant ground
// sphere, seen through a wide 120 degree lens
func NewSpheresScene(opts Options) *Scene {
	s := newScene(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 120, 640, 480, renderer.SkyBackground())
	s.SamplingConfig.MotionBlur = false

	ground := material.NewLambertian(core.NewVec3(0.5, 0.2, 0.9))
	center := material.NewMetal(core.NewVec3(0.3, 0.3, 0.3), 0)
	sky := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0)
	gold := material.NewMetal(core.NewVec3(0.7, 0.6, 0.2), 0)
	teal := material.NewLambertian(core.NewVec3(0.2, 0.6, 0.7))
	green := material.NewLambertian(core.NewVec3(0.1, 0.5, 0.1))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(10, 10, -20), 10, sky),
		geometry.NewSphere(core.NewVec3(0, -30.5, -1), 30, ground),
		geometry.NewSphere(core.NewVec3(-10, 5, -10), 3, gold),
		geometry.NewSphere(core.NewVec3(-10, 5, -2), 5, teal),
		geometry.NewSphere(core.NewVec3(-10, 1, -10), 4, green),
	)
	return s
}

// NewDefaultScene creates coated, metal and glass spheres on a ground quad
func NewDefaultScene(opts Options) *Scene {
	s := newScene(core.NewVec3(0, 0.75, 2), core.NewVec3(0, 0.5, -1), horizontalFov(40, 16.0/9.0), 400, 225, renderer.SkyBackground())

	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)
	airBubble := material.NewDielectric(1.0 / 1.5)

	// Glass coating over a red base, and a half-glossy blend
	coatedRed := material.NewLayered(glass, lambertianRed)
	satin := material.NewMix(lambertianBlue, metalSilver, 0.3)

	s.Add(
		NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGreen),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, coatedRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
		// Hollow glass: an air bubble inside a glass shell around a blue core
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.24, airBubble),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue),
		geometry.NewSphere(core.NewVec3(0, 0.15, -0.3), 0.15, satin),
	)
	return s
}

// NewBouncingSpheresScene creates the random sphere field: small diffuse
// spheres bounce during the exposure, metal and glass ones stay put
func NewBouncingSpheresScene(opts Options) *Scene {
	s := newScene(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), horizontalFov(20, 16.0/9.0), 400, 225, renderer.SkyBackground())
	sampler := core.NewSeededSampler(opts.Seed)

	checker := material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler, 0, 1).MultiplyVec(core.RandomVec3(sampler, 0, 1))
				center2 := center.Add(core.NewVec3(0, core.RandomRange(sampler, 0, 0.5), 0))
				s.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)
	return s
}

// NewCheckeredSpheresScene creates two large spheres sharing one spatial checker texture
func NewCheckeredSpheresScene(opts Options) *Scene {
	s := newScene(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), horizontalFov(20, 16.0/9.0), 400, 225, renderer.SkyBackground())

	checker := material.NewTexturedLambertian(
		material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return s
}

// NewPerlinSpheresScene creates a marble sphere on a marble ground
func NewPerlinSpheresScene(opts Options) *Scene {
	s := newScene(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), horizontalFov(20, 16.0/9.0), 400, 225, renderer.SkyBackground())

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, rand.New(rand.NewSource(opts.Seed))))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
	return s
}

// NewEarthScene creates an image-textured globe. A missing image renders magenta.
func NewEarthScene(opts Options) *Scene {
	s := newScene(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, 0), horizontalFov(20, 16.0/9.0), 400, 225, renderer.SkyBackground())

	earth := material.NewImageTexture(loaders.LoadImageOrFallback(earthImage, opts.Logger))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earth)))
	return s
}

// NewSingleSphereScene creates one diffuse unit sphere at the origin
func NewSingleSphereScene(opts Options) *Scene {
	s := newScene(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 0), 90, 400, 400, renderer.SkyBackground())
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	return s
}
