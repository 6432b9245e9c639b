package scene

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// oklchToRGB converts an OKLCH color (lightness 0-1, chroma, hue in degrees)
// to clamped linear RGB
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := mgl64.DegToRad(h)
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cubed LMS
	lms := core.NewVec3(
		l+0.3963377774*a+0.2158037573*b,
		l-0.1055613458*a-0.0638541728*b,
		l-0.0894841775*a-1.2914855480*b,
	)
	lms = lms.MultiplyVec(lms).MultiplyVec(lms)

	return core.NewVec3(
		4.0767416621*lms.X-3.3077115913*lms.Y+0.2309699292*lms.Z,
		-1.2684380046*lms.X+2.6097574011*lms.Y-0.3413193965*lms.Z,
		-0.0041960863*lms.X-0.7034186147*lms.Y+1.7076147010*lms.Z,
	).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of fuzzy metal spheres whose hue varies
// along X and saturation along Z, lit by a sun sphere
func NewSphereGridScene(opts Options) *Scene {
	s := newScene(core.NewVec3(4.5, 6, 18), core.NewVec3(4.5, 0.8, 4.5), horizontalFov(40, 16.0/9.0), 480, 270, renderer.SkyBackground())
	s.SamplingConfig.MotionBlur = false

	sun := material.NewDiffuseLight(core.NewVec3(12.0, 11.5, 10.0))
	s.Add(
		geometry.NewSphere(core.NewVec3(20, 25, 20), 8, sun),
		NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	const gridSize = 20
	const extent = 9.0
	spacing := extent / float64(gridSize-1)
	radius := max(0.02, min(0.35, spacing*0.35))

	const lightness, minChroma, maxChroma = 0.65, 0.05, 0.25
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			position := core.NewVec3(float64(i)*spacing, radius, float64(j)*spacing)

			hue := float64(i) / float64(gridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			color := oklchToRGB(lightness+0.1*math.Sin(float64(i+j)*0.5), chroma, hue)

			roughness := 0.05 + 0.05*float64((i+j)%3)
			s.Add(geometry.NewSphere(position, radius, material.NewMetal(color, roughness)))
		}
	}
	return s
}
