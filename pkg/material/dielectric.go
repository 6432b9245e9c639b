package material

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// clearGlass is the attenuation of every dielectric scatter
var clearGlass = core.NewVec3(1, 1, 1)

// Dielectric is a clear refractive material such as glass or water.
// An index below 1 models a less dense pocket, like an air bubble in glass.
type Dielectric struct {
	RefractiveIndex float64
}

// NewDielectric creates a dielectric with the given index relative to the surrounding medium
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter never absorbs. It reflects on total internal reflection and
// otherwise chooses reflection with the Schlick probability, refraction with the rest.
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	eta := d.RefractiveIndex
	if hit.FrontFace {
		eta = 1.0 / eta
	}

	in := rayIn.Direction.Normalize()
	cosTheta := math.Min(-in.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	var out core.Vec3
	switch {
	case eta*sinTheta > 1.0, Reflectance(cosTheta, eta) > sampler.Get1D():
		out = core.Reflect(in, hit.Normal)
	default:
		out = core.Refract(in, hit.Normal, eta)
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, out, rayIn.Time),
		Attenuation: clearGlass,
	}, true
}

// Reflectance is Schlick's approximation of the Fresnel reflectance at incidence cosine
func Reflectance(cosine, eta float64) float64 {
	r0 := (1 - eta) / (1 + eta)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
