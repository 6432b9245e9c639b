package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/go-gl/mathgl/mgl64"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Objects        []geometry.Hittable // Top-level primitives
	World          geometry.Hittable   // Acceleration structure over Objects
	BVH            *geometry.BVH
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// Options controls scene construction
type Options struct {
	BVH    geometry.BVHConfig // Acceleration structure settings
	Seed   int64              // Seed for randomly placed objects and noise; 0 uses 1
	Logger core.Logger        // Receives image-loading failures and BVH stats
}

// DefaultOptions returns the default BVH config and a stdout logger
func DefaultOptions() Options {
	return Options{
		BVH:    geometry.DefaultBVHConfig(),
		Seed:   1,
		Logger: renderer.NewDefaultLogger(),
	}
}

// Create builds the named scene and its acceleration structure
func Create(name string, opts Options) (*Scene, error) {
	entry, ok := findScene(name)
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	if opts.Logger == nil {
		opts.Logger = core.DiscardLogger
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}

	s := entry.build(opts)
	s.Name = entry.info.ID
	s.Preprocess(opts.BVH)
	opts.Logger.Printf("Scene %s: %s\n", s.Name, s.BVH.Stats())
	return s, nil
}

// Preprocess builds the BVH over the scene's objects
func (s *Scene) Preprocess(config geometry.BVHConfig) {
	s.BVH = geometry.NewBVH(s.Objects, config)
	s.World = s.BVH
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// newScene creates an empty scene with a camera looking from eye to lookAt
func newScene(eye, lookAt core.Vec3, hfov float64, width, height int, background renderer.Background) *Scene {
	return &Scene{
		CameraConfig: renderer.CameraConfig{
			Eye:        eye,
			LookAt:     lookAt,
			Up:         core.NewVec3(0, 1, 0),
			HFov:       hfov,
			Width:      width,
			Height:     height,
			Background: background,
		},
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}

// horizontalFov converts a vertical field of view to the horizontal one
// that frames the same image at the given aspect ratio
func horizontalFov(vfovDegrees, aspectRatio float64) float64 {
	halfHeight := math.Tan(mgl64.DegToRad(vfovDegrees) / 2)
	return mgl64.RadToDeg(2 * math.Atan(halfHeight*aspectRatio))
}

// NewGroundQuad creates a large horizontal quad centered at center with normal (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) points up
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}
