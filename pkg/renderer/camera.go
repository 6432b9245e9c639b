package renderer

import (
	"math"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// viewportHeight is the height of the image plane in world units; the
// field of view sets how far it sits from the eye.
const viewportHeight = 2.0

// Background is the radiance returned for rays that leave the scene.
// It blends from Bottom to Top by the vertical component of the ray direction.
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// SkyBackground returns the default white to light-blue gradient
func SkyBackground() Background {
	return Background{
		Top:    core.NewVec3(0.4, 0.6, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// SolidBackground returns a constant background, black for lit interiors
func SolidBackground(color core.Vec3) Background {
	return Background{Top: color, Bottom: color}
}

// Color returns the background radiance seen along direction
func (b Background) Color(direction core.Vec3) core.Vec3 {
	unitDirection := direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Multiply(1.0 - a).Add(b.Top.Multiply(a))
}

// CameraConfig describes the view and image size
type CameraConfig struct {
	Eye        core.Vec3  // Camera position
	LookAt     core.Vec3  // Point the camera faces
	Up         core.Vec3  // Up direction, need not be orthogonal to the view direction
	HFov       float64    // Horizontal field of view in degrees
	Width      int        // Image width in pixels
	Height     int        // Image height in pixels
	Background Background // Radiance for escaping rays
}

// DefaultCameraConfig returns a 16:9 camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Eye:        core.NewVec3(0, 0, 0),
		LookAt:     core.NewVec3(0, 0, -1),
		Up:         core.NewVec3(0, 1, 0),
		HFov:       90,
		Width:      640,
		Height:     360,
		Background: SkyBackground(),
	}
}

// Camera generates primary rays. Changing the view requires Refocus before
// the next frame; LookFrom does both.
type Camera struct {
	config      CameraConfig
	u, v, w     core.Vec3 // Orthonormal basis: right, up, back
	pixel00     core.Vec3 // Center of the top-left pixel
	pixelDeltaU core.Vec3 // Offset to the pixel on the right
	pixelDeltaV core.Vec3 // Offset to the pixel below
}

// NewCamera creates a camera and computes its viewport
func NewCamera(config CameraConfig) *Camera {
	c := &Camera{config: config}
	c.Refocus()
	return c
}

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig {
	return c.config
}

// LookFrom moves the camera and recomputes the viewport
func (c *Camera) LookFrom(eye, lookAt, up core.Vec3) {
	c.config.Eye = eye
	c.config.LookAt = lookAt
	c.config.Up = up
	c.Refocus()
}

// Orbit rotates the eye about the vertical axis through the look-at point
func (c *Camera) Orbit(degrees float64) {
	offset := c.config.Eye.Subtract(c.config.LookAt)
	rotated := mgl64.Rotate3DY(mgl64.DegToRad(degrees)).Mul3x1(mgl64.Vec3{offset.X, offset.Y, offset.Z})
	c.LookFrom(c.config.LookAt.Add(core.NewVec3(rotated[0], rotated[1], rotated[2])), c.config.LookAt, c.config.Up)
}

// SetFov changes the horizontal field of view and recomputes the viewport
func (c *Camera) SetFov(hfovDegrees float64) {
	c.config.HFov = hfovDegrees
	c.Refocus()
}

// Refocus recomputes the basis and viewport from the current configuration
func (c *Camera) Refocus() {
	width := max(c.config.Width, 1)
	height := max(c.config.Height, 1)

	aspectRatio := float64(width) / float64(height)
	viewportWidth := aspectRatio * viewportHeight
	focalLength := (viewportWidth / 2) / math.Tan(mgl64.DegToRad(c.config.HFov)/2)

	c.w = c.config.Eye.Subtract(c.config.LookAt).Normalize()
	c.u = c.config.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Image rows run top to bottom, so the vertical edge points down
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Multiply(1.0 / float64(width))
	c.pixelDeltaV = viewportV.Multiply(1.0 / float64(height))

	viewportUpperLeft := c.config.Eye.
		Subtract(c.w.Multiply(focalLength)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00 = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))
}

// GetRay returns the ray through pixel (x, y). With jitter the sample point is
// offset uniformly within the pixel; with motion blur the ray time is uniform in [0, 1).
func (c *Camera) GetRay(x, y int, jitter, motionBlur bool, sampler core.Sampler) core.Ray {
	fx, fy := float64(x), float64(y)
	if jitter {
		offset := sampler.Get2D()
		fx += offset.X - 0.5
		fy += offset.Y - 0.5
	}

	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(fx)).
		Add(c.pixelDeltaV.Multiply(fy))

	time := 0.0
	if motionBlur {
		time = sampler.Get1D()
	}

	return core.NewRayAtTime(c.config.Eye, pixelSample.Subtract(c.config.Eye), time)
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
