package material

import (
	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// ImageProvider is a read-only 8-bit RGB image. Pixel clamps out-of-range
// coordinates to the nearest edge instead of wrapping.
type ImageProvider interface {
	Width() int
	Height() int
	Pixel(x, y int) (r, g, b uint8)
}

// missingImageColor is returned when the provider has no pixels, so broken
// textures are obvious in a render instead of aborting it.
var missingImageColor = core.NewVec3(1, 0, 1)

// ImageTexture maps surface UV coordinates onto an image
type ImageTexture struct {
	Image ImageProvider
}

// NewImageTexture creates a new image texture
func NewImageTexture(image ImageProvider) *ImageTexture {
	return &ImageTexture{Image: image}
}

// Evaluate samples the image at given UV coordinates using nearest-neighbor filtering.
// UV is clamped to [0,1]; V=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Image == nil || t.Image.Width() <= 0 || t.Image.Height() <= 0 {
		return missingImageColor
	}

	u := core.UnitInterval.Clamp(uv.X)
	v := 1.0 - core.UnitInterval.Clamp(uv.Y) // Flip V to image coordinates

	x := int(u * float64(t.Image.Width()))
	y := int(v * float64(t.Image.Height()))

	r, g, b := t.Image.Pixel(x, y)
	return core.NewVec3(float64(r)/255.0, float64(g)/255.0, float64(b)/255.0)
}
