package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

// opaqueBlack is an ARGB pixel with full alpha and no color
const opaqueBlack uint32 = 0xFF000000

// Frame is a row-major buffer of 32-bit ARGB pixels:
// alpha in bits 24-31 (always 0xFF), red 16-23, green 8-15, blue 0-7.
type Frame struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFrame allocates an opaque black frame
func NewFrame(width, height int) *Frame {
	f := &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
	for i := range f.Pixels {
		f.Pixels[i] = opaqueBlack
	}
	return f
}

// Set stores a linear color at (x, y)
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = PackARGB(c)
}

// At returns the packed pixel at (x, y)
func (f *Frame) At(x, y int) uint32 {
	return f.Pixels[y*f.Width+x]
}

// Row returns the pixels of row y. Rows never overlap, so workers can fill them concurrently.
func (f *Frame) Row(y int) []uint32 {
	return f.Pixels[y*f.Width : (y+1)*f.Width]
}

// PackARGB gamma-corrects (gamma 2), clamps and quantizes a linear color
func PackARGB(c core.Vec3) uint32 {
	c = c.GammaCorrect(2.0).Clamp(0.0, 1.0)
	r := uint32(uint8(255 * c.X))
	g := uint32(uint8(255 * c.Y))
	b := uint32(uint8(255 * c.Z))
	return opaqueBlack | r<<16 | g<<8 | b
}

// UnpackARGB splits a packed pixel into its 8-bit channels
func UnpackARGB(pixel uint32) (a, r, g, b uint8) {
	return uint8(pixel >> 24), uint8(pixel >> 16), uint8(pixel >> 8), uint8(pixel)
}

// ToRGBA converts the frame to a standard image
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			a, r, g, b := UnpackARGB(f.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}

// WritePNG encodes the frame as PNG
func (f *Frame) WritePNG(w io.Writer) error {
	if err := png.Encode(w, f.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// AverageLuminance returns the mean display luminance in [0, 1]
func (f *Frame) AverageLuminance() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, pixel := range f.Pixels {
		_, r, g, b := UnpackARGB(pixel)
		total += core.NewVec3(float64(r), float64(g), float64(b)).Multiply(1.0 / 255.0).Luminance()
	}
	return total / float64(len(f.Pixels))
}
