package renderer

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/df07/go-realtime-raytracer/pkg/core"
)

func TestPackARGB(t *testing.T) {
	tests := []struct {
		name     string
		color    core.Vec3
		expected uint32
	}{
		{"Black", core.NewVec3(0, 0, 0), 0xFF000000},
		{"White", core.NewVec3(1, 1, 1), 0xFFFFFFFF},
		{"Over-bright clamps", core.NewVec3(4, 2, 1.5), 0xFFFFFFFF},
		{"Negative clamps", core.NewVec3(-1, -0.5, 0), 0xFF000000},
		{"Gamma 2 on red", core.NewVec3(0.25, 0, 0), 0xFF7F0000},
		{"Channel order", core.NewVec3(1, 0.25, 0), 0xFFFF7F00},
		{"Blue in low byte", core.NewVec3(0, 0, 1), 0xFF0000FF},
		{"NaN maps to zero", core.NewVec3(math.NaN(), 1, 0), 0xFF00FF00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackARGB(tt.color); got != tt.expected {
				t.Errorf("PackARGB(%v) = %#08x, expected %#08x", tt.color, got, tt.expected)
			}
		})
	}
}

func TestNewFrameIsOpaqueBlack(t *testing.T) {
	frame := NewFrame(3, 2)
	if len(frame.Pixels) != 6 {
		t.Fatalf("Expected 6 pixels, got %d", len(frame.Pixels))
	}
	for i, pixel := range frame.Pixels {
		if pixel != 0xFF000000 {
			t.Errorf("Pixel %d: expected opaque black, got %#08x", i, pixel)
		}
	}
}

func TestFrameRowMajorLayout(t *testing.T) {
	frame := NewFrame(4, 3)
	frame.Set(1, 2, core.NewVec3(1, 1, 1))

	if frame.Pixels[2*4+1] != 0xFFFFFFFF {
		t.Errorf("Expected pixel (1,2) at index 9")
	}
	if frame.At(1, 2) != 0xFFFFFFFF || frame.At(2, 1) != 0xFF000000 {
		t.Errorf("At does not match Set")
	}
	if row := frame.Row(2); len(row) != 4 || row[1] != 0xFFFFFFFF {
		t.Errorf("Row 2 should hold the written pixel, got %v", row)
	}
}

func TestFrameToRGBAAndPNG(t *testing.T) {
	frame := NewFrame(2, 2)
	frame.Set(0, 0, core.NewVec3(1, 0, 0))
	frame.Set(1, 1, core.NewVec3(0, 0, 1))

	img := frame.ToRGBA()
	if c := img.RGBAAt(0, 0); c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("Expected red at (0,0), got %v", c)
	}
	if c := img.RGBAAt(1, 1); c.B != 255 || c.R != 0 {
		t.Errorf("Expected blue at (1,1), got %v", c)
	}

	var buf bytes.Buffer
	if err := frame.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 2 {
		t.Errorf("Expected 2x2 PNG, got %v", decoded.Bounds())
	}
}

func TestFrameAverageLuminance(t *testing.T) {
	// Red, green, blue and black: (0.2126 + 0.7152 + 0.0722 + 0) / 4
	frame := NewFrame(2, 2)
	frame.Set(0, 0, core.NewVec3(1, 0, 0))
	frame.Set(1, 0, core.NewVec3(0, 1, 0))
	frame.Set(0, 1, core.NewVec3(0, 0, 1))

	if avg := frame.AverageLuminance(); math.Abs(avg-0.25) > 1e-4 {
		t.Errorf("Expected average luminance 0.25, got %f", avg)
	}

	white := NewFrame(1, 1)
	white.Set(0, 0, core.NewVec3(1, 1, 1))
	if avg := white.AverageLuminance(); math.Abs(avg-1) > 1e-4 {
		t.Errorf("Expected luminance 1 for white, got %f", avg)
	}

	if avg := NewFrame(0, 0).AverageLuminance(); avg != 0 {
		t.Errorf("Expected 0 for an empty frame, got %f", avg)
	}
}
