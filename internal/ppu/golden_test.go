package ppu

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuankiet65/knocknock/internal/interrupts"
	"golang.org/x/image/draw"
)

// shadePalette maps a 2-bit index directly onto a four-step grayscale, so
// a rendered frame can be compared against an independently-constructed
// expected image with ordinary color equality.
var shadePalette = color.Palette{
	color.Gray{Y: 0xFF},
	color.Gray{Y: 0xAA},
	color.Gray{Y: 0x55},
	color.Gray{Y: 0x00},
}

func frameToPaletted(frame [visibleLines][160]uint8) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, 160, visibleLines), shadePalette)
	for y := 0; y < visibleLines; y++ {
		for x := 0; x < 160; x++ {
			img.SetColorIndex(x, y, frame[y][x])
		}
	}
	return img
}

// TestPPU_RenderedFrameSurvivesNearestNeighbourUpscale renders a frame
// from a tile whose first row is striped, converts it to a paletted
// image, and scales it 2x with golang.org/x/image/draw. At a handful of
// sample points, destination pixel (2x, 2y) must equal source pixel
// (x, y), the defining invariant of nearest-neighbour scaling.
func TestPPU_RenderedFrameSurvivesNearestNeighbourUpscale(t *testing.T) {
	irq := interrupts.NewController()
	p := New(irq)

	p.WriteRegister(bgpAddr, 0xE4) // identity mapping, index N -> shade N
	p.WriteRegister(lcdcAddr, 0x91)

	// tile 0, addressed unsigned from 0x8000: alternating column stripe.
	p.WriteVRAM(0x8000, 0xAA) // low plane
	p.WriteVRAM(0x8001, 0x00) // high plane

	for p.Mode() != VBlank {
		p.Tick()
	}

	img := frameToPaletted(p.Frame())
	require.Equal(t, 160, img.Bounds().Dx())
	require.Equal(t, visibleLines, img.Bounds().Dy())

	scaled := image.NewPaletted(image.Rect(0, 0, 320, visibleLines*2), shadePalette)
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	for _, pt := range []struct{ sx, sy int }{{0, 0}, {1, 0}, {8, 0}, {9, 0}, {0, 10}} {
		want := img.At(pt.sx, pt.sy)
		got := scaled.At(pt.sx*2, pt.sy*2)
		assert.Equal(t, want, got, "pixel (%d,%d) should survive 2x nearest-neighbour scaling", pt.sx, pt.sy)
	}
}
