// Package diag provides an out-of-band diagnostic for the PPU: a
// histogram of how many dots each scanline's LCD_DRAW phase actually
// took, rendered as a PNG. It observes the PPU from outside and plays
// no part in the emulation loop.
package diag

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DotRecorder accumulates LCD_DRAW dot counts observed across frames.
type DotRecorder struct {
	samples []float64
}

func NewDotRecorder() *DotRecorder {
	return &DotRecorder{}
}

// Observe records one scanline's LCD_DRAW duration in dots.
func (r *DotRecorder) Observe(dots uint16) {
	r.samples = append(r.samples, float64(dots))
}

// WriteHistogram renders the collected samples as a histogram PNG.
func (r *DotRecorder) WriteHistogram(w io.Writer, width, height int) error {
	values := make(plotter.Values, len(r.samples))
	copy(values, r.samples)

	p := plot.New()
	p.Title.Text = "LCD_DRAW dot duration"
	p.X.Label.Text = "dots"
	p.Y.Label.Text = "scanlines"

	hist, err := plotter.NewHist(values, 32)
	if err != nil {
		return err
	}
	hist.FillColor = color.RGBA{R: 0x33, G: 0x66, B: 0xCC, A: 0xFF}
	p.Add(hist)

	canvas := vgimg.New(vg.Length(width), vg.Length(height))
	p.Draw(draw.New(canvas))

	png := vgimg.PngCanvas{Canvas: canvas}
	_, err = png.WriteTo(w)
	return err
}
