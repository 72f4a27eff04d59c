// Command knocknock runs a ROM headlessly for a fixed number of frames
// and writes the last completed frame out as a PNG, for smoke-testing the
// core without any GUI front-end.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/tuankiet65/knocknock/internal/gameboy"
	"github.com/tuankiet65/knocknock/pkg/log"
	"github.com/tuankiet65/knocknock/pkg/romloader"
)

var shadePalette = color.Palette{
	color.Gray{Y: 0xFF},
	color.Gray{Y: 0xAA},
	color.Gray{Y: 0x55},
	color.Gray{Y: 0x00},
}

func main() {
	romPath := flag.String("rom", "", "the ROM file to load (.gb/.gbc, optionally inside a .zip/.7z/.gz)")
	frames := flag.Int("frames", 60, "number of frames to run before exiting")
	out := flag.String("out", "frame.png", "path to write the final frame as a PNG")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "knocknock: -rom is required")
		os.Exit(2)
	}

	rom, err := romloader.Load(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "knocknock: %v\n", err)
		os.Exit(1)
	}

	logger := log.New()
	gb, err := gameboy.New(rom, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "knocknock: %v\n", err)
		os.Exit(1)
	}

	var last [144][160]uint8
	for i := 0; i < *frames; i++ {
		last = gb.Frame()
	}

	if err := writePNG(*out, last); err != nil {
		fmt.Fprintf(os.Stderr, "knocknock: writing %s: %v\n", *out, err)
		os.Exit(1)
	}
}

func writePNG(path string, frame [144][160]uint8) error {
	img := image.NewPaletted(image.Rect(0, 0, 160, 144), shadePalette)
	for y := 0; y < 144; y++ {
		for x := 0; x < 160; x++ {
			img.SetColorIndex(x, y, frame[y][x])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
