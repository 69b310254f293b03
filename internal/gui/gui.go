// Package gui shows a running engine in a raylib window. The window is only
// compiled with the gui build tag; without it Run returns ErrUnavailable.
package gui

import (
	"errors"
	"image/color"

	"github.com/san-kum/territory/internal/export"
)

var ErrUnavailable = errors.New("gui: built without the gui tag")

// Options controls the window.
type Options struct {
	Name string
	// Scale is the window size of one cell, in pixels.
	Scale   int
	PerTick int
	FPS     int
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = "territory"
	}
	o.Scale = max(o.Scale, 1)
	o.PerTick = max(o.PerTick, 1)
	if o.FPS <= 0 {
		o.FPS = 60
	}
	return o
}

// fillPixels writes f's colours into dst in row-major order. dst must hold
// Width*Height entries.
func fillPixels(f export.Frame, dst []color.RGBA) {
	w := f.Width()
	for y := 0; y < f.Height(); y++ {
		row := dst[y*w : (y+1)*w]
		for x := range row {
			row[x] = f.ColorAt(x, y).RGBA()
		}
	}
}
