// Package seed derives an initial grid from an image.
//
// Each pixel becomes one cell. Its species is the colour distance from the
// top-left pixel divided by a tolerance, so similar regions of the picture
// start out as one territory.
package seed

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/engine"
	"github.com/san-kum/territory/internal/grid"
)

var (
	ErrEmptyImage       = errors.New("seed: image has no pixels")
	ErrInvalidTolerance = errors.New("seed: tolerance must be positive")
	// ErrTooManySpecies is returned when the tolerance splits the image into
	// more species than it has pixels.
	ErrTooManySpecies = errors.New("seed: tolerance yields more species than cells")
)

// Seed is an initial state ready for engine.Config.
type Seed struct {
	Width      int
	Height     int
	NumSpecies int
	Cells      []engine.SeedCell
}

// Load decodes an image file in any registered format.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", path, err)
	}
	return img, nil
}

// FromImage converts img into seed cells coloured in kind.
func FromImage(img image.Image, kind colorspace.Kind, tolerance float64) (Seed, error) {
	if tolerance <= 0 || math.IsNaN(tolerance) {
		return Seed{}, fmt.Errorf("%w: %v", ErrInvalidTolerance, tolerance)
	}
	b := img.Bounds()
	if b.Empty() {
		return Seed{}, ErrEmptyImage
	}

	s := Seed{
		Width:  b.Dx(),
		Height: b.Dy(),
		Cells:  make([]engine.SeedCell, 0, b.Dx()*b.Dy()),
	}
	origin := colorspace.DisplayFrom(img.At(b.Min.X, b.Min.Y))
	maxSpecies := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := colorspace.DisplayFrom(img.At(x, y))
			f := d.Distance(origin) / tolerance
			if f >= float64(s.Width*s.Height) {
				return Seed{}, fmt.Errorf("%w: tolerance %v on %dx%d", ErrTooManySpecies, tolerance, s.Width, s.Height)
			}
			sp := int(f)
			if sp > maxSpecies {
				maxSpecies = sp
			}
			s.Cells = append(s.Cells, engine.SeedCell{
				Species: grid.Species(sp),
				Color:   colorspace.FromDisplay(kind, d),
			})
		}
	}
	s.NumSpecies = maxSpecies + 1
	return s, nil
}

// Apply copies the seed into cfg, overriding its dimensions and species.
func (s Seed) Apply(cfg *engine.Config) {
	cfg.Width = s.Width
	cfg.Height = s.Height
	cfg.NumSpecies = s.NumSpecies
	cfg.SeedCells = s.Cells
}
