package seed

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/san-kum/territory/internal/colorspace"
	"github.com/san-kum/territory/internal/engine"
)

// halves is a w*h image whose left half is black and right half is white.
func halves(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 0xff}
			if x >= w/2 {
				c = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImageSpecies(t *testing.T) {
	s, err := FromImage(halves(4, 2), colorspace.KindRGB, 100)
	if err != nil {
		t.Fatal(err)
	}
	// White is sqrt(3)*255 ~ 441.7 away from black.
	if s.NumSpecies != 5 {
		t.Fatalf("species = %d, want 5", s.NumSpecies)
	}
	if s.Width != 4 || s.Height != 2 || len(s.Cells) != 8 {
		t.Fatalf("dimensions %dx%d cells %d", s.Width, s.Height, len(s.Cells))
	}
	if s.Cells[0].Species != 0 || s.Cells[3].Species != 4 || s.Cells[5].Species != 0 {
		t.Fatalf("unexpected species layout %+v", s.Cells)
	}
	if got := s.Cells[3].Color.ToDisplay(); got != (colorspace.Display{R: 255, G: 255, B: 255}) {
		t.Fatalf("colour = %v", got)
	}
}

func TestFromImageErrors(t *testing.T) {
	if _, err := FromImage(halves(2, 2), colorspace.KindHSV, 0); !errors.Is(err, ErrInvalidTolerance) {
		t.Errorf("err = %v, want ErrInvalidTolerance", err)
	}
	if _, err := FromImage(halves(4, 2), colorspace.KindRGB, 1e-6); !errors.Is(err, ErrTooManySpecies) {
		t.Errorf("err = %v, want ErrTooManySpecies", err)
	}
	// 441.7/60 puts white at species 7, the last index an 8-cell image allows.
	if s, err := FromImage(halves(4, 2), colorspace.KindRGB, 60); err != nil || s.NumSpecies != 8 {
		t.Errorf("tolerance 60: species = %d, err = %v", s.NumSpecies, err)
	}
	if _, err := FromImage(halves(4, 2), colorspace.KindRGB, 55); !errors.Is(err, ErrTooManySpecies) {
		t.Errorf("tolerance 55: err = %v, want ErrTooManySpecies", err)
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := FromImage(empty, colorspace.KindHSV, 10); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("err = %v, want ErrEmptyImage", err)
	}
}

func TestApplyBuildsEngine(t *testing.T) {
	s, err := FromImage(halves(6, 6), colorspace.KindHSL, 50)
	if err != nil {
		t.Fatal(err)
	}
	cfg := engine.DefaultConfig()
	s.Apply(&cfg)
	e, err := engine.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if e.Width() != 6 || e.SpeciesAt(5, 5) != s.Cells[35].Species {
		t.Fatal("engine does not reflect the seed")
	}
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()
	img := halves(4, 4)

	write := func(name string, enc func(*os.File) error) string {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if err := enc(f); err != nil {
			t.Fatal(err)
		}
		return path
	}

	paths := []string{
		write("seed.png", func(f *os.File) error { return png.Encode(f, img) }),
		write("seed.bmp", func(f *os.File) error { return bmp.Encode(f, img) }),
	}
	for _, p := range paths {
		got, err := Load(p)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if got.Bounds().Dx() != 4 {
			t.Fatalf("%s: width %d", p, got.Bounds().Dx())
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
