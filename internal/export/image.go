// Package export writes snapshots of a grid to image files.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/san-kum/territory/internal/colorspace"
)

// Frame is the read-only view an exporter needs.
type Frame interface {
	Width() int
	Height() int
	ColorAt(x, y int) colorspace.Display
}

// Image renders f at one pixel per cell, then scales it up with
// nearest-neighbour sampling so cells stay crisp.
func Image(f Frame, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, f.Width(), f.Height()))
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			src.SetRGBA(x, y, f.ColorAt(x, y).RGBA())
		}
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, f.Width()*scale, f.Height()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func WritePNG(w io.Writer, f Frame, scale int) error {
	return png.Encode(w, Image(f, scale))
}

// Save writes f to path, choosing the encoder from the extension:
// .png, .bmp, .tif/.tiff or .svg.
func Save(path string, f Frame, scale int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		err = WritePNG(out, f, scale)
	case ".bmp":
		err = bmp.Encode(out, Image(f, scale))
	case ".tif", ".tiff":
		err = tiff.Encode(out, Image(f, scale), &tiff.Options{Compression: tiff.Deflate})
	case ".svg":
		_, err = io.WriteString(out, FrameToSVG(f, scale))
	default:
		err = fmt.Errorf("export: unsupported format %q", ext)
	}
	if err != nil {
		return err
	}
	return out.Close()
}

// imageFrame reads a rendered image back as cells of cell×cell pixels.
type imageFrame struct {
	img           image.Image
	width, height int
	cell          int
}

// FrameFromImage wraps an image previously produced by Image as a Frame of
// the given cell dimensions. Each cell takes the colour of its top-left pixel.
func FrameFromImage(img image.Image, width, height int) (Frame, error) {
	b := img.Bounds()
	if width <= 0 || height <= 0 || b.Dx()%width != 0 || b.Dx()/width != b.Dy()/height {
		return nil, fmt.Errorf("export: %dx%d image does not tile a %dx%d grid", b.Dx(), b.Dy(), width, height)
	}
	return imageFrame{img: img, width: width, height: height, cell: b.Dx() / width}, nil
}

func (f imageFrame) Width() int  { return f.width }
func (f imageFrame) Height() int { return f.height }

func (f imageFrame) ColorAt(x, y int) colorspace.Display {
	b := f.img.Bounds()
	return colorspace.DisplayFrom(f.img.At(b.Min.X+x*f.cell, b.Min.Y+y*f.cell))
}
