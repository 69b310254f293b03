// Package colorspace provides the colour representations a cell can carry.
//
// The set of representations is closed: [RGB], [HSV], [HSL] and [CMYK].
// Every representation supports bounded random mutation, a similarity
// metric and a deterministic conversion to a 24-bit [Display] colour.
package colorspace

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrKindMismatch is returned by Diff when the two colours use different spaces.
	ErrKindMismatch = errors.New("colorspace: cannot compare colours from different spaces")

	// ErrUnknownKind is returned by ParseKind for unrecognised names.
	ErrUnknownKind = errors.New("colorspace: unknown colour space")
)

// Kind identifies a colour space.
type Kind uint8

const (
	KindRGB Kind = iota
	KindHSV
	KindHSL
	KindCMYK
)

var kindNames = [...]string{
	KindRGB:  "rgb",
	KindHSV:  "hsv",
	KindHSL:  "hsl",
	KindCMYK: "cmyk",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// HasHue reports whether colours of this kind carry a circular hue channel.
func (k Kind) HasHue() bool { return k == KindHSV || k == KindHSL }

// Kinds lists every supported colour space.
func Kinds() []Kind { return []Kind{KindRGB, KindHSV, KindHSL, KindCMYK} }

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Jitterer supplies bounded random perturbations.
type Jitterer interface {
	// Jitter returns a value uniformly distributed in [-strength, strength].
	Jitter(strength float64) float64
}

// Color is a cell colour. Implementations are limited to this package.
type Color interface {
	Kind() Kind
	// Mutate perturbs every channel by at most the channel's scaled strength
	// and brings the result back into the channel's domain.
	Mutate(strength float64, j Jitterer)
	// Diff is a similarity metric in roughly 0..255 units per channel.
	Diff(other Color) (float64, error)
	ToDisplay() Display
	// Copy returns an independent duplicate.
	Copy() Color

	sealed()
}

// HueShifter is implemented by colours with a circular hue channel.
type HueShifter interface {
	Color
	RotateHue(degrees float64)
}

// Display is a fixed 24-bit presentation colour.
type Display struct {
	R, G, B uint8
}

// RGBA converts to the standard library colour type with full opacity.
func (d Display) RGBA() color.RGBA {
	return color.RGBA{R: d.R, G: d.G, B: d.B, A: 0xff}
}

// Hex formats the colour as #rrggbb.
func (d Display) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", d.R, d.G, d.B)
}

// Distance is the Euclidean distance in RGB byte space.
func (d Display) Distance(o Display) float64 {
	dr := float64(d.R) - float64(o.R)
	dg := float64(d.G) - float64(o.G)
	db := float64(d.B) - float64(o.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// DistanceLab is the perceptual CIE-Lab distance between two display colours.
func (d Display) DistanceLab(o Display) float64 {
	return d.colorful().DistanceLab(o.colorful())
}

func (d Display) colorful() colorful.Color {
	return colorful.Color{R: float64(d.R) / 255, G: float64(d.G) / 255, B: float64(d.B) / 255}
}

// DisplayFrom converts any standard library colour, dropping alpha.
func DisplayFrom(c color.Color) Display {
	r, g, b, _ := c.RGBA()
	return Display{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Random returns a palette colour of the given kind.
func Random(kind Kind, r interface{ Float64() float64 }) Color {
	switch kind {
	case KindHSV:
		return &HSV{H: r.Float64() * 360, S: 0.7, V: 0.6 + 0.3*r.Float64()}
	case KindHSL:
		return &HSL{H: r.Float64() * 360, S: 0.7, L: 0.4}
	case KindCMYK:
		return &CMYK{C: r.Float64(), M: r.Float64(), Y: r.Float64(), K: 0.3 * r.Float64()}
	default:
		return &RGB{R: r.Float64() * 255, G: r.Float64() * 255, B: r.Float64() * 255}
	}
}

// FromDisplay converts a presentation colour into the given space.
func FromDisplay(kind Kind, d Display) Color {
	c := d.colorful()
	switch kind {
	case KindHSV:
		h, s, v := c.Hsv()
		return &HSV{H: wrapHue(h), S: s, V: v}
	case KindHSL:
		h, s, l := c.Hsl()
		return &HSL{H: wrapHue(h), S: s, L: l}
	case KindCMYK:
		k := 1 - math.Max(c.R, math.Max(c.G, c.B))
		if k >= 1 {
			return &CMYK{K: 1}
		}
		return &CMYK{
			C: (1 - c.R - k) / (1 - k),
			M: (1 - c.G - k) / (1 - k),
			Y: (1 - c.B - k) / (1 - k),
			K: k,
		}
	default:
		return &RGB{R: float64(d.R), G: float64(d.G), B: float64(d.B)}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// wrapHue maps any angle into [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// hueDistance is the shortest angular distance between two hues, in degrees.
func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func toByte(v float64) uint8 {
	return uint8(clamp(v, 0, 255))
}
