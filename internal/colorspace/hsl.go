package colorspace

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSL holds hue in degrees [0, 360) and saturation/lightness in [0, 1].
type HSL struct {
	H, S, L float64
}

func (c *HSL) Kind() Kind { return KindHSL }

func (c *HSL) Mutate(strength float64, j Jitterer) {
	c.H = wrapHue(c.H + j.Jitter(strength))
	c.S = clamp(c.S+j.Jitter(strength)/360, 0, 1)
	c.L = clamp(c.L+j.Jitter(strength)/360, 0, 1)
}

func (c *HSL) Diff(other Color) (float64, error) {
	o, ok := other.(*HSL)
	if !ok {
		return 0, ErrKindMismatch
	}
	return hueDistance(c.H, o.H)/180*255 + 255*math.Abs(c.S-o.S) + 255*math.Abs(c.L-o.L), nil
}

func (c *HSL) ToDisplay() Display {
	r, g, b := colorful.Hsl(c.H, c.S, c.L).Clamped().RGB255()
	return Display{R: r, G: g, B: b}
}

func (c *HSL) RotateHue(degrees float64) { c.H = wrapHue(c.H + degrees) }

func (c *HSL) Copy() Color {
	cp := *c
	return &cp
}

func (*HSL) sealed() {}
