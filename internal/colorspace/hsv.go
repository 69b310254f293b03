package colorspace

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV holds hue in degrees [0, 360) and saturation/value in [0, 1].
type HSV struct {
	H, S, V float64
}

func (c *HSV) Kind() Kind { return KindHSV }

// Mutate jitters hue by strength degrees; saturation and value move on a
// 1/360 scale so the same strength is comparable across channels.
func (c *HSV) Mutate(strength float64, j Jitterer) {
	c.H = wrapHue(c.H + j.Jitter(strength))
	c.S = clamp(c.S+j.Jitter(strength)/360, 0, 1)
	c.V = clamp(c.V+j.Jitter(strength)/360, 0, 1)
}

func (c *HSV) Diff(other Color) (float64, error) {
	o, ok := other.(*HSV)
	if !ok {
		return 0, ErrKindMismatch
	}
	return hueDistance(c.H, o.H)/180*255 + 255*math.Abs(c.S-o.S) + 255*math.Abs(c.V-o.V), nil
}

func (c *HSV) ToDisplay() Display {
	r, g, b := colorful.Hsv(c.H, c.S, c.V).Clamped().RGB255()
	return Display{R: r, G: g, B: b}
}

func (c *HSV) RotateHue(degrees float64) { c.H = wrapHue(c.H + degrees) }

func (c *HSV) Copy() Color {
	cp := *c
	return &cp
}

func (*HSV) sealed() {}
