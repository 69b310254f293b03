package colorspace

import "math"

// RGB holds additive channels in [0, 255].
type RGB struct {
	R, G, B float64
}

func (c *RGB) Kind() Kind { return KindRGB }

func (c *RGB) Mutate(strength float64, j Jitterer) {
	c.R = clamp(c.R+j.Jitter(strength), 0, 255)
	c.G = clamp(c.G+j.Jitter(strength), 0, 255)
	c.B = clamp(c.B+j.Jitter(strength), 0, 255)
}

// Diff is the sum of absolute per-channel differences.
func (c *RGB) Diff(other Color) (float64, error) {
	o, ok := other.(*RGB)
	if !ok {
		return 0, ErrKindMismatch
	}
	return math.Abs(c.R-o.R) + math.Abs(c.G-o.G) + math.Abs(c.B-o.B), nil
}

func (c *RGB) ToDisplay() Display {
	return Display{R: toByte(c.R), G: toByte(c.G), B: toByte(c.B)}
}

func (c *RGB) Copy() Color {
	cp := *c
	return &cp
}

func (*RGB) sealed() {}
